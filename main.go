package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pmeredith/authcore/internal/repository/sqlite"
	"github.com/pmeredith/authcore/internal/service"
	"golang.org/x/term"
)

const usage = `usage: authcore <command>

commands:
  signup    create an account and start a session
  signin    authenticate and start a session
  whoami    show the currently signed-in user
  signout   end the current session
`

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, logOpts)))

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	dbPath := envOrDefault("DATABASE_PATH", "authcore.db")
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if len(jwtSecret) < 32 {
		slog.Error("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
		os.Exit(1)
	}

	bcryptCost := 12
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			slog.Error("invalid BCRYPT_COST", "error", err)
			os.Exit(1)
		}
		if parsed < 4 || parsed > 14 {
			slog.Error("BCRYPT_COST must be between 4 and 14", "value", parsed)
			os.Exit(1)
		}
		bcryptCost = parsed
	}

	db, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	hasher := service.NewBcryptHasher(bcryptCost)
	tokens := service.NewTokenIssuer(jwtSecret, service.DefaultTokenTTL)
	auth := service.NewAuthService(db.Users(), db.Sessions(), hasher, tokens)

	switch os.Args[1] {
	case "signup":
		signUp(ctx, auth)
	case "signin":
		signIn(ctx, auth)
	case "whoami":
		whoAmI(ctx, auth)
	case "signout":
		auth.SignOut(ctx)
		fmt.Println("Signed out.")
	case "debug-users":
		// Development diagnostic, never part of the normal surface.
		if os.Getenv("AUTHCORE_DEBUG") != "1" {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		debugUsers(ctx, db.Users())
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func signUp(ctx context.Context, auth *service.AuthService) {
	email, err := readLine("Email: ")
	if err != nil {
		slog.Error("read email", "error", err)
		os.Exit(1)
	}
	password, err := readPassword("Password: ")
	if err != nil {
		slog.Error("read password", "error", err)
		os.Exit(1)
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		slog.Error("read password confirmation", "error", err)
		os.Exit(1)
	}

	resp := auth.SignUp(ctx, email, password, confirm)
	fmt.Println(resp.Message)
	if !resp.Success {
		os.Exit(1)
	}
}

func signIn(ctx context.Context, auth *service.AuthService) {
	email, err := readLine("Email: ")
	if err != nil {
		slog.Error("read email", "error", err)
		os.Exit(1)
	}
	password, err := readPassword("Password: ")
	if err != nil {
		slog.Error("read password", "error", err)
		os.Exit(1)
	}

	resp := auth.SignIn(ctx, email, password)
	fmt.Println(resp.Message)
	if !resp.Success {
		os.Exit(1)
	}
}

func whoAmI(ctx context.Context, auth *service.AuthService) {
	user := auth.CurrentUser(ctx)
	if user == nil {
		fmt.Println("Not signed in.")
		os.Exit(1)
	}
	fmt.Printf("%s (%s)\n", user.Email, user.ID)
}

func debugUsers(ctx context.Context, users *sqlite.UserRepository) {
	all, err := users.ListAll(ctx)
	if err != nil {
		slog.Error("list users", "error", err)
		os.Exit(1)
	}
	for _, u := range all {
		fmt.Printf("%s\t%s\t%s\n", u.ID, u.Email, u.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}

func readLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword reads without echo so the password never lands in the
// terminal scrollback.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
