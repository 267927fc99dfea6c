package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/pmeredith/authcore/internal/domain"
)

// Failure messages surfaced to callers. Sign-in failures share one generic
// message so a caller cannot tell an unknown email from a wrong password.
const (
	msgInvalidCredentials = "Invalid email or password"
	msgSignUpRetry        = "An unexpected error occurred during sign up. Please try again."
	msgSignInRetry        = "An unexpected error occurred during sign in. Please try again."
)

// AuthUser is the caller-facing identity slice of a user. The password
// hash never leaves the domain layer.
type AuthUser struct {
	ID    string
	Email string
}

// AuthResponse is the uniform result of sign-up and sign-in. Failures set
// Message only; internal faults are logged and mapped to a fixed retry
// message rather than escaping to the caller.
type AuthResponse struct {
	Success bool
	Message string
	User    *AuthUser
	Token   string
}

// AuthService orchestrates registration, authentication, and session
// validation over an injected user store, session store, hasher, and
// token issuer.
type AuthService struct {
	users    domain.UserRepository
	sessions domain.SessionStore
	hasher   PasswordHasher
	tokens   *TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, sessions domain.SessionStore, hasher PasswordHasher, tokens *TokenIssuer) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// SignUp registers a new account after validating inputs, then signs the
// new user in by saving a freshly issued token as the current session.
func (s *AuthService) SignUp(ctx context.Context, email, password, confirmPassword string) AuthResponse {
	if email == "" || password == "" || confirmPassword == "" {
		return failure("All fields are required")
	}
	if password != confirmPassword {
		return failure("Passwords do not match")
	}
	if len(password) < 6 {
		return failure("Password must be at least 6 characters")
	}
	if !validEmail(email) {
		return failure("Please enter a valid email address")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		slog.Error("sign up: hash password", "error", err)
		return failure(msgSignUpRetry)
	}

	user := &domain.User{Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return failure("An account with this email already exists")
		}
		slog.Error("sign up: create user", "error", err)
		return failure(msgSignUpRetry)
	}

	token, err := s.startSession(ctx, user.ID)
	if err != nil {
		slog.Error("sign up: start session", "error", err)
		return failure(msgSignUpRetry)
	}

	return AuthResponse{
		Success: true,
		Message: "Account created successfully! Welcome aboard!",
		User:    &AuthUser{ID: user.ID, Email: user.Email},
		Token:   token,
	}
}

// SignIn authenticates an existing account and replaces the current
// session with a freshly issued token.
func (s *AuthService) SignIn(ctx context.Context, email, password string) AuthResponse {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return failure(msgInvalidCredentials)
		}
		slog.Error("sign in: get user", "error", err)
		return failure(msgSignInRetry)
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		return failure(msgInvalidCredentials)
	}

	token, err := s.startSession(ctx, user.ID)
	if err != nil {
		slog.Error("sign in: start session", "error", err)
		return failure(msgSignInRetry)
	}

	return AuthResponse{
		Success: true,
		Message: "Welcome back! Signed in successfully.",
		User:    &AuthUser{ID: user.ID, Email: user.Email},
		Token:   token,
	}
}

// SignOut clears the current session. It is idempotent and never fails
// outward; sign-out does not revoke the token itself, only the client's
// reference to it.
func (s *AuthService) SignOut(ctx context.Context) {
	if err := s.sessions.Clear(ctx); err != nil {
		slog.Error("sign out: clear session", "error", err)
	}
}

// CurrentUser returns the user for the current session, or nil if no
// valid session exists. Identity is re-resolved from the store by the
// token's user ID; nothing embedded in the token is trusted for display.
// An invalid or expired token clears the stale session, while a transient
// store failure leaves it in place.
func (s *AuthService) CurrentUser(ctx context.Context) *domain.User {
	token, err := s.sessions.Token(ctx)
	if err != nil {
		slog.Error("current user: read session", "error", err)
		return nil
	}
	if token == "" {
		return nil
	}

	userID, err := s.tokens.Verify(token)
	if err != nil {
		s.clearStale(ctx)
		return nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Token outlived the account.
			s.clearStale(ctx)
			return nil
		}
		slog.Error("current user: get user", "error", err)
		return nil
	}
	return user
}

// IsAuthenticated reports whether a valid session token is present.
// It is a pure predicate: no session state is mutated.
func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	token, err := s.sessions.Token(ctx)
	if err != nil || token == "" {
		return false
	}
	_, err = s.tokens.Verify(token)
	return err == nil
}

func (s *AuthService) startSession(ctx context.Context, userID string) (string, error) {
	token, err := s.tokens.Issue(userID)
	if err != nil {
		return "", err
	}
	if err := s.sessions.Save(ctx, token); err != nil {
		return "", err
	}
	return token, nil
}

func (s *AuthService) clearStale(ctx context.Context) {
	if err := s.sessions.Clear(ctx); err != nil {
		slog.Error("clear stale session", "error", err)
	}
}

func failure(message string) AuthResponse {
	return AuthResponse{Message: message}
}

// validEmail is a minimal shape check: a non-empty local part, an "@",
// and a domain containing an interior dot. Real validation happens when
// the address is used, not here.
func validEmail(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	dom := email[at+1:]
	dot := strings.Index(dom, ".")
	return dot > 0 && dot < len(dom)-1
}
