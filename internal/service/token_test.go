package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/pmeredith/authcore/internal/domain"
	"github.com/pmeredith/authcore/internal/service"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	issuer := service.NewTokenIssuer(testSecret, service.DefaultTokenTTL)

	token, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	userID, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if userID != "user-123" {
		t.Fatalf("expected user-123, got %q", userID)
	}
}

func TestTokenIssuer_Malformed(t *testing.T) {
	issuer := service.NewTokenIssuer(testSecret, service.DefaultTokenTTL)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := issuer.Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("Verify(%q): expected ErrUnauthorized, got %v", token, err)
		}
	}
}

func TestTokenIssuer_Tampered(t *testing.T) {
	issuer := service.NewTokenIssuer(testSecret, service.DefaultTokenTTL)

	token, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip several characters at the end of the signature.
	tampered := token[:len(token)-5] + "XXXXX"
	if _, err := issuer.Verify(tampered); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for tampered token, got %v", err)
	}
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	issuer := service.NewTokenIssuer(testSecret, service.DefaultTokenTTL)
	other := service.NewTokenIssuer("a-completely-different-secret", service.DefaultTokenTTL)

	token, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := other.Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong secret, got %v", err)
	}
}

func TestTokenIssuer_Expiry(t *testing.T) {
	issuer := service.NewTokenIssuer(testSecret, time.Hour)

	now := time.Now()
	issuer.SetClock(func() time.Time { return now })

	token, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Still valid just before expiry.
	issuer.SetClock(func() time.Time { return now.Add(59 * time.Minute) })
	if _, err := issuer.Verify(token); err != nil {
		t.Fatalf("Verify before expiry: %v", err)
	}

	// Invalid once the clock passes expiry.
	issuer.SetClock(func() time.Time { return now.Add(2 * time.Hour) })
	if _, err := issuer.Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after expiry, got %v", err)
	}
}
