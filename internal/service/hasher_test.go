package service_test

import (
	"testing"

	"github.com/pmeredith/authcore/internal/service"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := service.NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "" || hash == "secret1" {
		t.Fatalf("expected opaque hash, got %q", hash)
	}

	if !hasher.Check("secret1", hash) {
		t.Fatal("expected Check to accept the original password")
	}
	if hasher.Check("secret1x", hash) {
		t.Fatal("expected Check to reject a different password")
	}
}

func TestBcryptHasher_HashesDiffer(t *testing.T) {
	hasher := service.NewBcryptHasher(bcrypt.MinCost)

	h1, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("first Hash: %v", err)
	}
	h2, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("second Hash: %v", err)
	}

	// Per-record salting: the same password never hashes the same twice.
	if h1 == h2 {
		t.Fatal("expected distinct hashes for the same password")
	}
	if !hasher.Check("same-password", h1) || !hasher.Check("same-password", h2) {
		t.Fatal("expected both hashes to verify")
	}
}

func TestBcryptHasher_CheckGarbageHash(t *testing.T) {
	hasher := service.NewBcryptHasher(bcrypt.MinCost)

	if hasher.Check("anything", "not-a-bcrypt-hash") {
		t.Fatal("expected Check to reject a malformed hash")
	}
}
