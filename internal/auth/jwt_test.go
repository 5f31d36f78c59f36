package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/01moynul/binner-golang/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidateToken(t *testing.T) {
	tokens, err := New("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	token, err := tokens.GenerateToken(models.UserContext{UserID: 42, Email: "maker@example.com"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	user, err := tokens.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if user.UserID != 42 || user.Email != "maker@example.com" {
		t.Fatalf("user = %+v", user)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	tokens, _ := New("test-secret", time.Minute)
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return issued }
	token, err := tokens.GenerateToken(models.UserContext{UserID: 1})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	tokens.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := tokens.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenRejectsOtherSecret(t *testing.T) {
	a, _ := New("secret-a", time.Hour)
	b, _ := New("secret-b", time.Hour)
	token, _ := a.GenerateToken(models.UserContext{UserID: 1})
	if _, err := b.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenRejectsNoneAlgorithm(t *testing.T) {
	tokens, _ := New("secret", time.Hour)
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "1"})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := tokens.ValidateToken(raw); err == nil {
		t.Fatal("expected unsigned token to be rejected")
	}
}

func TestEmptySecretGeneratesKey(t *testing.T) {
	tokens, err := New("", 0)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if len(tokens.secret) != 32 || tokens.expire != 72*time.Hour {
		t.Fatalf("secret len = %d expire = %v", len(tokens.secret), tokens.expire)
	}
	token, _ := tokens.GenerateToken(models.UserContext{UserID: 3})
	if _, err := tokens.ValidateToken(token); err != nil {
		t.Fatalf("validate: %v", err)
	}
}
