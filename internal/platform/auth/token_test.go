package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func TestIssueAndParseToken(t *testing.T) {
	raw, err := IssueToken("user-1", "patient", testSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := ParseToken(raw, testSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("expected user-1, got %s", claims.UserID)
	}
	if claims.Role != "patient" {
		t.Errorf("expected patient, got %s", claims.Role)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl > TokenTTL || ttl < TokenTTL-time.Minute {
		t.Errorf("expected ~1h expiry, got %v", ttl)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	raw, _ := IssueToken("user-1", "patient", testSecret)
	if _, err := ParseToken(raw, "other-secret"); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	c := Claims{
		UserID: "user-1",
		Role:   "doctor",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken(raw, testSecret); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestParseToken_RejectsNonHMAC(t *testing.T) {
	// alg=none style tokens must not validate
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "user-1"})
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken(raw, testSecret); err == nil {
		t.Error("expected error for non-HMAC token")
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "secret123" {
		t.Error("hash should not equal plaintext")
	}
	if !CheckPassword(hash, "secret123") {
		t.Error("expected match for correct password")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("expected mismatch for wrong password")
	}
}
