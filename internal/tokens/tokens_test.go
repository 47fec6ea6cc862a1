package tokens

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/accountd/accountd/internal/models"
)

func TestIssueAndVerify(t *testing.T) {
	iss := NewIssuer("test-secret-32-bytes-should-be-long", 0)
	u := &models.User{ID: "65f0c0ffee0000000000abcd", Email: "test@example.com"}

	raw, err := iss.Issue(u)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := iss.Verify(raw)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.Subject != u.ID {
		t.Fatalf("unexpected sub: got=%v want=%v", claims.Subject, u.ID)
	}
	if claims.Email != u.Email {
		t.Fatalf("unexpected email: got=%v want=%v", claims.Email, u.Email)
	}
}

func TestVerify_NoTTLMeansNoExpiry(t *testing.T) {
	iss := NewIssuer("no-expiry-secret-32-bytes-xxxxxxxx", 0)
	raw, err := iss.Issue(&models.User{ID: "u1", Email: "a@b.c"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	parsed, err := jwt.Parse(raw, func(tk *jwt.Token) (interface{}, error) {
		return []byte("no-expiry-secret-32-bytes-xxxxxxxx"), nil
	})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if _, ok := parsed.Claims.(jwt.MapClaims)["exp"]; ok {
		t.Fatal("exp claim must be absent when ttl is zero")
	}
}

func TestVerify_ExpiredToken(t *testing.T) {
	iss := NewIssuer("expiry-secret-32-bytes-xxxxxxxxxxx", 1*time.Second)
	raw, err := iss.Issue(&models.User{ID: "u2", Email: "x@x"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	time.Sleep(2 * time.Second)
	if _, err := iss.Verify(raw); err == nil {
		t.Fatal("expected verification to fail after expiry")
	}
}

func TestVerify_WrongSecretFails(t *testing.T) {
	iss := NewIssuer("secret-one-32-bytes-xxxxxxxxxxxxxx", 0)
	raw, err := iss.Issue(&models.User{ID: "u3", Email: "bob@example.com"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	other := NewIssuer("different-secret-xxxxxxxxxxxxxxxxx", 0)
	if _, err := other.Verify(raw); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	iss := NewIssuer("x", 0)
	if _, err := iss.Verify("not.a.jwt"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}

// Rejected when alg=none (unsigned token)
func TestVerify_AlgNoneRejected(t *testing.T) {
	headerEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none"}`))
	payloadEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"u-none"}`))
	tok := headerEnc + "." + payloadEnc + "."
	iss := NewIssuer("x", 0)
	if _, err := iss.Verify(tok); err == nil {
		t.Fatal("expected Verify to reject alg=none token")
	}
}

// Tampering with payload must fail signature verification
func TestVerify_TamperedPayload(t *testing.T) {
	iss := NewIssuer("tamper-test-secret-32-bytes-xxxxxx", 0)
	raw, err := iss.Issue(&models.User{ID: "user-t", Email: "t@example.com"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token parts")
	}
	payloadBytes, _ := base64.RawURLEncoding.DecodeString(parts[1])
	payload := strings.Replace(string(payloadBytes), "user-t", "attacker", 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(payload))
	if _, err := iss.Verify(strings.Join(parts, ".")); err == nil {
		t.Fatal("expected signature verification to fail for tampered token")
	}
}
