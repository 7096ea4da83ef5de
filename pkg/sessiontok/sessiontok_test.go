package sessiontok

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Minute)

	token, issued, err := issuer.Issue("ann@x.com", "Ann", "participant")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if issued.SessionID == "" {
		t.Fatalf("expected a session id")
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.Identity != "ann@x.com" || claims.Name != "Ann" || claims.Role != "participant" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.SessionID != issued.SessionID {
		t.Fatalf("session id changed across round trip")
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected future expiry, got %s", claims.ExpiresAt)
	}
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute)

	token, _, err := issuer.Issue("ann@x.com", "Ann", "participant")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := issuer.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_Tampered(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Minute)

	token, _, err := issuer.Issue("ann@x.com", "Ann", "participant")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", token)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := issuer.Verify(tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_Missing(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Minute)
	if _, err := issuer.Verify(""); !errors.Is(err, ErrTokenMissing) {
		t.Fatalf("expected ErrTokenMissing, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	token, _, err := NewIssuer("secret-a", time.Minute).Issue("ann@x.com", "Ann", "participant")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := NewIssuer("secret-b", time.Minute).Verify(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Minute)
	if _, err := issuer.Verify("not.a.jwt"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
