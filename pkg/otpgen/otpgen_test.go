package otpgen

import (
	"testing"
	"time"
)

// base32 of "contest-backend-otp-secret-01".
const testSecret = "MNXW45DFON2C2YTBMNVWK3TEFVXXI4BNONSWG4TFOQWTAMI="

func TestGenerate_SameWindowDeterministic(t *testing.T) {
	gen := New(testSecret, 30)
	at := time.Date(2026, 3, 14, 9, 26, 5, 0, time.UTC)

	first, err := gen.Generate(at)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	second, err := gen.Generate(at.Add(10 * time.Second))
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if first != second {
		t.Fatalf("codes within one window must match: %s vs %s", first, second)
	}
	if len(first) != 6 {
		t.Fatalf("expected 6-digit code, got %q", first)
	}
	for _, r := range first {
		if r < '0' || r > '9' {
			t.Fatalf("expected numeric code, got %q", first)
		}
	}
}

func TestGenerate_DifferentWindows(t *testing.T) {
	gen := New(testSecret, 30)
	at := time.Date(2026, 3, 14, 9, 26, 5, 0, time.UTC)

	base, err := gen.Generate(at)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	// A single collision across windows is possible (1 in 10^6); three
	// consecutive collisions are not.
	differs := false
	for i := 1; i <= 3; i++ {
		code, err := gen.Generate(at.Add(time.Duration(i) * 30 * time.Second))
		if err != nil {
			t.Fatalf("Generate returned error: %v", err)
		}
		if code != base {
			differs = true
			break
		}
	}
	if !differs {
		t.Fatalf("codes across distinct windows must change")
	}
}

func TestWindow_Arithmetic(t *testing.T) {
	gen := New(testSecret, 30)
	at := time.Unix(90, 0)

	if gen.Window(at) != 3 {
		t.Fatalf("expected window 3, got %d", gen.Window(at))
	}
	if gen.Window(at.Add(29*time.Second)) != 3 {
		t.Fatalf("window must be stable for 30s")
	}
	if gen.Window(at.Add(30*time.Second)) != 4 {
		t.Fatalf("window must advance after 30s")
	}
}

func TestNew_DefaultPeriod(t *testing.T) {
	gen := New(testSecret, 0)
	if gen.Period() != 30*time.Second {
		t.Fatalf("expected 30s default period, got %s", gen.Period())
	}
}
