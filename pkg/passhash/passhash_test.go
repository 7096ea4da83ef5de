package passhash

import (
	"errors"
	"testing"
)

func TestHashVerify_RoundTrip(t *testing.T) {
	blob, err := Hash("s3cret-pw")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if blob == "s3cret-pw" {
		t.Fatalf("hash equals plaintext")
	}

	ok, err := Verify("s3cret-pw", blob)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected match")
	}
}

func TestVerify_Mismatch(t *testing.T) {
	blob, err := Hash("right")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	ok, err := Verify("wrong", blob)
	if err != nil {
		t.Fatalf("mismatch must not be an error, got %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch")
	}
}

func TestHash_DistinctSalts(t *testing.T) {
	first, err := Hash("same-input")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := Hash("same-input")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same input must differ")
	}

	for _, blob := range []string{first, second} {
		ok, err := Verify("same-input", blob)
		if err != nil || !ok {
			t.Fatalf("both blobs must verify, got ok=%v err=%v", ok, err)
		}
	}
}

func TestVerify_MalformedBlob(t *testing.T) {
	if _, err := Verify("anything", "not-a-bcrypt-hash"); !errors.Is(err, ErrMalformedHash) {
		t.Fatalf("expected ErrMalformedHash, got %v", err)
	}
}
