// Package passhash wraps bcrypt for password and one-time-code storage.
//
// Every Hash call salts independently, so two hashes of the same input
// differ while both verify. Verify reports a mismatch as (false, nil);
// only a blob that bcrypt cannot parse produces ErrMalformedHash.
package passhash

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor applied to all hashes.
const Cost = bcrypt.DefaultCost // 10 rounds

// ErrMalformedHash signals that a stored blob is not a valid bcrypt hash.
var ErrMalformedHash = errors.New("malformed password hash")

// Hash derives a salted one-way hash of plaintext.
func Hash(plaintext string) (string, error) {
	blob, err := bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
	if err != nil {
		return "", err
	}
	return string(blob), nil
}

// Verify recomputes the hash using the salt embedded in blob and compares in
// constant time.
func Verify(plaintext, blob string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(blob), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrMalformedHash
	}
}
