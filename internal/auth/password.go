package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is used when no cost is configured.
const DefaultBcryptCost = 10

// MaxSecretBytes is the longest secret bcrypt accepts.
const MaxSecretBytes = 72

// ErrSecretTooLong is returned by Hash for secrets over MaxSecretBytes.
var ErrSecretTooLong = errors.New("secret exceeds 72 bytes")

// Hasher hashes and verifies secrets such as passwords and badge numbers.
type Hasher struct {
	cost  int
	dummy []byte
}

// NewHasher builds a hasher with the given bcrypt cost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	// Verifying unknown principals against a real hash keeps the miss path as slow as the hit path.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("unknown-principal"), cost)
	return &Hasher{cost: cost, dummy: dummy}
}

// Hash returns the salted hash of secret.
func (h *Hasher) Hash(secret string) (string, error) {
	if len(secret) > MaxSecretBytes {
		return "", ErrSecretTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether candidate matches hashed.
func (h *Hasher) Verify(candidate, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(candidate)) == nil
}

// Burn spends the same work as a failed Verify.
func (h *Hasher) Burn(candidate string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(candidate))
}
