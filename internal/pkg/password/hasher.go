package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher wraps bcrypt. The zero value is not usable; call NewHasher.
type Hasher struct {
	cost int
}

func NewHasher() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

// NewHasherWithCost is used by tests to keep hashing fast.
func NewHasherWithCost(cost int) *Hasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Check compares in constant time.
func (h *Hasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
