package hashing

import "golang.org/x/crypto/bcrypt"

// Hasher produces and verifies one-way password digests.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Check(plaintext, hashed string) bool
}

// BcryptHasher implements Hasher with bcrypt. Cost is the bcrypt work factor;
// values outside bcrypt's supported range fall back to the default cost.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *BcryptHasher) Check(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
