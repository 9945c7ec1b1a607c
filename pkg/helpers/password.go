package helpers

import "golang.org/x/crypto/bcrypt"

// BcryptEncoder hashes and verifies passwords with bcrypt.
type BcryptEncoder struct {
	Cost int
}

// NewBcryptEncoder returns an encoder using cost, or bcrypt.DefaultCost when
// cost is outside bcrypt's accepted range.
func NewBcryptEncoder(cost int) *BcryptEncoder {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptEncoder{Cost: cost}
}

func (e *BcryptEncoder) Encode(plain string) (string, error) {
	return HashPassword(plain, e.Cost)
}

func (e *BcryptEncoder) Verify(encoded, plain string) bool {
	return CompareHashAndPassword(encoded, plain)
}

// HashPassword hashes the plain text password using bcrypt
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
