package auth

import (
	"crypto/rand"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier checks a plaintext password against a stored hash.
// Compare returns nil on a match.
type PasswordVerifier interface {
	Compare(hashedPassword, password string) error
}

// BcryptVerifier verifies bcrypt hashes.
type BcryptVerifier struct{}

// NewBcryptVerifier returns a BcryptVerifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

func (BcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// DummyHash returns a bcrypt hash of a random secret, computed once at
// bcrypt.DefaultCost. Comparing against it when an account does not exist
// keeps failed logins for unknown and known emails at the same cost.
var DummyHash = sync.OnceValue(func() string {
	secret := make([]byte, 32)
	_, _ = rand.Read(secret)
	hash, err := bcrypt.GenerateFromPassword(secret, bcrypt.DefaultCost)
	if err != nil {
		panic("auth: generating dummy hash: " + err.Error())
	}
	return string(hash)
})
