package utils

import "golang.org/x/crypto/bcrypt"

// CredentialVerifier abstracts password hashing so handlers never touch
// plaintext comparison directly.
type CredentialVerifier interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// BcryptVerifier implements CredentialVerifier with bcrypt, which performs a
// constant-time comparison internally.
type BcryptVerifier struct {
	Cost int
}

// NewBcryptVerifier returns a verifier at the default bcrypt cost.
func NewBcryptVerifier() BcryptVerifier {
	return BcryptVerifier{Cost: bcrypt.DefaultCost}
}

func (v BcryptVerifier) Hash(password string) (string, error) {
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (v BcryptVerifier) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
