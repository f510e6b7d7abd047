package service

import "golang.org/x/crypto/bcrypt"

// passwordHashCost es el costo bcrypt para passwords y codigos OTP.
const passwordHashCost = 10

// Hasher hashea secretos de forma irreversible.
type Hasher interface {
	Hash(secret string) (string, error)
	// Verify nunca falla: un hash malformado equivale a false.
	Verify(secret, hash string) bool
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: passwordHashCost}
}

func (h *BcryptHasher) Hash(secret string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

func (h *BcryptHasher) Verify(secret, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
