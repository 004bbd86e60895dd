// Package authutil handles operator password hashing. Accounts are
// provisioned out of band (the seeded admin, or directly in Mongo), so
// the dashboard only ever hashes on seed and verifies on login.
package authutil

import "golang.org/x/crypto/bcrypt"

// BcryptCost trades login latency for brute-force resistance. Operator
// logins are rare, so the cost leans high.
const BcryptCost = 12

// HashPassword hashes a plain-text password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the bcrypt hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
