package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a password using bcrypt. Each call salts freshly, so
// hashing the same password twice yields different digests.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword reports whether password matches hash.
// A malformed hash is reported as a mismatch, never an error.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
