package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the cost the original deployment used for stored
// hashes; changing it would invalidate none of them (bcrypt embeds the
// cost), but new hashes are written with this value.
const bcryptCost = 12

// HashPassword returns a salted bcrypt hash of plain. The salt is random
// per call, so hashing the same password twice yields different strings.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain verifies against the stored hash.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
