package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a bcrypt hash for a sign-up password. The cost
// comes from configuration so tests can use bcrypt.MinCost while
// deployments run a real work factor.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether the plain password matches the stored
// bcrypt hash. The comparison is constant time; a malformed hash simply
// fails verification.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
