package helpers

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes the plain text password using bcrypt
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckAdminCredentials reports whether email/plain match the configured admin
// account. An unset email or hash rejects everything.
func CheckAdminCredentials(email, plain, adminEmail, adminHash string) bool {
	if adminEmail == "" || adminHash == "" {
		return false
	}
	given := strings.ToLower(strings.TrimSpace(email))
	want := strings.ToLower(strings.TrimSpace(adminEmail))
	emailOK := subtle.ConstantTimeCompare([]byte(given), []byte(want)) == 1
	pwdOK := bcrypt.CompareHashAndPassword([]byte(adminHash), []byte(plain)) == nil
	return emailOK && pwdOK
}
