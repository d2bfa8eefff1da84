package confirmation

import (
	"golang.org/x/crypto/bcrypt"
)

// HashCode creates a bcrypt hash of a confirmation code so the plaintext
// code only ever exists in the signup email.
func HashCode(code string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyCode checks a supplied code against the stored bcrypt hash.
func VerifyCode(codeHash, providedCode string) error {
	return bcrypt.CompareHashAndPassword([]byte(codeHash), []byte(providedCode))
}
