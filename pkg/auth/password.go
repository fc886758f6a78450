package auth

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt cost used by HashPassword. Tests lower it.
var HashCost = 12

// MinPasswordLength counts runes, not bytes.
const MinPasswordLength = 8

// HashPassword is used by the stub backend only; the client never stores
// a password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	return string(hash), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

type passwordRule struct {
	requirement string
	met         func(password string) bool
}

func containsRune(match func(rune) bool) func(string) bool {
	return func(password string) bool {
		return strings.IndexFunc(password, match) >= 0
	}
}

var passwordRules = []passwordRule{
	{fmt.Sprintf("at least %d characters", MinPasswordLength), func(p string) bool {
		return utf8.RuneCountInString(p) >= MinPasswordLength
	}},
	{"at least 1 uppercase letter", containsRune(unicode.IsUpper)},
	{"at least 1 lowercase letter", containsRune(unicode.IsLower)},
	{"at least 1 digit", containsRune(unicode.IsDigit)},
	{"at least 1 special character", containsRune(func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})},
}

// ValidatePasswordStrength backs the register form's strongpw rule. The
// error lists every unmet requirement so the user can fix them in one go.
func ValidatePasswordStrength(password string) error {
	var missing []string
	for _, rule := range passwordRules {
		if !rule.met(password) {
			missing = append(missing, rule.requirement)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("password must contain %s", strings.Join(missing, ", "))
	}
	return nil
}
