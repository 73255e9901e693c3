package helpers

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const (
	ContextKeyClaims    contextKey = "sessionClaims"
	ContextKeyUser      contextKey = "userObject"
	ContextKeyRequestID contextKey = "requestID"
)

func PasswordCompare(hashPass string, password []byte) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashPass), password) == nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

const zeroWidthNonJoiner = '\u200c'

// GenerateSlug builds a URL slug. Latin input goes through gosimple/slug;
// anything else keeps its own script so Persian names stay readable.
func GenerateSlug(s string) string {
	s = strings.TrimSpace(s)
	if isASCII(s) {
		return slug.Make(s)
	}

	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == zeroWidthNonJoiner:
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}
