package customers

import (
	"strings"
	"unicode"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 30
	passwordMinLen = 8
)

const passwordSymbols = "@$!%*?&"

// ValidUsername enforces the registration rule: 3-30 characters, no spaces.
func ValidUsername(username string) bool {
	if len(username) < usernameMinLen || len(username) > usernameMaxLen {
		return false
	}
	return !strings.ContainsAny(username, " \t")
}

// ValidPassword requires at least 8 characters drawn from letters, digits,
// and the allowed symbol set, with at least one of each class present.
func ValidPassword(password string) bool {
	if len(password) < passwordMinLen {
		return false
	}
	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r) && r < 128:
			hasLetter = true
		case unicode.IsDigit(r) && r < 128:
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		default:
			return false
		}
	}
	return hasLetter && hasDigit && hasSymbol
}
