package util

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Input rules shared by signup and admin user creation. Controllers
// enforce the same rules via binding tags; services call these directly
// so non-HTTP callers (seed CLI, tests) get identical behavior.

const (
	NameMinLen    = 20
	NameMaxLen    = 60
	AddressMaxLen = 400
	PasswordMin   = 8
	PasswordMax   = 16
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const passwordSpecials = "!@#$%^&*"

// ValidName reports whether name is 20-60 characters long. Counted in
// runes so accented and non-Latin names measure the same as they read.
func ValidName(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= NameMinLen && n <= NameMaxLen
}

// ValidEmail reports whether email matches a simple local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidAddress reports whether address fits in 400 characters. Empty is
// fine, the field is optional.
func ValidAddress(address string) bool {
	return len(address) <= AddressMaxLen
}

// ValidPassword reports whether password is 8-16 characters with at
// least one uppercase letter and one of !@#$%^&*.
func ValidPassword(password string) bool {
	if len(password) < PasswordMin || len(password) > PasswordMax {
		return false
	}

	hasUpper := false
	hasSpecial := false
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if strings.ContainsRune(passwordSpecials, r) {
			hasSpecial = true
		}
	}
	return hasUpper && hasSpecial
}

// NormalizeEmail trims whitespace and lowercases an email for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
