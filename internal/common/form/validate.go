package form

import (
	"net/mail"
	"strings"
	"unicode"
)

// ValidPhone accepts 10 to 15 digits with an optional leading +, ignoring
// spaces and dashes.
func ValidPhone(phone string) bool {
	phone = NormalizePhone(phone)
	digits := strings.TrimPrefix(phone, "+")
	return len(digits) >= 10 && len(digits) <= 15 && AllDigits(digits)
}

// NormalizePhone strips spaces, dashes and parentheses.
func NormalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
}

// ValidEmail accepts a bare address, no display name.
func ValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func AllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
