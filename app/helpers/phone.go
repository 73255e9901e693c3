package helpers

import (
	"regexp"
	"strings"
)

var (
	mobilePattern   = regexp.MustCompile(`^09\d{9}$`)
	landlinePattern = regexp.MustCompile(`^07\d{8}$`)
)

// NormalizePhone maps Persian and Arabic-Indic digits to ASCII, drops
// separators and rewrites the +98 / 0098 country prefix to a leading 0.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '۰' && r <= '۹':
			b.WriteRune('0' + (r - '۰'))
		case r >= '٠' && r <= '٩':
			b.WriteRune('0' + (r - '٠'))
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '\u200c':
		default:
			b.WriteRune(r)
		}
	}

	phone := b.String()
	switch {
	case strings.HasPrefix(phone, "+98"):
		phone = "0" + phone[3:]
	case strings.HasPrefix(phone, "0098"):
		phone = "0" + phone[4:]
	}
	return phone
}

// ValidPhone accepts a normalized mobile (09xxxxxxxxx) or landline (07xxxxxxxx) number.
func ValidPhone(phone string) bool {
	return mobilePattern.MatchString(phone) || landlinePattern.MatchString(phone)
}

const MsgInvalidPhone = "شماره تلفن معتبر نیست"
