package services

import (
	"regexp"
	"strings"
)

var (
	phoneSeparators = strings.NewReplacer(" ", "", ".", "", "-", "")
	phonePattern    = regexp.MustCompile(`^[0-9]{10,11}$`)
)

// NormalizePhone strips spaces, dots and hyphens.
func NormalizePhone(raw string) string {
	return phoneSeparators.Replace(strings.TrimSpace(raw))
}

// ParsePhone normalizes raw and checks it is 10 or 11 digits.
func ParsePhone(raw string) (string, error) {
	phone := NormalizePhone(raw)
	if phone == "" {
		return "", validationErrorf("phone is required")
	}
	if !phonePattern.MatchString(phone) {
		return "", validationErrorf("phone %q must be 10-11 digits", raw)
	}
	return phone, nil
}
