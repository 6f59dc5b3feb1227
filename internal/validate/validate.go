// Package validate holds the stateless format predicates applied by every
// mutating operation. Predicates return false for malformed input and
// never report errors; a well-formed-but-wrong value (e.g. a wrong PIN)
// is an authentication concern, not a format concern.
package validate

import "regexp"

var (
	// Canonical PIN rule: exactly 6 numeric digits. The legacy
	// alphanumeric-with-uppercase rule is intentionally not supported.
	pinPattern   = regexp.MustCompile(`^[0-9]{6}$`)
	phonePattern = regexp.MustCompile(`^[0-9]{8}$`)
	emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.[a-zA-Z]{2,}$`)
)

// PIN reports whether pin is exactly 6 numeric digits.
func PIN(pin string) bool {
	return pinPattern.MatchString(pin)
}

// Phone reports whether phone is exactly 8 digits.
func Phone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// Email reports whether email has the standard local@domain.tld shape.
func Email(email string) bool {
	return emailPattern.MatchString(email)
}
