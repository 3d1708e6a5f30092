package utils

import "regexp"

// emailPattern accepts anything of the form local@host.tld with no
// whitespace, matching what the frontend validates against.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsValidEmail reports whether the email has a plausible shape. Full
// RFC 5322 validation is deliberately out of scope.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
