package money

import "regexp"

// Code represents a currency code (e.g., "INR", "USD").
type Code string

// Common currency codes
const (
	INR Code = "INR" // Indian Rupee
	USD Code = "USD" // US Dollar
	EUR Code = "EUR" // Euro
	SAR Code = "SAR" // Saudi Riyal
	MYR Code = "MYR" // Malaysian Ringgit
)

// DefaultCode is used when an account is created without a currency.
const DefaultCode = INR

var codePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// IsValid reports whether c looks like an ISO 4217 alphabetic code.
func (c Code) IsValid() bool {
	return codePattern.MatchString(string(c))
}

func (c Code) String() string {
	return string(c)
}
