package simplify

import (
	"strconv"
	"strings"
	"time"

	"github.com/simplifycom/simplify-go/internal/expiry"
	"github.com/simplifycom/simplify-go/internal/luhn"
)

// ValidateNumber reports whether number is a plausible card number for brand:
// it must match the brand prefix, satisfy the brand minimum length and pass
// the Luhn checksum. Separators (spaces, tabs, hyphens) are stripped first;
// any other non-digit character fails validation outright. The length check
// runs before Luhn so short numbers fail fast.
func ValidateNumber(number string, brand CardBrand) bool {
	digits := luhn.Normalize(number)
	if digits == "" || !luhn.IsDigits(digits) {
		return false
	}
	if !brand.prefixMatches(digits) {
		return false
	}
	if len(digits) < brand.MinLength() {
		return false
	}
	return luhn.Check(digits)
}

// ValidateExpiry reports whether the expiration month/year is current or in
// the future. A card stays valid through the end of its expiry month.
// Two-digit years are taken as 2000+year. Blank or non-numeric input and a
// zero month are invalid.
func ValidateExpiry(month, year string) bool {
	m := strings.TrimSpace(month)
	y := strings.TrimSpace(year)
	if m == "" || y == "" {
		return false
	}
	mi, err := strconv.Atoi(m)
	if err != nil {
		return false
	}
	yi, err := strconv.Atoi(y)
	if err != nil {
		return false
	}
	return expiry.ValidAt(mi, yi, time.Now())
}

// ValidateCvc reports whether the trimmed cvc has exactly the length brand
// requires (3 digits, 4 for American Express).
func ValidateCvc(cvc string, brand CardBrand) bool {
	return len(strings.TrimSpace(cvc)) == brand.CvcLength()
}
