// Package luhn implements the Luhn checksum and the digit-string helpers the
// SDK uses to clean, mask and generate card numbers.
package luhn

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// Check reports whether digits passes the Luhn checksum. Any character other
// than an ASCII digit fails the check outright.
func Check(digits string) bool {
	if digits == "" || !IsDigits(digits) {
		return false
	}
	sum, dbl := 0, false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if dbl {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		dbl = !dbl
	}
	return sum%10 == 0
}

// CheckDigit computes the Luhn check digit for body.
func CheckDigit(body string) string {
	sum, dbl := 0, true
	for i := len(body) - 1; i >= 0; i-- {
		d := int(body[i] - '0')
		if dbl {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		dbl = !dbl
	}
	cd := (10 - (sum % 10)) % 10
	return string('0' + byte(cd))
}

// IsDigits reports whether s is non-empty implies every byte is an ASCII digit.
func IsDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Normalize strips spaces, tabs and hyphens. Other characters are kept so that
// a later IsDigits check can reject them as hard failures rather than skips.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-':
			return -1
		default:
			return r
		}
	}, s)
}

// Digits keeps only the ASCII digits of s.
func Digits(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

// LastN returns the last n characters of s, or s when shorter.
func LastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// Mask returns a log-safe rendering of a card number: first 6 and last 4
// digits visible, everything else starred.
func Mask(number string) string {
	cleaned := Digits(number)
	n := len(cleaned)
	if n == 0 {
		return ""
	}
	if n <= 4 {
		return strings.Repeat("*", n)
	}
	if n < 10 {
		return strings.Repeat("*", n-4) + cleaned[n-4:]
	}
	return cleaned[:6] + strings.Repeat("*", n-10) + cleaned[n-4:]
}

// Generate produces a Luhn-valid number of totalLen digits starting with
// prefix. The tail is drawn from crypto/rand; intended for test data only.
func Generate(prefix string, totalLen int) (string, error) {
	if !IsDigits(prefix) || prefix == "" {
		return "", fmt.Errorf("prefix must be numeric")
	}
	if totalLen < 13 || totalLen > 19 {
		return "", fmt.Errorf("total length must be 13..19")
	}
	fill := totalLen - 1 - len(prefix)
	if fill < 0 {
		return "", fmt.Errorf("prefix too long: %s", prefix)
	}
	tail, err := randomDigits(fill)
	if err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	body := prefix + tail
	return body + CheckDigit(body), nil
}

// randomDigits uses rejection sampling so 0-9 stay uniformly distributed.
func randomDigits(count int) (string, error) {
	if count <= 0 {
		return "", nil
	}
	const threshold = 250 // 256 - (256 % 10)
	var sb strings.Builder
	sb.Grow(count)
	buf := make([]byte, 64)
	for sb.Len() < count {
		n, err := rand.Read(buf)
		if err != nil {
			return "", err
		}
		for i := 0; i < n && sb.Len() < count; i++ {
			if buf[i] < threshold {
				sb.WriteByte('0' + (buf[i] % 10))
			}
		}
	}
	return sb.String(), nil
}
