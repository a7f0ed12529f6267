package simplify

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/simplifycom/simplify-go/internal/luhn"
)

// CardBrand identifies the card network inferred from the leading digits of a
// card number.
type CardBrand int

const (
	BrandUnknown CardBrand = iota
	BrandVisa
	BrandMastercard
	BrandAmericanExpress
	BrandDiscover
	BrandDiners
	BrandJCB
)

type brandRule struct {
	name      string
	minLength int
	maxLength int
	cvcLength int
	prefix    *regexp.Regexp
}

// Detection tests the rules in this order; the first prefix match wins.
var brandOrder = []CardBrand{
	BrandVisa,
	BrandMastercard,
	BrandAmericanExpress,
	BrandDiscover,
	BrandDiners,
	BrandJCB,
}

var brandRules = map[CardBrand]brandRule{
	BrandVisa:            {"VISA", 13, 19, 3, regexp.MustCompile(`^4\d*$`)},
	BrandMastercard:      {"MASTERCARD", 16, 16, 3, regexp.MustCompile(`^(?:5[1-5]|67)\d*$`)},
	BrandAmericanExpress: {"AMERICAN_EXPRESS", 15, 15, 4, regexp.MustCompile(`^3[47]\d*$`)},
	BrandDiscover:        {"DISCOVER", 16, 16, 3, regexp.MustCompile(`^6(?:011|4[4-9]|5)\d*$`)},
	BrandDiners:          {"DINERS", 14, 16, 3, regexp.MustCompile(`^3(?:0(?:[0-5]|9)|[689])\d*$`)},
	BrandJCB:             {"JCB", 16, 16, 3, regexp.MustCompile(`^35(?:2[89]|[3-8])\d*$`)},
	BrandUnknown:         {"UNKNOWN", 13, 19, 3, nil},
}

func (b CardBrand) rule() brandRule {
	if r, ok := brandRules[b]; ok {
		return r
	}
	return brandRules[BrandUnknown]
}

// MinLength is the shortest valid number length for the brand.
func (b CardBrand) MinLength() int { return b.rule().minLength }

// MaxLength is the longest valid number length for the brand.
func (b CardBrand) MaxLength() int { return b.rule().maxLength }

// CvcLength is the exact CVC length the brand requires.
func (b CardBrand) CvcLength() int { return b.rule().cvcLength }

func (b CardBrand) String() string { return b.rule().name }

// prefixMatches reports whether number matches the brand prefix pattern.
// Brands without a pattern (unknown) match everything.
func (b CardBrand) prefixMatches(number string) bool {
	r := b.rule()
	return r.prefix == nil || r.prefix.MatchString(number)
}

// Format renders digits for display: American Express groups as 4-6-5, known
// brands group in 4s, unknown stays ungrouped. Input is never truncated.
func (b CardBrand) Format(digits string) string {
	var sb strings.Builder
	switch b {
	case BrandAmericanExpress:
		for i := 0; i < len(digits); i++ {
			if i == 4 || i == 10 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(digits[i])
		}
	case BrandUnknown:
		return digits
	default:
		for i := 0; i < len(digits); i++ {
			if i > 0 && i%4 == 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(digits[i])
		}
	}
	return sb.String()
}

// DetectBrand strips non-digits from number and returns the first brand whose
// prefix pattern matches, or BrandUnknown. Pure and total.
func DetectBrand(number string) CardBrand {
	digits := luhn.Digits(number)
	for _, b := range brandOrder {
		if r := brandRules[b]; r.prefix != nil && r.prefix.MatchString(digits) {
			return b
		}
	}
	return BrandUnknown
}

// MarshalJSON writes the brand as its wire name, e.g. "VISA".
func (b CardBrand) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

// UnmarshalJSON accepts a wire name; unrecognized names map to BrandUnknown.
func (b *CardBrand) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for brand, r := range brandRules {
		if r.name == name {
			*b = brand
			return nil
		}
	}
	*b = BrandUnknown
	return nil
}
