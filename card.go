package simplify

import (
	"encoding/json"

	"github.com/simplifycom/simplify-go/internal/luhn"
)

// CardEntryMode tags how the card data was captured.
type CardEntryMode string

const (
	// EntryModeManual marks card data typed in by the cardholder.
	EntryModeManual CardEntryMode = "MANUAL"
	// EntryModeWalletInApp marks card data obtained from an in-app wallet
	// provider; the card then carries an opaque wallet payload instead of a
	// raw number.
	EntryModeWalletInApp CardEntryMode = "ANDROID_PAY_IN_APP"
)

// Customer holds the optional customer details attached to a card.
type Customer struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Card is the cardholder data submitted for tokenization. The caller fills
// the fields and hands the value to CreateCardToken; the SDK never stores it.
//
// Brand is not a settable field: for manually entered cards it is derived
// from the number at request time (see Brand), never independently.
type Card struct {
	// ID and Last4 are populated by the service on the card echoed back
	// inside a token; they are ignored on submission.
	ID    string `json:"id,omitempty"`
	Last4 string `json:"last4,omitempty"`

	Number   string `json:"number,omitempty"`
	ExpMonth string `json:"expMonth,omitempty"` // format MM
	ExpYear  string `json:"expYear,omitempty"`  // format YY
	Cvc      string `json:"cvc,omitempty"`

	AddressLine1   string `json:"addressLine1,omitempty"`
	AddressLine2   string `json:"addressLine2,omitempty"`
	AddressCity    string `json:"addressCity,omitempty"`
	AddressState   string `json:"addressState,omitempty"`
	AddressZip     string `json:"addressZip,omitempty"`
	AddressCountry string `json:"addressCountry,omitempty"`

	Type     *CardBrand `json:"type,omitempty"`
	Customer *Customer  `json:"customer,omitempty"`

	// DateCreated is set by the service, in epoch milliseconds.
	DateCreated int64 `json:"dateCreated,omitempty"`

	EntryMode CardEntryMode `json:"cardEntryMode,omitempty"`

	// WalletData is the opaque wallet payment blob, present only when
	// EntryMode is EntryModeWalletInApp.
	WalletData json.RawMessage `json:"androidPayData,omitempty"`

	// Secure3DData is present on echoed cards when the service requires a
	// step-up authentication challenge.
	Secure3DData *Secure3DData `json:"secure3DData,omitempty"`
}

// Brand returns the card network. For manual entry it is always derived from
// the number prefix; for wallet cards the service-reported type wins.
func (c Card) Brand() CardBrand {
	if c.EntryMode == EntryModeWalletInApp && c.Type != nil {
		return *c.Type
	}
	return DetectBrand(c.Number)
}

// MaskedNumber returns a log-safe rendering of the card number.
func (c Card) MaskedNumber() string {
	return luhn.Mask(c.Number)
}

// forSubmission normalizes the card before serialization: separators are
// stripped from the number, the entry mode defaults to manual and the brand
// is pinned to the detected one so it can never disagree with the number.
func (c Card) forSubmission() Card {
	out := c
	if out.EntryMode == "" {
		out.EntryMode = EntryModeManual
	}
	if out.EntryMode == EntryModeManual {
		out.Number = luhn.Normalize(out.Number)
		brand := DetectBrand(out.Number)
		out.Type = &brand
	}
	// Server-populated fields never travel to the service.
	out.ID = ""
	out.Last4 = ""
	out.DateCreated = 0
	out.Secure3DData = nil
	return out
}
