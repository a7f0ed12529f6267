package simplify

// CardToken is the single-use token returned by a successful tokenization
// call. Immutable after creation; pass ID to your backend to process the
// payment.
type CardToken struct {
	ID   string `json:"id"`
	Used bool   `json:"used"`
	Card *Card  `json:"card,omitempty"`
}

// Secure3DData describes the step-up authentication challenge the service
// requires for an enrolled card. It appears on the card echoed inside a
// token and is consumed by the 3-D Secure challenge flow.
type Secure3DData struct {
	ID           string `json:"id,omitempty"`
	Enrolled     bool   `json:"isEnrolled"`
	AcsURL       string `json:"acsUrl,omitempty"`
	PaReq        string `json:"paReq,omitempty"`
	MerchantData string `json:"md,omitempty"`
	TermURL      string `json:"termUrl,omitempty"`
}

// Secure3DRequestData is the transaction context submitted alongside a card
// when 3-D Secure may be triggered. Amount is in minor units of Currency.
// Passing nil to CreateCardToken skips 3-D Secure evaluation entirely.
type Secure3DRequestData struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
}
