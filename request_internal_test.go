package simplify

import "testing"

func TestBaseURL(t *testing.T) {
	cases := []struct {
		name   string
		client Client
		want   string
	}{
		{"live key", Client{apiKey: "lvpb_abc"}, apiBaseLiveURL},
		{"sandbox key", Client{apiKey: "sbpb_abc"}, apiBaseSandboxURL},
		{"override wins", Client{apiKey: "lvpb_abc", base: "http://localhost:1234"}, "http://localhost:1234"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.client.baseURL(); got != c.want {
				t.Errorf("baseURL() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestForSubmission(t *testing.T) {
	card := Card{
		ID:          "crd_server",
		Last4:       "1111",
		Number:      "4111 1111 1111 1111",
		ExpMonth:    "12",
		ExpYear:     "30",
		Cvc:         "123",
		DateCreated: 1234,
		Secure3DData: &Secure3DData{
			ID: "3ds",
		},
	}

	out := card.forSubmission()

	if out.Number != "4111111111111111" {
		t.Errorf("number not normalized: %q", out.Number)
	}
	if out.EntryMode != EntryModeManual {
		t.Errorf("entry mode = %q, want MANUAL", out.EntryMode)
	}
	if out.Type == nil || *out.Type != BrandVisa {
		t.Errorf("type not pinned to detected brand: %v", out.Type)
	}
	if out.ID != "" || out.Last4 != "" || out.DateCreated != 0 || out.Secure3DData != nil {
		t.Error("server-populated fields must be cleared before submission")
	}
	if card.ID == "" {
		t.Error("input card must not be mutated")
	}
}

func TestForSubmission_Wallet(t *testing.T) {
	mastercard := BrandMastercard
	card := Card{
		EntryMode:  EntryModeWalletInApp,
		WalletData: []byte(`{"publicKey":"pk"}`),
		Type:       &mastercard,
	}

	out := card.forSubmission()

	if out.EntryMode != EntryModeWalletInApp {
		t.Errorf("entry mode = %q", out.EntryMode)
	}
	if out.Type == nil || *out.Type != BrandMastercard {
		t.Error("wallet cards keep the provider-reported type")
	}
	if string(out.WalletData) != `{"publicKey":"pk"}` {
		t.Error("wallet payload must travel untouched")
	}
}
