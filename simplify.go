// Package simplify is a client for the Simplify Commerce card tokenization
// service. It validates card data locally, exchanges it for a single-use
// token over a pinned TLS connection and optionally carries the context
// needed to start a 3-D Secure challenge. Raw card numbers never need to
// reach the merchant's own backend.
//
// Example:
//
//	client, err := simplify.New("sbpb_...")
//	if err != nil {
//		// the key failed format validation
//	}
//	token, err := client.CreateCardToken(ctx, simplify.Card{
//		Number:   "4111 1111 1111 1111",
//		ExpMonth: "12",
//		ExpYear:  "30",
//		Cvc:      "123",
//	}, nil)
package simplify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// apiKeyPattern captures the base64 payload of a live or sandbox public key.
var apiKeyPattern = regexp.MustCompile(`^(?:lv|sb)pb_(.+)$`)

// Client holds the session configuration: the public API key, the optional
// wallet public key and the transport. It is immutable after New and safe
// for concurrent use by any number of requests.
type Client struct {
	apiKey          string
	walletPublicKey string
	base            string
	httpClient      *http.Client
	logger          *slog.Logger
	comms           *comms
}

// Option configures a Client.
type Option func(*Client)

// WithWalletPublicKey sets the wallet public key used when building wallet
// cards. It is distinct from the API key.
func WithWalletPublicKey(key string) Option {
	return func(c *Client) { c.walletPublicKey = key }
}

// WithBaseURL overrides the host derived from the API key prefix. Intended
// for tests and local sandbox servers.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.base = url }
}

// WithHTTPClient replaces the pinned transport. Intended for tests; the
// production path keeps the pinned CA and TLS version.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New builds a Client for the given public API key. The key is validated
// eagerly: a malformed key returns ErrInvalidAPIKey and no request can ever
// be issued. The key prefix selects the target environment (lvpb_ routes to
// production, sbpb_ to the sandbox).
func New(apiKey string, opts ...Option) (*Client, error) {
	if !validAPIKey(apiKey) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAPIKey, apiKey)
	}

	c := &Client{
		apiKey: apiKey,
		logger: slog.New(slog.NewTextHandler(io.Discard)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.comms = newComms(c.httpClient, c.logger)

	return c, nil
}

// validAPIKey checks the key shape: a lv/sb public key prefix followed by a
// base64-encoded (no padding) UUID string.
func validAPIKey(apiKey string) bool {
	m := apiKeyPattern.FindStringSubmatch(apiKey)
	if m == nil {
		return false
	}
	decoded, err := base64.RawStdEncoding.DecodeString(m[1])
	if err != nil {
		return false
	}
	_, err = uuid.Parse(string(decoded))
	return err == nil
}

// APIKey returns the session's public API key.
func (c *Client) APIKey() string { return c.apiKey }

// Live reports whether the session targets the production environment.
func (c *Client) Live() bool { return c.baseURL() == apiBaseLiveURL }

// CreateCardToken exchanges card data for a single-use token, blocking until
// the service responds. secure3D may be nil, in which case 3-D Secure
// eligibility is not evaluated.
//
// The card is submitted as-is; gate user input with ValidateNumber,
// ValidateExpiry and ValidateCvc before calling. Failures are *Error for
// service rejections, *ConnError for transport problems and
// ErrMalformedResponse for an unparseable success body.
func (c *Client) CreateCardToken(ctx context.Context, card Card, secure3D *Secure3DRequestData) (*CardToken, error) {
	return c.executeCreateCardToken(ctx, card, secure3D)
}

// WalletAddress carries the billing details a wallet provider returns with a
// payment payload.
type WalletAddress struct {
	Line1       string
	Line2       string
	City        string
	State       string
	PostalCode  string
	CountryCode string
	Name        string
	Email       string
}

// BuildWalletCard assembles a wallet-entry Card from an opaque wallet
// payment token and the billing address the wallet reported. The payload is
// wrapped together with the session's wallet public key; the card carries no
// raw number.
func (c *Client) BuildWalletCard(paymentToken []byte, addr WalletAddress) (Card, error) {
	wallet := struct {
		PublicKey    string          `json:"publicKey"`
		PaymentToken json.RawMessage `json:"paymentToken"`
	}{
		PublicKey:    c.walletPublicKey,
		PaymentToken: json.RawMessage(paymentToken),
	}

	data, err := json.Marshal(wallet)
	if err != nil {
		return Card{}, fmt.Errorf("encoding wallet data: %w", err)
	}

	card := Card{
		EntryMode:      EntryModeWalletInApp,
		WalletData:     data,
		AddressLine1:   addr.Line1,
		AddressLine2:   addr.Line2,
		AddressCity:    addr.City,
		AddressState:   addr.State,
		AddressZip:     addr.PostalCode,
		AddressCountry: addr.CountryCode,
	}
	if addr.Name != "" || addr.Email != "" {
		card.Customer = &Customer{Name: addr.Name, Email: addr.Email}
	}
	return card, nil
}
