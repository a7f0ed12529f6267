package simplify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	apiBaseLiveURL    = "https://api.simplify.com/v1/api"
	apiBaseSandboxURL = "https://sandbox.simplify.com/v1/api"
	apiPathCardToken  = "/payment/cardToken"

	liveKeyPrefix = "lvpb_"
)

// cardTokenRequest is the outbound wire shape. Secure3DRequestData is a
// pointer so the key is omitted entirely when no 3-D Secure context is given.
type cardTokenRequest struct {
	Key                 string               `json:"key"`
	Card                *Card                `json:"card"`
	Secure3DRequestData *Secure3DRequestData `json:"secure3DRequestData,omitempty"`
}

type errorEnvelope struct {
	Error *Error `json:"error"`
}

// executeCreateCardToken is the one synchronous tokenization primitive; every
// public entry point is an adapter over it. It performs no local validation
// of the card: the service's response is authoritative.
func (c *Client) executeCreateCardToken(ctx context.Context, card Card, secure3D *Secure3DRequestData) (*CardToken, error) {
	submission := card.forSubmission()

	payload, err := json.Marshal(cardTokenRequest{
		Key:                 c.apiKey,
		Card:                &submission,
		Secure3DRequestData: secure3D,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	resp, err := c.comms.post(ctx, c.baseURL()+apiPathCardToken, payload)
	if err != nil {
		return nil, err
	}

	if !resp.ok() {
		var envelope errorEnvelope
		if err := json.Unmarshal(resp.body, &envelope); err != nil || envelope.Error == nil {
			// Rejection with an unreadable body still surfaces as a
			// service error carrying the status code.
			return nil, &Error{StatusCode: resp.statusCode, Message: "An error occurred"}
		}
		envelope.Error.StatusCode = resp.statusCode
		return nil, envelope.Error
	}

	var token CardToken
	if err := json.Unmarshal(resp.body, &token); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &token, nil
}

// baseURL resolves the target host from the API key prefix: a live key
// routes to production, everything else to the sandbox. Pure; no probing.
func (c *Client) baseURL() string {
	if c.base != "" {
		return c.base
	}
	if strings.HasPrefix(c.apiKey, liveKeyPrefix) {
		return apiBaseLiveURL
	}
	return apiBaseSandboxURL
}
