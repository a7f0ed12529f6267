package simplify

import "context"

// TokenResult is the single terminal outcome of an asynchronous tokenization
// call: exactly one of Token or Err is set.
type TokenResult struct {
	Token *CardToken
	Err   error
}

// CreateCardTokenAsync runs the tokenization on a background goroutine and
// returns a one-shot channel that delivers exactly one TokenResult and is
// then closed. The caller chooses where to receive; discarding the channel
// abandons the result but the in-flight request still completes.
//
// There is no cancellation once the request is in flight; ctx only bounds
// the HTTP round trip itself.
func (c *Client) CreateCardTokenAsync(ctx context.Context, card Card, secure3D *Secure3DRequestData) <-chan TokenResult {
	out := make(chan TokenResult, 1)
	go func() {
		defer close(out)
		token, err := c.executeCreateCardToken(ctx, card, secure3D)
		out <- TokenResult{Token: token, Err: err}
	}()
	return out
}

// CreateCardTokenFunc runs the tokenization on a background goroutine and
// invokes fn once with the terminal outcome. fn runs on the worker
// goroutine; marshal back to your own loop if you need thread affinity.
func (c *Client) CreateCardTokenFunc(ctx context.Context, card Card, secure3D *Secure3DRequestData, fn func(TokenResult)) {
	go func() {
		token, err := c.executeCreateCardToken(ctx, card, secure3D)
		fn(TokenResult{Token: token, Err: err})
	}()
}
