// Package sandboxtest is an in-memory double of the Simplify tokenization
// service for tests, examples and local development. It speaks the same wire
// contract as the real sandbox: POST /payment/cardToken with a JSON body and
// either a card token or an {"error": ...} envelope back.
package sandboxtest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	simplify "github.com/simplifycom/simplify-go"
)

type tokenRequest struct {
	Key                 string                        `json:"key"`
	Card                *simplify.Card                `json:"card"`
	Secure3DRequestData *simplify.Secure3DRequestData `json:"secure3DRequestData"`
}

type errorBody struct {
	Code        string                `json:"code"`
	Message     string                `json:"message"`
	Reference   string                `json:"reference,omitempty"`
	FieldErrors []simplify.FieldError `json:"fieldErrors,omitempty"`
}

// API is the HTTP surface of the mock service.
type API struct {
	service *Service
}

func NewAPI(service *Service) *API {
	return &API{service: service}
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Route("/payment", func(r chi.Router) {
		r.Post("/cardToken", a.createCardToken)
	})
}

// Handler returns a standalone handler, convenient with httptest.NewServer.
func (a *API) Handler() http.Handler {
	r := chi.NewRouter()
	a.AppendRoutes(r)
	return r
}

func (a *API) createCardToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, &apiError{status: http.StatusBadRequest, code: "validation", message: err.Error()})
		return
	}

	token, apiErr := a.service.Tokenize(req)
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(token)
}

func writeError(w http.ResponseWriter, apiErr *apiError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.status)
	json.NewEncoder(w).Encode(map[string]errorBody{
		"error": {
			Code:        apiErr.code,
			Message:     apiErr.message,
			Reference:   apiErr.reference,
			FieldErrors: apiErr.fieldErrors,
		},
	})
}
