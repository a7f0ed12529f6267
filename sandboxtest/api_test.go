package sandboxtest_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	simplify "github.com/simplifycom/simplify-go"
	"github.com/simplifycom/simplify-go/sandboxtest"
)

func newTestServer(t *testing.T, cfg *sandboxtest.Config) (*httptest.Server, *sandboxtest.Repository) {
	t.Helper()
	repo := sandboxtest.NewRepository()
	api := sandboxtest.NewAPI(sandboxtest.NewService(repo, cfg))
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)
	return srv, repo
}

func postToken(t *testing.T, srv *httptest.Server, body string) (int, map[string]json.RawMessage) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/payment/cardToken", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func validKey() string {
	return "sbpb_" + base64.RawStdEncoding.EncodeToString([]byte(uuid.NewString()))
}

func TestCreateCardToken(t *testing.T) {
	srv, repo := newTestServer(t, nil)

	t.Run("issues a token for a valid card", func(t *testing.T) {
		status, body := postToken(t, srv, `{
			"key": "`+validKey()+`",
			"card": {"number": "4111111111111111", "expMonth": "12", "expYear": "30", "cvc": "123"}
		}`)
		require.Equal(t, http.StatusCreated, status)

		var token simplify.CardToken
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &token))
		require.NotEmpty(t, token.ID)
		require.False(t, token.Used)
		require.Equal(t, "1111", token.Card.Last4)
		require.Empty(t, token.Card.Number, "the raw number is never echoed back")

		stored, err := repo.GetToken(token.ID)
		require.NoError(t, err)
		require.Equal(t, token.ID, stored.ID)
	})

	t.Run("rejects a bad key with 401", func(t *testing.T) {
		status, body := postToken(t, srv, `{"key": "nope", "card": {"number": "4111111111111111"}}`)
		require.Equal(t, http.StatusUnauthorized, status)
		require.Contains(t, string(body["error"]), "system.unauthorized")
	})

	t.Run("rejects a missing card with 400", func(t *testing.T) {
		status, _ := postToken(t, srv, `{"key": "`+validKey()+`"}`)
		require.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("rejects malformed json with 400", func(t *testing.T) {
		status, _ := postToken(t, srv, `{not json`)
		require.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("reports each invalid field", func(t *testing.T) {
		status, body := postToken(t, srv, `{
			"key": "`+validKey()+`",
			"card": {"number": "4111111111111112", "expMonth": "01", "expYear": "20", "cvc": "1"}
		}`)
		require.Equal(t, http.StatusBadRequest, status)

		var envelope struct {
			Code        string                `json:"code"`
			FieldErrors []simplify.FieldError `json:"fieldErrors"`
		}
		require.NoError(t, json.Unmarshal(body["error"], &envelope))
		require.Equal(t, "validation", envelope.Code)
		require.Len(t, envelope.FieldErrors, 3)
	})
}

func TestCreateCardToken_Declines(t *testing.T) {
	cfg := sandboxtest.DefaultConfig()
	cfg.DeclineNumbers = map[string]string{"4000000000000002": "card.declined"}
	srv, repo := newTestServer(t, cfg)

	status, body := postToken(t, srv, `{
		"key": "`+validKey()+`",
		"card": {"number": "4000000000000002", "expMonth": "12", "expYear": "30", "cvc": "123"}
	}`)
	require.Equal(t, http.StatusPaymentRequired, status)
	require.Contains(t, string(body["error"]), "card.declined")
	require.Equal(t, 0, repo.Count())
}

func TestApp(t *testing.T) {
	app := sandboxtest.NewApp(discardLogger(), nil)
	require.NoError(t, app.Start())
	defer app.Shutdown()

	resp, err := http.Get(app.URL() + "/-/live")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
