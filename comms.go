package simplify

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"runtime"
	"time"

	"golang.org/x/exp/slog"
)

// Version is the SDK version reported in the User-Agent header.
const Version = "1.0.0"

const (
	connectTimeout = 15 * time.Second
	readTimeout    = 60 * time.Second
)

// intermediateCA is the one certificate authority the transport trusts. The
// system trust store is never consulted; a server that does not chain to
// this CA fails the handshake.
const intermediateCA = `-----BEGIN CERTIFICATE-----
MIIExDCCA6ygAwIBAgIEUdNgzzANBgkqhkiG9w0BAQsFADCBvjELMAkGA1UEBhMC
VVMxFjAUBgNVBAoTDUVudHJ1c3QsIEluYy4xKDAmBgNVBAsTH1NlZSB3d3cuZW50
cnVzdC5uZXQvbGVnYWwtdGVybXMxOTA3BgNVBAsTMChjKSAyMDA5IEVudHJ1c3Qs
IEluYy4gLSBmb3IgYXV0aG9yaXplZCB1c2Ugb25seTEyMDAGA1UEAxMpRW50cnVz
dCBSb290IENlcnRpZmljYXRpb24gQXV0aG9yaXR5IC0gRzIwHhcNMTQwODI2MTcx
NDQ5WhcNMjQwODI3MDgzNDQ3WjCBujELMAkGA1UEBhMCVVMxFjAUBgNVBAoTDUVu
dHJ1c3QsIEluYy4xKDAmBgNVBAsTH1NlZSB3d3cuZW50cnVzdC5uZXQvbGVnYWwt
dGVybXMxOTA3BgNVBAsTMChjKSAyMDEyIEVudHJ1c3QsIEluYy4gLSBmb3IgYXV0
aG9yaXplZCB1c2Ugb25seTEuMCwGA1UEAxMlRW50cnVzdCBDZXJ0aWZpY2F0aW9u
IEF1dGhvcml0eSAtIEwxSzCCASIwDQYJKoZIhvcNAQEBBQADggEPADCCAQoCggEB
ANo/ltBNuS9E59s5XptQ7lylYdpBZ1MJqgCajld/KWvbx+EhJKo60I1HI9Ltchbw
kSHSXbe4S6iDj7eRMmjPziWTLLJ9l8j+wbQXugmeA5CTe3xJgyJoipveR8MxmHou
fUAL0u8+07KMqo9Iqf8A6ClYBve2k1qUcyYmrVgO5UK41epzeWRoUyW4hM+Ueq4G
RQyja03Qxr7qGKQ28JKyuhyIjzpSf/debYMcnfAf5cPW3aV4kj2wbSzqyc+UQRlx
RGi6RzwE6V26PvA19xW2nvIuFR4/R8jIOKdzRV1NsDuxjhcpN+rdBQEiu5Q2Ko1b
Nf5TGS8IRsEqsxpiHU4r2RsCAwEAAaOByzCByDAOBgNVHQ8BAf8EBAMCAQYwDwYD
VR0TBAgwBgEB/wIBADAzBggrBgEFBQcBAQQnMCUwIwYIKwYBBQUHMAGGF2h0dHA6
Ly9vY3NwLmVudHJ1c3QubmV0MDAGA1UdHwQpMCcwJaAjoCGGH2h0dHA6Ly9jcmwu
ZW50cnVzdC5uZXQvZzJjYS5jcmwwHQYDVR0OBBYEFIKicHTdvFM/z3vU981/p2DG
Cky/MB8GA1UdIwQYMBaAFGpyJnrQHu995ztpUdRsjZ+QEmarMA0GCSqGSIb3DQEB
CwUAA4IBAQABGUAYTLooPBQ3tGo723EtMXSENfDq9VTIRtcpFXOeX+Ud6Dc7W70n
/UeoFnFuNwCU8itlX4dhC6BEUhtfvrZNMkqsFJSTbCM288cEL+kJETObWkxFi/9E
lZ2HHpaO3GjILlYfled/IoRl+1FNdsuCbAP2re+5kqO9o9GEADps6xQjdQBShe2p
gPtJLgy/ctGI0/w7ychJun5DVxgNcwHE2SopMw50ATIFcrCMVh4vacT9x6Aqn07I
V4pf1qLDNe/mHIBMNQOucuqMf1q7PMIkCM4LHGexG6ApbwBQYwJp6GiaZR0dwYvi
fuc46qX1D2lnGyC1EktHnL3lazAZFuFC
-----END CERTIFICATE-----
`

// response is the normalized outcome of a completed HTTP exchange. Transport
// failures never produce one; they surface as *ConnError instead.
type response struct {
	statusCode int
	body       []byte
}

func (r *response) ok() bool {
	return r.statusCode >= 200 && r.statusCode < 300
}

// comms performs exactly one HTTPS POST per call over a pinned TLS
// connection. It applies no retry policy; that belongs to the caller.
type comms struct {
	httpClient  *http.Client
	logger      *slog.Logger
	readTimeout time.Duration
}

func newComms(httpClient *http.Client, logger *slog.Logger) *comms {
	if httpClient == nil {
		httpClient = newPinnedHTTPClient()
	}
	return &comms{httpClient: httpClient, logger: logger, readTimeout: readTimeout}
}

// newPinnedHTTPClient builds a client whose trust store holds only the
// pinned intermediate CA and which speaks TLS 1.2 exactly.
func newPinnedHTTPClient() *http.Client {
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM([]byte(intermediateCA)) {
		panic("simplify: embedded intermediate CA does not parse")
	}

	return &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				RootCAs:    pool,
				MinVersion: tls.VersionTLS12,
				MaxVersion: tls.VersionTLS12,
			},
			DialContext: (&net.Dialer{
				Timeout: connectTimeout,
			}).DialContext,
			ResponseHeaderTimeout: readTimeout,
		},
	}
}

// post writes body to url and reads the full response, success or error,
// before returning. Timeouts are reported as a distinguishable failure kind.
func (c *comms) post(ctx context.Context, url string, body []byte) (*response, error) {
	// ResponseHeaderTimeout stops counting once headers arrive; this deadline
	// bounds the body read as well, so a stalled body is a timeout, not a hang.
	ctx, cancel := context.WithTimeout(ctx, c.readTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent())

	c.logger.Debug("tokenization request", slog.String("url", url))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnError{Timeout: isTimeout(err), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnError{Timeout: isTimeout(err), Err: err}
	}

	c.logger.Debug("tokenization response", slog.Int("status", resp.StatusCode))

	return &response{statusCode: resp.StatusCode, body: data}, nil
}

func isTimeout(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

func userAgent() string {
	return fmt.Sprintf("simplify-go/%s (%s; %s)", Version, runtime.GOOS, runtime.GOARCH)
}
