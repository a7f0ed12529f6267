package sandboxtest

// Config controls the mock tokenization service.
type Config struct {
	// HTTPAddr is the listen address for App. The default picks a free port.
	HTTPAddr string
	// TokenPrefix is prepended to generated token ids.
	TokenPrefix string
	// DeclineNumbers maps a card number to the service error code returned
	// for it with HTTP 402, letting tests script declines.
	DeclineNumbers map[string]string
	// Enroll3DS marks every card as 3-D Secure enrolled whenever the
	// request carries secure3DRequestData.
	Enroll3DS bool
}

func DefaultConfig() *Config {
	return &Config{
		HTTPAddr:    "localhost:0",
		TokenPrefix: "tok_",
		Enroll3DS:   true,
	}
}
