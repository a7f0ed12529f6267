package sandboxtest

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	simplify "github.com/simplifycom/simplify-go"
	"github.com/simplifycom/simplify-go/internal/luhn"
)

var keyShape = regexp.MustCompile(`^(?:lv|sb)pb_.+$`)

// apiError mirrors the service's structured rejection body.
type apiError struct {
	status      int
	code        string
	message     string
	reference   string
	fieldErrors []simplify.FieldError
}

// Service implements the tokenization semantics the real sandbox applies:
// authenticate the key, validate the submitted card, issue a single-use
// token echoing the safe card fields.
type Service struct {
	repo *Repository
	cfg  *Config
}

func NewService(repo *Repository, cfg *Config) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Service{repo: repo, cfg: cfg}
}

func (s *Service) Tokenize(req tokenRequest) (*simplify.CardToken, *apiError) {
	if !keyShape.MatchString(req.Key) {
		return nil, &apiError{status: 401, code: "system.unauthorized", message: "Invalid api key"}
	}
	if req.Card == nil {
		return nil, &apiError{status: 400, code: "validation", message: "Card is required"}
	}

	card := *req.Card
	if card.EntryMode == simplify.EntryModeWalletInApp {
		return s.issueWalletToken(card)
	}

	number := luhn.Normalize(card.Number)
	brand := simplify.DetectBrand(number)

	var fieldErrors []simplify.FieldError
	if !simplify.ValidateNumber(number, brand) {
		fieldErrors = append(fieldErrors, simplify.FieldError{
			Field: "card.number", Code: "invalid", Message: "Card number is not valid",
		})
	}
	if !simplify.ValidateExpiry(card.ExpMonth, card.ExpYear) {
		fieldErrors = append(fieldErrors, simplify.FieldError{
			Field: "card.expYear", Code: "invalid", Message: "Card expiration date is in the past",
		})
	}
	if !simplify.ValidateCvc(card.Cvc, brand) {
		fieldErrors = append(fieldErrors, simplify.FieldError{
			Field: "card.cvc", Code: "invalid", Message: "CVC length does not match the card type",
		})
	}
	if len(fieldErrors) > 0 {
		return nil, &apiError{
			status: 400, code: "validation", message: "Card is not valid",
			reference:   uuid.New().String(),
			fieldErrors: fieldErrors,
		}
	}

	if code, declined := s.cfg.DeclineNumbers[number]; declined {
		return nil, &apiError{
			status: 402, code: code, message: "Card declined",
			reference: uuid.New().String(),
		}
	}

	echo := &simplify.Card{
		ID:             uuid.New().String(),
		Last4:          luhn.LastN(number, 4),
		ExpMonth:       card.ExpMonth,
		ExpYear:        card.ExpYear,
		AddressLine1:   card.AddressLine1,
		AddressLine2:   card.AddressLine2,
		AddressCity:    card.AddressCity,
		AddressState:   card.AddressState,
		AddressZip:     card.AddressZip,
		AddressCountry: card.AddressCountry,
		Customer:       card.Customer,
		Type:           &brand,
		DateCreated:    time.Now().UnixMilli(),
	}
	if req.Secure3DRequestData != nil && s.cfg.Enroll3DS {
		echo.Secure3DData = &simplify.Secure3DData{
			ID:           uuid.New().String(),
			Enrolled:     true,
			AcsURL:       "https://acs.sandbox.test/challenge",
			PaReq:        "eJxVUtt...demo",
			MerchantData: uuid.New().String(),
			TermURL:      "https://sandbox.test/3ds/term",
		}
	}

	return s.issue(echo)
}

func (s *Service) issueWalletToken(card simplify.Card) (*simplify.CardToken, *apiError) {
	if len(card.WalletData) == 0 {
		return nil, &apiError{
			status: 400, code: "validation", message: "Wallet payload is required",
			fieldErrors: []simplify.FieldError{{
				Field: "card.androidPayData", Code: "missing", Message: "Wallet payload is required",
			}},
		}
	}
	// The real service decrypts the wallet payload; the mock fabricates a
	// plausible Visa echo.
	brand := simplify.BrandVisa
	echo := &simplify.Card{
		ID:          uuid.New().String(),
		Last4:       "4242",
		Type:        &brand,
		Customer:    card.Customer,
		DateCreated: time.Now().UnixMilli(),
	}
	return s.issue(echo)
}

func (s *Service) issue(echo *simplify.Card) (*simplify.CardToken, *apiError) {
	token := &simplify.CardToken{
		ID:   s.cfg.TokenPrefix + uuid.New().String(),
		Used: false,
		Card: echo,
	}
	if err := s.repo.CreateToken(token); err != nil {
		return nil, &apiError{status: 500, code: "system", message: fmt.Sprintf("storing token: %v", err)}
	}
	return token, nil
}
