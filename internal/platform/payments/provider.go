package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/unlockhq/unlock-backend/internal/core/ports/services"
	"github.com/unlockhq/unlock-backend/internal/dto"
	"github.com/unlockhq/unlock-backend/internal/platform/config"
)

const defaultBaseURL = "https://api.razorpay.com/v1"

// Provider registers checkout orders with the payment gateway and verifies
// its post-checkout signatures. Amounts cross the wire in the smallest
// currency unit (paise for INR), per the gateway's API.
type Provider struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

var _ services.PaymentProvider = (*Provider)(nil)

// NewProvider builds a gateway client from the configured API key pair.
func NewProvider(cfg *config.Config) *Provider {
	return &Provider{
		keyID:      cfg.PaymentKeyID,
		keySecret:  cfg.PaymentKeySecret,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CreateOrder registers an order with the gateway and returns its reference.
func (p *Provider) CreateOrder(ctx context.Context, amount decimal.Decimal, currency string, receipt string) (*services.PaymentOrder, error) {
	body, err := json.Marshal(orderRequest{
		Amount:   amount.Mul(decimal.NewFromInt(100)).IntPart(),
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(p.keyID, p.keySecret)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment gateway returned status %d creating order", resp.StatusCode)
	}

	var created orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}

	return &services.PaymentOrder{
		OrderID:  created.ID,
		Amount:   decimal.NewFromInt(created.Amount).Div(decimal.NewFromInt(100)),
		Currency: created.Currency,
	}, nil
}

// VerifyPayment checks the gateway's checkout signature: HMAC-SHA256 of
// "<orderID>|<paymentID>" under the key secret.
func (p *Provider) VerifyPayment(ctx context.Context, confirmation dto.PaymentConfirmation) error {
	mac := hmac.New(sha256.New, []byte(p.keySecret))
	fmt.Fprintf(mac, "%s|%s", confirmation.OrderID, confirmation.PaymentID)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(confirmation.Signature)) {
		return fmt.Errorf("payment signature mismatch for order %s", confirmation.OrderID)
	}
	return nil
}
