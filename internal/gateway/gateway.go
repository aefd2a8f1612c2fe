// Package gateway wraps the payment provider's HTTP API behind a small
// interface so the checkout flow can be tested against a fake.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nikhilmekle/mern-ecommerce-app/config"
)

// SaleResult is the outcome of a charge attempt. Success reflects whether
// the gateway settled the transaction, not whether the HTTP call worked.
type SaleResult struct {
	TransactionID string  `json:"transaction_id"`
	Success       bool    `json:"success"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	Message       string  `json:"message,omitempty"`
}

// Gateway is the payment provider client used by checkout.
type Gateway interface {
	// GenerateClientToken returns a short-lived token the browser SDK
	// uses to tokenize card details into a payment nonce.
	GenerateClientToken(ctx context.Context) (string, error)

	// SubmitSale charges amount against the given payment nonce with
	// submitForSettlement semantics: a declined transaction returns a
	// SaleResult with Success=false and a nil error.
	SubmitSale(ctx context.Context, amount float64, nonce string) (*SaleResult, error)
}

// HTTPGateway talks to the provider's REST API using merchant credentials
// from configuration.
type HTTPGateway struct {
	baseURL    string
	merchantID string
	publicKey  string
	privateKey string
	client     *http.Client
}

// New builds an HTTPGateway from config (GATEWAY_* keys, sandbox by default).
func New() *HTTPGateway {
	return &HTTPGateway{
		baseURL:    config.GatewayBaseURL(),
		merchantID: config.GatewayMerchantID(),
		publicKey:  config.GatewayPublicKey(),
		privateKey: config.GatewayPrivateKey(),
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

type clientTokenResponse struct {
	ClientToken string `json:"clientToken"`
}

func (g *HTTPGateway) GenerateClientToken(ctx context.Context) (string, error) {
	body, err := json.Marshal(map[string]string{"merchantId": g.merchantID})
	if err != nil {
		return "", fmt.Errorf("gateway: marshal token request: %w", err)
	}

	var out clientTokenResponse
	if err := g.do(ctx, http.MethodPost, "/client_token", body, &out); err != nil {
		return "", err
	}
	if out.ClientToken == "" {
		return "", fmt.Errorf("gateway: empty client token in response")
	}
	return out.ClientToken, nil
}

type saleRequest struct {
	Amount             string `json:"amount"`
	PaymentMethodNonce string `json:"paymentMethodNonce"`
	Options            struct {
		SubmitForSettlement bool `json:"submitForSettlement"`
	} `json:"options"`
}

type saleResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Transaction struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Amount string `json:"amount"`
	} `json:"transaction"`
}

func (g *HTTPGateway) SubmitSale(ctx context.Context, amount float64, nonce string) (*SaleResult, error) {
	req := saleRequest{
		// The provider expects a decimal string, not a float.
		Amount:             fmt.Sprintf("%.2f", amount),
		PaymentMethodNonce: nonce,
	}
	req.Options.SubmitForSettlement = true

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("gateway: marshal sale request: %w", err)
	}

	var out saleResponse
	if err := g.do(ctx, http.MethodPost, "/transactions", body, &out); err != nil {
		return nil, err
	}

	return &SaleResult{
		TransactionID: out.Transaction.ID,
		Success:       out.Success,
		Status:        out.Transaction.Status,
		Amount:        amount,
		Message:       out.Message,
	}, nil
}

func (g *HTTPGateway) do(ctx context.Context, method, path string, body []byte, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("gateway: build request: %w", err)
	}
	req.SetBasicAuth(g.publicKey, g.privateKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("gateway: %s %s: provider error %d", method, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("gateway: decode response: %w", err)
	}
	return nil
}
