package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const stripeBaseURL = "https://api.stripe.com"

// StripeConfig carries the credentials for the Stripe Checkout client.
type StripeConfig struct {
	APIKey  string
	PriceID string
	BaseURL string
}

// StripeProvider drives Stripe Checkout over its form-encoded REST API.
type StripeProvider struct {
	cfg    StripeConfig
	client *http.Client
}

func NewStripe(cfg StripeConfig) *StripeProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = stripeBaseURL
	}
	return &StripeProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: 12 * time.Second},
	}
}

type stripeSession struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"`
	PaymentIntent string `json:"payment_intent"`
	Metadata      struct {
		UserID string `json:"userid"`
	} `json:"metadata"`
}

type stripeErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, params CheckoutParams) (Session, error) {
	if strings.TrimSpace(p.cfg.PriceID) == "" {
		return Session{}, ErrInvalidConfig
	}
	values := url.Values{}
	values.Set("mode", "payment")
	values.Set("payment_method_types[]", "card")
	values.Set("line_items[0][price]", p.cfg.PriceID)
	values.Set("line_items[0][quantity]", "1")
	values.Set("metadata[userid]", params.UserID)
	values.Set("success_url", params.SuccessURL)
	values.Set("cancel_url", params.CancelURL)

	return p.doRequest(ctx, http.MethodPost, "/v1/checkout/sessions", values)
}

func (p *StripeProvider) GetSession(ctx context.Context, sessionID string) (Session, error) {
	return p.doRequest(ctx, http.MethodGet, "/v1/checkout/sessions/"+url.PathEscape(sessionID), nil)
}

func (p *StripeProvider) doRequest(ctx context.Context, method, path string, values url.Values) (Session, error) {
	if strings.TrimSpace(p.cfg.APIKey) == "" {
		return Session{}, ErrInvalidConfig
	}
	body := ""
	if values != nil {
		body = values.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, p.cfg.BaseURL+path, strings.NewReader(body))
	if err != nil {
		return Session{}, err
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	if values != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Session{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Session{}, ErrSessionNotFound
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var stripeErr stripeErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&stripeErr); err != nil {
			return Session{}, errors.New("payment: stripe request failed")
		}
		message := strings.TrimSpace(stripeErr.Error.Message)
		if message == "" {
			message = "payment: stripe request failed"
		}
		return Session{}, errors.New(message)
	}

	var decoded stripeSession
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Session{}, err
	}
	if decoded.ID == "" {
		return Session{}, errors.New("payment: stripe response invalid")
	}
	return Session{
		ID:            decoded.ID,
		URL:           decoded.URL,
		PaymentStatus: decoded.PaymentStatus,
		PaymentIntent: decoded.PaymentIntent,
		UserID:        decoded.Metadata.UserID,
	}, nil
}
