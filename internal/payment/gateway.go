package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Intent is the processor-side payment intent a client completes with the
// returned secret.
type Intent struct {
	ID           string
	ClientSecret string
}

// Gateway creates payment intents with the external processor. Injected so
// the role-request flow is testable without the processor.
type Gateway interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (Intent, error)
}

// HTTPGateway talks to a Stripe-compatible payment API.
type HTTPGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPGateway(baseURL, apiKey string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *HTTPGateway) CreateIntent(ctx context.Context, amountCents int64, currency string) (Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return Intent{}, fmt.Errorf("build intent request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return Intent{}, fmt.Errorf("create payment intent: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Intent{}, fmt.Errorf("payment processor returned status %d", resp.StatusCode)
	}

	var body struct {
		ID           string `json:"id"`
		ClientSecret string `json:"client_secret"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Intent{}, fmt.Errorf("decode intent response: %w", err)
	}
	return Intent{ID: body.ID, ClientSecret: body.ClientSecret}, nil
}

// FakeGateway issues local intents without touching any processor. Used in
// tests and when no API key is configured.
type FakeGateway struct{}

func (FakeGateway) CreateIntent(_ context.Context, _ int64, _ string) (Intent, error) {
	id := "pi_" + uuid.NewString()
	return Intent{ID: id, ClientSecret: id + "_secret_" + uuid.NewString()}, nil
}
