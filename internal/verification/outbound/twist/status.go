// Package twist implements the correlation client against the Status
// Service, which holds the secret codes correlated with phone numbers.
package twist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/twistapp/otpgate/internal/pkg/goerror"
	"github.com/twistapp/otpgate/internal/pkg/instrument"
	"github.com/twistapp/otpgate/internal/verification/entity"
)

// Config holds the endpoint and credential of the Status Service.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client performs fragment lookups against the Status Service.
type Client struct {
	cfg Config
	hc  *http.Client
	ins instrument.Instrumentation
}

// NewClient builds a Client with a dedicated HTTP client carrying the
// configured timeout. A timeout surfaces as a transport failure.
func NewClient(cfg Config, ins instrument.Instrumentation) *Client {
	return &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.Timeout},
		ins: ins,
	}
}

type statusResponse struct {
	Found      bool   `json:"found"`
	SecretCode string `json:"secret_code"`
}

// LookupFragment fetches the status record keyed by the trailing-10-digit
// phone form and returns the disclosable fragment of its secret code. The
// full secret never leaves this function.
//
// A missing record is goerror.ErrNotFound, a secret too short to fragment is
// goerror.ErrSecretMalformed, and any network failure or unexpected response
// is goerror.ErrTransport.
func (c *Client) LookupFragment(ctx context.Context, phoneKey string) (string, error) {
	ctx, span := c.ins.Tracer("verification.outbound.twist").Start(ctx, "twist.LookupFragment")
	defer span.End()

	endpoint := c.cfg.BaseURL + "/api/status?phone=" + url.QueryEscape(phoneKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", goerror.ErrTransport, err)
	}
	req.Header.Set("X-API-Key", c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", goerror.ErrTransport, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: no status record for phone", goerror.ErrNotFound)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("%w: status service returned %d", goerror.ErrTransport, res.StatusCode)
	}

	var body statusResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: malformed status response: %v", goerror.ErrTransport, err)
	}

	if !body.Found {
		return "", fmt.Errorf("%w: no status record for phone", goerror.ErrNotFound)
	}

	fragment, ok := entity.MiddleFragment(body.SecretCode)
	if !ok {
		return "", fmt.Errorf("%w: secret code shorter than minimum length", goerror.ErrSecretMalformed)
	}

	return fragment, nil
}
