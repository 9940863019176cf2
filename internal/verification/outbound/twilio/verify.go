// Package twilio implements the OTP provider client against the Twilio
// Verify v2 REST API.
package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/twistapp/otpgate/internal/pkg/goerror"
	"github.com/twistapp/otpgate/internal/pkg/instrument"
	"github.com/twistapp/otpgate/internal/verification/entity"
	"go.opentelemetry.io/otel/trace"
)

// maxErrorBodyBytes caps how much of a provider error body is kept for logs.
const maxErrorBodyBytes = 2 * 1024

// Config holds the credentials and endpoint of a Verify service instance.
type Config struct {
	BaseURL    string
	AccountSID string
	AuthToken  string
	ServiceSID string
	Timeout    time.Duration
}

// Verify issues send and check calls against a single Verify service.
type Verify struct {
	cfg Config
	hc  *http.Client
	ins instrument.Instrumentation
}

// NewVerify builds a Verify client with a dedicated HTTP client carrying the
// configured timeout. Every outbound call inherits it; a timeout surfaces as
// a provider-unavailable failure.
func NewVerify(cfg Config, ins instrument.Instrumentation) *Verify {
	return &Verify{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.Timeout},
		ins: ins,
	}
}

type verificationResponse struct {
	Status string `json:"status"`
}

// Send asks the provider to deliver a passcode over SMS. phone must already
// be canonical E.164; any 2xx acknowledgement is reported as Sent.
func (v *Verify) Send(ctx context.Context, phone string) (entity.VerificationStatus, error) {
	ctx, span := v.startSpan(ctx, "twilio.Send")
	defer span.End()

	form := url.Values{}
	form.Set("To", phone)
	form.Set("Channel", entity.ChannelSMS)

	res, err := v.post(ctx, "/Verifications", form)
	if err != nil {
		return entity.VerificationStatusUnknown, err
	}
	defer res.Body.Close()

	if err := classify(res); err != nil {
		return entity.VerificationStatusUnknown, err
	}

	return entity.VerificationStatusSent, nil
}

// Check submits a passcode for verification and maps the provider's reported
// status. A 404 means the verification was already consumed or timed out,
// which the provider treats as gone; it is reported as Expired, not an error.
func (v *Verify) Check(ctx context.Context, phone, code string) (entity.VerificationStatus, error) {
	ctx, span := v.startSpan(ctx, "twilio.Check")
	defer span.End()

	form := url.Values{}
	form.Set("To", phone)
	form.Set("Code", code)

	res, err := v.post(ctx, "/VerificationChecks", form)
	if err != nil {
		return entity.VerificationStatusUnknown, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return entity.VerificationStatusExpired, nil
	}

	if err := classify(res); err != nil {
		return entity.VerificationStatusUnknown, err
	}

	var body verificationResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return entity.VerificationStatusUnknown,
			fmt.Errorf("%w: malformed check response: %v", goerror.ErrProviderUnavailable, err)
	}

	return entity.VerificationStatusFromString(body.Status), nil
}

func (v *Verify) post(ctx context.Context, path string, form url.Values) (*http.Response, error) {
	endpoint := v.cfg.BaseURL + "/Services/" + v.cfg.ServiceSID + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", goerror.ErrProviderUnavailable, err)
	}
	req.SetBasicAuth(v.cfg.AccountSID, v.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	res, err := v.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", goerror.ErrProviderUnavailable, err)
	}

	return res, nil
}

// classify maps non-2xx provider responses: 5xx is transient, 4xx is a
// non-retryable refusal (e.g. malformed destination).
func classify(res *http.Response) error {
	if res.StatusCode >= 200 && res.StatusCode <= 299 {
		return nil
	}

	snippet, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBodyBytes))
	if res.StatusCode >= 500 {
		return fmt.Errorf("%w: provider returned %d: %s", goerror.ErrProviderUnavailable, res.StatusCode, snippet)
	}

	return fmt.Errorf("%w: provider returned %d: %s", goerror.ErrProviderRejected, res.StatusCode, snippet)
}

func (v *Verify) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return v.ins.Tracer("verification.outbound.twilio").Start(ctx, name)
}
