package inbound

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twistapp/otpgate/internal/pkg/config"
	"github.com/twistapp/otpgate/internal/pkg/goerror"
	"github.com/twistapp/otpgate/internal/pkg/instrument"
	"github.com/twistapp/otpgate/internal/pkg/router"
	"github.com/twistapp/otpgate/internal/pkg/uid"
	"github.com/twistapp/otpgate/internal/verification/entity"
	"github.com/twistapp/otpgate/internal/verification/usecase"
)

type stubUsecase struct {
	sendOut   *usecase.SendOTPOutput
	sendErr   error
	verifyOut *usecase.VerifyOTPOutput
	verifyErr error
	fragOut   *usecase.FragmentLookupOutput
	fragErr   error

	gotVerifyIn usecase.VerifyOTPInput
	gotFragIn   usecase.FragmentLookupInput
}

func (s *stubUsecase) SendOTP(_ context.Context, _ usecase.SendOTPInput) (*usecase.SendOTPOutput, error) {
	return s.sendOut, s.sendErr
}

func (s *stubUsecase) VerifyOTP(_ context.Context, in usecase.VerifyOTPInput) (*usecase.VerifyOTPOutput, error) {
	s.gotVerifyIn = in
	return s.verifyOut, s.verifyErr
}

func (s *stubUsecase) FragmentLookup(_ context.Context, in usecase.FragmentLookupInput) (*usecase.FragmentLookupOutput, error) {
	s.gotFragIn = in
	return s.fragOut, s.fragErr
}

func newTestServer(t *testing.T, u uc) *httptest.Server {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("instrument:\n  log_mask_fields: code,secret_code\n"))
	require.NoError(t, err)
	t.Cleanup(func() { cfg.Close() })

	r := router.NewRouter(router.Config{
		Config:     cfg,
		UUID:       uid.NewUUID(),
		Instrument: instrument.NewNoop(),
	})
	RegisterHTTPEndpoint(r, u)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return srv
}

func postJSON(t *testing.T, srv *httptest.Server, path, body string) (int, map[string]any) {
	t.Helper()

	res, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()

	var payload map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))

	return res.StatusCode, payload
}

func getJSON(t *testing.T, srv *httptest.Server, path string) (int, map[string]any) {
	t.Helper()

	res, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()

	var payload map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))

	return res.StatusCode, payload
}

func TestSendOTPEndpoint(t *testing.T) {
	srv := newTestServer(t, &stubUsecase{
		sendOut: &usecase.SendOTPOutput{Status: entity.VerificationStatusSent, Phone: "+15551234567"},
	})

	code, payload := postJSON(t, srv, "/send-otp", `{"phone":"5551234567"}`)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, payload["success"])
	require.Equal(t, "Sent", payload["status"])
	require.Equal(t, "+15551234567", payload["phone"])
}

func TestSendOTPEndpointInvalidPhone(t *testing.T) {
	srv := newTestServer(t, &stubUsecase{
		sendErr: goerror.NewInvalid("invalid phone number format", goerror.CodeInvalidPhone),
	})

	code, payload := postJSON(t, srv, "/send-otp", `{"phone":"123"}`)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, false, payload["success"])
	require.Equal(t, "invalid_phone", payload["error"])
}

func TestSendOTPEndpointMalformedBody(t *testing.T) {
	srv := newTestServer(t, &stubUsecase{})

	code, payload := postJSON(t, srv, "/send-otp", `{not json`)
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, false, payload["success"])
}

func TestVerifyOTPEndpointApproved(t *testing.T) {
	stub := &stubUsecase{
		verifyOut: &usecase.VerifyOTPOutput{Phone: "+15551234567", Fragment: "5678"},
	}
	srv := newTestServer(t, stub)

	code, payload := postJSON(t, srv, "/verify-otp", `{"phone":"5551234567","code":"123456"}`)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, payload["success"])
	require.Equal(t, "+15551234567", payload["phone"])
	require.Equal(t, "5678", payload["fragment"])
	require.Equal(t, "123456", stub.gotVerifyIn.Code)
}

func TestVerifyOTPEndpointApprovedWithoutFragment(t *testing.T) {
	srv := newTestServer(t, &stubUsecase{
		verifyOut: &usecase.VerifyOTPOutput{Phone: "+15551234567"},
	})

	code, payload := postJSON(t, srv, "/verify-otp", `{"phone":"5551234567","code":"123456"}`)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, payload["success"])
	require.NotContains(t, payload, "fragment")
}

func TestVerifyOTPEndpointDenied(t *testing.T) {
	srv := newTestServer(t, &stubUsecase{
		verifyErr: goerror.NewBusiness("verification code denied or expired", goerror.CodeDeniedOrExpired),
	})

	code, payload := postJSON(t, srv, "/verify-otp", `{"phone":"5551234567","code":"000000"}`)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, false, payload["success"])
	require.Equal(t, "code_denied_or_expired", payload["error"])
}

func TestTwistMiddle4Endpoint(t *testing.T) {
	stub := &stubUsecase{fragOut: &usecase.FragmentLookupOutput{Fragment: "5678"}}
	srv := newTestServer(t, stub)

	code, payload := getJSON(t, srv, "/twist-middle4?phone=%28555%29%20123-4567")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, payload["success"])
	require.Equal(t, "5678", payload["fragment"])
	require.Equal(t, "(555) 123-4567", stub.gotFragIn.Phone)
}

func TestTwistMiddle4EndpointNotFound(t *testing.T) {
	srv := newTestServer(t, &stubUsecase{
		fragErr: goerror.NewBusiness("no status record found for phone", goerror.CodeCorrelationNotFound),
	})

	code, payload := getJSON(t, srv, "/twist-middle4?phone=5551234567")
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, "correlation_not_found", payload["error"])
}

func TestTwistMiddle4EndpointTransportError(t *testing.T) {
	srv := newTestServer(t, &stubUsecase{
		fragErr: goerror.NewUpstream(goerror.ErrTransport, goerror.CodeCorrelationTransport),
	})

	code, payload := getJSON(t, srv, "/twist-middle4?phone=5551234567")
	require.Equal(t, http.StatusBadGateway, code)
	require.Equal(t, "correlation_transport_error", payload["error"])
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, &stubUsecase{})

	code, payload := getJSON(t, srv, "/healthz")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, payload["ok"])
}
