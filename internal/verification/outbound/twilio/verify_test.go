package twilio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twistapp/otpgate/internal/pkg/goerror"
	"github.com/twistapp/otpgate/internal/pkg/instrument"
	"github.com/twistapp/otpgate/internal/verification/entity"
)

func newTestVerify(t *testing.T, handler http.HandlerFunc) (*Verify, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	v := NewVerify(Config{
		BaseURL:    srv.URL,
		AccountSID: "AC123",
		AuthToken:  "secret",
		ServiceSID: "VA456",
		Timeout:    2 * time.Second,
	}, instrument.NewNoop())

	return v, srv
}

func TestSend(t *testing.T) {
	v, _ := newTestVerify(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/Services/VA456/Verifications", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "AC123", user)
		require.Equal(t, "secret", pass)

		require.NoError(t, r.ParseForm())
		require.Equal(t, "+15551234567", r.PostForm.Get("To"))
		require.Equal(t, "sms", r.PostForm.Get("Channel"))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"status":"pending"}`))
	})

	status, err := v.Send(context.Background(), "+15551234567")
	require.NoError(t, err)
	require.Equal(t, entity.VerificationStatusSent, status)
}

func TestSendRejected(t *testing.T) {
	v, _ := newTestVerify(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Invalid parameter: To"}`))
	})

	_, err := v.Send(context.Background(), "+15551234567")
	require.ErrorIs(t, err, goerror.ErrProviderRejected)
}

func TestSendUnavailable(t *testing.T) {
	v, _ := newTestVerify(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := v.Send(context.Background(), "+15551234567")
	require.ErrorIs(t, err, goerror.ErrProviderUnavailable)
}

func TestSendNetworkFailure(t *testing.T) {
	v, srv := newTestVerify(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := v.Send(context.Background(), "+15551234567")
	require.ErrorIs(t, err, goerror.ErrProviderUnavailable)
}

func TestCheck(t *testing.T) {
	v, _ := newTestVerify(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/Services/VA456/VerificationChecks", r.URL.Path)

		require.NoError(t, r.ParseForm())
		require.Equal(t, "+15551234567", r.PostForm.Get("To"))
		require.Equal(t, "123456", r.PostForm.Get("Code"))

		w.Write([]byte(`{"status":"approved"}`))
	})

	status, err := v.Check(context.Background(), "+15551234567", "123456")
	require.NoError(t, err)
	require.Equal(t, entity.VerificationStatusApproved, status)
}

func TestCheckDenied(t *testing.T) {
	v, _ := newTestVerify(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"pending"}`))
	})

	status, err := v.Check(context.Background(), "+15551234567", "000000")
	require.NoError(t, err)
	require.Equal(t, entity.VerificationStatusPending, status)
}

func TestCheckConsumedVerification(t *testing.T) {
	v, _ := newTestVerify(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	status, err := v.Check(context.Background(), "+15551234567", "123456")
	require.NoError(t, err)
	require.Equal(t, entity.VerificationStatusExpired, status)
}

func TestCheckMalformedResponse(t *testing.T) {
	v, _ := newTestVerify(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := v.Check(context.Background(), "+15551234567", "123456")
	require.ErrorIs(t, err, goerror.ErrProviderUnavailable)
}
