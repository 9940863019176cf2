package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twistapp/otpgate/internal/pkg/goerror"
	"github.com/twistapp/otpgate/internal/verification/entity"
)

func TestVerifyOTPApprovedWithFragment(t *testing.T) {
	provider := &stubProvider{checkStatus: entity.VerificationStatusApproved}
	status := &stubStatus{fragment: "5678"}
	uc := newTestUsecase(t, provider, status)

	out, err := uc.VerifyOTP(context.Background(), VerifyOTPInput{Phone: "5551234567", Code: "123456"})
	require.NoError(t, err)
	require.Equal(t, "+15551234567", out.Phone)
	require.Equal(t, "5678", out.Fragment)
	require.EqualValues(t, 1, provider.checkCalls.Load())
	require.EqualValues(t, 1, status.calls.Load())
}

func TestVerifyOTPInvalidCodeFormat(t *testing.T) {
	provider := &stubProvider{}
	uc := newTestUsecase(t, provider, &stubStatus{})

	for _, code := range []string{"", "12345", "1234567", "12345a", "abcdef"} {
		_, err := uc.VerifyOTP(context.Background(), VerifyOTPInput{Phone: "5551234567", Code: code})
		requireCode(t, err, goerror.CodeInvalidCodeFormat)
	}

	require.EqualValues(t, 0, provider.checkCalls.Load())
}

func TestVerifyOTPInvalidPhone(t *testing.T) {
	provider := &stubProvider{}
	uc := newTestUsecase(t, provider, &stubStatus{})

	_, err := uc.VerifyOTP(context.Background(), VerifyOTPInput{Phone: "12345", Code: "123456"})
	requireCode(t, err, goerror.CodeInvalidPhone)

	_, err = uc.VerifyOTP(context.Background(), VerifyOTPInput{Code: "123456"})
	requireCode(t, err, goerror.CodeInvalidPhone)

	require.EqualValues(t, 0, provider.checkCalls.Load())
}

func TestVerifyOTPNotApprovedSkipsCorrelation(t *testing.T) {
	statuses := []entity.VerificationStatus{
		entity.VerificationStatusPending,
		entity.VerificationStatusDenied,
		entity.VerificationStatusExpired,
		entity.VerificationStatusCanceled,
	}

	for _, st := range statuses {
		t.Run(st.String(), func(t *testing.T) {
			provider := &stubProvider{checkStatus: st}
			status := &stubStatus{fragment: "5678"}
			uc := newTestUsecase(t, provider, status)

			_, err := uc.VerifyOTP(context.Background(), VerifyOTPInput{Phone: "5551234567", Code: "123456"})
			requireCode(t, err, goerror.CodeDeniedOrExpired)
			require.EqualValues(t, 0, status.calls.Load())
		})
	}
}

func TestVerifyOTPApprovedSurvivesCorrelationFailure(t *testing.T) {
	failures := []error{goerror.ErrNotFound, goerror.ErrSecretMalformed, goerror.ErrTransport}

	for _, failure := range failures {
		provider := &stubProvider{checkStatus: entity.VerificationStatusApproved}
		status := &stubStatus{err: failure}
		uc := newTestUsecase(t, provider, status)

		out, err := uc.VerifyOTP(context.Background(), VerifyOTPInput{Phone: "5551234567", Code: "123456"})
		require.NoError(t, err)
		require.Equal(t, "+15551234567", out.Phone)
		require.Empty(t, out.Fragment)
	}
}

func TestVerifyOTPProviderUnavailable(t *testing.T) {
	provider := &stubProvider{checkErr: goerror.ErrProviderUnavailable}
	status := &stubStatus{}
	uc := newTestUsecase(t, provider, status)

	_, err := uc.VerifyOTP(context.Background(), VerifyOTPInput{Phone: "5551234567", Code: "123456"})
	requireCode(t, err, goerror.CodeProviderUnavailable)
	require.EqualValues(t, 0, status.calls.Load())
}

type phoneKeyedProvider struct {
	statuses map[string]entity.VerificationStatus
}

func (p *phoneKeyedProvider) Send(_ context.Context, _ string) (entity.VerificationStatus, error) {
	return entity.VerificationStatusSent, nil
}

func (p *phoneKeyedProvider) Check(_ context.Context, phone, _ string) (entity.VerificationStatus, error) {
	return p.statuses[phone], nil
}

func TestVerifyOTPConcurrentRequestsIndependent(t *testing.T) {
	provider := &phoneKeyedProvider{statuses: map[string]entity.VerificationStatus{
		"+15551234567": entity.VerificationStatusApproved,
		"+15559876543": entity.VerificationStatusDenied,
	}}
	uc := newTestUsecase(t, provider, &stubStatus{fragment: "5678"})

	var wg sync.WaitGroup
	wg.Add(2)

	var approvedOut *VerifyOTPOutput
	var approvedErr, deniedErr error

	go func() {
		defer wg.Done()
		approvedOut, approvedErr = uc.VerifyOTP(context.Background(), VerifyOTPInput{Phone: "5551234567", Code: "123456"})
	}()
	go func() {
		defer wg.Done()
		_, deniedErr = uc.VerifyOTP(context.Background(), VerifyOTPInput{Phone: "5559876543", Code: "123456"})
	}()
	wg.Wait()

	require.NoError(t, approvedErr)
	require.Equal(t, "+15551234567", approvedOut.Phone)
	require.Equal(t, "5678", approvedOut.Fragment)
	requireCode(t, deniedErr, goerror.CodeDeniedOrExpired)
}
