package usecase

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twistapp/otpgate/internal/pkg/goerror"
	"github.com/twistapp/otpgate/internal/pkg/instrument"
	"github.com/twistapp/otpgate/internal/pkg/phone"
	"github.com/twistapp/otpgate/internal/pkg/validator"
	"github.com/twistapp/otpgate/internal/verification/entity"
)

type stubProvider struct {
	sendStatus  entity.VerificationStatus
	sendErr     error
	checkStatus entity.VerificationStatus
	checkErr    error
	sendCalls   atomic.Int32
	checkCalls  atomic.Int32
}

func (s *stubProvider) Send(_ context.Context, _ string) (entity.VerificationStatus, error) {
	s.sendCalls.Add(1)
	return s.sendStatus, s.sendErr
}

func (s *stubProvider) Check(_ context.Context, _, _ string) (entity.VerificationStatus, error) {
	s.checkCalls.Add(1)
	return s.checkStatus, s.checkErr
}

type stubStatus struct {
	fragment string
	err      error
	calls    atomic.Int32
}

func (s *stubStatus) LookupFragment(_ context.Context, _ string) (string, error) {
	s.calls.Add(1)
	return s.fragment, s.err
}

func newTestUsecase(t *testing.T, provider otpProvider, status statusClient) *Usecase {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	return New(Dependency{
		Provider:   provider,
		Status:     status,
		Normalizer: phone.NewNormalizer("1"),
		Validator:  v,
		Instrument: instrument.NewNoop(),
	})
}

func requireCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, code, gerr.Code())
}
