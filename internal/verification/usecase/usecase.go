package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/twistapp/otpgate/internal/pkg/config"
	"github.com/twistapp/otpgate/internal/pkg/goerror"
	"github.com/twistapp/otpgate/internal/pkg/instrument"
	"github.com/twistapp/otpgate/internal/pkg/phone"
	"github.com/twistapp/otpgate/internal/pkg/validator"
	"github.com/twistapp/otpgate/internal/verification/entity"
	"go.opentelemetry.io/otel/trace"
)

type otpProvider interface {
	Send(ctx context.Context, phone string) (entity.VerificationStatus, error)
	Check(ctx context.Context, phone, code string) (entity.VerificationStatus, error)
}

type statusClient interface {
	LookupFragment(ctx context.Context, phoneKey string) (string, error)
}

type Usecase struct {
	provider   otpProvider
	status     statusClient
	normalizer *phone.Normalizer
	validator  validator.Validator
	cfg        config.Config
	ins        instrument.Instrumentation
}

type Dependency struct {
	Provider   otpProvider
	Status     statusClient
	Normalizer *phone.Normalizer
	Validator  validator.Validator
	Config     config.Config
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		provider:   dep.Provider,
		status:     dep.Status,
		normalizer: dep.Normalizer,
		validator:  dep.Validator,
		cfg:        dep.Config,
		ins:        dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("verification.usecase").Start(ctx, name)
}

// normalizePhone canonicalizes raw input into E.164 before any network call
// so malformed input never generates billable provider traffic.
func (s *Usecase) normalizePhone(ctx context.Context, raw string) (string, error) {
	canonical, err := s.normalizer.Normalize(raw)
	if err != nil {
		slog.WarnContext(ctx, "phone number could not be canonicalized")
		return "", goerror.NewInvalid("invalid phone number format", goerror.CodeInvalidPhone)
	}

	return canonical, nil
}

// classifyProviderErr maps a provider client failure into a coded error.
func classifyProviderErr(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, goerror.ErrProviderRejected):
		slog.WarnContext(ctx, "otp provider rejected the request", "error", err)
		return goerror.NewUpstream(err, goerror.CodeProviderRejected)

	case errors.Is(err, goerror.ErrProviderUnavailable):
		slog.ErrorContext(ctx, "otp provider unavailable", "error", err)
		return goerror.NewUpstream(err, goerror.CodeProviderUnavailable)

	default:
		slog.ErrorContext(ctx, "otp provider call failed", "error", err)
		return goerror.NewServer(err)
	}
}
