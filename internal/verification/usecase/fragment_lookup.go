package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/twistapp/otpgate/internal/pkg/goerror"
	"github.com/twistapp/otpgate/internal/pkg/phone"
)

type FragmentLookupInput struct {
	Phone string `validate:"required"`
}

type FragmentLookupOutput struct {
	Fragment string
}

// FragmentLookup resolves the disclosable fragment of the status record for
// a phone number. Unlike the verify path, correlation failures here surface
// as their own typed errors.
func (s *Usecase) FragmentLookup(ctx context.Context, in FragmentLookupInput) (*FragmentLookupOutput, error) {
	ctx, span := s.startSpan(ctx, "FragmentLookup")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalid("phone number is required", goerror.CodeInvalidPhone)
	}

	canonical, err := s.normalizePhone(ctx, in.Phone)
	if err != nil {
		return nil, err
	}

	fragment, err := s.status.LookupFragment(ctx, phone.Last10(canonical))
	switch {
	case err == nil:

	case errors.Is(err, goerror.ErrNotFound):
		slog.InfoContext(ctx, "no status record found for phone")
		return nil, goerror.NewBusiness("no status record found for phone", goerror.CodeCorrelationNotFound)

	case errors.Is(err, goerror.ErrSecretMalformed):
		slog.ErrorContext(ctx, "status record secret is malformed", "error", err)
		return nil, goerror.NewUpstream(err, goerror.CodeCorrelationMalformed)

	case errors.Is(err, goerror.ErrTransport):
		slog.ErrorContext(ctx, "status service unreachable", "error", err)
		return nil, goerror.NewUpstream(err, goerror.CodeCorrelationTransport)

	default:
		slog.ErrorContext(ctx, "correlation lookup failed", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &FragmentLookupOutput{Fragment: fragment}, nil
}
