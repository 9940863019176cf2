package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/twistapp/otpgate/internal/pkg/goerror"
	"github.com/twistapp/otpgate/internal/pkg/phone"
	"github.com/twistapp/otpgate/internal/pkg/validator"
	"github.com/twistapp/otpgate/internal/verification/entity"
)

type VerifyOTPInput struct {
	Phone string `validate:"required"`
	Code  string `validate:"required,otpcode"`
}

type VerifyOTPOutput struct {
	Phone    string
	Fragment string
}

// VerifyOTP checks a submitted passcode with the provider and, only when the
// check is approved, correlates the phone with its status record.
//
// The check outcome is authoritative: a correlation failure after an approved
// check never downgrades the result, the fragment is simply left empty. A
// non-approved check never triggers a correlation lookup.
func (s *Usecase) VerifyOTP(ctx context.Context, in VerifyOTPInput) (*VerifyOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyOTP")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		var verr validator.V10ValidationError
		if errors.As(err, &verr) && !verr.Has("phone") && verr.Has("code") {
			return nil, goerror.NewInvalid("verification code must be exactly 6 digits", goerror.CodeInvalidCodeFormat)
		}
		return nil, goerror.NewInvalid("invalid phone number format", goerror.CodeInvalidPhone)
	}

	canonical, err := s.normalizePhone(ctx, in.Phone)
	if err != nil {
		return nil, err
	}

	status, err := s.provider.Check(ctx, canonical, in.Code)
	if err != nil {
		return nil, classifyProviderErr(ctx, err)
	}

	if status != entity.VerificationStatusApproved {
		slog.InfoContext(ctx, "verification check not approved", "status", status.String())
		return nil, goerror.NewBusiness("verification code denied or expired", goerror.CodeDeniedOrExpired)
	}

	out := &VerifyOTPOutput{Phone: canonical}

	fragment, err := s.status.LookupFragment(ctx, phone.Last10(canonical))
	if err != nil {
		slog.WarnContext(ctx, "correlation lookup failed after approved check", "error", err)
		return out, nil
	}
	out.Fragment = fragment

	return out, nil
}
