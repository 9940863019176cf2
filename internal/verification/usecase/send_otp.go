package usecase

import (
	"context"

	"github.com/twistapp/otpgate/internal/pkg/goerror"
	"github.com/twistapp/otpgate/internal/verification/entity"
)

type SendOTPInput struct {
	Phone string `validate:"required"`
}

type SendOTPOutput struct {
	Status entity.VerificationStatus
	Phone  string
}

func (s *Usecase) SendOTP(ctx context.Context, in SendOTPInput) (*SendOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "SendOTP")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalid("phone number is required", goerror.CodeInvalidPhone)
	}

	canonical, err := s.normalizePhone(ctx, in.Phone)
	if err != nil {
		return nil, err
	}

	status, err := s.provider.Send(ctx, canonical)
	if err != nil {
		return nil, classifyProviderErr(ctx, err)
	}

	return &SendOTPOutput{
		Status: status,
		Phone:  canonical,
	}, nil
}
