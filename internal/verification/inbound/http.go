package inbound

import (
	"context"

	"github.com/twistapp/otpgate/internal/pkg/router"
	"github.com/twistapp/otpgate/internal/verification/usecase"
)

type uc interface {
	SendOTP(ctx context.Context, in usecase.SendOTPInput) (*usecase.SendOTPOutput, error)
	VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) (*usecase.VerifyOTPOutput, error)
	FragmentLookup(ctx context.Context, in usecase.FragmentLookupInput) (*usecase.FragmentLookupOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/send-otp", end.SendOTP)
	r.POST("/verify-otp", end.VerifyOTP)
	r.GET("/twist-middle4", end.TwistMiddle4)
}
