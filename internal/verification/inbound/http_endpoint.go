package inbound

import (
	"github.com/twistapp/otpgate/internal/pkg/router"
	"github.com/twistapp/otpgate/internal/verification/usecase"
)

// HTTPEndpoint exposes HTTP handlers for the verification workflows.
type HTTPEndpoint struct {
	uc uc
}

// SendOTP asks the provider to deliver a passcode to the given phone.
func (h *HTTPEndpoint) SendOTP(r *router.Request) (any, error) {
	var req SendOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SendOTP(r.Context(), usecase.SendOTPInput{
		Phone: req.Phone,
	})
	if err != nil {
		return nil, err
	}

	return SendOTPResponse{
		Success: true,
		Status:  resp.Status.String(),
		Phone:   resp.Phone,
	}, nil
}

// VerifyOTP checks a submitted passcode and, when approved, attaches the
// correlated fragment.
func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyOTP(r.Context(), usecase.VerifyOTPInput{
		Phone: req.Phone,
		Code:  req.Code,
	})
	if err != nil {
		return nil, err
	}

	return VerifyOTPResponse{
		Success:  true,
		Phone:    resp.Phone,
		Fragment: resp.Fragment,
	}, nil
}

// TwistMiddle4 resolves the disclosable fragment for a phone number.
func (h *HTTPEndpoint) TwistMiddle4(r *router.Request) (any, error) {
	resp, err := h.uc.FragmentLookup(r.Context(), usecase.FragmentLookupInput{
		Phone: r.GetQuery("phone"),
	})
	if err != nil {
		return nil, err
	}

	return FragmentResponse{
		Success:  true,
		Fragment: resp.Fragment,
	}, nil
}
