package inbound

// SendOTPRequest is the body of POST /send-otp.
type SendOTPRequest struct {
	Phone string `json:"phone"`
}

// SendOTPResponse echoes the canonical phone and the provider status.
type SendOTPResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Phone   string `json:"phone"`
}

// VerifyOTPRequest is the body of POST /verify-otp.
type VerifyOTPRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// VerifyOTPResponse reports an approved check. Fragment is absent when the
// correlation lookup did not produce one.
type VerifyOTPResponse struct {
	Success  bool   `json:"success"`
	Phone    string `json:"phone"`
	Fragment string `json:"fragment,omitempty"`
}

// FragmentResponse is the body of a successful GET /twist-middle4.
type FragmentResponse struct {
	Success  bool   `json:"success"`
	Fragment string `json:"fragment"`
}
