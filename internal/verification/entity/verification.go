// Package entity holds the domain values shared by the verification module.
package entity

// ChannelSMS is the delivery channel used for every outbound passcode.
const ChannelSMS = "sms"

// VerificationStatus is the outcome the provider reports for a send or
// check call. It lives only for the duration of that call; the provider is
// the sole holder of verification state across the send/check pair.
type VerificationStatus int

const (
	VerificationStatusUnknown VerificationStatus = iota
	VerificationStatusSent
	VerificationStatusPending
	VerificationStatusApproved
	VerificationStatusDenied
	VerificationStatusExpired
	VerificationStatusCanceled
)

// String returns the wire representation of the status.
func (s VerificationStatus) String() string {
	switch s {
	case VerificationStatusSent:
		return "Sent"
	case VerificationStatusPending:
		return "Pending"
	case VerificationStatusApproved:
		return "Approved"
	case VerificationStatusDenied:
		return "Denied"
	case VerificationStatusExpired:
		return "Expired"
	case VerificationStatusCanceled:
		return "Canceled"
	default:
		return "Unknown"
	}
}

// VerificationStatusFromString maps a provider-reported status string to a
// VerificationStatus. Unrecognized values map to Unknown.
func VerificationStatusFromString(s string) VerificationStatus {
	switch s {
	case "sent", "Sent":
		return VerificationStatusSent
	case "pending", "Pending":
		return VerificationStatusPending
	case "approved", "Approved":
		return VerificationStatusApproved
	case "denied", "Denied":
		return VerificationStatusDenied
	case "expired", "Expired":
		return VerificationStatusExpired
	case "canceled", "Canceled":
		return VerificationStatusCanceled
	default:
		return VerificationStatusUnknown
	}
}

const (
	secretMinLen  = 8
	fragmentStart = 4
	fragmentEnd   = 8
)

// MiddleFragment returns the 4-character window of a correlated secret code
// that may be disclosed to callers. The full secret must never be logged or
// returned. ok is false when the secret is shorter than 8 characters.
func MiddleFragment(secret string) (string, bool) {
	if len(secret) < secretMinLen {
		return "", false
	}
	return secret[fragmentStart:fragmentEnd], true
}
