package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMiddleFragment(t *testing.T) {
	frag, ok := MiddleFragment("123456789012")
	require.True(t, ok)
	require.Equal(t, "5678", frag)

	frag, ok = MiddleFragment("12345678")
	require.True(t, ok)
	require.Equal(t, "5678", frag)

	_, ok = MiddleFragment("1234567")
	require.False(t, ok)

	_, ok = MiddleFragment("")
	require.False(t, ok)
}

func TestVerificationStatusFromString(t *testing.T) {
	require.Equal(t, VerificationStatusApproved, VerificationStatusFromString("approved"))
	require.Equal(t, VerificationStatusPending, VerificationStatusFromString("pending"))
	require.Equal(t, VerificationStatusCanceled, VerificationStatusFromString("canceled"))
	require.Equal(t, VerificationStatusUnknown, VerificationStatusFromString("garbage"))
}

func TestVerificationStatusString(t *testing.T) {
	require.Equal(t, "Sent", VerificationStatusSent.String())
	require.Equal(t, "Approved", VerificationStatusApproved.String())
	require.Equal(t, "Unknown", VerificationStatusUnknown.String())
}
