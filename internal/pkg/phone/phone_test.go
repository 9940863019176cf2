package phone

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer("1")

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "bare ten digits gets default country code", in: "5551234567", want: "+15551234567"},
		{name: "formatted national number", in: "(555) 123-4567", want: "+15551234567"},
		{name: "eleven digits with matching leading digit", in: "15551234567", want: "+15551234567"},
		{name: "already canonical", in: "+15551234567", want: "+15551234567"},
		{name: "plus with separators", in: "+1 555-123-4567", want: "+15551234567"},
		{name: "international short number", in: "+4920123456", want: "+4920123456"},
		{name: "empty", in: "", wantErr: true},
		{name: "only separators", in: "() -", wantErr: true},
		{name: "too few digits", in: "12345", wantErr: true},
		{name: "plus but too few digits", in: "+1234567", wantErr: true},
		{name: "plus but too many digits", in: "+1234567890123456", wantErr: true},
		{name: "eleven digits wrong leading digit", in: "25551234567", wantErr: true},
		{name: "plus with leading zero country code", in: "+05551234567", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := n.Normalize(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalid)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeCustomCountryCode(t *testing.T) {
	n := NewNormalizer("44")

	got, err := n.Normalize("7123456789")
	require.NoError(t, err)
	require.Equal(t, "+447123456789", got)
}

func TestLast10(t *testing.T) {
	require.Equal(t, "5551234567", Last10("+15551234567"))
	require.Equal(t, "5551234567", Last10("(555) 123-4567"))
	require.Equal(t, "123456789", Last10("123456789"))
	require.Equal(t, "", Last10("no digits"))
}
