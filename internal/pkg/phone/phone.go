// Package phone canonicalizes arbitrary phone number input into E.164.
//
// Normalization is pure and total: every input maps to either a canonical
// value or ErrInvalid, never a panic, and performs no I/O.
package phone

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalid is returned when input cannot be canonicalized into E.164.
var ErrInvalid = errors.New("invalid phone number format")

// reE164 matches the canonical form: +, country code, national number.
var reE164 = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

const (
	minDigits = 8
	maxDigits = 15
	keyDigits = 10
)

// Normalizer canonicalizes raw phone input using a default country code for
// national-format numbers.
type Normalizer struct {
	defaultCountryCode string
}

// NewNormalizer returns a Normalizer. countryCode is digits only (e.g. "1");
// it is assumed for 10-digit input carrying no country code of its own.
func NewNormalizer(countryCode string) *Normalizer {
	if countryCode == "" {
		countryCode = "1"
	}
	return &Normalizer{defaultCountryCode: countryCode}
}

// Normalize converts raw input into canonical E.164 form.
//
// Rules: strip all non-digit characters; a leading + means the digits already
// include a country code (8-15 digits accepted); bare 10 digits get the
// default country code prepended; 11 digits whose leading digit matches the
// default country code's first digit are taken as already-prefixed. Anything
// else fails with ErrInvalid.
func (n *Normalizer) Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	hadPlus := strings.HasPrefix(trimmed, "+")

	digits := stripNonDigits(trimmed)
	if digits == "" {
		return "", ErrInvalid
	}

	var canonical string
	switch {
	case hadPlus:
		if len(digits) < minDigits || len(digits) > maxDigits {
			return "", ErrInvalid
		}
		canonical = "+" + digits

	case len(digits) == keyDigits:
		canonical = "+" + n.defaultCountryCode + digits

	case len(digits) == keyDigits+1 && digits[0] == n.defaultCountryCode[0]:
		canonical = "+" + digits

	default:
		return "", ErrInvalid
	}

	if !reE164.MatchString(canonical) {
		return "", ErrInvalid
	}

	return canonical, nil
}

// Last10 returns the trailing 10 digits of raw, ignoring formatting. It is
// used to key lookups against systems that store numbers in a different
// format; fewer than 10 digits are returned as-is.
func Last10(raw string) string {
	digits := stripNonDigits(raw)
	if len(digits) <= keyDigits {
		return digits
	}
	return digits[len(digits)-keyDigits:]
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
