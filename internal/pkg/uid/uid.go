// Package uid provides small identifier generators behind narrow interfaces
// so they can be swapped in tests.
package uid

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}
