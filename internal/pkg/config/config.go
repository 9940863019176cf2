package config

import (
	"io"
	"time"
)

// Config defines a set of methods for retrieving configuration values of
// various types. Implementations handle retrieval and type conversion,
// returning zero values when a key is absent or cannot be converted.
type Config interface {
	io.Closer

	// GetBool retrieves the configuration value for key as a bool.
	GetBool(key string) bool

	// GetInt retrieves the configuration value for key as an int.
	GetInt(key string) int

	// GetFloat64 retrieves the configuration value for key as a float64.
	GetFloat64(key string) float64

	// GetString retrieves the configuration value for key as a string.
	GetString(key string) string

	// GetSecond retrieves the configuration value for key as seconds.
	GetSecond(key string) time.Duration

	// GetMinute retrieves the configuration value for key as minutes.
	GetMinute(key string) time.Duration

	// GetArray retrieves the configuration value for key as a slice of
	// strings. The value is stored with format <element1>,<element2>,...
	GetArray(key string) []string
}
