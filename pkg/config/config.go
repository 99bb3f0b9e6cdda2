// Package config holds the defaults an application built on rchan
// starts from: timeouts, buffer sizes, and logger construction, kept
// separate from the channel primitives themselves.
package config

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Config holds defaults for code that constructs rchan channels and
// doesn't want to think about timeouts or logging on every call site.
type Config struct {
	LogLevel logrus.Level `json:"log_level"`

	// DefaultTimeout is used by callers that want a bounded wait
	// without threading a timeout through every Send/Receive/Select
	// call. Zero means block forever, matching rchan's own
	// no-argument-means-forever convention.
	DefaultTimeout time.Duration `json:"default_timeout"`

	// DefaultBufferSize is the buffer length convenience constructors
	// use when a caller asks for "a buffered channel" without naming a
	// capacity.
	DefaultBufferSize int `json:"default_buffer_size"`
}

// DefaultConfig returns the configuration a new application should
// start from.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:          logrus.InfoLevel,
		DefaultTimeout:    0,
		DefaultBufferSize: 16,
	}
}

// NewLogger creates a logger configured at the level this Config
// carries, using the same structured text format the rest of an
// application built on this package should use.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(c.LogLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	return logger
}
