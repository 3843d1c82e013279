// Package shared holds the pieces every other package leans on: config
// loading, sentinel errors, logging setup, and small OAuth helpers.
package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewLogger builds the CLI's [log.Logger] writing to w, with timestamps on.
// A nil writer falls back to [os.Stderr].
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{ReportTimestamp: true})
}

// WithLogger derives a child [log.Logger] carrying the given key-value pairs
// on every entry.
func WithLogger(l *log.Logger, kv ...any) *log.Logger {
	return l.With(kv...)
}

// SetLogLevel adjusts the logger's verbosity.
func SetLogLevel(l *log.Logger, ll log.Level) {
	l.SetLevel(ll)
}

// GenerateState returns a random v4 UUID string used as the OAuth2 state
// token guarding the Spotify callback against forged redirects.
func GenerateState() string {
	return uuid.New().String()
}
