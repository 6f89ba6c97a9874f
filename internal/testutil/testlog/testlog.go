package testlog

import (
	"testing"

	"github.com/rs/zerolog"
)

// Logger returns a structured logger routed through t.Log.
func Logger(t *testing.T) zerolog.Logger {
	t.Helper()
	return zerolog.New(zerolog.NewTestWriter(t))
}
