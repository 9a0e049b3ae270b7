// Package logger sets up the process-wide structured logger.
package logger

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// New returns a console logger at level. An empty or unknown level means info.
func New(level string) zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	logLevel, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
		if level != "" {
			fmt.Fprintf(os.Stderr, "Unknown LOG_LEVEL %q, using info\n", level)
		}
	}

	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}).
		Level(logLevel).
		With().
		Timestamp().
		Caller().
		Str("app", "draft-bot").
		Logger()

	zerolog.DefaultContextLogger = &l
	return l
}
