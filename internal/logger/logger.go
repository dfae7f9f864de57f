package logger

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New builds the application logger.  In dev the console writer keeps
// output human-readable; everywhere else structured JSON goes to stderr.
func New(env string) zerolog.Logger {
	if env == "dev" {
		return log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
