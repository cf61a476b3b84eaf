package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init cấu hình global zerolog logger.
// development: console writer cho dễ đọc, các môi trường khác: JSON.
func Init(env, level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// Timed logs the elapsed time of an operation at trace level.
//
//	defer logger.Timed("BookService.Update")()
func Timed(operation string) func() {
	start := time.Now()
	return func() {
		log.Trace().
			Str("operation", operation).
			Dur("elapsed_ms", time.Since(start)).
			Msg("timing")
	}
}
