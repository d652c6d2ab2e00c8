package logger

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"roomstack/config"
)

const (
	formatJSON    = "json"
	formatConsole = "console"
)

// InitLogger installs the global zerolog logger. Production defaults to JSON lines,
// everything else to the human readable console writer unless SERVER_LOG_FORMAT says otherwise.
func InitLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = zerolog.New(Writer(cfg, os.Stdout)).With().Timestamp().Str("app", cfg.App.Name).Logger()
	log.Trace().Msg("Zerolog initialized.")
}

// Writer picks the output encoding for the configured environment.
func Writer(cfg *config.Config, out io.Writer) io.Writer {
	format := cfg.Server.LogFormat
	if format == "" {
		format = formatConsole
		if cfg.Server.Env == "production" {
			format = formatJSON
		}
	}

	if format == formatJSON {
		return out
	}

	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
