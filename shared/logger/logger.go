package logger

import (
	"hotelier/config"
	"hotelier/shared/constant"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger installs the global zerolog logger. Production writes JSON lines tagged with the
// service name; every other environment gets the console writer.
func InitLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = time.RFC3339

	log.Logger = New(os.Stdout, cfg)

	SetLogLevel(cfg)
}

// New builds a logger writing to out, formatted for cfg's environment.
func New(out io.Writer, cfg *config.Config) zerolog.Logger {
	if cfg.Server.Env != constant.EnvProduction {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(out).With().Timestamp()
	if cfg.App.Name != "" {
		ctx = ctx.Str("service", cfg.App.Name)
	}

	return ctx.Logger()
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// SetLogLevel applies SERVER_LOG_LEVEL, defaulting to info.
func SetLogLevel(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil || cfg.Server.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)
	log.Debug().Str("loglevel", level.String()).Msg("log level set")
}
