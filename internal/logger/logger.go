// Package logger owns the process-wide zerolog instance. main calls Init
// once; everything else logs through Logger or the zerolog global it mirrors.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

var Logger zerolog.Logger

const (
	defaultLevel  = "info"
	defaultFormat = "console" // console for local runs, "json" for ingestion
)

func Init() {
	InitWithWriter(os.Stdout)
}

// InitWithWriter is split out so tests can capture output.
func InitWithWriter(w io.Writer) {
	level, err := zerolog.ParseLevel(envOr("LOG_LEVEL", defaultLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}

	var base zerolog.Logger
	if envOr("LOG_FORMAT", defaultFormat) == "json" {
		base = zerolog.New(w)
	} else {
		base = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		})
	}

	Logger = base.With().Timestamp().Logger().Level(level)
	zlog.Logger = Logger
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
