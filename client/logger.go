package client

import (
	"io"

	"github.com/pokt-network/poktroll/pkg/polylog"
	"github.com/pokt-network/poktroll/pkg/polylog/polyzero"
	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog backed logger writing to out at the configured
// level. An unparseable level falls back to info.
func NewLogger(cfg LoggerConfig, out io.Writer) polylog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	return polyzero.NewLogger(
		polyzero.WithLevel(level),
		polyzero.WithOutput(out),
	)
}
