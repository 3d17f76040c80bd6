package resolve

import (
	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment holds the environment variables the CLI reads.
type Environment struct {
	LogLevel zapcore.Level `env:"BWSTUDIO_LOG_LEVEL" envDefault:"info"`
	// Trace exports a span per AWS call to stderr.
	Trace bool `env:"BWSTUDIO_TRACE" envDefault:"false"`
}

// ParseEnv parses the CLI environment variables.
func ParseEnv() (Environment, error) {
	var e Environment
	if err := env.Parse(&e); err != nil {
		return e, errors.Wrap(err, "failed to parse environment")
	}
	return e, nil
}

// NewLogger builds a console logger writing to stderr at the configured level,
// leaving stdout to the command output.
func NewLogger(e Environment) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(e.LogLevel)
	cfg.DisableStacktrace = true
	return cfg.Build()
}
