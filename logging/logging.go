package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New creates a zap logger for the given environment. local logs everything
// from debug up, development logs info and above in a human readable form,
// production logs sampled JSON at error and above.
func New(env string) (*zap.Logger, error) {
	switch env {
	case "", "local":
		return zap.NewExample(), nil
	case "development":
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		return cfg.Build()
	case "production":
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
		return cfg.Build()
	}
	return nil, fmt.Errorf("unknown environment %q", env)
}
