// Package env provides a structure for managing application-wide dependencies.
package env

import (
	"context"
	"log/slog"

	"github.com/platefeed/platefeed/internal/config"
	"github.com/platefeed/platefeed/internal/database"
	"github.com/platefeed/platefeed/internal/email"
	"github.com/platefeed/platefeed/internal/filestore"
	"github.com/platefeed/platefeed/internal/log"
	"github.com/platefeed/platefeed/internal/metrics"
	"github.com/platefeed/platefeed/internal/tokenstore"
)

type Env struct {
	Logger    *slog.Logger
	Database  *database.Database
	FileStore *filestore.FileStore
	Tokens    tokenstore.Denylist
	SMTP      email.Sender
	Metrics   *metrics.Collector
	Config    *config.Config
}

type envKeyType struct{}

var envKey envKeyType

// WithCtx injects the environment into a context.
func WithCtx(ctx context.Context, env *Env) context.Context {
	return context.WithValue(ctx, envKey, env)
}

// EnvFromCtx extracts the environment from a context, falling back to
// a null environment so callers never receive nil.
func EnvFromCtx(ctx context.Context) *Env {
	if e, ok := ctx.Value(envKey).(*Env); ok && e != nil {
		return e
	}
	return Null()
}

// Null returns an environment that logs nowhere and holds no
// dependencies. Used in tests and as the context fallback.
func Null() *Env {
	return &Env{
		Logger: log.NullLogger(),
		Config: &config.Config{},
	}
}
