package ctxkeys

import (
	"context"

	"github.com/voblako/voblako/internal/config"
	"github.com/voblako/voblako/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	UserKey   contextKey = "user"
	ConfigKey contextKey = "config"
)

func User(ctx context.Context) *model.PublicUser {
	user, _ := ctx.Value(UserKey).(*model.PublicUser)
	return user
}

func WithUser(ctx context.Context, user *model.PublicUser) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}
