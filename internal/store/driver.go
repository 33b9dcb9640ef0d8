package store

import (
	"context"
	"fmt"
	"time"

	"vanphal/internal/config"

	"github.com/rs/zerolog"
)

// Open constructs the store selected by the configuration.
func Open(ctx context.Context, cfg config.StoreConfig, logger zerolog.Logger) (Store, error) {
	switch cfg.Driver {
	case "memory":
		logger.Warn().Msg("using in-memory store, data will not survive a restart")
		return NewMemoryStore(), nil

	case "file":
		logger.Info().Str("dir", cfg.DataDir).Msg("using file store")
		return NewFileStore(cfg.DataDir, logger)

	case "redis":
		return NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)

	case "postgres":
		return NewPostgresStore(ctx, PostgresConfig{
			ConnString:      cfg.PGConnectionString(),
			MaxConnections:  cfg.PGMaxConnections,
			MinConnections:  cfg.PGMinConnections,
			MaxConnLifetime: time.Duration(cfg.PGConnLifetimeSec) * time.Second,
		}, logger)
	}

	return nil, fmt.Errorf("unknown store driver: %s", cfg.Driver)
}
