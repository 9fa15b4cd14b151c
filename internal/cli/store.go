package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Makepad-fr/shoplist/internal/config"
	"github.com/Makepad-fr/shoplist/internal/store"
	"github.com/Makepad-fr/shoplist/internal/store/jsonstore"
	"github.com/Makepad-fr/shoplist/internal/store/memstore"
	"github.com/Makepad-fr/shoplist/internal/store/redisstore"
	"github.com/Makepad-fr/shoplist/internal/store/sqlitestore"
)

// openStore builds the backend named in cfg.
func openStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (store.Store, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		logger.Debug("using file store", "dir", cfg.Dir)
		return jsonstore.New(cfg.Dir), nil
	case config.BackendSQLite:
		return sqlitestore.New(cfg.Path, logger)
	case config.BackendRedis:
		ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
		return redisstore.New(ctx, redisstore.Options{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.KeyPrefix,
		})
	case config.BackendMemory:
		return memstore.New(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}
