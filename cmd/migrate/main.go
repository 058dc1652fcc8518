// Command migrate creates the schema, seeds the reference categories and
// drops the cached category list.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gospelreach/internal/core/cache"
	"gospelreach/internal/core/config"
	"gospelreach/internal/core/database"
	"gospelreach/internal/core/logger"
	"gospelreach/internal/repo"
	"gospelreach/internal/service"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "config file (default $CONFIG_PATH or ./configs/config.local.yaml)")
	seed := pflag.Bool("seed", true, "insert the default categories")
	pflag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		LogWriter:          logger.ToWriter(log.Named("gorm"), zapcore.InfoLevel),
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := repo.Migrate(ctx, db); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}
	log.Info("schema up to date", zap.String("driver", cfg.DB.Driver))

	if !*seed {
		return
	}
	if err := repo.SeedCategories(ctx, db); err != nil {
		log.Fatal("seed categories", zap.Error(err))
	}
	var c *cache.Cache
	if cfg.Redis.Addr != "" {
		c = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer func() { _ = c.Close() }()
		if err := c.Invalidate(ctx, service.CategoriesCacheKey); err != nil {
			log.Warn("invalidate category cache", zap.Error(err))
		}
	}
	ttl := time.Duration(cfg.Redis.CategoryTTLSec) * time.Second
	names, err := service.NewCategoryService(repo.NewCategoryRepo(db), c, ttl).Names(ctx)
	if err != nil {
		log.Fatal("list categories", zap.Error(err))
	}
	log.Info("categories seeded", zap.Strings("names", names))
}
