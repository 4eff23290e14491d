package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"locates/internal/infrastructure/cache"
	"locates/internal/infrastructure/config"
	"locates/internal/infrastructure/repository"
	"locates/internal/infrastructure/scraper"
	"locates/internal/shared/logger"
)

const (
	redisPingTimeout = 5 * time.Second
	syncRateWindow   = time.Minute
)

// initInfrastructure creates the repository, the job locker and the scraper.
// Redis is optional; without it job locks are process local.
func (c *Container) initInfrastructure() error {
	c.repo = repository.NewDashboardSnapshotRepository(c.db, c.log.Named("snapshot_repository"))

	if c.cfg.Redis.Enabled {
		client, err := initRedis(c.cfg, c.log)
		if err != nil {
			return err
		}
		c.redis = client
		c.locker = cache.NewRedisJobLocker(client, c.log.Named("job_lock"))
	} else {
		c.log.Infow("redis disabled, using in-process job locks")
		c.locker = cache.NewLocalJobLocker()
	}

	s, err := scraper.New(c.cfg.Scraper, c.log.Named("scraper"))
	if err != nil {
		return fmt.Errorf("failed to create scraper: %w", err)
	}
	c.scraper = s
	c.log.Infow("scraper configured", "mode", c.cfg.Scraper.Mode)

	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.GetAddr(), err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient, nil
}
