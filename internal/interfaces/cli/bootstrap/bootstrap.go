// Package bootstrap loads configuration and opens the shared resources every
// command needs.
package bootstrap

import (
	"fmt"
	"os"

	"locates/internal/infrastructure/config"
	"locates/internal/infrastructure/database"
	"locates/internal/shared/biztime"
	"locates/internal/shared/constants"
	"locates/internal/shared/logger"
)

// ResolveEnv prefers the ENV variable over the --env flag.
func ResolveEnv(flagEnv string) string {
	if envVar := os.Getenv("ENV"); envVar != "" {
		return envVar
	}
	if flagEnv == "" {
		return constants.EnvDevelopment
	}
	return flagEnv
}

// Init loads configuration, sets up the logger and the business timezone,
// then connects to the database. Callers must call Close when done.
func Init(env, configPath string) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Server.Mode = MapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize business timezone for deadline and date window calculations
	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// Close releases the database and flushes the logger.
func Close() {
	if err := database.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
	}
	_ = logger.Sync()
}

func MapEnvToGinMode(environment string) string {
	switch environment {
	case constants.EnvProduction, "prod", "release":
		return "release"
	case constants.EnvTest, "testing":
		return "test"
	default:
		return "debug"
	}
}
