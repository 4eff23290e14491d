package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"locates/internal/shared/constants"
	"locates/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks AutoMigrate for development and the versioned SQL
// scripts everywhere else.
func NewManager(environment, driver string) (*Manager, error) {
	var strategy Strategy

	switch strings.ToLower(environment) {
	case constants.EnvDevelopment:
		strategy = NewGormAutoMigrateStrategy()
	default:
		goose, err := NewGooseStrategy(driver)
		if err != nil {
			return nil, err
		}
		strategy = goose
	}

	return NewManagerWithStrategy(strategy), nil
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB, models ...interface{}) error {
	m.logger.Infow("starting database migration",
		"strategy", m.strategy.GetName(),
		"models_count", len(models))

	if err := m.strategy.Migrate(db, models...); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully",
		"strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) Down(db *gorm.DB, steps int) error {
	v, ok := m.strategy.(VersionedStrategy)
	if !ok {
		return fmt.Errorf("strategy %s does not support rollback", m.strategy.GetName())
	}
	if steps <= 0 {
		steps = 1
	}
	return v.MigrateDown(db, steps)
}

func (m *Manager) Status(db *gorm.DB) error {
	v, ok := m.strategy.(VersionedStrategy)
	if !ok {
		return fmt.Errorf("strategy %s does not track versions", m.strategy.GetName())
	}
	return v.Status(db)
}

func (m *Manager) Version(db *gorm.DB) (int64, error) {
	v, ok := m.strategy.(VersionedStrategy)
	if !ok {
		return 0, fmt.Errorf("strategy %s does not track versions", m.strategy.GetName())
	}
	return v.GetVersion(db)
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
