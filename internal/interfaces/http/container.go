package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"locates/internal/application/locate/services"
	"locates/internal/application/locate/usecases"
	"locates/internal/domain/locate"
	"locates/internal/domain/shared/events"
	"locates/internal/infrastructure/auth"
	"locates/internal/infrastructure/config"
	"locates/internal/infrastructure/scheduler"
	locatehandlers "locates/internal/interfaces/http/handlers/locate"
	"locates/internal/interfaces/http/middleware"
	"locates/internal/shared/logger"
)

// eventBufferSize bounds the audit event queue.
const eventBufferSize = 256

// Container holds the infrastructure, use cases, handlers and background
// jobs of the locate service. Shutdown releases them in reverse order.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repo       locate.SnapshotRepository
	dispatcher *events.InMemoryEventDispatcher
	locker     usecases.JobLocker
	scraper    locate.Scraper

	// Use cases
	ucs *locateUseCases

	// Handlers
	locateHandler *locatehandlers.Handler

	// Middlewares
	jwtSvc          *auth.JWTService
	actorMiddleware *middleware.ActorMiddleware
	rateLimiter     *middleware.RateLimiter

	schedulerManager *scheduler.SchedulerManager
}

// NewContainer wires every component from the loaded configuration. The
// event dispatcher is started here so that use cases can publish right away.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	if err := c.initEvents(); err != nil {
		return nil, err
	}

	if err := c.initUseCases(); err != nil {
		c.stopEvents()
		return nil, err
	}

	c.initHandlers()

	return c, nil
}

func (c *Container) initEvents() error {
	c.dispatcher = events.NewInMemoryEventDispatcher(eventBufferSize, c.log.Named("events"))

	audit := services.NewAuditLogHandler(c.log.Named("audit"))
	if err := audit.Register(c.dispatcher); err != nil {
		return err
	}

	if err := c.dispatcher.Start(); err != nil {
		return err
	}
	c.log.Infow("event dispatcher started", "buffer_size", eventBufferSize)
	return nil
}

func (c *Container) initHandlers() {
	c.locateHandler = locatehandlers.NewHandler(c.ucs.handlerDeps(), c.log.Named("locate_handler"))

	c.jwtSvc = auth.NewJWTService(c.cfg.Auth.JWTSecret, c.cfg.Auth.Issuer)
	c.actorMiddleware = middleware.NewActorMiddleware(c.jwtSvc, c.log)
	if c.jwtSvc.Enabled() {
		c.log.Infow("bearer token verification enabled", "issuer", c.cfg.Auth.Issuer)
	}

	if c.redis != nil && c.cfg.Server.SyncRateLimit > 0 {
		c.rateLimiter = middleware.NewRateLimiter(c.redis, "sync", c.cfg.Server.SyncRateLimit, syncRateWindow, c.log)
	}
}

// Engine returns the gin engine. SetupRoutes must be called before serving.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// SweepExpiredTimers exposes the sweep use case for one-shot CLI runs.
func (c *Container) SweepExpiredTimers() usecases.SweepExpiredTimersExecutor {
	return c.ucs.sweepExpiredTimers
}

// SyncDashboard exposes the ingestion use case for one-shot CLI runs.
func (c *Container) SyncDashboard() usecases.SyncDashboardExecutor {
	return c.ucs.syncDashboard
}

// StartScheduler registers the periodic sweep and sync jobs and starts them.
func (c *Container) StartScheduler() error {
	manager, err := scheduler.NewSchedulerManager(c.log.Named("scheduler"))
	if err != nil {
		return err
	}

	if err := manager.RegisterTimerSweepJob(c.ucs.sweepExpiredTimers, c.cfg.Locates.SweepInterval()); err != nil {
		return err
	}
	if err := manager.RegisterDashboardSyncJob(c.ucs.syncDashboard, c.cfg.Locates.SyncInterval(), c.cfg.Scraper.Timeout()); err != nil {
		return err
	}

	manager.Start()
	c.schedulerManager = manager
	return nil
}

func (c *Container) stopEvents() {
	if c.dispatcher == nil {
		return
	}
	if err := c.dispatcher.Stop(); err != nil {
		c.log.Errorw("failed to stop event dispatcher", "error", err)
	}
}

// Shutdown stops background jobs, drains pending events and closes Redis.
func (c *Container) Shutdown() {
	if c.schedulerManager != nil {
		if err := c.schedulerManager.Stop(); err != nil {
			c.log.Errorw("failed to stop scheduler", "error", err)
		}
	}

	c.stopEvents()

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Errorw("failed to close redis client", "error", err)
		}
	}

	c.log.Infow("container shut down")
}
