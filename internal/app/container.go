package app

import (
	"context"
	"time"

	"skill-community/internal/config"
	"skill-community/internal/database"
	dbpostgres "skill-community/internal/database/postgres"
	"skill-community/internal/domain/session"
	"skill-community/internal/infrastructure/backend"
	"skill-community/internal/infrastructure/cache"
	"skill-community/internal/infrastructure/persistence/memory"
	redisstore "skill-community/internal/infrastructure/persistence/redis"
	"skill-community/internal/pkg/jwt"
	"skill-community/internal/pkg/logger"
	"skill-community/internal/repository"
	"skill-community/internal/usecase"
	"skill-community/internal/ws"
)

// Container holds the long-lived dependencies of the server.
type Container struct {
	Config config.Config
	Logger logger.Logger
	Cache  *cache.Redis
	DB     database.DB

	Backend       backend.Client
	Sessions      *usecase.Sessions
	Skills        *usecase.Skills
	Relationships *usecase.Relationships
	Cards         *usecase.Card
	Directory     *usecase.Directory
	Hub           *ws.Hub
}

func NewContainer(cfg config.Config, log logger.Logger) (*Container, error) {
	if log == nil {
		log = logger.NewNop()
	}
	c := &Container{Config: cfg, Logger: log}

	c.Cache = cache.NewRedis(cfg.Redis, log)

	var store session.Store
	if c.Cache.Available() {
		store = redisstore.NewSessionStore(c.Cache.Client())
	} else {
		log.Warn("App", "using in-memory session store", nil)
		store = memory.NewSessionStore(cfg.Session.TTL)
	}

	jwtSvc := jwt.NewHMACService(cfg.Session.Secret, cfg.Session.TTL)
	c.Sessions = usecase.NewSessionUsecase(store, jwtSvc, cfg.Session.TTL, log)

	var skillRepo repository.SkillRepository = repository.StaticSkillRepository{}
	if cfg.Database.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		db, err := dbpostgres.Connect(ctx, cfg.Database)
		cancel()
		if err != nil {
			log.Warn("App", "database unavailable, using built-in skills", map[string]any{"error": err.Error()})
		} else {
			c.DB = db
			skillRepo = repository.NewPostgresSkillRepository(db)
		}
	}
	c.Skills = usecase.NewSkillUsecase(skillRepo, log)
	reloadCtx, cancelReload := context.WithTimeout(context.Background(), 5*time.Second)
	_ = c.Skills.Reload(reloadCtx)
	cancelReload()

	c.Backend = backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)
	c.Hub = ws.NewHub(log)
	c.Relationships = usecase.NewRelationships(c.Backend, c.Cache, cfg.Community.RelationshipCacheTTL, log)
	c.Cards = usecase.NewCardUsecase(c.Backend, c.Relationships, c.Hub, log)

	var resolver usecase.StatusResolver = c.Relationships
	if cfg.Community.StatusResolution == config.StatusResolutionPerCard {
		resolver = usecase.NewPerCardResolver(c.Cards, cfg.Community.StatusWorkers)
	}
	c.Directory = usecase.NewDirectoryUsecase(c.Backend, c.Sessions, c.Skills, resolver, log)

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	c.Hub.Stop()
	if c.DB != nil {
		_ = c.DB.Close()
	}
	return c.Cache.Close()
}
