package app

import (
	"context"
	"log"
	"time"

	"gigboard/internal/config"
	"gigboard/internal/database"
	"gigboard/internal/database/migration"
	dbpostgres "gigboard/internal/database/postgres"
	"gigboard/internal/infrastructure/cache"
	"gigboard/internal/infrastructure/persistence/postgres"
	"gigboard/internal/metrics"
	"gigboard/internal/notifier"
	"gigboard/internal/pkg/jwt"
	"gigboard/internal/repository"
	"gigboard/internal/usecase"
	"gigboard/internal/ws"
)

// Container owns every long-lived dependency: the database pool, cache
// client, websocket hub, notifier worker and retention sweeper.
type Container struct {
	Config  config.Config
	Logger  *log.Logger
	DB      database.DB
	Cache   *cache.Redis
	Metrics *metrics.Metrics

	JWT jwt.Service
	Hub *ws.Hub

	Users         *postgres.UserRepository
	Jobs          repository.JobRepository
	Applications  repository.ApplicationRepository
	Profiles      repository.ProfileRepository
	Notifications repository.NotificationRepository

	Broadcaster *notifier.Broadcaster
	Sweeper     *notifier.RetentionSweeper

	Auth          usecase.AuthUsecase
	JobUC         usecase.JobUsecase
	ApplicationUC usecase.ApplicationUsecase
	BrowseUC      usecase.BrowseUsecase
	ProfileUC     usecase.ProfileUsecase
	AccountUC     usecase.AccountUsecase
	SearchUC      usecase.SearchUsecase
	NotifUC       usecase.NotificationUsecase
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if dir := cfg.Database.MigrationsDir; dir != "" {
		runner := migration.Runner{Dir: dir}
		if err := runner.Run(ctx, db.SQLDB()); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		Cache:   cache.NewRedis(cfg.Redis, logger),
		Metrics: metrics.New(),
		JWT:     jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn),
		Hub:     ws.NewHub(logger),
	}

	users, err := postgres.NewUserRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	c.Users = users
	c.Jobs = repository.NewPostgresJobRepository(db)
	c.Applications = repository.NewPostgresApplicationRepository(db)
	c.Profiles = repository.NewPostgresProfileRepository(db)
	c.Notifications = repository.NewPostgresNotificationRepository(db)

	c.Broadcaster = notifier.NewBroadcaster(users, c.Jobs, c.Notifications, c.Hub, logger).
		WithSentCounter(c.Metrics.NotificationsSent)
	c.Sweeper = notifier.NewRetentionSweeper(c.Notifications, logger)

	c.Auth = usecase.NewAuthUsecase(users, c.JWT)
	c.JobUC = usecase.NewJobUsecase(c.Jobs, c.Broadcaster)
	c.ApplicationUC = usecase.NewApplicationUsecase(c.Applications, c.Jobs, c.Broadcaster)
	c.BrowseUC = usecase.NewBrowseUsecase(c.Jobs, c.Applications, c.Cache, logger)
	c.ProfileUC = usecase.NewProfileUsecase(c.Profiles, users)
	c.AccountUC = usecase.NewAccountUsecase(users, c.Jobs)
	c.SearchUC = usecase.NewSearchUsecase(c.Profiles, c.Applications, c.Cache, logger)
	c.NotifUC = usecase.NewNotificationUsecase(c.Notifications)

	return c, nil
}

func (c *Container) Start() {
	go c.Hub.Run()
	c.Broadcaster.Start()
	c.Sweeper.Start()
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	c.Broadcaster.Stop()
	c.Sweeper.Stop()

	if c.Users != nil {
		if err := c.Users.Close(); err != nil {
			c.Logger.Printf("closing user repository: %v", err)
		}
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.Logger.Printf("closing cache: %v", err)
		}
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
