// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"inkwell-api/internal/application/comment"
	"inkwell-api/internal/application/rating"
	"inkwell-api/internal/application/shelf"
	"inkwell-api/internal/application/story"
	"inkwell-api/internal/config"
	"inkwell-api/internal/domain/repository"
	"inkwell-api/internal/infrastructure/persistence/postgres"
	"inkwell-api/internal/infrastructure/persistence/redis"
	"inkwell-api/internal/infrastructure/storage"
	"inkwell-api/internal/interfaces/http/handler"
	"inkwell-api/internal/interfaces/http/middleware"
	"inkwell-api/internal/interfaces/http/router"
)

// App 组装完成的应用
type App struct {
	Router   *router.Router
	PgClient *postgres.Client
}

// DataLayer 数据层依赖容器
type DataLayer struct {
	// PostgreSQL
	PgClient    *postgres.Client
	TxManager   *postgres.TxManager
	StoryRepo   repository.StoryRepository
	CommentRepo repository.CommentRepository
	RatingRepo  repository.RatingRepository
	UserRepo    repository.UserRepository

	// Redis
	RedisClient *redis.Client
	Cache       *redis.Cache
	RateLimiter *redis.RateLimiter
}

// InitializeDataLayer 初始化数据层
func InitializeDataLayer(ctx context.Context, cfg *config.Config) (*DataLayer, func(), error) {
	pgClient, pgCleanup, err := ProvidePostgresClient(cfg)
	if err != nil {
		return nil, nil, err
	}

	redisClient, redisCleanup, err := ProvideRedisClient(cfg)
	if err != nil {
		pgCleanup()
		return nil, nil, err
	}

	dl := &DataLayer{
		PgClient:    pgClient,
		TxManager:   postgres.NewTxManager(pgClient),
		StoryRepo:   postgres.NewStoryRepo(pgClient),
		CommentRepo: postgres.NewCommentRepo(pgClient),
		RatingRepo:  postgres.NewRatingRepo(pgClient),
		UserRepo:    postgres.NewUserRepo(pgClient),
		RedisClient: redisClient,
		Cache:       redis.NewCache(redisClient, cfg.Cache.KeyPrefix),
		RateLimiter: redis.NewRateLimiter(redisClient),
	}

	cleanup := func() {
		redisCleanup()
		pgCleanup()
	}

	return dl, cleanup, nil
}

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	dl, cleanup, err := InitializeDataLayer(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// 对象存储与默认封面缓存
	store, err := storage.NewR2Store(&cfg.Storage.R2)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	coverCache := storage.NewCoverURLCache(store)

	// 应用服务
	storySvc := story.NewService(dl.StoryRepo, dl.CommentRepo, dl.RatingRepo, dl.TxManager, dl.Cache, store)
	commentSvc := comment.NewService(dl.CommentRepo, dl.StoryRepo)
	ratingSvc := rating.NewService(dl.RatingRepo, dl.StoryRepo, dl.Cache, cfg.Cache.RatingTTL)
	shelfSvc := shelf.NewService(dl.UserRepo, dl.StoryRepo)

	// 处理器
	authCfg := ProvideAuthConfig(cfg)
	healthHandler := handler.NewHealthHandler(dl.PgClient, dl.RedisClient)
	authHandler := handler.NewAuthHandler(authCfg, dl.UserRepo)
	storyHandler := handler.NewStoryHandler(storySvc)
	chapterHandler := handler.NewChapterHandler(storySvc)
	commentHandler := handler.NewCommentHandler(commentSvc, dl.UserRepo)
	ratingHandler := handler.NewRatingHandler(ratingSvc)
	profileHandler := handler.NewProfileHandler(dl.UserRepo, shelfSvc)
	coverHandler := handler.NewCoverHandler(storySvc, coverCache)

	// 路由
	r := router.New(cfg)
	engine := r.Engine()

	router.RegisterSystemRoutes(engine, healthHandler,
		cfg.Observability.Metrics.Enabled, cfg.Observability.Metrics.Path)

	public := engine.Group("/v1")

	authed := engine.Group("/v1")
	authed.Use(middleware.Auth(authCfg))
	authed.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Enabled:           cfg.Security.RateLimit.Enabled,
		RequestsPerSecond: cfg.Security.RateLimit.RequestsPerSecond,
		Burst:             cfg.Security.RateLimit.Burst,
	}, dl.RateLimiter))

	router.RegisterV1Routes(public, authed,
		authHandler, storyHandler, chapterHandler,
		commentHandler, ratingHandler, profileHandler, coverHandler)

	app := &App{
		Router:   r,
		PgClient: dl.PgClient,
	}

	return app, cleanup, nil
}

// ProvidePostgresClient 提供 PostgreSQL 客户端
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClient 提供 Redis 客户端
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideAuthConfig 提供认证配置
func ProvideAuthConfig(cfg *config.Config) middleware.AuthConfig {
	return middleware.AuthConfig{
		Secret:    cfg.Security.JWT.Secret,
		Issuer:    cfg.Security.JWT.Issuer,
		SkipPaths: middleware.DefaultSkipPaths,
		Enabled:   true,
	}
}
