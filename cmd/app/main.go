package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dbadapter "forum/internal/adapters/database"
	"forum/internal/adapters/httpapi"
	"forum/internal/adapters/memory"
	redisadapter "forum/internal/adapters/redis"
	"forum/internal/config"
	"forum/internal/core/comment"
	commentapp "forum/internal/core/comment/service"
	"forum/internal/core/post"
	postapp "forum/internal/core/post/service"
	"forum/internal/core/token"
	"forum/internal/core/topic"
	topicapp "forum/internal/core/topic/service"
	"forum/internal/core/user"
	userapp "forum/internal/core/user/service"
	commentPort "forum/internal/ports/comment"
	postPort "forum/internal/ports/post"
	sessionPort "forum/internal/ports/session"
	topicPort "forum/internal/ports/topic"
	userPort "forum/internal/ports/user"
	"forum/internal/workers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type repositories struct {
	users    userPort.UserRepository
	topics   topicPort.TopicRepository
	posts    postPort.PostRepository
	comments commentPort.CommentRepository
	sessions sessionPort.Store
}

func main() {
	storage := flag.String("storage", "", "storage backend: database or memory (overrides STORAGE)")
	flag.Parse()

	// .env may set APP_ENV, so read it before building the logger
	if err := config.LoadDotEnv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error reading .env: %v", err)
	}
	config.InitLogger(os.Getenv("APP_ENV"))
	cfg := config.Init(*storage) // load settings from .env
	if cfg.AppEnv == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	repos := openRepositories(cfg)
	// close connections once the server is done
	defer closeResources(config.Logger)

	tokens, err := token.NewService(token.Options{
		Secret:   []byte(cfg.JWTSecret),
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
	})
	if err != nil {
		config.Logger.Fatal("Error creating token service", zap.Error(err))
	}

	userSvc := userapp.NewUserService(repos.users, repos.sessions, tokens, cfg.RefreshTokenTTL, config.Logger)
	topicSvc := topicapp.NewTopicService(repos.topics)
	postSvc := postapp.NewPostService(repos.posts, repos.topics)
	commentSvc := commentapp.NewCommentService(repos.comments, repos.posts, repos.topics)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.SeedAdmin() {
		if err := userSvc.SeedAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			config.Logger.Fatal("Error seeding admin account", zap.Error(err))
		}
		config.Logger.Info("Admin account ready", zap.String("username", cfg.AdminUsername))
	}

	r := httpapi.SetupRoutes(httpapi.RouterConfig{
		Logger:        config.Logger,
		Tokens:        tokens,
		CORSOrigins:   cfg.CORSOrigins,
		SecureCookies: cfg.AppEnv == config.EnvProduction,
	}, userSvc, topicSvc, postSvc, commentSvc)

	// sweep expired sessions in the background
	sweeper := workers.NewSessionSweeper(repos.sessions, cfg.SessionSweepInterval, config.Logger)
	go sweeper.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		config.Logger.Info("App is running...", zap.String("addr", srv.Addr), zap.String("storage", cfg.Storage))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.Error("Server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	config.Logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger.Error("Error during server shutdown", zap.Error(err))
	}
}

func openRepositories(cfg *config.Config) repositories {
	if cfg.Storage == config.StorageMemory {
		config.Logger.Warn("Using in-memory storage; data is lost on exit")
		store := memory.New()
		return repositories{
			users:    store.Users(),
			topics:   store.Topics(),
			posts:    store.Posts(),
			comments: store.Comments(),
			sessions: memory.NewSessionStore(),
		}
	}

	// connect to the database and run migrations
	config.InitDB(cfg)
	if err := config.DB.AutoMigrate(
		&user.User{},
		&topic.Topic{},
		&post.Post{},
		&comment.Comment{},
	); err != nil {
		config.Logger.Fatal("Error during migrations", zap.Error(err))
	}
	config.Logger.Info("Database migrations completed")

	config.InitRedis(cfg)

	return repositories{
		users:    dbadapter.NewUserRepositoryDatabase(config.DB),
		topics:   dbadapter.NewTopicRepositoryDatabase(config.DB),
		posts:    dbadapter.NewPostRepositoryDatabase(config.DB),
		comments: dbadapter.NewCommentRepositoryDatabase(config.DB),
		sessions: redisadapter.NewSessionRepositoryRedis(config.RedisClient),
	}
}

// closeResources closes the Redis and database connections when they were opened
func closeResources(logger *zap.Logger) {
	defer func() { _ = logger.Sync() }()

	if config.RedisClient != nil {
		if err := config.RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}

	if config.DB == nil {
		return
	}
	sqlDB, err := config.DB.DB() // *sql.DB behind *gorm.DB
	if err != nil {
		logger.Error("Error getting raw DB", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	}
}
