package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smart_edu_quiz/internal/api"
	"smart_edu_quiz/internal/api/view"
	"smart_edu_quiz/internal/app/service"
	"smart_edu_quiz/internal/common/security"
	"smart_edu_quiz/internal/domain/repository"
	"smart_edu_quiz/internal/domain/repository/inmem"
	"smart_edu_quiz/internal/platform/config"
	"smart_edu_quiz/internal/platform/database"
	"smart_edu_quiz/internal/platform/logger"
	"smart_edu_quiz/internal/platform/session"
)

type repositories struct {
	users      repository.UserRepository
	categories repository.CategoryRepository
	quizzes    repository.QuizRepository
	attempts   repository.AttemptRepository
}

func main() {
	// 1. Load Configuration
	config.Load()
	cfg := config.AppConfig
	log := logger.Init(cfg.RollbarToken, cfg.AppEnv)
	defer log.Close()
	log.Info("configuration loaded", cfg.AppEnv)

	// 2. Initialize JWT
	security.InitJWT(cfg.JWTKey, cfg.JWTExp)

	ctx := context.Background()

	// 3. Initialize Storage
	var repos repositories
	switch cfg.StorageDriver {
	case config.DriverMemory:
		db := inmem.NewDB()
		repos = repositories{
			users:      inmem.NewUserRepository(db),
			categories: inmem.NewCategoryRepository(db),
			quizzes:    inmem.NewQuizRepository(db),
			attempts:   inmem.NewAttemptRepository(db),
		}
		log.Info("using in-memory storage")
	default:
		db, err := database.Connect(ctx, cfg.DBConnStr)
		if err != nil {
			log.Fatal("database connection failed", err)
		}
		defer database.Close(db)
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatal("database migration failed", err)
		}
		repos = postgresRepositories(db)
	}

	// 4. Initialize Session Store
	var store session.Store
	switch cfg.SessionDriver {
	case config.DriverMemory:
		store = session.NewMemoryStore()
		log.Info("using in-memory sessions")
	default:
		rdb, err := session.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatal("redis connection failed", err)
		}
		defer session.CloseRedis(rdb)
		store = session.NewRedisStore(rdb, cfg.SessionTTL)
	}

	// 5. Initialize Services
	categoryService := service.NewCategoryService(repos.categories)
	if _, err := categoryService.EnsureDefaults(ctx); err != nil {
		log.Fatal("failed to seed categories", err)
	}
	services := api.Services{
		Auth:        service.NewAuthService(repos.users),
		Category:    categoryService,
		Quiz:        service.NewQuizService(repos.quizzes, repos.categories),
		QuizSession: service.NewQuizSessionService(repos.quizzes, repos.attempts, store, cfg.QuizQuestionLimit, cfg.SubmitLockTTL, nil),
		Dashboard:   service.NewDashboardService(repos.users, repos.quizzes, repos.attempts, repos.categories),
		Bookmark:    service.NewBookmarkService(repos.quizzes, store),
	}

	// 6. Initialize Router & HTTP Server
	views, err := view.New()
	if err != nil {
		log.Fatal("failed to parse templates", err)
	}
	router := api.NewRouter(services, store, views, api.Options{
		CookieSecure: cfg.SessionCookieSecure,
		SessionTTL:   cfg.SessionTTL,
	})

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 7. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info("server starting", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("could not listen", cfg.APIPort, err)
		}
	}()

	<-stop

	log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", err)
		return
	}
	log.Info("server stopped gracefully")
}

func postgresRepositories(db *sql.DB) repositories {
	return repositories{
		users:      repository.NewPgUserRepository(db),
		categories: repository.NewPgCategoryRepository(db),
		quizzes:    repository.NewPgQuizRepository(db),
		attempts:   repository.NewPgAttemptRepository(db),
	}
}
