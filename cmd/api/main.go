package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authadapter "taskboard/internal/adapter/auth"
	dbadapter "taskboard/internal/adapter/db"
	httpadapter "taskboard/internal/adapter/http"
	"taskboard/internal/adapter/http/handlers"
	httpmiddleware "taskboard/internal/adapter/http/middleware"
	appservice "taskboard/internal/app/service"
	"taskboard/internal/config"
	"taskboard/pkg/translator"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	// Make zap available to packages that log through zap.L().
	zap.ReplaceGlobals(logger)

	cfg := config.LoadConfig()
	if cfg.UsesDefaultSecret() {
		logger.Warn("JWT_SECRET is not set, tokens are signed with the built-in development secret")
	}

	translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.String("driver", cfg.DbDriver), zap.Error(err))
	}

	userRepository := dbadapter.NewUserRepository(db.Gorm)
	taskRepository := dbadapter.NewTaskRepository(db.Gorm)
	statisticsRepository := dbadapter.NewTaskStatisticsRepository(db.SQL)

	authService := appservice.NewAuthService(
		userRepository,
		authadapter.NewPasswordHasher(0),
		authadapter.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
	)
	taskService := appservice.NewTaskService(taskRepository, statisticsRepository, time.Now)

	r := gin.New()
	r.Use(gin.Recovery(), httpmiddleware.RequestIDMiddleware(), httpmiddleware.GinZapMiddleware(logger))
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("invalid trusted proxies", zap.Strings("proxies", cfg.TrustedProxies), zap.Error(err))
	}

	httpadapter.RegisterRoutes(r, httpadapter.Handlers{
		Health: handlers.NewHealthHandler(db.SQL),
		Auth:   handlers.NewAuthHandler(authService),
		Task:   handlers.NewTaskHandler(taskService, time.Now),
	}, authService)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", server.Addr), zap.String("driver", cfg.DbDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("could not start server", zap.Error(err))
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				logger.Info("shutting down http server")
				return server.Shutdown(ctx)
			},
		},
	)

	exitCode := <-wait

	if err := db.Close(); err != nil {
		logger.Warn("failed to close database connection", zap.Error(err))
	}
	logger.Info("server exited", zap.Int("exit_code", exitCode))
	_ = logger.Sync()
	os.Exit(exitCode)
}
