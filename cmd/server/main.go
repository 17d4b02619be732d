package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MorgandeCesso/regulus-back/config"
	"github.com/MorgandeCesso/regulus-back/internal/assistant"
	chatHTTP "github.com/MorgandeCesso/regulus-back/internal/chat/delivery/http"
	chatRepository "github.com/MorgandeCesso/regulus-back/internal/chat/repository"
	chatUsecase "github.com/MorgandeCesso/regulus-back/internal/chat/usecase"
	"github.com/MorgandeCesso/regulus-back/internal/mail"
	"github.com/MorgandeCesso/regulus-back/internal/middleware"
	userHTTP "github.com/MorgandeCesso/regulus-back/internal/user/delivery/http"
	userRepository "github.com/MorgandeCesso/regulus-back/internal/user/repository"
	userUsecase "github.com/MorgandeCesso/regulus-back/internal/user/usecase"
	"github.com/MorgandeCesso/regulus-back/pkg/db"
	"github.com/MorgandeCesso/regulus-back/pkg/logger"
	"github.com/MorgandeCesso/regulus-back/pkg/token"

	"github.com/gin-gonic/gin"
)

func main() {
	v, err := config.LoadConfig("config")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg, err := config.ParseConfig(v)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	appLogger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer appLogger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, cfg.Bun)
	if err != nil {
		appLogger.Errorf("failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.InitSchema(ctx, database); err != nil {
		appLogger.Errorf("failed to init schema: %v", err)
		os.Exit(1)
	}

	tokens := token.NewManager(cfg.JWT)
	sender := mail.NewSMTPSender(cfg.SMTP, appLogger)

	bridge, err := assistant.NewClient(cfg.OpenAI, appLogger)
	if err != nil {
		appLogger.Errorf("failed to init assistant client: %v", err)
		os.Exit(1)
	}

	userRepo := userRepository.NewUserRepository(database, appLogger)
	chatRepo := chatRepository.NewChatRepository(database, appLogger)

	userUC := userUsecase.NewUserUsecase(userRepo, tokens, sender, appLogger)
	chatUC := chatUsecase.NewChatUsecase(chatRepo, userRepo, bridge, appLogger)

	auth := middleware.NewAuthMiddleware(tokens, userUC, appLogger)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(appLogger))

	router.GET("/public", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "this endpoint is open to everyone"})
	})
	router.GET("/private", auth.RequireAuth(), func(c *gin.Context) {
		u, _ := middleware.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{
			"message": "this endpoint requires authorization",
			"user":    u.Username,
		})
	})

	userHTTP.RegisterRoutes(router.Group("/auth"), userHTTP.NewUserHandlers(userUC, appLogger), auth)
	chatHTTP.RegisterRoutes(router.Group("/chat"), chatHTTP.NewChatHandlers(chatUC, appLogger), auth)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
		// assistant runs are polled inline, so writes can take a while
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		appLogger.Info("server starting", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Errorf("listen error: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("forced shutdown: %v", err)
	}
	appLogger.Info("server exited")
}
