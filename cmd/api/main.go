package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"farmacore/internal/auth"
	"farmacore/internal/config"
	"farmacore/internal/httpserver"
	"farmacore/internal/logger"
	"farmacore/internal/models"
	"farmacore/internal/otel"
	"farmacore/internal/seed"
	"farmacore/internal/service"
	"farmacore/internal/session"
	"farmacore/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}
	lg := logger.New(cfg.LogLevel)
	defer lg.Sync()

	shutdownTracing, err := otel.Init(ctx, "farmacore-api", cfg.OTLPEndpoint)
	if err != nil {
		lg.Fatalw("init tracing failed", "error", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}
	if err := db.AutoMigrate(
		&models.Module{}, &models.Role{}, &models.RoleModule{}, &models.User{}, &models.Session{},
		&models.Category{}, &models.Subcategory{}, &models.Concentration{},
		&models.PharmaceuticalForm{}, &models.ActiveIngredient{}, &models.Product{},
	); err != nil {
		lg.Fatalw("automigrate failed", "error", err)
	}
	if err := seed.Run(ctx, db, cfg, lg); err != nil {
		lg.Fatalw("seed failed", "error", err)
	}

	stores := store.New(db)
	codec := auth.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := service.NewAuthService(db, stores.Users, stores.Sessions, codec, lg)

	sweeper := session.NewSweeper(stores.Sessions, lg)
	if err := sweeper.Start(cfg.SessionSweepSpec); err != nil {
		lg.Fatalw("session sweeper failed", "error", err)
	}
	defer sweeper.Stop()

	router := httpserver.NewRouter(httpserver.Deps{
		DB:     db,
		Cfg:    cfg,
		Lg:     lg,
		Stores: stores,
		Codec:  codec,
		Auth:   authSvc,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Infow("listening", "addr", cfg.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Fatalw("http server failed", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Errorw("shutdown failed", "error", err)
	}
}
