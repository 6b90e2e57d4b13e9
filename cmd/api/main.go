package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/addictedsalas/project-printing-sub000/internal/catalog"
	"github.com/addictedsalas/project-printing-sub000/internal/config"
	"github.com/addictedsalas/project-printing-sub000/internal/db"
	"github.com/addictedsalas/project-printing-sub000/internal/httpserver"
	"github.com/addictedsalas/project-printing-sub000/internal/logging"
	"github.com/addictedsalas/project-printing-sub000/internal/mailer"
	"github.com/addictedsalas/project-printing-sub000/internal/migrate"
	sessionrepo "github.com/addictedsalas/project-printing-sub000/internal/repository/session"
	wizardsvc "github.com/addictedsalas/project-printing-sub000/internal/service/wizard"
	wizardctl "github.com/addictedsalas/project-printing-sub000/internal/wizard"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New("api", cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat := catalog.Default()
	if cfg.CatalogFile != "" {
		cat, err = catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			logger.Fatal("load catalog", zap.String("file", cfg.CatalogFile), zap.Error(err))
		}
		logger.Info("catalog loaded", zap.String("file", cfg.CatalogFile), zap.Int("garments", len(cat.Garments)))
	}

	deps := httpserver.Deps{
		Catalog:         cat,
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		TrustedProxies:  cfg.TrustedProxies,
		MaxBodyBytes:    cfg.MaxRequestBytes,
	}

	sessions := sessionrepo.NewMemory()
	if cfg.DBConnString != "" {
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatal("connect to db", zap.Error(err))
		}
		defer pool.Close()
		if err := migrate.Apply(ctx, pool); err != nil {
			logger.Fatal("apply migrations", zap.Error(err))
		}
		sessions = sessionrepo.NewPostgres(pool)
		deps.DB = pool
		logger.Info("wizard sessions stored in postgres")
	} else {
		logger.Info("wizard sessions stored in memory")
	}

	mail := mailer.New(mailer.Config{
		Host:                 cfg.SMTP.Host,
		Port:                 cfg.SMTP.Port,
		Username:             cfg.SMTP.Username,
		Password:             cfg.SMTP.Password,
		From:                 cfg.SMTP.From,
		To:                   cfg.SMTP.To,
		MaxDesignBytes:       cfg.MaxDesignBytes,
		MaxInlineDesignBytes: cfg.MaxInlineDesignBytes,
	}, logger.Named("mailer"))
	verifyCtx, cancelVerify := context.WithTimeout(ctx, 10*time.Second)
	if err := mail.Verify(verifyCtx); err != nil {
		logger.Warn("smtp not ready, emails will fail until it is", zap.Error(err))
	} else {
		logger.Info("smtp relay verified", zap.String("host", cfg.SMTP.Host))
	}
	cancelVerify()
	deps.Mailer = mail

	wizard := wizardsvc.New(sessions, cat, mail, wizardsvc.Options{
		TTL:            cfg.SessionTTL,
		MaxDesignBytes: cfg.MaxDesignBytes,
		Policy:         wizardctl.Policy{RequireCustomDesigns: cfg.RequireCustomDesigns},
	}, logger.Named("wizard"))
	deps.WizardSvc = wizard
	go wizard.RunSweeper(ctx, cfg.SessionSweepInterval)

	srv, err := httpserver.New(cfg.HTTPAddr, logger.Named("http"), deps)
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}
