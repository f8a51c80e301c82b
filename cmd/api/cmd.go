package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GregMSThompson/utools/internal/bootstrap"
	"github.com/GregMSThompson/utools/internal/catalog"
	"github.com/GregMSThompson/utools/internal/config"
	"github.com/GregMSThompson/utools/internal/handlers"
	"github.com/GregMSThompson/utools/internal/response"
	"github.com/GregMSThompson/utools/internal/router"
	"github.com/GregMSThompson/utools/internal/services"
	"github.com/GregMSThompson/utools/pkg/logger"
)

const shutdownGrace = 10 * time.Second

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// config
	cfg, err := config.New()
	exitOnError("config failed", err, logger.New("info", logger.NewSeverityHandler))

	// bootstrap
	bs, err := bootstrap.Run(ctx, cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := bs.Close(closeCtx); err != nil {
			bs.Log.Error("bootstrap close failed", "error", err)
		}
	}()

	// services
	cserv := services.NewConverterService()
	nserv := services.NewNetworkService(bs.Pinger)

	// response handler
	rh := response.New(bs.Log)

	// dependencies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.ConverterSvc = cserv
	deps.NetworkSvc = nserv
	deps.Catalog = catalog.Default()

	// router
	r := router.NewRouter(deps, router.Options{
		AllowedOrigins: cfg.CORSOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		Observer:       bs.Observer,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		bs.Log.Info("server listening", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			exitOnError("server start failed", err, bs.Log)
		}
	case <-ctx.Done():
		bs.Log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			bs.Log.Error("server shutdown failed", "error", err)
		}
	}
}
