package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"dealer-app-go/internal/app"
	"dealer-app-go/pkg/logger"
)

func main() {
	log := logger.NewFromEnv()
	code := run(log)
	_ = log.Sync()
	os.Exit(code)
}

func run(log logger.Logger) int {
	log.Info("app: starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, log)
	if err != nil {
		log.Critical("app: init failed", "err", err)
		return 1
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Error("app: close failed", "err", err)
		}
	}()

	srv := application.HTTPServer()
	served := serve(srv, log)

	code := 0
	select {
	case <-ctx.Done():
		log.Info("app: shutdown signal received")
	case err := <-served:
		log.Critical("http: server failed", "addr", srv.Addr, "err", err)
		code = 1
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), application.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(drainCtx); err != nil {
		log.Error("http: graceful shutdown failed", "timeout", application.ShutdownTimeout(), "err", err)
		code = 1
	}

	if code == 0 {
		log.Info("app: stopped")
	}
	return code
}

// serve reports a listener failure on the returned channel. A clean close
// sends nothing.
func serve(srv *http.Server, log logger.Logger) <-chan error {
	failed := make(chan error, 1)
	go func() {
		log.Info("http: listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
	}()
	return failed
}
