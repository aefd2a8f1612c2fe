package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikhilmekle/mern-ecommerce-app/app/routes"
	"github.com/nikhilmekle/mern-ecommerce-app/config"
	"github.com/nikhilmekle/mern-ecommerce-app/internal/gateway"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/logger"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/metrics"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/middleware"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/queue"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/reqid"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/router"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/ws"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	db, err := boot()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// In-process workers handle order reconciliation even without a
	// dedicated queue:work process.
	queue.StartWorkers(ctx, 2)

	feed := ws.NewHub()
	go feed.Run()

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
	)
	routes.RegisterAPI(r, routes.Deps{
		DB:        db,
		Gateway:   gateway.New(),
		OrderFeed: feed,
	})

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
