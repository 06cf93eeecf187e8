package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"chatfront/internal/app/authstate"
	"chatfront/internal/app/devproxy"
	"chatfront/internal/app/watch"
	"chatfront/internal/configs"
	"chatfront/internal/handler"
	"chatfront/internal/pkg/logx"
	"chatfront/internal/pkg/metrics"
)

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configs.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if cmd.Flags().Changed("port") {
				if err := configs.ValidatePort(port); err != nil {
					return err
				}
				cfg.Port = port
			}

			return serve(cfg)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides PORT)")

	return cmd
}

func serve(cfg *configs.AppConfig) error {
	logx.InitGlobalLogger(cfg.IsDevelopment())
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Bool("proxy_enabled", cfg.UseProxy()).
		Str("static_dir", cfg.StaticDir).
		Int("frontend_keys", len(cfg.Frontend)).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	store := authstate.New(authstate.WithRecorder(m))
	hub := watch.NewHub(store, m)

	deps := &handler.AppDeps{
		Config:  cfg,
		Store:   store,
		Hub:     hub,
		Metrics: m,
	}

	if cfg.UseProxy() {
		proxy, err := devproxy.New(devproxy.DefaultRules(cfg.AdminAPIURL, cfg.GatewayAPIURL))
		if err != nil {
			return fmt.Errorf("failed to build dev proxy: %w", err)
		}
		deps.Proxy = proxy

		for _, rule := range proxy.Rules() {
			logx.Info("Proxy rule mounted", "prefix", rule.Prefix, "target", rule.Target)
		}
	}

	router, stopLimiters := handler.Router(deps)
	defer stopLimiters()

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logx.Info(fmt.Sprintf("chatfront starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	// Hijacked websocket connections are not tracked by Shutdown, so the hub
	// closes them itself.
	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "Server forced to shutdown")
	}

	hub.Shutdown()

	logx.Info("Server gracefully stopped.")
	return nil
}
