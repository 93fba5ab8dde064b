package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jonathan/resume-ats/internal/config"
	"github.com/jonathan/resume-ats/internal/server"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the résumé analysis endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	srvCfg, err := serverConfig(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg, appOptions{persist: true})
	if err != nil {
		return err
	}
	defer a.Close()

	srv := server.New(srvCfg, a.pipeline, a.archive)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func serverConfig(cfg *config.Config) (server.Config, error) {
	srvCfg := server.Config{
		Port:           cfg.Server.Port,
		Environment:    cfg.Server.Environment,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		RateLimit:      rateLimitConfig(cfg.RateLimit),
	}
	if cfg.Auth.Enabled {
		jwtCfg, err := config.NewJWTConfig()
		if err != nil {
			return server.Config{}, fmt.Errorf("auth is enabled: %w", err)
		}
		srvCfg.JWT = jwtCfg
	}
	return srvCfg, nil
}
