package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/finbook-dev/finbook/internal/config"
	"github.com/finbook-dev/finbook/internal/logger"
	"github.com/finbook-dev/finbook/internal/server"
)

func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the finbook API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "finbook.yaml", "path to finbook.yaml")

	return cmd
}

// loadConfig reads the config file, falling back to defaults when the
// file does not exist. Environment overrides still apply either way.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func runServe(ctx context.Context, cfg *config.Config) error {
	log := logger.New()

	storage, cleanup, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	sessions := openSessions(ctx, cfg, log)

	srv := server.New(storage, sessions, log)
	router := srv.Router(cfg.Server.AllowedOrigins)

	log.Info().Str("addr", cfg.Server.Addr).Msg("listening")
	if err := router.Run(cfg.Server.Addr); err != nil {
		return fmt.Errorf("running server: %w", err)
	}
	return nil
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (server.Storage, func(), error) {
	if cfg.Database.URL == "" {
		log.Warn().Msg("no database configured, using in-memory storage")
		return server.NewMemoryStorage(), func() {}, nil
	}
	pg, err := server.OpenPostgres(ctx, cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	log.Info().Msg("connected to postgres")
	return pg, func() { _ = pg.Close() }, nil
}

// openSessions prefers Redis when configured but degrades to in-process
// sessions rather than refusing to start.
func openSessions(ctx context.Context, cfg *config.Config, log zerolog.Logger) server.Sessions {
	if cfg.Redis.Addr == "" {
		return server.NewMemorySessions()
	}
	sessions, err := server.NewRedisSessions(ctx, cfg.Redis.Addr)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, using in-memory sessions")
		return server.NewMemorySessions()
	}
	log.Info().Msg("connected to redis")
	return sessions
}
