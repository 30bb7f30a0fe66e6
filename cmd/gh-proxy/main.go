package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/Sternrassler/gh-rest-client/internal/config"
	"github.com/Sternrassler/gh-rest-client/pkg/cache"
	"github.com/Sternrassler/gh-rest-client/pkg/client"
	"github.com/Sternrassler/gh-rest-client/pkg/logging"
	"github.com/Sternrassler/gh-rest-client/pkg/repos"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		port       int
		batchSize  int
		logLevel   string
		pretty     bool
	)

	cmd := &cobra.Command{
		Use:   "gh-proxy",
		Short: "Serve a small read-only view of the GitHub REST API",
		Long: `gh-proxy forwards repository lookups to the GitHub REST API v3.

Configuration is read from --config (or .gh-proxy.yaml), then from the
environment (GITHUB_API_URL, GITHUB_TOKEN, GITHUB_USERNAME, REDIS_URL, PORT,
LOG_LEVEL, GH_PROXY_BATCH_SIZE), then from flags. Setting REDIS_URL enables
ETag revalidation of upstream responses.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("port") {
				cfg.Server.Port = port
			}
			if flags.Changed("batch-size") {
				cfg.Server.BatchSize = batchSize
			}
			if flags.Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if flags.Changed("pretty") {
				cfg.Log.Pretty = pretty
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	cmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides PORT)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Page size for upstream list requests (1-100)")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Human-readable console logs")

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	level, _ := logging.ParseLevel(cfg.Log.Level)
	logCfg := logging.DefaultConfig()
	logCfg.Level = level
	logCfg.Pretty = cfg.Log.Pretty
	logCfg.Service = "gh-proxy"
	logging.Setup(logCfg)
	logger := logging.NewLogger("gh-proxy")

	clientCfg := client.DefaultConfig()
	clientCfg.BaseURL = cfg.GitHub.APIURL
	clientCfg.Auth = cfg.AuthStrategy()

	if cfg.Redis.URL != "" {
		redisClient, err := newRedisClient(cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info().Str("redis", cfg.Redis.URL).Msg("Conditional request cache enabled")

		clientCfg.Cache = cache.NewManager(redisClient, cfg.Redis.Retention)
	}

	ghClient, err := client.New(clientCfg)
	if err != nil {
		return fmt.Errorf("create GitHub client: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           newServer(repos.NewService(ghClient), cfg.Server, logger).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", srv.Addr).
			Str("github", ghClient.BaseURL()).
			Msg("Starting gh-proxy")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newRedisClient accepts redis:// URLs and bare host:port addresses.
func newRedisClient(raw string) (*redis.Client, error) {
	if strings.Contains(raw, "://") {
		opts, err := redis.ParseURL(raw)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		return redis.NewClient(opts), nil
	}
	return redis.NewClient(&redis.Options{Addr: raw}), nil
}
