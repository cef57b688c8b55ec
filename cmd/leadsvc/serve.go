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

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/osr-alliance/backend-service-leads/api"
	"github.com/osr-alliance/backend-service-leads/config"
	"github.com/osr-alliance/backend-service-leads/migrations"
	"github.com/osr-alliance/backend-service-leads/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		migrate    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cfg, newLogger(cfg.Log, cfg.Database.Debug), migrate)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending schema migrations before serving")
	return cmd
}

// newLogger builds the service logger. storageDebug enables at least the debug level.
func newLogger(conf config.LogConfig, storageDebug bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	// config.Load already rejected unknown levels
	level, _ := logrus.ParseLevel(conf.Level)
	if storageDebug && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	if conf.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}

func openDB(ctx context.Context, url string, conf config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(conf.MaxOpenConns)
	db.SetMaxIdleConns(conf.MaxIdleConns)
	db.SetConnMaxLifetime(conf.ConnMaxLifetime)
	return db, nil
}

func runServe(ctx context.Context, cfg *config.Config, log *logrus.Logger, migrate bool) error {
	if migrate {
		log.Info("applying schema migrations")
		if err := migrations.Up(cfg.Database.URL); err != nil {
			return err
		}
	}

	writeConn, err := openDB(ctx, cfg.Database.URL, cfg.Database)
	if err != nil {
		return fmt.Errorf("serve: connect database: %w", err)
	}
	defer writeConn.Close()

	readConn := writeConn
	if cfg.Database.ReadURL != cfg.Database.URL {
		readConn, err = openDB(ctx, cfg.Database.ReadURL, cfg.Database)
		if err != nil {
			return fmt.Errorf("serve: connect read replica: %w", err)
		}
		defer readConn.Close()
	}

	var cache *redis.Client
	if cfg.CacheEnabled() {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer cache.Close()
	} else {
		log.Warn("redis cache disabled, every read goes to postgres")
	}

	s, err := store.New(&store.Config{
		ReadConn:  readConn,
		WriteConn: writeConn,
		Redis:     cache,
		TTL:       int(cfg.Cache.TTL / time.Second),
		Debugger:  cfg.Database.Debug,
		Logger:    log,
	})
	if err != nil {
		return err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err = s.Ping(pingCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("serve: backing services unreachable: %w", err)
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      api.NewHandler(s, log, api.WithRateLimit(cfg.HTTP.RateLimit, cfg.HTTP.RateBurst)),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", cfg.HTTP.Addr).Info("leads api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
