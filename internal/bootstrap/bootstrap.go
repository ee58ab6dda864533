// Package bootstrap assembles the client: config, logging, storage,
// credential store, session controller, api client, journal, app.
package bootstrap

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"veritas-client-go/internal/app"
	"veritas-client-go/internal/domain/credential/store"
	"veritas-client-go/internal/domain/eventbus"
	"veritas-client-go/internal/domain/journal"
	"veritas-client-go/internal/domain/session"
	"veritas-client-go/internal/platform/config"
	platformerrors "veritas-client-go/internal/platform/errors"
	"veritas-client-go/internal/platform/logging"
	"veritas-client-go/internal/platform/storage"
	"veritas-client-go/internal/transport/api"
)

// Options carries command line overrides into the bootstrap.
type Options struct {
	ConfigPath string
	ServerURL  string
}

// Run wires the client and hands control to the interactive app.
func Run(ctx context.Context, opts Options) error {
	result, err := config.NewLoader(opts.ConfigPath).Load()
	if err != nil {
		return err
	}
	cfg := result.Config
	if opts.ServerURL != "" {
		cfg.Server.BaseURL = opts.ServerURL
	}

	logger, err := logging.New(logging.Config{
		Level: cfg.Log.Level,
		Dir:   cfg.Log.Dir,
		File:  cfg.Log.File,
	})
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "bootstrap.logging",
			"failed to initialise logging", err)
	}
	defer logger.Close()

	if result.Path != "" {
		logger.Info("[bootstrap] configuration loaded from %s", result.Path)
	} else {
		logger.Info("[bootstrap] no config file found, using defaults")
	}
	logger.Info("[bootstrap] backend %s", cfg.Server.BaseURL)

	db, err := storage.Open(cfg.Storage.DSN)
	if err != nil {
		return err
	}

	credStore, err := store.New(storeConfig(cfg), store.Dependencies{SQLiteDB: db})
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "bootstrap.store",
			"failed to build credential store", err)
	}
	defer credStore.Close(context.Background())

	bus := eventbus.New()

	controller, err := session.NewController(ctx, session.Options{
		Store:  credStore,
		Logger: logger,
		Bus:    bus,
	})
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "bootstrap.session",
			"failed to start session controller", err)
	}

	jrnl := journal.New(db, logger)
	if err := jrnl.Attach(bus); err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "bootstrap.journal",
			"failed to attach journal", err)
	}

	client := api.NewClient(api.Config{
		BaseURL: cfg.Server.BaseURL,
		Timeout: cfg.Server.Timeout.Std(),
	}, controller.Token, logger)

	application, err := app.New(app.Options{
		Config:  cfg,
		Logger:  logger,
		Session: controller,
		API:     client,
		Journal: jrnl,
		Bus:     bus,
		Input:   os.Stdin,
		Output:  os.Stdout,
	})
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "bootstrap.app",
			"failed to build app", err)
	}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("[bootstrap] shutting down")
	return nil
}

func storeConfig(cfg *config.Config) store.Config {
	sc := store.Config{
		Driver:    cfg.Credentials.Store.Type,
		Namespace: cfg.Credentials.Store.Namespace,
	}
	if r := cfg.Credentials.Store.Redis; r.Addr != "" {
		sc.Redis = &store.RedisConfig{
			Addr:     r.Addr,
			Username: r.Username,
			Password: r.Password,
			DB:       r.DB,
			Prefix:   r.Prefix,
		}
	}
	return sc
}
