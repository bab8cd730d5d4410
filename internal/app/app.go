package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"renonx-go/internal/assets"
	"renonx-go/internal/cms"
	"renonx-go/internal/config"
	"renonx-go/internal/encryption"
	"renonx-go/internal/kv"
	"renonx-go/internal/records"
)

// App is the application layer between the CLI/HTTP surfaces and the ContentStore.
// It constructs all dependencies from config and releases them on Close.
type App struct {
	cfg       *config.Config
	kv        cms.KeyValue
	backend   cms.Backend
	bucket    cms.AssetBucket
	store     *cms.ContentStore
	encryptor *encryption.PassphraseEncryptor
	op        *Operation
	logger    *slog.Logger
	logFile   *os.File
}

// Options tune App construction.
type Options struct {
	// Verbose enables debug lines on the process log.
	Verbose bool
}

// New creates a fully wired App from cfg.
// operation names the CLI command being run (e.g. "Serve", "SkillsAdd").
// The caller must call Close when done.
func New(ctx context.Context, cfg *config.Config, operation string, opts Options) (*App, error) {
	clock := cms.RealClock{}
	op := NewOperation(operation, "", clock.Now())

	logger, logFile, err := newLogger(cfg.LogDir, operation, opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	adapter := &slogAdapter{l: logger}

	a := &App{
		cfg:       cfg,
		encryptor: encryption.NewPassphraseEncryptor(encryption.DefaultWorkFactor),
		op:        op,
		logger:    logger,
		logFile:   logFile,
	}

	a.kv, err = kv.NewFromConfig(cfg.Storage, clock)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("creating key-value store: %w", err)
	}

	a.backend, err = records.NewFromConfig(ctx, cfg.Backend, a.kv)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("creating record backend: %w", err)
	}

	a.bucket, err = assets.NewFromConfig(ctx, cfg.Assets)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("creating asset bucket: %w", err)
	}

	state, err := cms.NewState(ctx, a.kv, clock, cms.UUIDGenerator{}, adapter)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("loading application state: %w", err)
	}

	a.store = cms.NewContentStore(a.backend, state, a.bucket, adapter, clock, cms.UUIDGenerator{})
	logger.Debug("app ready", "storage", cfg.Storage.Type, "backend", backendType(cfg.Backend), "assets", cfg.Assets.Type)
	return a, nil
}

func backendType(cfg config.BackendConfig) string {
	if cfg.Type == "" {
		return "local"
	}
	return cfg.Type
}

// Store returns the content store.
func (a *App) Store() *cms.ContentStore { return a.store }

// Bucket returns the asset bucket.
func (a *App) Bucket() cms.AssetBucket { return a.bucket }

// Config returns the configuration the App was built from.
func (a *App) Config() *config.Config { return a.cfg }

// Logger returns the process logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// StoreLogger returns the process logger in the form the store packages accept.
func (a *App) StoreLogger() cms.Logger { return &slogAdapter{l: a.logger} }

// Operation returns the operation this App was created for.
func (a *App) Operation() *Operation { return a.op }

// Setup seeds the content store and checks that the asset bucket is usable.
func (a *App) Setup(ctx context.Context) error {
	if err := a.store.Init(ctx); err != nil {
		return err
	}
	if err := a.bucket.ValidateSetup(ctx); err != nil {
		return fmt.Errorf("validating asset bucket: %w", err)
	}
	return nil
}

// Close logs the operation outcome and releases all resources.
// It is safe to call on a partially constructed App.
func (a *App) Close() error {
	var firstErr error

	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			firstErr = fmt.Errorf("closing record backend: %w", err)
		}
	}
	if a.kv != nil {
		if err := a.kv.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing key-value store: %w", err)
		}
	}

	if a.logger != nil && a.op != nil {
		a.logger.Debug("operation finished", "status", a.op.Status, "duration", time.Since(a.op.StartedAt).Round(time.Millisecond))
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}
