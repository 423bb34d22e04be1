package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/clubhouse/internal/app"
	"github.com/thenoetrevino/clubhouse/internal/config"
	"github.com/thenoetrevino/clubhouse/internal/events"
	"github.com/thenoetrevino/clubhouse/internal/storage"
)

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Editing session with the database open
	Config *config.Config
	Events *events.Bus
}

// NewCLI builds the session described by cfg and opens dbPath, falling back
// to cfg.Database when dbPath is empty.
func NewCLI(ctx context.Context, cfg *config.Config, dbPath string) (*CLI, error) {
	if dbPath == "" {
		dbPath = cfg.Database
	}

	bus := events.NewBus(nil)
	opts := []app.Option{
		app.WithEventPublisher(bus),
		app.WithLogger(slog.Default()),
		app.WithLogoSize(cfg.LogoSize),
		app.WithCSVLocale(cfg.CSV.Locale),
	}

	// Backups are optional, a bad bucket config only disables --upload
	if cfg.Backup.Enabled() {
		uploader, err := storage.NewS3Uploader(ctx, storage.S3UploaderConfig{
			Endpoint:        cfg.Backup.Endpoint,
			Region:          cfg.Backup.Region,
			AccessKeyID:     cfg.Backup.AccessKeyID,
			SecretAccessKey: cfg.Backup.SecretAccessKey,
			BucketName:      cfg.Backup.Bucket,
			PublicBaseURL:   cfg.Backup.PublicBaseURL,
		})
		if err != nil {
			slog.Warn("backup uploads disabled", "error", err)
		} else {
			opts = append(opts, app.WithUploader(uploader, cfg.Backup.Prefix))
		}
	}

	application := app.New(opts...)
	if _, err := application.OpenDatabase(ctx, dbPath); err != nil {
		bus.Close()
		return nil, fmt.Errorf("failed to open %s: %w", dbPath, err)
	}

	return &CLI{
		App:    application,
		Config: cfg,
		Events: bus,
	}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if c.Events != nil {
		c.Events.Close()
	}
	return c.App.Close()
}

type contextKey struct{}

// WithCLI returns a copy of ctx carrying c
func WithCLI(ctx context.Context, c *CLI) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// GetCLIFromContext returns the session stored by WithCLI
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if ctx == nil {
		return nil, fmt.Errorf("no CLI session: %w", ErrUsage)
	}
	c, ok := ctx.Value(contextKey{}).(*CLI)
	if !ok || c == nil {
		return nil, fmt.Errorf("no CLI session: %w", ErrUsage)
	}
	return c, nil
}
