package app

import (
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/thenoetrevino/clubhouse/internal/events"
	"github.com/thenoetrevino/clubhouse/internal/logo"
	"github.com/thenoetrevino/clubhouse/internal/storage"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	eventClient  events.Publisher
	logger       *slog.Logger
	clock        clockwork.Clock
	logoSize     int
	csvLocale    string
	uploader     storage.Uploader
	uploadPrefix string
}

func defaultConfig() appConfig {
	return appConfig{
		logger:    slog.Default(),
		clock:     clockwork.NewRealClock(),
		logoSize:  logo.DefaultSize,
		csvLocale: "zh",
	}
}

// WithEventPublisher sets the event publisher for the application
func WithEventPublisher(ec events.Publisher) Option {
	return func(cfg *appConfig) {
		cfg.eventClient = ec
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithClock sets the clock used to name database exports
func WithClock(clock clockwork.Clock) Option {
	return func(cfg *appConfig) {
		cfg.clock = clock
	}
}

// WithLogoSize sets the edge length of replaced logos
func WithLogoSize(size int) Option {
	return func(cfg *appConfig) {
		cfg.logoSize = size
	}
}

// WithCSVLocale selects the header labels of the CSV export ("zh" or "en")
func WithCSVLocale(locale string) Option {
	return func(cfg *appConfig) {
		cfg.csvLocale = locale
	}
}

// WithUploader enables PublishExport, storing copies under prefix
func WithUploader(u storage.Uploader, prefix string) Option {
	return func(cfg *appConfig) {
		cfg.uploader = u
		cfg.uploadPrefix = prefix
	}
}
