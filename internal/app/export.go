package app

import (
	"context"
	"path/filepath"
	"time"

	"github.com/thenoetrevino/clubhouse/internal/database"
	"github.com/thenoetrevino/clubhouse/internal/events"
	"github.com/thenoetrevino/clubhouse/internal/storage"
)

const exportTimeLayout = "20060102_150405"

// ExportFileName is the default name of a database copy taken at t
func ExportFileName(t time.Time) string {
	return "CFS_Teams_Export_" + t.Format(exportTimeLayout) + ".db"
}

// NextExportName is the default export file name at the session clock's now
func (a *App) NextExportName() string {
	return ExportFileName(a.clock.Now())
}

// ExportCSV writes every loaded team, not just the displayed ones, to path.
func (a *App) ExportCSV(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.requireStore(); err != nil {
		return err
	}
	if len(a.teams) == 0 {
		return ErrNothingToExport
	}
	return database.ExportTeamsCSV(path, database.HeaderLabels(a.cfg.csvLocale), a.teams)
}

// ExportDatabase copies the open database to path and returns the path
// written. An empty path uses a timestamped name next to the open file.
func (a *App) ExportDatabase(ctx context.Context, path string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	store, err := a.requireStore()
	if err != nil {
		return "", err
	}
	if path == "" {
		path = filepath.Join(store.Dir(), a.NextExportName())
	}

	written, err := store.ExportCopy(ctx, path)
	if err != nil {
		a.logger.Error("database export failed", "path", path, "error", err)
		return "", err
	}

	a.logger.Info("database exported", "path", path, "bytes", written)
	events.Notify(a.cfg.eventClient, events.Event{Type: events.EventDatabaseExported, Path: path})
	return path, nil
}

// PublishExport uploads a database copy to the configured bucket. An empty
// path takes a fresh copy first.
func (a *App) PublishExport(ctx context.Context, path string) (*storage.UploadResult, error) {
	if a.cfg.uploader == nil {
		return nil, storage.ErrNotConfigured
	}

	if path == "" {
		var err error
		if path, err = a.ExportDatabase(ctx, ""); err != nil {
			return nil, err
		}
	}
	return storage.PublishFile(ctx, a.cfg.uploader, a.cfg.uploadPrefix, path)
}
