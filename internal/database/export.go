package database

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/thenoetrevino/clubhouse/internal/fsutil"
	"github.com/thenoetrevino/clubhouse/internal/models"
)

// ============================================================================
// CSV Export
// ============================================================================

// Human-readable column labels per locale
var fieldLabels = map[string]map[string]string{
	"zh": {
		"ID":              "编号",
		"TeamName":        "球队名称",
		"TeamWealth":      "球队财富（万）",
		"TeamFoundYear":   "成立年份",
		"TeamLocation":    "所在地区",
		"SupporterCount":  "支持者数量",
		"StadiumName":     "主场名称",
		"Nickname":        "球队昵称",
		"BelongingLeague": "联赛ID",
	},
	"en": {
		"ID":              "ID",
		"TeamName":        "Team Name",
		"TeamWealth":      "Wealth (10k)",
		"TeamFoundYear":   "Founded",
		"TeamLocation":    "Location",
		"SupporterCount":  "Supporters",
		"StadiumName":     "Stadium",
		"Nickname":        "Nickname",
		"BelongingLeague": "League ID",
	},
}

// HeaderLabels returns the CSV header for locale. Unknown locales fall back
// to the raw column names.
func HeaderLabels(locale string) []string {
	labels := fieldLabels[locale]
	header := make([]string, len(models.TeamFieldNames))
	for i, field := range models.TeamFieldNames {
		if label, ok := labels[field]; ok {
			header[i] = label
		} else {
			header[i] = field
		}
	}
	return header
}

// WriteTeamsCSV writes header and one row per team. Fields are quoted when
// they contain commas, quotes or newlines.
func WriteTeamsCSV(w io.Writer, header []string, teams []*models.TeamRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, t := range teams {
		if err := cw.Write(t.Fields()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportTeamsCSV writes the CSV to path atomically.
func ExportTeamsCSV(path string, header []string, teams []*models.TeamRecord) error {
	err := fsutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return WriteTeamsCSV(w, header, teams)
	})
	if err != nil {
		return &models.IOError{Op: "export csv", Path: path, Err: err}
	}
	slog.Info("exported team list", "path", path, "teams", len(teams))
	return nil
}

// ============================================================================
// Database Copy
// ============================================================================

// sideFiles are the write-ahead log companions SQLite keeps next to the main file
var sideFiles = []string{"-wal", "-shm"}

// ExportCopy checkpoints the write-ahead log, closes the connection, copies
// the database file and any side files to dest, then reopens the connection.
// The reopen runs on every exit path. It returns the number of bytes copied.
func (s *Store) ExportCopy(ctx context.Context, dest string) (written int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.handle()
	if err != nil {
		return 0, err
	}

	absDest, err := filepath.Abs(dest)
	if err != nil {
		return 0, &models.IOError{Op: "export database", Path: dest, Err: err}
	}
	if absDest == s.path {
		return 0, &models.IOError{Op: "export database", Path: dest, Err: errors.New("destination is the open database")}
	}

	var busy, logFrames, checkpointed int
	if err := db.QueryRowxContext(ctx, `PRAGMA wal_checkpoint(FULL)`).Scan(&busy, &logFrames, &checkpointed); err != nil {
		return 0, &models.StorageError{Op: "checkpoint", Err: err}
	}
	if busy != 0 {
		slog.Warn("checkpoint could not complete", "path", s.path, "log_frames", logFrames, "checkpointed", checkpointed)
	}

	if err := db.Close(); err != nil {
		return 0, &models.StorageError{Op: "close before export", Err: err}
	}
	s.db = nil

	defer func() {
		reopened, reopenErr := connect(context.WithoutCancel(ctx), s.path)
		if reopenErr != nil {
			slog.Error("failed to reopen database after export", "path", s.path, "error", reopenErr)
			err = errors.Join(err, &models.StorageError{Op: "reopen after export", Err: reopenErr})
			return
		}
		s.db = reopened
	}()

	written, err = copyWithSideFiles(s.path, absDest)
	if err != nil {
		return 0, err
	}

	slog.Info("exported database", "source", s.path, "dest", absDest, "bytes", written)
	return written, nil
}

// copyWithSideFiles copies src and whichever side files exist. Side files
// left at dest by an earlier export are removed when src has none, so the
// copy never pairs with a stale log. On failure everything written to dest
// is removed again.
func copyWithSideFiles(src, dest string) (total int64, err error) {
	written := []string{}
	defer func() {
		if err == nil {
			return
		}
		for _, p := range written {
			if rmErr := fsutil.RemoveIfExists(p); rmErr != nil {
				slog.Warn("failed to remove partial export", "path", p, "error", rmErr)
			}
		}
	}()

	total, err = fsutil.CopyFileAtomic(src, dest)
	if err != nil {
		return 0, &models.IOError{Op: "copy database", Path: dest, Err: err}
	}
	written = append(written, dest)

	for _, ext := range sideFiles {
		from, to := src+ext, dest+ext
		if !fsutil.Exists(from) {
			if err := fsutil.RemoveIfExists(to); err != nil {
				return 0, &models.IOError{Op: "remove stale side file", Path: to, Err: err}
			}
			continue
		}
		n, err := fsutil.CopyFileAtomic(from, to)
		if err != nil {
			return 0, &models.IOError{Op: fmt.Sprintf("copy %s file", ext), Path: to, Err: err}
		}
		written = append(written, to)
		total += n
	}
	return total, nil
}
