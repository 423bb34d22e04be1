// Package logo manages the L{id}.png team logos stored next to the database file
package logo

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/thenoetrevino/clubhouse/internal/fsutil"
	"github.com/thenoetrevino/clubhouse/internal/models"
	"golang.org/x/image/draw"
)

// DefaultSize is the edge length of a stored logo in pixels
const DefaultSize = 128

const cacheEntries = 64

// Path returns where the logo for teamID lives in dir
func Path(dir string, teamID int) string {
	return filepath.Join(dir, fmt.Sprintf("L%d.png", teamID))
}

type cached struct {
	modTime time.Time
	size    int64
	data    []byte
}

// Store reads and writes logos in one directory. Loaded bytes are cached
// until the file's size or modification time changes.
type Store struct {
	dir   string
	size  int
	cache *lru.Cache[string, cached]
}

// NewStore creates a logo store for dir. A size <= 0 uses DefaultSize.
func NewStore(dir string, size int) *Store {
	if size <= 0 {
		size = DefaultSize
	}
	cache, _ := lru.New[string, cached](cacheEntries)
	return &Store{dir: dir, size: size, cache: cache}
}

// Dir is the directory holding the logos
func (s *Store) Dir() string {
	return s.dir
}

// Size is the edge length of replaced logos
func (s *Store) Size() int {
	return s.size
}

// Load returns the logo bytes for teamID. The boolean is false when the file
// is missing or does not decode as an image.
func (s *Store) Load(teamID int) ([]byte, bool) {
	path := Path(s.dir, teamID)

	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to stat logo", "team_id", teamID, "path", path, "error", err)
		}
		s.cache.Remove(path)
		return nil, false
	}

	if c, ok := s.cache.Get(path); ok && c.modTime.Equal(info.ModTime()) && c.size == info.Size() {
		return c.data, true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("failed to read logo", "team_id", teamID, "path", path, "error", err)
		return nil, false
	}
	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		slog.Debug("logo does not decode", "team_id", teamID, "path", path, "error", err)
		return nil, false
	}

	s.cache.Add(path, cached{modTime: info.ModTime(), size: info.Size(), data: data})
	return data, true
}

// Replace decodes the image at source, fits it into a transparent square of
// the store's size and writes it as the team's logo.
func (s *Store) Replace(teamID int, source string) error {
	dest := Path(s.dir, teamID)

	f, err := os.Open(source)
	if err != nil {
		return &models.IOError{Op: "open logo source", Path: source, Err: err}
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		return &models.IOError{Op: "decode logo", Path: source, Err: err}
	}

	square, err := Fit(src, s.size)
	if err != nil {
		return &models.IOError{Op: "scale logo", Path: source, Err: err}
	}

	err = fsutil.WriteAtomic(dest, 0o644, func(w io.Writer) error {
		return png.Encode(w, square)
	})
	if err != nil {
		return &models.IOError{Op: "write logo", Path: dest, Err: err}
	}
	s.cache.Remove(dest)

	slog.Info("logo replaced",
		"team_id", teamID,
		"path", dest,
		"source_format", format,
		"source_size", fmt.Sprintf("%dx%d", src.Bounds().Dx(), src.Bounds().Dy()))
	return nil
}

// Fit scales src to fit inside a size x size canvas keeping its aspect
// ratio. The uncovered area stays transparent.
func Fit(src image.Image, size int) (*image.NRGBA, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, errors.New("image has no pixels")
	}

	tw, th := size, size
	if w > h {
		th = max(1, h*size/w)
	} else if h > w {
		tw = max(1, w*size/h)
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
	x0 := (size - tw) / 2
	y0 := (size - th) / 2
	draw.CatmullRom.Scale(canvas, image.Rect(x0, y0, x0+tw, y0+th), src, b, draw.Over, nil)
	return canvas, nil
}
