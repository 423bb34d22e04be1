package logo

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/clubhouse/internal/models"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "L42.png"), Path("data", 42))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, 0)
	assert.Equal(t, DefaultSize, store.Size())

	t.Run("missing file", func(t *testing.T) {
		data, ok := store.Load(1)
		assert.False(t, ok)
		assert.Nil(t, data)
	})

	t.Run("corrupt file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(Path(dir, 2), []byte("not an image"), 0o644))
		data, ok := store.Load(2)
		assert.False(t, ok)
		assert.Nil(t, data)
	})

	t.Run("valid file", func(t *testing.T) {
		writePNG(t, Path(dir, 3), solid(4, 4, color.White))
		data, ok := store.Load(3)
		require.True(t, ok)

		_, format, err := image.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, "png", format)
	})

	t.Run("file removed after caching", func(t *testing.T) {
		writePNG(t, Path(dir, 4), solid(2, 2, color.Black))
		_, ok := store.Load(4)
		require.True(t, ok)

		require.NoError(t, os.Remove(Path(dir, 4)))
		_, ok = store.Load(4)
		assert.False(t, ok)
	})
}

func TestReplace(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, 64)

	t.Run("wide jpeg becomes a letterboxed square", func(t *testing.T) {
		src := filepath.Join(t.TempDir(), "wide.jpg")
		f, err := os.Create(src)
		require.NoError(t, err)
		require.NoError(t, jpeg.Encode(f, solid(200, 100, color.RGBA{R: 255, A: 255}), nil))
		require.NoError(t, f.Close())

		require.NoError(t, store.Replace(5, src))

		data, ok := store.Load(5)
		require.True(t, ok)
		img, format, err := image.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, "png", format)
		assert.Equal(t, 64, img.Bounds().Dx())
		assert.Equal(t, 64, img.Bounds().Dy())

		// Letterbox bands stay transparent, the middle is painted
		_, _, _, topAlpha := img.At(32, 0).RGBA()
		_, _, _, midAlpha := img.At(32, 32).RGBA()
		assert.Zero(t, topAlpha)
		assert.NotZero(t, midAlpha)
	})

	t.Run("replacing refreshes the cache", func(t *testing.T) {
		src := filepath.Join(t.TempDir(), "tall.png")
		writePNG(t, src, solid(10, 40, color.White))

		writePNG(t, Path(dir, 6), solid(3, 3, color.Black))
		before, ok := store.Load(6)
		require.True(t, ok)

		require.NoError(t, store.Replace(6, src))
		after, ok := store.Load(6)
		require.True(t, ok)
		assert.NotEqual(t, before, after)
	})

	t.Run("missing source", func(t *testing.T) {
		err := store.Replace(7, filepath.Join(t.TempDir(), "nope.png"))
		assert.ErrorIs(t, err, models.ErrIO)
		_, ok := store.Load(7)
		assert.False(t, ok)
	})

	t.Run("corrupt source keeps the old logo", func(t *testing.T) {
		writePNG(t, Path(dir, 8), solid(3, 3, color.Black))
		src := filepath.Join(t.TempDir(), "bad.png")
		require.NoError(t, os.WriteFile(src, []byte("garbage"), 0o644))

		err := store.Replace(8, src)
		assert.ErrorIs(t, err, models.ErrIO)

		_, ok := store.Load(8)
		assert.True(t, ok)
	})
}

func TestFit(t *testing.T) {
	out, err := Fit(solid(30, 90, color.White), 90)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 90, 90), out.Bounds())

	_, _, _, leftAlpha := out.At(0, 45).RGBA()
	_, _, _, centerAlpha := out.At(45, 45).RGBA()
	assert.Zero(t, leftAlpha)
	assert.NotZero(t, centerAlpha)

	_, err = Fit(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 10)
	assert.Error(t, err)
}
