package database

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/clubhouse/internal/models"
	"github.com/thenoetrevino/clubhouse/internal/testutil"
)

func TestHeaderLabels(t *testing.T) {
	zh := HeaderLabels("zh")
	require.Len(t, zh, len(models.TeamFieldNames))
	assert.Equal(t, "编号", zh[0])
	assert.Equal(t, "联赛ID", zh[8])

	en := HeaderLabels("en")
	assert.Equal(t, "Team Name", en[1])

	raw := HeaderLabels("fr")
	assert.Equal(t, models.TeamFieldNames, raw)
}

func TestWriteTeamsCSV(t *testing.T) {
	teams := []*models.TeamRecord{
		{ID: 1, Name: "Red FC", Wealth: 100, FoundYear: 1892, Location: "Liverpool", SupporterCount: 50000, StadiumName: "Anfield", Nickname: "Reds", LeagueID: 1},
		{ID: 2, Name: `Club "Tricky", Ltd`, Location: "Line\nBreak"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTeamsCSV(&buf, HeaderLabels("en"), teams))

	lines := strings.SplitN(buf.String(), "\n", 3)
	assert.Equal(t, "ID,Team Name,Wealth (10k),Founded,Location,Supporters,Stadium,Nickname,League ID", lines[0])
	assert.Equal(t, "1,Red FC,100,1892,Liverpool,50000,Anfield,Reds,1", lines[1])

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err, "output parses back as CSV")
	require.Len(t, records, 3)
	assert.Equal(t, `Club "Tricky", Ltd`, records[2][1])
	assert.Equal(t, "Line\nBreak", records[2][4])
}

func TestExportTeamsCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "teams.csv")

	err := ExportTeamsCSV(path, HeaderLabels("zh"), []*models.TeamRecord{{ID: 7, Name: "Seven"}})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "编号,球队名称"))
	assert.Contains(t, string(data), "7,Seven,0,0,,0,,,0")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")

	err = ExportTeamsCSV(filepath.Join(dir, "missing", "teams.csv"), nil, nil)
	assert.ErrorIs(t, err, models.ErrIO)
}

func TestExportCopy(t *testing.T) {
	ctx := context.Background()

	t.Run("copy matches source", func(t *testing.T) {
		store := openFixture(t)
		require.NoError(t, store.UpdateTeam(ctx, 1, TeamUpdate{Name: "Red FC", Wealth: 999, Nickname: "Edited"}))

		dest := filepath.Join(t.TempDir(), "copy.db")
		n, err := store.ExportCopy(ctx, dest)
		require.NoError(t, err)
		assert.Positive(t, n)

		assert.Equal(t, testutil.Dump(t, store.Path()), testutil.Dump(t, dest))

		// The store is usable again after the copy
		teams, err := store.Teams(ctx)
		require.NoError(t, err)
		assert.Len(t, teams, 3)
	})

	t.Run("write-ahead log mode", func(t *testing.T) {
		path := testutil.NewTestDB(t)
		raw := testutil.OpenRaw(t, path)
		var mode string
		require.NoError(t, raw.QueryRow("PRAGMA journal_mode=WAL").Scan(&mode))
		require.Equal(t, "wal", mode)
		require.NoError(t, raw.Close())

		store, err := Open(ctx, path)
		require.NoError(t, err)
		defer store.Close()

		member, err := store.StaffMember(ctx, 1)
		require.NoError(t, err)
		require.NoError(t, store.UpdateStaff(ctx, 1, "Alicia", models.WithAbility(member.AbilityJSON, 88), 11))

		dest := filepath.Join(t.TempDir(), "copy.db")
		_, err = store.ExportCopy(ctx, dest)
		require.NoError(t, err)

		copied, err := Open(ctx, dest)
		require.NoError(t, err)
		defer copied.Close()

		got, err := copied.StaffMember(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Alicia", got.Name)
		assert.Equal(t, 88, got.Ability())
		assert.Equal(t, testutil.Dump(t, path), testutil.Dump(t, dest))
	})

	t.Run("destination is the source", func(t *testing.T) {
		store := openFixture(t)

		_, err := store.ExportCopy(ctx, store.Path())
		assert.ErrorIs(t, err, models.ErrIO)

		_, err = store.Teams(ctx)
		assert.NoError(t, err)
	})

	t.Run("unwritable destination reopens the store", func(t *testing.T) {
		store := openFixture(t)

		_, err := store.ExportCopy(ctx, filepath.Join(t.TempDir(), "missing", "copy.db"))
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrIO)

		teams, err := store.Teams(ctx)
		require.NoError(t, err)
		assert.Len(t, teams, 3)
	})

	t.Run("stale side files are removed", func(t *testing.T) {
		store := openFixture(t)
		dest := filepath.Join(t.TempDir(), "copy.db")
		require.NoError(t, os.WriteFile(dest+"-wal", []byte("stale"), 0o644))

		_, err := store.ExportCopy(ctx, dest)
		require.NoError(t, err)

		_, statErr := os.Stat(dest + "-wal")
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("side file failure removes the copy", func(t *testing.T) {
		store := openFixture(t)
		dest := filepath.Join(t.TempDir(), "copy.db")
		// A non-empty directory where the stale log would be cannot be removed
		require.NoError(t, os.MkdirAll(filepath.Join(dest+"-wal", "keep"), 0o755))

		_, err := store.ExportCopy(ctx, dest)
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrIO)
		assert.NoFileExists(t, dest)

		_, err = store.Teams(ctx)
		assert.NoError(t, err)
	})

	t.Run("closed store", func(t *testing.T) {
		store := openFixture(t)
		require.NoError(t, store.Close())

		_, err := store.ExportCopy(ctx, filepath.Join(t.TempDir(), "copy.db"))
		assert.ErrorIs(t, err, models.ErrNoDatabase)
	})
}
