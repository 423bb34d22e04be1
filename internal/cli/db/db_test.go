package db

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clubcli "github.com/thenoetrevino/clubhouse/internal/cli"
	"github.com/thenoetrevino/clubhouse/internal/config"
	"github.com/thenoetrevino/clubhouse/internal/testutil"
	"github.com/thenoetrevino/clubhouse/internal/testutil/cli"
)

func TestInfo(t *testing.T) {
	session := cli.SetupCLITest(t)

	t.Run("human readable", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, session, InfoCmd())
		require.NoError(t, err)
		assert.Contains(t, output, session.App.DatabasePath())
		assert.Contains(t, output, "Teams:")
		assert.Contains(t, output, "kB")
	})

	t.Run("json", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, session, InfoCmd(), "--json")
		require.NoError(t, err)

		database := testutil.ParseJSON(t, output)["database"].(map[string]interface{})
		assert.Equal(t, float64(3), database["teams"])
		assert.Equal(t, float64(4), database["staff"])
		assert.Equal(t, map[string]interface{}{"1": "Premier", "2": "Championship"}, database["leagues"])
	})
}

func TestExport(t *testing.T) {
	session := cli.SetupCLITest(t)
	src := session.App.DatabasePath()

	t.Run("explicit destination", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "copy.db")

		output, err := cli.ExecuteCLICommand(t, session, ExportCmd(), "--out", out, "--quiet")
		require.NoError(t, err)
		assert.Equal(t, out+"\n", output)
		assert.Equal(t, testutil.Dump(t, src), testutil.Dump(t, out))
	})

	t.Run("default name next to the source", func(t *testing.T) {
		output, err := cli.ExecuteCLICommand(t, session, ExportCmd(), "--json")
		require.NoError(t, err)

		written := testutil.ParseJSON(t, output)["path"].(string)
		assert.Equal(t, filepath.Dir(src), filepath.Dir(written))
		assert.True(t, strings.HasPrefix(filepath.Base(written), "CFS_Teams_Export_"))
		_, err = os.Stat(written)
		assert.NoError(t, err)
	})

	t.Run("upload without a bucket", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "copy.db")

		output, err := cli.ExecuteCLICommand(t, session, ExportCmd(), "--out", out, "--upload")
		require.Error(t, err)
		assert.Equal(t, clubcli.ExitError, clubcli.ExitCode(err))
		assert.Contains(t, output, "CLUBHOUSE_BACKUP_BUCKET")
	})
}

func TestExportUpload(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		mu.Lock()
		paths = append(paths, r.Method+" "+r.URL.Path)
		mu.Unlock()
		w.Header().Set("ETag", `"feed"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.Backup = config.BackupConfig{
		Endpoint:        srv.URL,
		Region:          "us-east-1",
		Bucket:          "club-backups",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		Prefix:          "nightly",
	}
	session := cli.SetupCLITestWithConfig(t, testutil.NewTestDB(t), cfg)
	out := filepath.Join(t.TempDir(), "copy.db")

	output, err := cli.ExecuteCLICommand(t, session, ExportCmd(), "--out", out, "--upload", "--json")
	require.NoError(t, err)

	upload := testutil.ParseJSON(t, output)["upload"].(map[string]interface{})
	key := upload["key"].(string)
	assert.True(t, strings.HasPrefix(key, "nightly/"))
	assert.True(t, strings.HasSuffix(key, "-copy.db"))
	assert.Equal(t, "feed", upload["etag"])

	_, err = os.Stat(out)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, paths, 1)
	assert.Equal(t, "PUT /club-backups/"+key, paths[0])
}
