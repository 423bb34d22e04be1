package cli

import (
	"context"
	"testing"

	"github.com/spf13/cobra"
	clubcli "github.com/thenoetrevino/clubhouse/internal/cli"
	"github.com/thenoetrevino/clubhouse/internal/config"
	"github.com/thenoetrevino/clubhouse/internal/testutil"
)

// SetupCLITest opens a session on a fresh fixture database
func SetupCLITest(t *testing.T) *clubcli.CLI {
	t.Helper()
	return SetupCLITestAt(t, testutil.NewTestDB(t))
}

// SetupCLITestAt opens a session on the database at path
func SetupCLITestAt(t *testing.T, path string) *clubcli.CLI {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.CSV.Locale = "en"
	return SetupCLITestWithConfig(t, path, cfg)
}

// SetupCLITestWithConfig opens a session on path configured by cfg
func SetupCLITestWithConfig(t *testing.T, path string, cfg *config.Config) *clubcli.CLI {
	t.Helper()

	session, err := clubcli.NewCLI(context.Background(), cfg, path)
	if err != nil {
		t.Fatalf("Failed to open CLI session: %v", err)
	}
	t.Cleanup(func() {
		if err := session.Close(); err != nil {
			t.Errorf("Failed to close CLI session: %v", err)
		}
	})
	return session
}

// ExecuteCLICommand runs cmd with the session in its context and returns
// everything it printed.
func ExecuteCLICommand(t *testing.T, session *clubcli.CLI, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	if session == nil {
		t.Fatal("session cannot be nil - SetupCLITest must be called first")
	}

	cmd.SetContext(clubcli.WithCLI(context.Background(), session))
	return testutil.ExecuteCommand(t, cmd, args...)
}
