package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/clubhouse/internal/cli"
	"github.com/thenoetrevino/clubhouse/internal/cli/db"
	"github.com/thenoetrevino/clubhouse/internal/cli/logo"
	"github.com/thenoetrevino/clubhouse/internal/cli/staff"
	"github.com/thenoetrevino/clubhouse/internal/cli/styles"
	"github.com/thenoetrevino/clubhouse/internal/cli/team"
	"github.com/thenoetrevino/clubhouse/internal/config"
	"github.com/thenoetrevino/clubhouse/internal/logging"
)

// Commands annotated with noSession run without opening the database
const noSession = "clubhouse/no-session"

var (
	dbPath  string
	session *cli.CLI
	logFile *os.File
)

// NewRootCmd builds the clubhouse command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "clubhouse",
		Short: "Clubhouse - edit the teams and staff of a club database",
		Long: `Clubhouse opens a club database (the League, Teams and Staff tables of a SQLite
file) to browse and edit teams and staff, replace team logos, export the team
list to CSV and take consistent copies of the database.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file (default: database in config, then ./database.db)")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	})

	rootCmd.AddCommand(team.TeamCmd())
	rootCmd.AddCommand(staff.StaffCmd())
	rootCmd.AddCommand(db.DBCmd())
	rootCmd.AddCommand(logo.LogoCmd())
	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(ConfigCmd())

	return rootCmd
}

func setup(cmd *cobra.Command, args []string) error {
	sessionless := cmd.Annotations[noSession] == "true" || cmd.Name() == "help"

	cfg, err := config.Load()
	if err != nil {
		if !sessionless {
			return fmt.Errorf("failed to load config: %w", err)
		}
		// config init has to run against a broken file to replace it
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to load config, using defaults: %v\n", err)
		cfg = config.DefaultConfig()
	}
	styles.Init(cfg.ColorScheme)

	if logFile, err = logging.Init(cfg.Log); err != nil {
		// Logging is best effort, commands still run
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to initialize logging: %v\n", err)
	}

	if sessionless {
		return nil
	}

	session, err = cli.NewCLI(cmd.Context(), cfg, dbPath)
	if err != nil {
		return err
	}
	cmd.SetContext(cli.WithCLI(cmd.Context(), session))
	return nil
}

func cleanup() {
	if session != nil {
		if err := session.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
		session = nil
	}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// Execute runs the command line and returns the process exit code
func Execute(ctx context.Context) int {
	return execute(ctx, NewRootCmd(), os.Args[1:])
}

func execute(ctx context.Context, rootCmd *cobra.Command, args []string) int {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	cleanup()

	if err == nil {
		return cli.ExitSuccess
	}
	if !cli.IsReported(err) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		if cli.ExitCode(err) == cli.ExitUsage {
			fmt.Fprintln(rootCmd.ErrOrStderr(), "Run 'clubhouse --help' for usage.")
		}
	}
	return cli.ExitCode(err)
}
