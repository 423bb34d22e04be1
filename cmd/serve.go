package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/clubhouse/internal/cli"
	"github.com/thenoetrevino/clubhouse/internal/server"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the database over a JSON API",
		Long: `Serve teams, staff, logos and database copies over HTTP until interrupted.
Prometheus metrics are available at /metrics.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (default http.listen_addr from config)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return err
	}

	httpCfg := cliInstance.Config.HTTP
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		httpCfg.ListenAddr = addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cliInstance.App, httpCfg, cliInstance.Events, slog.Default())
	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://%s\n", cliInstance.App.DatabasePath(), httpCfg.ListenAddr)
	return srv.ListenAndServe(ctx)
}
