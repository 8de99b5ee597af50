package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-matchlog/internal/aggregator"
	"github.com/pable/go-cs-matchlog/internal/logging"
	"github.com/pable/go-cs-matchlog/internal/parser"
	"github.com/pable/go-cs-matchlog/internal/server"
	"github.com/pable/go-cs-matchlog/internal/storage"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve [match.log]",
	Short: "Parse a match log once and serve its statistics over HTTP",
	Long: `Parse a match log at startup and serve the resulting document read-only.
The log defaults to $CSMATCH_LOG and the port to $PORT (3001).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", cfg.Port, "HTTP listen port")
}

func runServe(cmd *cobra.Command, args []string) error {
	logPath, err := logArg(args)
	if err != nil {
		return err
	}
	log := logging.Logger()

	raw, err := parser.ParseLog(logPath)
	if err != nil {
		return err
	}
	md, err := aggregator.Aggregate(raw)
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}

	srv, err := server.New(md, log)
	if err != nil {
		return err
	}
	srv.MatchID = storage.MatchID(raw.LogHash)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.ListenAndServe(ctx, fmt.Sprintf(":%d", servePort))
}
