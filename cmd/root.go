package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-matchlog/internal/config"
	"github.com/pable/go-cs-matchlog/internal/logging"
)

var (
	cfg      = config.Load()
	dbPath   string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "csmatch",
	Short: "CS:GO match log statistics tool",
	Long:  "Parse CS:GO server console logs into a per-match statistics document, store it, and serve it over HTTP.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Configure(logLevel, os.Stderr)
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.DBPath, "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(roundsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
}

// logArg returns the log path from args, falling back to CSMATCH_LOG.
func logArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.LogPath != "" {
		return cfg.LogPath, nil
	}
	return "", fmt.Errorf("no log file given and CSMATCH_LOG is not set")
}
