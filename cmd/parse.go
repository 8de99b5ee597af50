package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-matchlog/internal/aggregator"
	"github.com/pable/go-cs-matchlog/internal/logging"
	"github.com/pable/go-cs-matchlog/internal/parser"
	"github.com/pable/go-cs-matchlog/internal/report"
	"github.com/pable/go-cs-matchlog/internal/storage"
)

var parseFocus string

var parseCmd = &cobra.Command{
	Use:   "parse <match.log>",
	Short: "Parse a CS:GO console log and store match statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseFocus, "player", "", "highlight player by name")
}

func runParse(cmd *cobra.Command, args []string) error {
	logPath := args[0]
	log := logging.Logger()

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	fmt.Fprintf(os.Stdout, "Parsing %s...\n", logPath)
	raw, err := parser.ParseLog(logPath)
	if err != nil {
		return err
	}
	log.Debugf("scan: %d lines, %d ignored, %d restarts", raw.Scan.Lines, raw.Scan.Ignored, raw.Scan.Restarts)

	exists, err := db.MatchExists(raw.LogHash)
	if err != nil {
		return fmt.Errorf("check match: %w", err)
	}
	if exists {
		fmt.Fprintf(os.Stdout, "Log %s already stored, showing cached results.\n", raw.LogHash[:12])
		return showByHash(db, raw.LogHash, parseFocus)
	}

	md, err := aggregator.Aggregate(raw)
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}
	if err := db.InsertMatch(raw.LogHash, md); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	log.Infof("stored match %s (%s, %d rounds)", storage.MatchID(raw.LogHash), md.Map, len(md.Rounds))

	return showByHash(db, raw.LogHash, parseFocus)
}

// showByHash renders every stored table for one match.
func showByHash(db *storage.DB, hash, focus string) error {
	summary, err := db.GetMatchByPrefix(hash)
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if summary == nil {
		return fmt.Errorf("match not found: %s", hash)
	}
	md, err := db.LoadMatch(summary.Hash)
	if err != nil {
		return fmt.Errorf("load match: %w", err)
	}
	rows, err := db.GetPlayerMatchStats(summary.Hash)
	if err != nil {
		return fmt.Errorf("get player stats: %w", err)
	}

	report.PrintMatchHeader(os.Stdout, *summary, aggregator.AverageRoundLength(md.Rounds))
	report.PrintScoreboard(os.Stdout, rows, focus)
	report.PrintSideTable(os.Stdout, md.Players, focus)
	report.PrintFlashTable(os.Stdout, md.Players, focus)
	return nil
}
