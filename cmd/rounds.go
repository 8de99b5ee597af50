package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-matchlog/internal/model"
	"github.com/pable/go-cs-matchlog/internal/report"
	"github.com/pable/go-cs-matchlog/internal/storage"
)

var (
	roundsPlayer string
	roundsSide   string
	roundsChat   bool
)

// roundsCmd is the cobra command for the per-round drill-down of one match.
var roundsCmd = &cobra.Command{
	Use:   "rounds <hash-prefix>",
	Short: "Per-round results of one match, optionally for one player",
	Args:  cobra.ExactArgs(1),
	RunE:  runRounds,
}

func init() {
	roundsCmd.Flags().StringVar(&roundsPlayer, "player", "", "show one player's line per round")
	roundsCmd.Flags().StringVar(&roundsSide, "side", "", "only rounds won by side: CT or T")
	roundsCmd.Flags().BoolVar(&roundsChat, "chat", false, "print chat transcripts instead of the table")
}

// parseSideFilter accepts CT, T or empty (no filter), case-insensitively.
func parseSideFilter(s string) (side model.Side, set bool, err error) {
	if s == "" {
		return model.SideCT, false, nil
	}
	if err := side.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return model.SideCT, false, err
	}
	return side, true, nil
}

func filterRoundData(rounds []model.RoundData, side model.Side) []model.RoundData {
	var out []model.RoundData
	for _, r := range rounds {
		if r.WinnerSide == side {
			out = append(out, r)
		}
	}
	return out
}

func filterRoundResults(rounds []model.RoundResult, side model.Side) []model.RoundResult {
	var out []model.RoundResult
	for _, r := range rounds {
		if r.WinnerSide == side {
			out = append(out, r)
		}
	}
	return out
}

func runRounds(cmd *cobra.Command, args []string) error {
	prefix := args[0]
	side, filterSide, err := parseSideFilter(roundsSide)
	if err != nil {
		return fmt.Errorf("invalid --side: %w", err)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	summary, err := db.GetMatchByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if summary == nil {
		fmt.Fprintf(os.Stderr, "No match found with hash prefix %q\n", prefix)
		return nil
	}

	// The plain table comes from the flattened rows; player and chat views
	// need the full document.
	if roundsPlayer == "" && !roundsChat {
		results, err := db.GetRoundResults(summary.Hash)
		if err != nil {
			return fmt.Errorf("get round results: %w", err)
		}
		if filterSide {
			results = filterRoundResults(results, side)
		}
		if len(results) == 0 {
			fmt.Fprintln(os.Stderr, "No rounds match the given filters.")
			return nil
		}
		report.PrintRoundResults(os.Stdout, results)
		return nil
	}

	md, err := db.LoadMatch(summary.Hash)
	if err != nil {
		return fmt.Errorf("load match: %w", err)
	}
	rounds := md.Rounds
	if filterSide {
		rounds = filterRoundData(rounds, side)
	}
	if len(rounds) == 0 {
		fmt.Fprintln(os.Stderr, "No rounds match the given filters.")
		return nil
	}

	if roundsChat {
		report.PrintChat(os.Stdout, rounds)
		return nil
	}
	report.PrintPlayerRounds(os.Stdout, rounds, roundsPlayer)
	return nil
}
