package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-matchlog/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored matches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	matches, err := db.ListMatches()
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'csmatch parse <match.log>' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-14s  %-12s  %-10s  %-28s  %7s  %s\n",
		"HASH", "MAP", "DATE", "TEAMS", "SCORE", "ROUNDS")
	fmt.Fprintf(os.Stdout, "%-14s  %-12s  %-10s  %-28s  %7s  %s\n",
		"──────────────", "────────────", "──────────", "────────────────────────────", "───────", "──────")
	for _, m := range matches {
		teams := m.CTTeam + " vs " + m.TTeam
		score := fmt.Sprintf("%d-%d", m.CTTeamScore, m.TTeamScore)
		fmt.Fprintf(os.Stdout, "%-14s  %-12s  %-10s  %-28s  %7s  %d\n",
			m.Hash[:12], m.MapName, m.MatchDate, teams, score, m.Rounds)
	}
	return nil
}
