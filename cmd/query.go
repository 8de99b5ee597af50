package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/pable/go-cs-matchlog/internal/storage"
)

var queryCmd = &cobra.Command{
	Use:   "query <hash-prefix> <path>",
	Short: "Print part of a stored match document",
	Long: `Select part of a stored match document with a gjson path and print it as JSON.

Examples:
  csmatch query 3fa1 players.#.name
  csmatch query 3fa1 'players.#(name=="s1mple").flashStats'
  csmatch query 3fa1 'rounds.#(winReason=="bomb_defused")#.number'`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	prefix, path := args[0], args[1]

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
	doc, err := db.GetMatchDocument(summary.Hash)
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}

	res := gjson.GetBytes(doc, path)
	if !res.Exists() {
		return fmt.Errorf("path %q matched nothing", path)
	}
	fmt.Fprintln(os.Stdout, res.Raw)
	return nil
}
