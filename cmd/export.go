package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-matchlog/internal/aggregator"
	"github.com/pable/go-cs-matchlog/internal/parser"
)

var (
	exportOut    string
	exportIndent bool
)

var exportCmd = &cobra.Command{
	Use:   "export [match.log]",
	Short: "Write the match statistics document as a JSON file",
	Long: `Parse a match log and write its statistics document as a single JSON file.
The log defaults to $CSMATCH_LOG. Parent directories of --out are created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "match.json", "output JSON path (- for stdout)")
	exportCmd.Flags().BoolVar(&exportIndent, "indent", true, "indent the JSON output")
}

func runExport(cmd *cobra.Command, args []string) error {
	logPath, err := logArg(args)
	if err != nil {
		return err
	}
	raw, err := parser.ParseLog(logPath)
	if err != nil {
		return err
	}
	md, err := aggregator.Aggregate(raw)
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}

	var data []byte
	if exportIndent {
		data, err = json.MarshalIndent(md, "", "  ")
	} else {
		data, err = json.Marshal(md)
	}
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	data = append(data, '\n')

	if exportOut == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(exportOut), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(exportOut, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", exportOut, err)
	}
	fmt.Fprintf(os.Stdout, "Wrote %s (%d rounds, %d players)\n", exportOut, len(md.Rounds), len(md.Players))
	return nil
}
