package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/sstrack/internal/llm"
	"github.com/ppiankov/sstrack/internal/model"
	"github.com/ppiankov/sstrack/internal/pipeline"
)

var (
	ingestTimeout time.Duration
	ingestJSON    bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <company|aso|training> <owner-id> <file>",
	Short: "Read one document with the AI provider and store the record",
	Long: `Ingest uploads a document, asks the AI provider for its fields, applies
the compliance rules and appends the record to the store.

The owner id is the company id for company documents and the employee id
for ASOs and trainings.

Example:
  sstrack ingest training func-12 certificado-nr35.pdf
  sstrack ingest company emp-1 pgr-2024.pdf --json`,
	Args: cobra.ExactArgs(3),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().DurationVar(&ingestTimeout, "timeout", 2*time.Minute, "overall ingestion timeout")
	ingestCmd.Flags().BoolVar(&ingestJSON, "json", false, "print the stored record as JSON")
}

func runIngest(cmd *cobra.Command, args []string) error {
	kind, owner, path := args[0], args[1], args[2]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := newApp(cfg, true)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	doc, err := llm.ReadDocument(path)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), ingestTimeout)
	defer cancel()

	res, err := a.pipeline.Assemble(ctx, kind, pipeline.Input{OwnerID: owner, Document: doc})
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	if ingestJSON {
		return writeJSON(cmd.OutOrStdout(), res)
	}
	printResult(cmd.OutOrStdout(), res)
	return nil
}

func printResult(w io.Writer, res *pipeline.Result) {
	fmt.Fprintf(w, "✓ %s %s saved (arquivo %s)\n", res.Table, res.ID, res.AttachmentID)
	cols := model.Columns[res.Table]
	for i, v := range res.Values {
		if i < len(cols) {
			fmt.Fprintf(w, "  %-18s %s\n", cols[i]+":", v)
		}
	}
	for _, n := range res.Notices {
		fmt.Fprintf(w, "  [%s] %s\n", strings.ToUpper(string(n.Severity)), n.Message)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
