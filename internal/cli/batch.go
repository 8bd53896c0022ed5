package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/sstrack/internal/worker"
)

var (
	concurrency  int
	batchTimeout time.Duration
)

var batchCmd = &cobra.Command{
	Use:   "batch <manifest>",
	Short: "Ingest every document listed in a manifest in parallel",
	Long: `Batch reads a manifest with one kind,owner_id,path line per document and
ingests them concurrently. Blank lines and lines starting with # are
skipped; relative paths resolve against the manifest's directory.

Example manifest:
  # kind,owner_id,path
  company,emp-1,docs/pgr-2024.pdf
  aso,func-12,docs/aso-admissional.png
  training,func-12,docs/nr35.pdf

Example:
  sstrack batch manifest.csv --concurrency 8`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: concurrency.workers)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for the batch")
}

func runBatch(cmd *cobra.Command, args []string) error {
	manifest := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}

	a, err := newApp(cfg, true)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	processor := worker.NewBatchProcessor(a.pipeline, cfg.Concurrency.Workers, a.logger)
	results, err := processor.ProcessFile(ctx, manifest)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failures := 0
	for _, r := range results {
		if r.Err() != nil {
			failures++
			fmt.Fprintf(out, "✗ line %d %s %s: %v\n", r.Entry.Line, r.Entry.Kind, r.Entry.Path, r.Err())
			continue
		}
		fmt.Fprintf(out, "✓ line %d %s %s -> %s %s\n", r.Entry.Line, r.Entry.Kind, r.Entry.Path, r.Record.Table, r.Record.ID)
	}

	fmt.Fprintf(out, "\nTotal: %d  Success: %d  Failures: %d\n", len(results), len(results)-failures, failures)
	if failures > 0 {
		return fmt.Errorf("%d of %d documents failed", failures, len(results))
	}
	return nil
}
