package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/sstrack/internal/dates"
	"github.com/ppiankov/sstrack/internal/status"
)

var (
	reportJSON     bool
	reportYAML     bool
	reportSoonDays int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize expired and expiring records",
	Long: `Report reads every stored company document, ASO and training and lists
the records that are expired or expire within the expiring-soon window.

Example:
  sstrack report
  sstrack report --soon-days 60 --yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if reportSoonDays > 0 {
			cfg.Validation.ExpiringSoonDays = reportSoonDays
		}

		a, err := newApp(cfg, false)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		sum, err := a.pipeline.Compliance(cmd.Context(), true)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case reportJSON:
			return writeJSON(out, sum)
		case reportYAML:
			enc := yaml.NewEncoder(out)
			defer func() { _ = enc.Close() }()
			return enc.Encode(sum)
		}
		return printSummary(out, sum)
	},
}

func printSummary(w io.Writer, sum status.Summary) error {
	fmt.Fprintln(w, sum.String())
	if len(sum.Attention) == 0 {
		fmt.Fprintln(w, "Nothing expired or expiring.")
		return nil
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATUS\tVENCIMENTO\tDIAS\tTABELA\tDONO\tDOCUMENTO")
	for _, e := range sum.Attention {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n", e.Status, dates.Format(e.Expiration), e.DaysLeft, e.Table, e.Owner, e.Label)
	}
	return tw.Flush()
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "print JSON")
	reportCmd.Flags().BoolVar(&reportYAML, "yaml", false, "print YAML")
	reportCmd.Flags().IntVar(&reportSoonDays, "soon-days", 0, "expiring-soon window in days (default: validation.expiring_soon_days)")
	reportCmd.MarkFlagsMutuallyExclusive("json", "yaml")
}
