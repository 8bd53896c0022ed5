package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ppiankov/sstrack/internal/classify"
	"github.com/ppiankov/sstrack/internal/dates"
	"github.com/ppiankov/sstrack/internal/model"
	"github.com/ppiankov/sstrack/internal/norm"
	"github.com/ppiankov/sstrack/internal/rules"
	"github.com/ppiankov/sstrack/internal/validate"
)

var rulesJSON bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the training rule catalog and evaluate single rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := rules.Catalog()
		if rulesJSON {
			return writeJSON(cmd.OutOrStdout(), catalog)
		}
		return printCatalog(cmd.OutOrStdout(), catalog)
	},
}

var (
	ruleDate   string
	ruleNorm   string
	ruleModule string
	ruleKind   string
	ruleHours  int
)

var rulesExpirationCmd = &cobra.Command{
	Use:   "expiration",
	Short: "Compute a training certificate's expiration date",
	Long: `Example:
  sstrack rules expiration --date 01/02/2024 --norm "NR 20" --module intermediário`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		issued, ok := dates.Parse(ruleDate)
		if !ok {
			return fmt.Errorf("unparseable date: %q", ruleDate)
		}
		exp, ok := rules.ComputeExpiration(issued, ruleNorm, ruleModule, model.ParseTrainingKind(ruleKind))
		out := cmd.OutOrStdout()
		for _, n := range exp.Notices {
			fmt.Fprintf(out, "[%s] %s\n", n.Severity, n.Message)
		}
		if !ok {
			return fmt.Errorf("no expiration rule for %q", ruleNorm)
		}
		if rulesJSON {
			return writeJSON(out, map[string]interface{}{
				"norma":         exp.Norm,
				"modulo":        exp.Tier,
				"validade_anos": exp.ValidityYears,
				"vencimento":    dates.Format(exp.Date),
			})
		}
		fmt.Fprintf(out, "%s valid for %d years: %s\n", exp.Norm, exp.ValidityYears, dates.Format(exp.Date))
		return nil
	},
}

var rulesHoursCmd = &cobra.Command{
	Use:   "hours",
	Short: "Check a workload against the legal minimum",
	Long: `Example:
  sstrack rules hours --norm NR-33 --module supervisor --kind formação --hours 32`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res := validate.ValidateHours(ruleNorm, ruleModule, model.ParseTrainingKind(ruleKind), ruleHours)
		if rulesJSON {
			return writeJSON(cmd.OutOrStdout(), res)
		}
		mark := "✓"
		if !res.OK {
			mark = "✗"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, res.Message)
		return nil
	},
}

var rulesNormalizeCmd = &cobra.Command{
	Use:   "normalize <text>",
	Short: "Print the canonical norm for free text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, ok := norm.Normalize(args[0])
		if !ok {
			return fmt.Errorf("empty norm")
		}
		fmt.Fprintln(cmd.OutOrStdout(), c)
		return nil
	},
}

var rulesDateCmd = &cobra.Command{
	Use:   "date <text>",
	Short: "Extract the first date from free text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, ok := dates.Parse(args[0])
		if !ok {
			return fmt.Errorf("no date found in %q", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), dates.Format(d))
		return nil
	},
}

var rulesClassifyCmd = &cobra.Command{
	Use:   "classify <document type>",
	Short: "Classify a company document type and its validity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc := classify.CompanyDocument(args[0])
		out := cmd.OutOrStdout()
		if ruleDate == "" {
			fmt.Fprintf(out, "%s (%d years)\n", doc.Kind, doc.ValidityYears)
			return nil
		}
		issued, ok := dates.Parse(ruleDate)
		if !ok {
			return fmt.Errorf("unparseable date: %q", ruleDate)
		}
		fmt.Fprintf(out, "%s (%d years): %s\n", doc.Kind, doc.ValidityYears, dates.Format(doc.Expiration(issued)))
		return nil
	},
}

func printCatalog(w io.Writer, catalog []rules.Row) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NORMA\tMÓDULO\tFORMAÇÃO\tRECICLAGEM\tVALIDADE")
	for _, r := range catalog {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Norm, orDash(r.Tier), hoursOf(r.InitialHours), hoursOf(r.RecurringHours), yearsOf(r.ValidityYears))
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func hoursOf(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v) + "h"
}

func yearsOf(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v) + "a"
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.PersistentFlags().BoolVar(&rulesJSON, "json", false, "print JSON")

	rulesExpirationCmd.Flags().StringVar(&ruleDate, "date", "", "completion date")
	rulesExpirationCmd.Flags().StringVar(&ruleNorm, "norm", "", "norm as written on the certificate")
	rulesExpirationCmd.Flags().StringVar(&ruleModule, "module", "", "module or tier")
	rulesExpirationCmd.Flags().StringVar(&ruleKind, "kind", "", "formação or reciclagem")
	_ = rulesExpirationCmd.MarkFlagRequired("date")
	_ = rulesExpirationCmd.MarkFlagRequired("norm")

	rulesHoursCmd.Flags().StringVar(&ruleNorm, "norm", "", "norm as written on the certificate")
	rulesHoursCmd.Flags().StringVar(&ruleModule, "module", "", "module or role")
	rulesHoursCmd.Flags().StringVar(&ruleKind, "kind", "", "formação or reciclagem")
	rulesHoursCmd.Flags().IntVar(&ruleHours, "hours", 0, "workload in hours")
	_ = rulesHoursCmd.MarkFlagRequired("norm")

	rulesClassifyCmd.Flags().StringVar(&ruleDate, "issued", "", "issuance date, to compute the expiration")

	rulesCmd.AddCommand(rulesExpirationCmd, rulesHoursCmd, rulesNormalizeCmd, rulesDateCmd, rulesClassifyCmd)
}
