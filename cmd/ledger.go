package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Usage ledger commands",
}

var ledgerShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show coverage counts, or the coverage log of one staff member",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLedgerShow,
}

func init() {
	ledgerCmd.AddCommand(ledgerShowCmd)
	rootCmd.AddCommand(ledgerCmd)
}

func runLedgerShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, closeSvc, err := newService(cfg)
	if err != nil {
		return err
	}
	defer closeSvc()

	l := svc.Ledger(context.Background())
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	if len(args) == 1 {
		e, ok := l.Entry(args[0])
		if !ok {
			return fmt.Errorf("%s is not in the ledger", args[0])
		}
		fmt.Fprintf(w, "%s covered %d time(s)\n", args[0], e.TimesCovered)
		fmt.Fprintln(w, "DATE\tCOVERED FOR\tPERIOD")
		for _, le := range e.CoverageLog {
			fmt.Fprintf(w, "%s\t%s\t%s\n", le.Date, le.CoveredFor, le.Period.Label())
		}
		return w.Flush()
	}
	names := l.Names()
	fmt.Fprintln(w, "NAME\tTIMES COVERED")
	for _, n := range names {
		fmt.Fprintf(w, "%s\t%d\n", n, l.Count(n))
	}
	fmt.Fprintf(w, "\nFairness: %.1f\n", l.Fairness(names))
	return w.Flush()
}
