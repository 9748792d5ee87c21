package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/coverage/core/model"
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Roster related commands",
}

var rosterLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List staff parsed from the schedule",
	RunE:  runRosterLs,
}

var rosterLsOpts struct {
	path  string
	sheet string
}

func init() {
	rosterLsCmd.Flags().StringVar(&rosterLsOpts.path, "roster", "", "schedule file, overrides roster.path")
	rosterLsCmd.Flags().StringVar(&rosterLsOpts.sheet, "sheet", "", "XLSX sheet, overrides roster.sheet")
	rosterCmd.AddCommand(rosterLsCmd)
	rootCmd.AddCommand(rosterCmd)
}

func joinPeriods(ps []model.Period) string {
	if len(ps) == 0 {
		return "-"
	}
	s := make([]string, len(ps))
	for i, p := range ps {
		s[i] = string(p)
	}
	return strings.Join(s, ",")
}

func runRosterLs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, closeSvc, err := newService(cfg)
	if err != nil {
		return err
	}
	defer closeSvc()

	ros, err := svc.Roster(rosterLsOpts.path, rosterLsOpts.sheet)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tNEED\tCT\tSTANDARD\tISS\tEVEN\tODD\tOTHER")
	for _, s := range ros.Staff() {
		a := s.Availability
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n", s.Name,
			joinPeriods(s.Need), joinPeriods(s.NeedCT), joinPeriods(a.Standard),
			joinPeriods(a.ISS), joinPeriods(a.EvenDay), joinPeriods(a.OddDay), joinPeriods(a.Other))
	}
	return w.Flush()
}
