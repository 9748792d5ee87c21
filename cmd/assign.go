package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/coverage/app"
)

var assignOpts struct {
	date    string
	even    bool
	out     []string
	am      []string
	pm      []string
	roster  string
	sheet   string
	export  string
	reports string
}

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Assign substitutes for absent staff and write the report",
	Example: `  coverage assign --date 2026-10-21 --even --out "Smith, John" --out "Doe, Jane"
  coverage assign --out "Brown, Bob" --pm "Brown, Bob" --export csv`,
	RunE: runAssign,
}

func init() {
	f := assignCmd.Flags()
	f.StringVar(&assignOpts.date, "date", "", "run date (YYYY-MM-DD), defaults to today")
	f.BoolVar(&assignOpts.even, "even", false, "the run date is an even day")
	f.StringArrayVar(&assignOpts.out, "out", nil, "absent staff member, repeatable")
	f.StringArrayVar(&assignOpts.am, "am", nil, "absent staff member covered in the morning only, repeatable")
	f.StringArrayVar(&assignOpts.pm, "pm", nil, "absent staff member covered in the afternoon only, repeatable")
	f.StringVar(&assignOpts.roster, "roster", "", "schedule file, overrides roster.path")
	f.StringVar(&assignOpts.sheet, "sheet", "", "XLSX sheet, overrides roster.sheet")
	f.StringVar(&assignOpts.export, "export", "", "also export the outcome as json, csv or yaml")
	f.StringVar(&assignOpts.reports, "reports", "", "report directory, overrides report.dir")
	rootCmd.AddCommand(assignCmd)
}

func buildRequest(now time.Time) app.Request {
	req := app.Request{
		Date:        assignOpts.date,
		EvenDay:     assignOpts.even,
		RosterPath:  assignOpts.roster,
		Sheet:       assignOpts.sheet,
		Preferences: map[string]string{},
	}
	if req.Date == "" {
		req.Date = now.Format(app.DateLayout)
	}
	seen := map[string]bool{}
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			req.Out = append(req.Out, name)
		}
	}
	for _, n := range assignOpts.out {
		add(n)
	}
	for _, n := range assignOpts.am {
		add(n)
		req.Preferences[n] = "am"
	}
	for _, n := range assignOpts.pm {
		add(n)
		req.Preferences[n] = "pm"
	}
	return req
}

func runAssign(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if assignOpts.export != "" {
		cfg.Report.Export = assignOpts.export
	}
	if assignOpts.reports != "" {
		cfg.Report.Dir = assignOpts.reports
	}
	if err := cfg.Report.Validate(); err != nil {
		return err
	}
	svc, closeSvc, err := newService(cfg)
	if err != nil {
		return err
	}
	defer closeSvc()

	res, err := svc.Run(ctx, buildRequest(time.Now()))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprint(out, res.Report); err != nil {
		return err
	}
	for _, n := range res.Unknown {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s is not on the roster\n", n)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "report written to %s\n", res.ReportPath)
	if res.ExportPath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "export written to %s\n", res.ExportPath)
	}
	return nil
}
