package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ledger"
	"github.com/etnz/ledger/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	period string
	force  bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display a monthly or yearly report" }
func (*reportCmd) Usage() string {
	return `lfp report [-p <period>] [-force]

  Displays the report of a period ("2025-10" for a month, "2025" for a
  year). Stale reports are rebuilt first; -force rebuilds unconditionally.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", ledger.KeyOf(ledger.Today()).String(), "Period to report on (defaults to the current month)")
	f.BoolVar(&c.force, "force", false, "Rebuild the report even when it is fresh")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	key, err := ledger.ParsePeriodKey(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	l := openLedger()
	rep, err := l.GetReport(key, c.force)
	if err != nil {
		return fail(err)
	}
	records, err := l.ListRecords(key)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.ReportMarkdown(rep, records))
	return subcommands.ExitSuccess
}
