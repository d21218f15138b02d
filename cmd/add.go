package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/ledger"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type addCmd struct {
	date     string
	category string
	amount   string
	kind     string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "append a record to the ledger" }
func (*addCmd) Usage() string {
	return `lfp add -c <category> -a <amount> [-d <date>] [-k <kind>] [note...]

  Appends one record to the current month's file and refreshes that month's
  report. The amount is always positive; the kind decides its effect on the
  balance.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "0d", "Date of the record (defaults to today)")
	f.StringVar(&c.category, "c", "", "Category of the record")
	f.StringVar(&c.amount, "a", "", "Amount of the record, a positive number")
	f.StringVar(&c.kind, "k", "expense", "Kind of record (expense, income)")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	value, err := decimal.NewFromString(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid amount: %q\n", c.amount)
		return subcommands.ExitUsageError
	}
	kind, err := ledger.ParseKind(c.kind)
	if err != nil {
		return fail(err)
	}

	l := openLedger()
	note := strings.Join(f.Args(), " ")
	id, err := l.Add(c.date, c.category, ledger.M(value, *currency), kind, note)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Added %s\n", id)

	// Refresh the touched month right away so the report folder stays
	// current without waiting for the next report command.
	if _, err := l.GetReport(id.Partition, false); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}
