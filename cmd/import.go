package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/ledger"
	"github.com/google/subcommands"
)

type importCmd struct {
	format  string
	records string
	date    string
	categ   string
	amount  string
	kind    string
	note    string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import records from a CSV or JSON export" }
func (*importCmd) Usage() string {
	return `lfp import [-format csv|json] [jsonpath mappings...] <file>

  Reads records from another tool's export and appends them to the ledger.
  CSV expects the date,category,amount,type,note column layout. JSON is
  mapped with jsonpath expressions, overridable per field.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	m := ledger.DefaultJSONMapping()
	f.StringVar(&c.format, "format", "csv", "Input format (csv, json)")
	f.StringVar(&c.records, "records", m.Records, "jsonpath selecting the list of entries (json only)")
	f.StringVar(&c.date, "date", m.Date, "jsonpath of the date field (json only)")
	f.StringVar(&c.categ, "category", m.Category, "jsonpath of the category field (json only)")
	f.StringVar(&c.amount, "amount", m.Amount, "jsonpath of the amount field (json only)")
	f.StringVar(&c.kind, "kind", m.Kind, "jsonpath of the kind field (json only)")
	f.StringVar(&c.note, "note", m.Note, "jsonpath of the note field (json only)")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one input file")
		return subcommands.ExitUsageError
	}

	file, err := os.Open(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	defer file.Close()

	var records []ledger.TransactionRecord
	switch c.format {
	case "csv":
		records, err = ledger.ImportCSV(file, *currency)
	case "json":
		mapping := ledger.JSONMapping{
			Records:  c.records,
			Date:     c.date,
			Category: c.categ,
			Amount:   c.amount,
			Kind:     c.kind,
			Note:     c.note,
		}
		records, err = ledger.ImportJSON(file, mapping, *currency)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}
	if err != nil {
		return fail(err)
	}

	l := openLedger()
	for _, rec := range records {
		if _, err := l.Store().Append(rec); err != nil {
			return fail(err)
		}
	}
	fmt.Printf("Imported %d records from %s\n", len(records), f.Arg(0))
	return subcommands.ExitSuccess
}
