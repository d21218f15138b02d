// Package cmd implements the CLI application to manage a personal ledger.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/ledger"
	"github.com/etnz/ledger/renderer"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "records")
	c.Register(&categoriesCmd{}, "records")
	c.Register(&importCmd{}, "records")

	c.Register(&reportCmd{}, "reports")
	c.Register(&exportCmd{}, "reports")

	c.Register(&assistCmd{}, "assistant")
	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data-dir", "data", "Path to the folder holding the monthly record files")
var reportsDir = flag.String("reports-dir", "reports", "Path to the folder holding the generated reports")
var currency = flag.String("currency", "EUR", "ISO 4217 code of the ledger currency")

// openLedger is the central function to open the ledger on the app folders.
func openLedger() *ledger.Ledger {
	l := ledger.New(*dataDir, *reportsDir, *currency)
	l.Cache().SetMarkdown(renderer.ReportMarkdown)
	return l
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when the terminal renderer cannot be built.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// fail prints err and returns the standard failure status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
