package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type categoriesCmd struct{}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "list every category used in the ledger" }
func (*categoriesCmd) Usage() string {
	return `lfp categories

  Lists the distinct categories found across all record files, sorted.
`
}

func (*categoriesCmd) SetFlags(_ *flag.FlagSet) {}

func (*categoriesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l := openLedger()
	categories, err := l.Categories()
	if err != nil {
		return fail(err)
	}
	for _, c := range categories {
		fmt.Println(c)
	}
	return subcommands.ExitSuccess
}
