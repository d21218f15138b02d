package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/ledger"
	"github.com/etnz/ledger/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type assistCmd struct {
	period string
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `lfp assist [-p <period>] [question...]

  Starts an interactive session with an assistant that has the period's
  report in context. With a question argument, answers once and exits.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", ledger.KeyOf(ledger.Today()).String(), "Period whose report is given to the assistant")
}

const assistInstruction = `You are a personal finance advisor. The user shares a
report of their personal ledger below. Answer questions about it factually,
point out unusual category totals, and keep answers short. Amounts in the
report are authoritative: never recompute or guess figures.`

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	key, err := ledger.ParsePeriodKey(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	l := openLedger()
	rep, err := l.GetReport(key, false)
	if err != nil {
		return fail(err)
	}
	records, err := l.ListRecords(key)
	if err != nil {
		return fail(err)
	}
	md := renderer.ReportMarkdown(rep, records)

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{
			{Text: assistInstruction},
			{Text: md},
		}},
	}
	chat, err := client.Chats.Create(ctx, "gemini-2.5-pro", config, nil)
	if err != nil {
		return fail(err)
	}

	if f.NArg() > 0 {
		return c.ask(ctx, chat, strings.Join(f.Args(), " "))
	}

	fmt.Println("Ask about your report. Type 'bye' to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("assist> ")
		if !scanner.Scan() {
			return subcommands.ExitSuccess
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "bye" {
			return subcommands.ExitSuccess
		}
		if status := c.ask(ctx, chat, question); status != subcommands.ExitSuccess {
			return status
		}
	}
}

func (c *assistCmd) ask(ctx context.Context, chat *genai.Chat, question string) subcommands.ExitStatus {
	resp, err := chat.Send(ctx, &genai.Part{Text: question})
	if err != nil {
		return fail(err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return fail(fmt.Errorf("no response from the assistant"))
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			printMarkdown(part.Text)
		}
	}
	return subcommands.ExitSuccess
}
