// Package renderer turns reports into markdown documents. Rendering is a
// pure function of the report and its records: the same inputs always yield
// byte-identical output.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/ledger"
	md "github.com/nao1215/markdown"
)

// ReportMarkdown renders a report and its contributing records to a markdown
// string.
func ReportMarkdown(r *ledger.Report, records []ledger.TransactionRecord) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(r.Title)

	doc.H2("Summary")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", "Amount"},
		Rows: [][]string{
			{"Income", r.Aggregation.TotalIncome.String()},
			{"Expense", r.Aggregation.TotalExpense.String()},
			{"Net", r.Aggregation.NetBalance.String()},
		},
	})

	if len(r.Months) > 0 {
		doc.H2("Months")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
			Header:    []string{"Month", "Income", "Expense", "Net"},
			Rows:      [][]string{},
		}
		for _, m := range r.Months {
			table.Rows = append(table.Rows, []string{
				m.Key.String(),
				m.Income.String(),
				m.Expense.String(),
				m.Net.String(),
			})
		}
		doc.Table(table)
	}

	// Weekly detail only applies to single-month documents: multi-month ones
	// carry a Months table instead.
	if weeks := weeklyDetail(r, records); len(weeks) > 0 {
		doc.H2("Weeks")
		for _, week := range weeks {
			doc.H3(fmt.Sprintf("Week %d (%s to %s)", week.Index, week.From, week.To))
			doc.Table(breakdownTable(week.Expenses))
		}
	}

	writeBreakdown(doc, "Expenses", r.Aggregation.Expenses)
	writeBreakdown(doc, "Income", r.Aggregation.Incomes)

	if len(r.Trend) > 0 {
		doc.H2("Trend")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
			Header:    []string{"", "Income", "Expense", "Cumulative Expense"},
			Rows:      [][]string{},
		}
		for _, p := range r.Trend {
			table.Rows = append(table.Rows, []string{
				p.Label,
				p.Income.String(),
				p.Expense.String(),
				p.Cumulative.String(),
			})
		}
		doc.Table(table)
	}

	if len(records) > 0 {
		doc.H2("Transactions")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft, md.AlignLeft},
			Header:    []string{"Date", "Category", "Amount", "Type", "Note"},
			Rows:      [][]string{},
		}
		for _, rec := range records {
			table.Rows = append(table.Rows, []string{
				rec.Date.String(),
				rec.Category,
				rec.Amount.String(),
				string(rec.Kind),
				rec.Note,
			})
		}
		doc.Table(table)
	}

	return doc.String()
}

func weeklyDetail(r *ledger.Report, records []ledger.TransactionRecord) []ledger.WeeklyBreakdown {
	if len(r.Months) > 0 {
		return nil
	}
	return ledger.WeeklyBreakdowns(r.Key, records)
}

// writeBreakdown appends one per-category section. Empty breakdowns print
// nothing, not an empty table.
func writeBreakdown(doc *md.Markdown, title string, b ledger.Breakdown) {
	if len(b) == 0 {
		return
	}
	doc.H2(title)
	doc.Table(breakdownTable(b))
}

func breakdownTable(b ledger.Breakdown) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Category", "Amount", "Count", "Share"},
		Rows:      [][]string{},
	}
	percents := b.Percents()
	for i, ct := range b {
		table.Rows = append(table.Rows, []string{
			ct.Category,
			ct.Subtotal.String(),
			fmt.Sprintf("%d", ct.Count),
			percents[i].String(),
		})
	}
	return table
}
