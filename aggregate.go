package ledger

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryTotal is one entry of a breakdown: the subtotal and record count of
// a single category, restricted to one kind.
type CategoryTotal struct {
	Category string
	Subtotal Money
	Count    int
}

// Breakdown maps categories of one kind to their subtotals. It is kept as a
// sorted slice: descending subtotal, ties broken by ascending
// case-insensitive category name, so rendering is deterministic.
type Breakdown []CategoryTotal

// Total returns the sum of all subtotals in the breakdown.
func (b Breakdown) Total() Money {
	var total Money
	for _, ct := range b {
		total = total.Add(ct.Subtotal)
	}
	return total
}

// Percents returns each entry's share of the breakdown total, in the same
// order, with 1 decimal place. An empty breakdown yields nil: percentages
// are omitted entirely when there is nothing to share.
//
// Shares are rounded by largest remainder so they always sum to 100.0:
// every share is floored to a tenth, then the tenths lost to flooring go
// back to the entries with the largest remainders.
func (b Breakdown) Percents() []Percent {
	if len(b) == 0 {
		return nil
	}
	total := b.Total()
	if total.IsZero() {
		return make([]Percent, len(b))
	}

	hundred := decimal.NewFromInt(100)
	tenth := decimal.New(1, -1)
	floors := make([]decimal.Decimal, len(b))
	remainders := make([]decimal.Decimal, len(b))
	sum := decimal.Zero
	for i, ct := range b {
		exact := ct.Subtotal.Decimal().Div(total.Decimal()).Mul(hundred)
		floors[i] = exact.RoundFloor(1)
		remainders[i] = exact.Sub(floors[i])
		sum = sum.Add(floors[i])
	}
	missing := int(hundred.Sub(sum).Div(tenth).Round(0).IntPart())

	// Ties keep the breakdown order, so the larger subtotal wins.
	order := make([]int, len(b))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return remainders[order[i]].GreaterThan(remainders[order[j]])
	})
	for k := 0; k < missing && k < len(order); k++ {
		floors[order[k]] = floors[order[k]].Add(tenth)
	}

	percents := make([]Percent, len(b))
	for i := range floors {
		percents[i] = Percent(floors[i].InexactFloat64())
	}
	return percents
}

// AggregationResult summarizes one period: overall totals and one breakdown
// per kind. Income and expense are never conflated in a single bucket.
type AggregationResult struct {
	TotalIncome  Money
	TotalExpense Money
	NetBalance   Money
	Expenses     Breakdown
	Incomes      Breakdown
}

// Aggregate computes the summary of a record sequence. It is a pure function
// of its input: no hidden state, no I/O. Empty input yields zero totals and
// empty breakdowns, not an error.
func Aggregate(records []TransactionRecord) AggregationResult {
	var agg AggregationResult
	expenses := make(map[string]CategoryTotal)
	incomes := make(map[string]CategoryTotal)

	// Seed the totals with the records' currency so that a period with only
	// one kind still formats both totals consistently.
	currency := recordsCurrency(records)
	agg.TotalIncome = M(0, currency)
	agg.TotalExpense = M(0, currency)

	for _, rec := range records {
		switch rec.Kind {
		case Income:
			agg.TotalIncome = agg.TotalIncome.Add(rec.Amount)
			accumulate(incomes, rec)
		case Expense:
			agg.TotalExpense = agg.TotalExpense.Add(rec.Amount)
			accumulate(expenses, rec)
		}
	}

	agg.NetBalance = agg.TotalIncome.Sub(agg.TotalExpense)
	agg.Expenses = sortedBreakdown(expenses)
	agg.Incomes = sortedBreakdown(incomes)
	return agg
}

func accumulate(buckets map[string]CategoryTotal, rec TransactionRecord) {
	ct := buckets[rec.Category]
	ct.Category = rec.Category
	ct.Subtotal = ct.Subtotal.Add(rec.Amount)
	ct.Count++
	buckets[rec.Category] = ct
}

func sortedBreakdown(buckets map[string]CategoryTotal) Breakdown {
	b := make(Breakdown, 0, len(buckets))
	for _, ct := range buckets {
		b = append(b, ct)
	}
	sort.Slice(b, func(i, j int) bool {
		if !b[i].Subtotal.Equal(b[j].Subtotal) {
			return b[j].Subtotal.LessThan(b[i].Subtotal)
		}
		return strings.ToLower(b[i].Category) < strings.ToLower(b[j].Category)
	})
	return b
}

// WeeklyBreakdown is the per-category expense summary of one week window of
// a month. Windows are anchored at day 1 and advance in 7-day steps, the
// last one clipped to the end of the month.
type WeeklyBreakdown struct {
	Index    int // 1-based week number within the month
	From, To Date
	Expenses Breakdown
}

// WeeklyBreakdowns slices a monthly record set into week windows and
// summarizes the expenses of each. Weeks without expenses are skipped.
// A yearly key yields nil: weekly detail only makes sense within one month.
func WeeklyBreakdowns(key PeriodKey, records []TransactionRecord) []WeeklyBreakdown {
	if key.IsYearly() {
		return nil
	}

	var weeks []WeeklyBreakdown
	end := key.End()
	index := 1
	for from := key.Start(); !from.After(end); from = from.Add(7) {
		to := from.Add(6)
		if to.After(end) {
			to = end
		}

		var window []TransactionRecord
		for _, rec := range records {
			if rec.Kind != Expense || rec.Date.Before(from) || rec.Date.After(to) {
				continue
			}
			window = append(window, rec)
		}
		if len(window) > 0 {
			weeks = append(weeks, WeeklyBreakdown{
				Index:    index,
				From:     from,
				To:       to,
				Expenses: Aggregate(window).Expenses,
			})
		}
		index++
	}
	return weeks
}
