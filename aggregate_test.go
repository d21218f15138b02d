package ledger

import (
	"testing"
)

func TestAggregate(t *testing.T) {
	records := []TransactionRecord{
		rec("2025-10-03", "Dining", 25.50, Expense, "lunch"),
		rec("2025-10-05", "Transportation", 18.00, Expense, ""),
		rec("2025-10-01", "Salary", 2000, Income, ""),
		rec("2025-10-20", "Dining", 10.00, Expense, "coffee"),
	}

	agg := Aggregate(records)

	if !agg.TotalExpense.Equal(EUR(53.50)) {
		t.Errorf("TotalExpense = %s, want 53.50", agg.TotalExpense.Fixed())
	}
	if !agg.TotalIncome.Equal(EUR(2000)) {
		t.Errorf("TotalIncome = %s, want 2000.00", agg.TotalIncome.Fixed())
	}
	if !agg.NetBalance.Equal(EUR(1946.50)) {
		t.Errorf("NetBalance = %s, want 1946.50", agg.NetBalance.Fixed())
	}

	// Kinds are never conflated: Salary must not appear among expenses.
	for _, ct := range agg.Expenses {
		if ct.Category == "Salary" {
			t.Errorf("income category %q leaked into the expense breakdown", ct.Category)
		}
	}
	if len(agg.Incomes) != 1 || agg.Incomes[0].Category != "Salary" {
		t.Errorf("Incomes = %v, want only Salary", agg.Incomes)
	}

	// Dining accumulates both records.
	if agg.Expenses[0].Category != "Dining" || !agg.Expenses[0].Subtotal.Equal(EUR(35.50)) {
		t.Errorf("Expenses[0] = %v, want Dining 35.50", agg.Expenses[0])
	}
	if agg.Expenses[0].Count != 2 {
		t.Errorf("Dining count = %d, want 2", agg.Expenses[0].Count)
	}
}

func TestAggregate_Empty(t *testing.T) {
	agg := Aggregate(nil)
	if !agg.TotalIncome.IsZero() || !agg.TotalExpense.IsZero() || !agg.NetBalance.IsZero() {
		t.Errorf("empty aggregation has non-zero totals: %+v", agg)
	}
	if len(agg.Expenses) != 0 || len(agg.Incomes) != 0 {
		t.Errorf("empty aggregation has breakdowns: %+v", agg)
	}
	if agg.Expenses.Percents() != nil {
		t.Errorf("empty breakdown has percents")
	}
}

func TestBreakdown_Order(t *testing.T) {
	records := []TransactionRecord{
		rec("2025-10-01", "beta", 10, Expense, ""),
		rec("2025-10-02", "Alpha", 10, Expense, ""),
		rec("2025-10-03", "gamma", 20, Expense, ""),
	}
	b := Aggregate(records).Expenses

	// Descending subtotal first, case-insensitive name on ties.
	want := []string{"gamma", "Alpha", "beta"}
	for i, ct := range b {
		if ct.Category != want[i] {
			t.Errorf("breakdown[%d] = %q, want %q", i, ct.Category, want[i])
		}
	}
}

func TestBreakdown_Percents(t *testing.T) {
	records := []TransactionRecord{
		rec("2025-10-03", "Dining", 25.50, Expense, ""),
		rec("2025-10-05", "Transportation", 18.00, Expense, ""),
	}
	b := Aggregate(records).Expenses
	percents := b.Percents()

	if !percents[0].Equal(58.6) {
		t.Errorf("Dining share = %s, want 58.6%%", percents[0])
	}
	if !percents[1].Equal(41.4) {
		t.Errorf("Transportation share = %s, want 41.4%%", percents[1])
	}

	var sum Percent
	for _, p := range percents {
		sum += p
	}
	if sum < 99.9 || sum > 100.1 {
		t.Errorf("shares sum to %v, want 100 within 0.1", sum)
	}
}

func TestBreakdown_PercentsSumWithTies(t *testing.T) {
	// Four equal 11.25% shares round half-up to 11.3% each, which would
	// make the total drift to 100.2%. Largest-remainder rounding keeps
	// the sum at exactly 100.0 instead.
	records := []TransactionRecord{
		rec("2025-10-01", "Rent", 550.00, Expense, ""),
		rec("2025-10-02", "Dining", 112.50, Expense, ""),
		rec("2025-10-03", "Grocery", 112.50, Expense, ""),
		rec("2025-10-04", "Hobby", 112.50, Expense, ""),
		rec("2025-10-05", "Transportation", 112.50, Expense, ""),
	}
	percents := Aggregate(records).Expenses.Percents()

	var sum Percent
	for _, p := range percents {
		sum += p
	}
	if sum < 99.9 || sum > 100.1 {
		t.Errorf("shares %v sum to %v, want 100 within 0.1", percents, sum)
	}

	if !percents[0].Equal(55.0) {
		t.Errorf("Rent share = %s, want 55.0%%", percents[0])
	}
	// The residual tenths go to the first ties in breakdown order.
	want := []Percent{55.0, 11.3, 11.3, 11.2, 11.2}
	for i, p := range percents {
		if !p.Equal(want[i]) {
			t.Errorf("percents[%d] = %s, want %s", i, p, want[i])
		}
	}
}

func TestBreakdown_DecimalExact(t *testing.T) {
	// 0.1 added ten times is exactly 1 with decimal arithmetic.
	var records []TransactionRecord
	for i := 1; i <= 10; i++ {
		records = append(records, rec("2025-10-01", "Micro", 0.1, Expense, ""))
	}
	agg := Aggregate(records)
	if !agg.TotalExpense.Equal(EUR(1)) {
		t.Errorf("TotalExpense = %s, want exactly 1.00", agg.TotalExpense.Fixed())
	}
}

func TestWeeklyBreakdowns(t *testing.T) {
	key := MustParsePeriodKey("2025-10")
	records := []TransactionRecord{
		rec("2025-10-02", "Dining", 10, Expense, ""),     // week 1 (1-7)
		rec("2025-10-09", "Dining", 20, Expense, ""),     // week 2 (8-14)
		rec("2025-10-31", "Grocery", 30, Expense, ""),    // week 5 (29-31, clipped)
		rec("2025-10-09", "Salary", 2000, Income, ""),    // income not in weekly detail
	}

	weeks := WeeklyBreakdowns(key, records)
	if len(weeks) != 3 {
		t.Fatalf("got %d weeks, want 3 (empty weeks skipped)", len(weeks))
	}
	if weeks[0].Index != 1 || weeks[1].Index != 2 || weeks[2].Index != 5 {
		t.Errorf("week indices = %d,%d,%d want 1,2,5", weeks[0].Index, weeks[1].Index, weeks[2].Index)
	}
	if weeks[2].To != MustParseDate("2025-10-31") {
		t.Errorf("last week clipped to %v, want 2025-10-31", weeks[2].To)
	}
	for _, w := range weeks {
		for _, ct := range w.Expenses {
			if ct.Category == "Salary" {
				t.Errorf("income leaked into week %d", w.Index)
			}
		}
	}

	if got := WeeklyBreakdowns(MustParsePeriodKey("2025"), records); got != nil {
		t.Errorf("yearly key yields weekly detail: %v", got)
	}
}
