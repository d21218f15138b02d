package ledger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestSynthesize_Deterministic(t *testing.T) {
	key := MustParsePeriodKey("2025-10")
	records := []TransactionRecord{
		rec("2025-10-03", "Dining", 25.50, Expense, "lunch"),
		rec("2025-10-05", "Transportation", 18.00, Expense, ""),
		rec("2025-10-01", "Salary", 2000, Income, ""),
	}

	build := func() []byte {
		agg := Aggregate(records)
		rep := Synthesize(key, agg, DailyTrend(key, records))
		data, err := json.Marshal(rep)
		if err != nil {
			t.Fatal(err)
		}
		return data
	}

	first := build()
	second := build()
	if !bytes.Equal(first, second) {
		t.Errorf("two syntheses of the same records differ:\n%s\n%s", first, second)
	}
}

func TestReport_JSON(t *testing.T) {
	key := MustParsePeriodKey("2025-10")
	records := []TransactionRecord{
		rec("2025-10-03", "Dining", 25.50, Expense, "lunch"),
		rec("2025-10-05", "Transportation", 18.00, Expense, ""),
	}
	rep := Synthesize(key, Aggregate(records), DailyTrend(key, records))

	data, err := json.Marshal(rep)
	if err != nil {
		t.Fatal(err)
	}
	doc := string(data)

	for _, want := range []string{
		`"period":"2025-10"`,
		`"totalIncome":0.00`,
		`"totalExpense":43.50`,
		`"netBalance":-43.50`,
		`"category":"Dining","amount":25.50,"percent":58.6`,
		`"category":"Transportation","amount":18.00,"percent":41.4`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("report JSON misses %q:\n%s", want, doc)
		}
	}

	// Field order is canonical: period always leads.
	if !strings.HasPrefix(doc, `{"period":`) {
		t.Errorf("report JSON does not start with the period field: %s", doc)
	}
}

func TestSynthesize_Empty(t *testing.T) {
	key := MustParsePeriodKey("2025-10")
	rep := Synthesize(key, Aggregate(nil), DailyTrend(key, nil))

	if rep.Title != "2025-10" {
		t.Errorf("Title = %q", rep.Title)
	}
	if !rep.Aggregation.NetBalance.IsZero() {
		t.Errorf("empty period has net balance %s", rep.Aggregation.NetBalance.Fixed())
	}
	if rep.Chart.ExpenseBreakdown != nil || rep.Chart.IncomeBreakdown != nil {
		t.Errorf("empty period has chart wedges: %+v", rep.Chart)
	}
	if len(rep.Chart.TrendSeries) != 31 {
		t.Errorf("empty period trend has %d points, want a zero-filled month", len(rep.Chart.TrendSeries))
	}

	if _, err := json.Marshal(rep); err != nil {
		t.Fatalf("empty report does not marshal: %v", err)
	}
}
