package ledger

// ChartSlice is one wedge of a category distribution chart.
type ChartSlice struct {
	Category string
	Amount   Money
	Percent  Percent // share of the breakdown total, 1 decimal place
}

func (c ChartSlice) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("category", c.Category)
	w.Append("amount", c.Amount)
	w.Append("percent", float64(c.Percent))
	return w.MarshalJSON()
}

// ChartData is the machine-readable companion of a report: the numeric
// series a rendering layer consumes independently of the textual report.
// Producing pixels from it is a downstream concern.
type ChartData struct {
	ExpenseBreakdown []ChartSlice
	IncomeBreakdown  []ChartSlice
	TrendSeries      []TrendPoint
}

func (c ChartData) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("expenseBreakdown", c.ExpenseBreakdown)
	w.Append("incomeBreakdown", c.IncomeBreakdown)
	w.Append("trendSeries", c.TrendSeries)
	return w.MarshalJSON()
}

func (p TrendPoint) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("label", p.Label)
	w.Append("income", p.Income)
	w.Append("expense", p.Expense)
	w.Append("cumulative", p.Cumulative)
	return w.MarshalJSON()
}

// MonthlySummary is the condensed result of one month inside a yearly or
// multi-month report.
type MonthlySummary struct {
	Key     PeriodKey
	Income  Money
	Expense Money
	Net     Money
}

func (m MonthlySummary) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("month", m.Key.String())
	w.Append("income", m.Income)
	w.Append("expense", m.Expense)
	w.Append("net", m.Net)
	return w.MarshalJSON()
}

// Report is the derived, regenerable artifact of one period. It is never
// hand-edited and always fully reproducible from the record store; the Hash
// field ties it to the record content it was built from.
type Report struct {
	Key         PeriodKey
	Title       string
	Aggregation AggregationResult
	Trend       []TrendPoint
	Chart       ChartData
	Months      []MonthlySummary // per-month sections, yearly reports only
	Hash        uint64           // freshness marker: content hash of the contributing partitions
}

// Synthesize turns an aggregation and its trend series into a report. It is
// deterministic: identical inputs produce byte-identical report content, so
// regeneration is idempotent. A period with zero records still produces a
// valid, empty report.
func Synthesize(key PeriodKey, agg AggregationResult, trend []TrendPoint) *Report {
	return &Report{
		Key:         key,
		Title:       key.String(),
		Aggregation: agg,
		Trend:       trend,
		Chart: ChartData{
			ExpenseBreakdown: slices2chart(agg.Expenses),
			IncomeBreakdown:  slices2chart(agg.Incomes),
			TrendSeries:      trend,
		},
	}
}

func slices2chart(b Breakdown) []ChartSlice {
	if len(b) == 0 {
		return nil
	}
	percents := b.Percents()
	slices := make([]ChartSlice, len(b))
	for i, ct := range b {
		slices[i] = ChartSlice{Category: ct.Category, Amount: ct.Subtotal, Percent: percents[i]}
	}
	return slices
}

// MarshalJSON writes the persisted report artifact with a canonical field
// order, so rebuilding an unchanged period rewrites the same bytes.
func (r *Report) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("period", r.Key.String())
	w.Append("title", r.Title)
	w.Append("totalIncome", r.Aggregation.TotalIncome)
	w.Append("totalExpense", r.Aggregation.TotalExpense)
	w.Append("netBalance", r.Aggregation.NetBalance)
	w.Append("chart", r.Chart)
	if len(r.Months) > 0 {
		w.Append("months", r.Months)
	}
	w.Append("hash", r.Hash)
	return w.MarshalJSON()
}
