package ledger

// TrendPoint is one point of a trend series: the income and expense totals
// of one day (monthly report) or one month (yearly report), plus the running
// cumulative expense for continuous charting.
type TrendPoint struct {
	Label      string // "2025-10-01" for a day, "2025-01" for a month
	Income     Money
	Expense    Money
	Cumulative Money // cumulative expense up to and including this point
}

// DailyTrend builds the day-by-day series of a monthly period. Every day of
// the month appears, days without records at zero value, so a chart can draw
// a continuous line. Records outside the period are ignored.
func DailyTrend(key PeriodKey, records []TransactionRecord) []TrendPoint {
	if key.IsYearly() {
		return MonthlyTrend(key, records)
	}

	currency := recordsCurrency(records)
	end := key.End()
	points := make([]TrendPoint, 0, end.Day())
	var cumulative Money
	for day := key.Start(); !day.After(end); day = day.Add(1) {
		p := TrendPoint{Label: day.String(), Income: M(0, currency), Expense: M(0, currency)}
		for _, rec := range records {
			if rec.Date != day {
				continue
			}
			switch rec.Kind {
			case Income:
				p.Income = p.Income.Add(rec.Amount)
			case Expense:
				p.Expense = p.Expense.Add(rec.Amount)
			}
		}
		cumulative = cumulative.Add(p.Expense)
		p.Cumulative = cumulative
		points = append(points, p)
	}
	return points
}

// MonthlyTrend builds the month-by-month series of a yearly period: twelve
// points, months without records at zero value.
func MonthlyTrend(key PeriodKey, records []TransactionRecord) []TrendPoint {
	currency := recordsCurrency(records)
	points := make([]TrendPoint, 0, 12)
	var cumulative Money
	for _, month := range key.YearKey().Months() {
		p := TrendPoint{Label: month.String(), Income: M(0, currency), Expense: M(0, currency)}
		for _, rec := range records {
			if rec.Date.Year() != month.Year() || rec.Date.Month() != month.Month() {
				continue
			}
			switch rec.Kind {
			case Income:
				p.Income = p.Income.Add(rec.Amount)
			case Expense:
				p.Expense = p.Expense.Add(rec.Amount)
			}
		}
		cumulative = cumulative.Add(p.Expense)
		p.Cumulative = cumulative
		points = append(points, p)
	}
	return points
}

// recordsCurrency picks the working currency from the records, so zero
// values format consistently with the rest of the report.
func recordsCurrency(records []TransactionRecord) string {
	for _, rec := range records {
		if rec.Amount.Currency() != "" {
			return rec.Amount.Currency()
		}
	}
	return ""
}
