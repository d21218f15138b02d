// Package ledger maintains a personal financial ledger stored as flat
// monthly record files and produces deterministic, regenerable periodic
// reports with summary statistics and chart data.
//
// The record store exclusively owns the canonical transaction data; reports
// are derived caches rebuilt lazily on access or eagerly on explicit export.
package ledger

import (
	"fmt"
	"sort"
	"strings"
)

// Ledger wires the record store and the report cache into the single entry
// point the CLI and other callers consume. Callers are assumed to be already
// authorized: the ledger never inspects credentials itself.
type Ledger struct {
	store *RecordStore
	cache *ReportCache
}

// New returns a ledger with records under dataDir and report artifacts under
// reportDir, all amounts in the given currency.
func New(dataDir, reportDir, currency string) *Ledger {
	store := NewRecordStore(dataDir, currency)
	return &Ledger{
		store: store,
		cache: NewReportCache(store, reportDir),
	}
}

// Store exposes the underlying record store.
func (l *Ledger) Store() *RecordStore { return l.store }

// Cache exposes the report cache, mainly so the caller can inject a
// markdown renderer.
func (l *Ledger) Cache() *ReportCache { return l.cache }

// Add validates and appends one record. The date string accepts ISO dates
// and relative shortcuts ("0d", "-1d"). Appending marks the affected monthly
// and yearly reports stale.
func (l *Ledger) Add(date, category string, amount Money, kind Kind, note string) (RecordID, error) {
	on, err := ParseDate(date)
	if err != nil {
		return RecordID{}, &ValidationError{Field: "date", Reason: err.Error()}
	}
	return l.store.Append(TransactionRecord{
		Date:     on,
		Category: category,
		Amount:   amount,
		Kind:     kind,
		Note:     note,
	})
}

// GetReport returns the report of a period, rebuilding it if it is stale or
// if force is set. A period with zero records yields a valid empty report.
func (l *Ledger) GetReport(key PeriodKey, force bool) (*Report, error) {
	if force {
		return l.cache.ForceRebuild(key)
	}
	return l.cache.GetOrBuild(key)
}

// GetChartData returns the machine-readable chart series derived from the
// same report GetReport serves.
func (l *Ledger) GetChartData(key PeriodKey) (*ChartData, error) {
	rep, err := l.cache.GetOrBuild(key)
	if err != nil {
		return nil, err
	}
	return &rep.Chart, nil
}

// Categories lists every category used so far, sorted.
func (l *Ledger) Categories() ([]string, error) {
	return l.store.Categories()
}

// RangeReport builds a combined report over the consecutive months from
// "from" to "to" inclusive. Range reports are rebuilt on every call and not
// cached: they are occasional exports, not served artifacts.
func (l *Ledger) RangeReport(from, to PeriodKey) (*Report, error) {
	if from.IsYearly() || to.IsYearly() {
		return nil, fmt.Errorf("range bounds must be monthly keys, got %s and %s", from, to)
	}
	if to.Start().Before(from.Start()) {
		return nil, fmt.Errorf("range is reversed: %s is after %s", from, to)
	}

	var months []PeriodKey
	for k := from; !k.Start().After(to.Start()); k = k.Next() {
		months = append(months, k)
	}
	return l.monthsReport(months, fmt.Sprintf("%s_to_%s", from, to))
}

// MonthsReport builds a combined report over an explicit month list, which
// need not be contiguous. The list is sorted and deduplicated first so the
// artifact is deterministic whatever order the caller gives. Like range
// reports, these are rebuilt on every call and not cached.
func (l *Ledger) MonthsReport(months ...PeriodKey) (*Report, error) {
	if len(months) == 0 {
		return nil, fmt.Errorf("no months given")
	}
	for _, month := range months {
		if month.IsYearly() {
			return nil, fmt.Errorf("months must be monthly keys, got %s", month)
		}
	}

	sort.Slice(months, func(i, j int) bool { return months[i].Start().Before(months[j].Start()) })
	unique := months[:1]
	for _, month := range months[1:] {
		if month != unique[len(unique)-1] {
			unique = append(unique, month)
		}
	}

	titles := make([]string, len(unique))
	for i, month := range unique {
		titles[i] = month.String()
	}
	return l.monthsReport(unique, strings.Join(titles, "+"))
}

func (l *Ledger) monthsReport(months []PeriodKey, title string) (*Report, error) {
	var records []TransactionRecord
	var summaries []MonthlySummary
	for _, month := range months {
		part, err := l.store.List(month)
		if err != nil {
			return nil, err
		}
		records = append(records, part...)
		if len(part) == 0 {
			continue
		}
		agg := Aggregate(part)
		summaries = append(summaries, MonthlySummary{
			Key:     month,
			Income:  agg.TotalIncome,
			Expense: agg.TotalExpense,
			Net:     agg.NetBalance,
		})
	}

	agg := Aggregate(records)
	trend := rangeTrend(months, records)
	rep := Synthesize(months[0], agg, trend)
	rep.Title = title
	rep.Months = summaries
	return rep, nil
}

// rangeTrend builds one point per month of the range, zero-filled.
func rangeTrend(months []PeriodKey, records []TransactionRecord) []TrendPoint {
	currency := recordsCurrency(records)
	points := make([]TrendPoint, 0, len(months))
	var cumulative Money
	for _, month := range months {
		p := TrendPoint{Label: month.String(), Income: M(0, currency), Expense: M(0, currency)}
		for _, rec := range records {
			if !month.Contains(rec.Date) {
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

// ListRecords returns the records of a period, date ascending.
func (l *Ledger) ListRecords(key PeriodKey) ([]TransactionRecord, error) {
	return l.store.List(key)
}
