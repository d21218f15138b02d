package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// freshness is the per-period state of the report cache.
type freshness int

const (
	// stale means the persisted report may not reflect the record store;
	// it is also the initial state of any period, forcing a build before
	// the first serve.
	stale freshness = iota
	fresh
)

// MarkdownFunc renders a report and its records to the textual artifact.
// It is injected so the cache does not depend on the renderer package.
type MarkdownFunc func(r *Report, records []TransactionRecord) string

// ReportCache decides when a report must be rebuilt and guarantees the
// persisted artifact reflects the current record set before being served.
// Reports are never deleted here; deletion is an administrative operation.
type ReportCache struct {
	store    *RecordStore
	dir      string
	markdown MarkdownFunc

	mu      sync.Mutex
	state   map[PeriodKey]freshness
	hashes  map[PeriodKey]uint64
	reports map[PeriodKey]*Report
}

// NewReportCache returns a cache persisting artifacts under dir and watching
// the store for appends: appending a record marks the monthly report and its
// enclosing yearly report stale.
func NewReportCache(store *RecordStore, dir string) *ReportCache {
	c := &ReportCache{
		store:   store,
		dir:     dir,
		state:   make(map[PeriodKey]freshness),
		hashes:  make(map[PeriodKey]uint64),
		reports: make(map[PeriodKey]*Report),
	}
	store.OnAppend(c.Invalidate)
	return c
}

// SetMarkdown injects the renderer used for the textual artifact. Without it
// only the machine-readable JSON artifact is persisted.
func (c *ReportCache) SetMarkdown(fn MarkdownFunc) { c.markdown = fn }

// Invalidate marks the period stale. A monthly key also invalidates the
// yearly key containing it, since the yearly aggregation is a superset of
// its months.
func (c *ReportCache) Invalidate(key PeriodKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state[key] = stale
	if !key.IsYearly() {
		c.state[key.YearKey()] = stale
	}
}

// GetOrBuild returns the cached report if fresh; otherwise it synchronously
// rebuilds from the record store, persists, marks the period fresh, and
// returns the new report. A failed rebuild leaves the previous persisted
// report intact and the period stale, so the next access retries.
func (c *ReportCache) GetOrBuild(key PeriodKey) (*Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state[key] == fresh {
		if rep, ok := c.reports[key]; ok {
			return rep, nil
		}
	}

	// Cheap freshness check: if the partitions did not change since the last
	// successful build, the cached report is still valid and no
	// re-aggregation is needed.
	if rep, ok := c.reports[key]; ok {
		hash, err := c.store.ContentHash(key)
		if err == nil && hash == c.hashes[key] {
			c.state[key] = fresh
			return rep, nil
		}
	}

	return c.rebuild(key)
}

// ForceRebuild behaves like GetOrBuild but always rebuilds, even if fresh.
func (c *ReportCache) ForceRebuild(key PeriodKey) (*Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rebuild(key)
}

// rebuild runs the full pipeline: list, aggregate, synthesize, persist.
// Callers must hold c.mu.
func (c *ReportCache) rebuild(key PeriodKey) (*Report, error) {
	records, err := c.store.List(key)
	if err != nil {
		return nil, fmt.Errorf("could not list records for %s: %w", key, err)
	}

	agg := Aggregate(records)
	trend := DailyTrend(key, records)
	rep := Synthesize(key, agg, trend)

	if key.IsYearly() {
		rep.Months = c.monthlySummaries(key, records)
	}

	hash, err := c.store.ContentHash(key)
	if err != nil {
		return nil, fmt.Errorf("could not hash partitions for %s: %w", key, err)
	}
	rep.Hash = hash

	if err := c.persist(rep, records); err != nil {
		// The previous artifact, if any, is still on disk and still served;
		// freshness is not advanced so the next access retries.
		return nil, err
	}

	c.reports[key] = rep
	c.hashes[key] = hash
	c.state[key] = fresh
	return rep, nil
}

// monthlySummaries condenses the records of a year into per-month sections.
func (c *ReportCache) monthlySummaries(key PeriodKey, records []TransactionRecord) []MonthlySummary {
	var months []MonthlySummary
	for _, month := range key.Months() {
		var part []TransactionRecord
		for _, rec := range records {
			if month.Contains(rec.Date) {
				part = append(part, rec)
			}
		}
		if len(part) == 0 {
			continue
		}
		agg := Aggregate(part)
		months = append(months, MonthlySummary{
			Key:     month,
			Income:  agg.TotalIncome,
			Expense: agg.TotalExpense,
			Net:     agg.NetBalance,
		})
	}
	return months
}

// persist writes the report artifacts atomically: temp file then rename, so
// a failure never leaves a half-written artifact to be served.
func (c *ReportCache) persist(rep *Report, records []TransactionRecord) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return &PersistenceError{Op: "persist", Path: c.dir, Err: err}
	}

	data, err := json.Marshal(rep)
	if err != nil {
		return &PersistenceError{Op: "persist", Path: c.jsonPath(rep.Key), Err: err}
	}
	if err := writeAtomic(c.jsonPath(rep.Key), append(data, '\n')); err != nil {
		return err
	}

	if c.markdown != nil {
		md := c.markdown(rep, records)
		if err := writeAtomic(c.markdownPath(rep.Key), []byte(md)); err != nil {
			return err
		}
	}
	return nil
}

func (c *ReportCache) jsonPath(key PeriodKey) string {
	return filepath.Join(c.dir, key.String()+".json")
}

func (c *ReportCache) markdownPath(key PeriodKey) string {
	return filepath.Join(c.dir, key.String()+".md")
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return &PersistenceError{Op: "persist", Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &PersistenceError{Op: "persist", Path: path, Err: err}
	}
	return nil
}
