package ledger

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// PeriodKey identifies an aggregation window: a calendar month ("2025-10")
// or a whole year ("2025"). A yearly key aggregates the twelve monthly keys
// sharing its year.
type PeriodKey struct {
	year  int
	month time.Month // 0 means a yearly key
}

// MonthKey returns the monthly key for the given year and month.
func MonthKey(year int, month time.Month) PeriodKey {
	return PeriodKey{year: year, month: month}
}

// YearKey returns the yearly key for the given year.
func YearKey(year int) PeriodKey {
	return PeriodKey{year: year}
}

// KeyOf returns the monthly key of the partition holding records dated d.
func KeyOf(d Date) PeriodKey {
	return MonthKey(d.Year(), d.Month())
}

var periodKeyRE = regexp.MustCompile(`^(\d{4})(?:-(\d{1,2}))?$`)

// ParsePeriodKey parses "YYYY-MM" into a monthly key or "YYYY" into a yearly
// key. A malformed key (e.g. month 13) yields a NotFoundError: there is no
// data, and there never can be, for such a key.
func ParsePeriodKey(s string) (PeriodKey, error) {
	match := periodKeyRE.FindStringSubmatch(s)
	if match == nil {
		return PeriodKey{}, &NotFoundError{Key: s}
	}
	year, err := strconv.Atoi(match[1])
	if err != nil || year == 0 {
		return PeriodKey{}, &NotFoundError{Key: s}
	}
	if match[2] == "" {
		return YearKey(year), nil
	}
	month, err := strconv.Atoi(match[2])
	if err != nil || month < 1 || month > 12 {
		return PeriodKey{}, &NotFoundError{Key: s}
	}
	return MonthKey(year, time.Month(month)), nil
}

// MustParsePeriodKey is like ParsePeriodKey but panics on error.
func MustParsePeriodKey(s string) PeriodKey {
	k, err := ParsePeriodKey(s)
	if err != nil {
		panic(err.Error())
	}
	return k
}

// IsYearly reports whether k spans a whole year.
func (k PeriodKey) IsYearly() bool { return k.month == 0 }

// IsZero reports whether k is the zero value.
func (k PeriodKey) IsZero() bool { return k.year == 0 && k.month == 0 }

// Year returns the calendar year of the key.
func (k PeriodKey) Year() int { return k.year }

// Month returns the calendar month of a monthly key, or 0 for a yearly key.
func (k PeriodKey) Month() time.Month { return k.month }

// String encodes the period unambiguously: "2025-10" for monthly keys,
// "2025" for yearly ones. This is also the partition and artifact base name.
func (k PeriodKey) String() string {
	if k.IsYearly() {
		return fmt.Sprintf("%04d", k.year)
	}
	return fmt.Sprintf("%04d-%02d", k.year, int(k.month))
}

// YearKey returns the yearly key enclosing k. The yearly key encloses itself.
func (k PeriodKey) YearKey() PeriodKey { return YearKey(k.year) }

// Months returns the monthly keys composing k in chronological order:
// twelve for a yearly key, one for a monthly key.
func (k PeriodKey) Months() []PeriodKey {
	if !k.IsYearly() {
		return []PeriodKey{k}
	}
	months := make([]PeriodKey, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, MonthKey(k.year, m))
	}
	return months
}

// Start returns the first day of the period.
func (k PeriodKey) Start() Date {
	if k.IsYearly() {
		return NewDate(k.year, time.January, 1)
	}
	return NewDate(k.year, k.month, 1)
}

// End returns the last day of the period.
func (k PeriodKey) End() Date {
	if k.IsYearly() {
		return NewDate(k.year+1, time.January, 0)
	}
	return NewDate(k.year, k.month+1, 0) // day 0 of next month is the last day
}

// Next returns the following period: the next month for a monthly key, the
// next year for a yearly one.
func (k PeriodKey) Next() PeriodKey {
	if k.IsYearly() {
		return YearKey(k.year + 1)
	}
	if k.month == time.December {
		return MonthKey(k.year+1, time.January)
	}
	return MonthKey(k.year, k.month+1)
}

// Contains reports whether d falls within the period.
func (k PeriodKey) Contains(d Date) bool {
	return !d.Before(k.Start()) && !d.After(k.End())
}
