package ledger

import (
	"fmt"
)

// Kind tells whether a record is money going out or coming in. The sign of a
// record's effect on the balance is always derived from its kind, never from
// a negative amount.
type Kind string

const (
	Expense Kind = "expense"
	Income  Kind = "income"
)

// ParseKind parses a string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Expense:
		return Expense, nil
	case Income:
		return Income, nil
	default:
		return "", fmt.Errorf("unknown record kind: %q", s)
	}
}

// TransactionRecord is a single ledger entry. Records are immutable once
// written: a correction is a new offsetting record, not an in-place edit.
type TransactionRecord struct {
	Date     Date
	Category string
	Amount   Money // always >= 0
	Kind     Kind
	Note     string
}

// Validate checks a record for correctness before it is appended.
func (r TransactionRecord) Validate() error {
	if r.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "is missing"}
	}
	if r.Category == "" {
		return &ValidationError{Field: "category", Reason: "is missing"}
	}
	if r.Amount.IsNegative() {
		return &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	if r.Kind != Expense && r.Kind != Income {
		return &ValidationError{Field: "kind", Reason: fmt.Sprintf("%q is not expense or income", r.Kind)}
	}
	return nil
}

// Equal reports whether two records carry the same data.
func (r TransactionRecord) Equal(o TransactionRecord) bool {
	return r.Date == o.Date &&
		r.Category == o.Category &&
		r.Amount.Equal(o.Amount) &&
		r.Kind == o.Kind &&
		r.Note == o.Note
}

// MarshalJSON writes the record with a canonical field order so that
// partition files are byte-reproducible.
func (r TransactionRecord) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", r.Date)
	w.Append("category", r.Category)
	w.Append("amount", r.Amount)
	w.Append("kind", r.Kind)
	w.Optional("note", r.Note)
	return w.MarshalJSON()
}

// RecordID identifies an appended record by its partition and its position
// within it.
type RecordID struct {
	Partition PeriodKey
	Index     int
}

func (id RecordID) String() string {
	return fmt.Sprintf("%s#%d", id.Partition, id.Index)
}
