package ledger

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// this file contains functions to handle the import/export formats.
// CSV uses the legacy column layout (date,category,amount,type,note) so old
// ledgers migrate in and spreadsheets read exports back out.

var csvHeader = []string{"date", "category", "amount", "type", "note"}

// ExportCSV writes records to w in the legacy CSV layout, amounts with 2
// decimal places.
func ExportCSV(w io.Writer, records []TransactionRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{rec.Date.String(), rec.Category, rec.Amount.Fixed(), string(rec.Kind), rec.Note}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportCSV reads records from the legacy CSV layout. A header row is
// detected and skipped. Unlike partition reads, imports are explicit user
// actions: a malformed row aborts with an error naming the row.
func ImportCSV(r io.Reader, currency string) ([]TransactionRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var records []TransactionRecord
	line := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot parse CSV row %d: %w", line+1, err)
		}
		line++
		if line == 1 && len(row) > 0 && row[0] == csvHeader[0] {
			continue // header row
		}
		if len(row) < 4 {
			return nil, fmt.Errorf("CSV row %d: want at least 4 columns, got %d", line, len(row))
		}

		rec, err := recordFromStrings(row[0], row[1], row[2], row[3], field(row, 4), currency)
		if err != nil {
			return nil, fmt.Errorf("CSV row %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func field(row []string, i int) string {
	if len(row) > i {
		return row[i]
	}
	return ""
}

// JSONMapping maps the fields of an arbitrary exported JSON document onto
// records via jsonpath expressions. Records selects the list of entries;
// the remaining paths are evaluated relative to each entry.
type JSONMapping struct {
	Records  string // e.g. "$.records[*]"
	Date     string // e.g. "$.date"
	Category string
	Amount   string
	Kind     string // optional, defaults to expense
	Note     string // optional
}

// DefaultJSONMapping matches the document shape of this ledger's own API
// exports.
func DefaultJSONMapping() JSONMapping {
	return JSONMapping{
		Records:  "$.records[*]",
		Date:     "$.date",
		Category: "$.category",
		Amount:   "$.amount",
		Kind:     "$.kind",
		Note:     "$.note",
	}
}

// ImportJSON decodes a JSON document and extracts records according to the
// mapping. This lets exports of other tracking apps flow in without a
// bespoke parser per tool.
func ImportJSON(r io.Reader, mapping JSONMapping, currency string) ([]TransactionRecord, error) {
	var doc any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot parse JSON document: %w", err)
	}

	entries, err := jsonpath.Get(mapping.Records, doc)
	if err != nil {
		return nil, fmt.Errorf("cannot select records with %q: %w", mapping.Records, err)
	}
	list, ok := entries.([]any)
	if !ok {
		// jsonpath is never clear about whether it returns a list or a single
		// answer; a single entry is wrapped here.
		list = []any{entries}
	}

	var records []TransactionRecord
	for i, entry := range list {
		date, err := pathString(entry, mapping.Date)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		category, err := pathString(entry, mapping.Category)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		amount, err := pathString(entry, mapping.Amount)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}

		kind := string(Expense)
		if mapping.Kind != "" {
			if k, err := pathString(entry, mapping.Kind); err == nil && k != "" {
				kind = k
			}
		}
		note := ""
		if mapping.Note != "" {
			note, _ = pathString(entry, mapping.Note)
		}

		rec, err := recordFromStrings(date, category, amount, kind, note, currency)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// pathString evaluates a jsonpath expression and coerces the result to a
// string.
func pathString(doc any, path string) (string, error) {
	val, err := jsonpath.Get(path, doc)
	if err != nil {
		return "", fmt.Errorf("cannot evaluate %q: %w", path, err)
	}
	if list, ok := val.([]any); ok && len(list) > 0 {
		val = list[0]
	}
	switch v := val.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case float64:
		return decimal.NewFromFloat(v).String(), nil
	default:
		return "", fmt.Errorf("%q: unsupported value %v", path, val)
	}
}

// recordFromStrings builds and validates one record from its textual fields.
func recordFromStrings(date, category, amount, kind, note, currency string) (TransactionRecord, error) {
	on, err := ParseDate(date)
	if err != nil {
		return TransactionRecord{}, err
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return TransactionRecord{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	k, err := ParseKind(kind)
	if err != nil {
		return TransactionRecord{}, err
	}
	rec := TransactionRecord{
		Date:     on,
		Category: category,
		Amount:   M(value, currency),
		Kind:     k,
		Note:     note,
	}
	if err := rec.Validate(); err != nil {
		return TransactionRecord{}, err
	}
	return rec, nil
}
