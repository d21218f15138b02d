package ledger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// recordRow is a specialized struct for decoding one partition line.
type recordRow struct {
	Date     Date            `json:"date"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Kind     Kind            `json:"kind"`
	Note     string          `json:"note"`
}

// DecodeRecords reads a stream of JSONL partition data and returns the
// records in file order. A malformed line is skipped with a warning rather
// than aborting the read: one corrupt line must not hide the rest of the
// ledger. The currency is the ledger's reporting currency.
func DecodeRecords(r io.Reader, currency string) ([]TransactionRecord, error) {
	var records []TransactionRecord
	// Notes are unbounded, so lines are too: read with ReadBytes rather
	// than a Scanner and its token limit. A record Append accepted must
	// stay readable.
	reader := bufio.NewReader(r)

	line := 0
	for {
		lineBytes, err := reader.ReadBytes('\n')
		if len(lineBytes) > 0 {
			line++
			if rec, ok := decodeRecordLine(lineBytes, currency, line); ok {
				records = append(records, rec)
			}
		}
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("error reading from input: %w", err)
		}
	}
}

func decodeRecordLine(lineBytes []byte, currency string, line int) (TransactionRecord, bool) {
	lineBytes = bytes.TrimSpace(lineBytes)
	if len(lineBytes) == 0 {
		return TransactionRecord{}, false
	}
	var row recordRow
	if err := json.Unmarshal(lineBytes, &row); err != nil {
		log.Printf("warning: skipping malformed record on line %d: %v", line, err)
		return TransactionRecord{}, false
	}
	rec := TransactionRecord{
		Date:     row.Date,
		Category: row.Category,
		Amount:   M(row.Amount, currency),
		Kind:     row.Kind,
		Note:     row.Note,
	}
	if err := rec.Validate(); err != nil {
		log.Printf("warning: skipping invalid record on line %d: %v", line, err)
		return TransactionRecord{}, false
	}
	return rec, true
}

// EncodeRecord marshals a single record to JSON and writes it to the writer,
// followed by a newline, in JSONL format.
func EncodeRecord(w io.Writer, rec TransactionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// EncodeRecords writes records to w in JSONL format, one line per record,
// preserving their order.
func EncodeRecords(w io.Writer, records []TransactionRecord) error {
	for _, rec := range records {
		if err := EncodeRecord(w, rec); err != nil {
			return err
		}
	}
	return nil
}
