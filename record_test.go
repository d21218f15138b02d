package ledger

import (
	"errors"
	"testing"
)

func TestTransactionRecord_Validate(t *testing.T) {
	valid := rec("2025-10-03", "Dining", 25.50, Expense, "lunch")

	testCases := []struct {
		name      string
		mutate    func(r *TransactionRecord)
		wantField string
	}{
		{name: "valid", mutate: func(r *TransactionRecord) {}},
		{name: "zero date", mutate: func(r *TransactionRecord) { r.Date = Date{} }, wantField: "date"},
		{name: "empty category", mutate: func(r *TransactionRecord) { r.Category = "" }, wantField: "category"},
		{name: "negative amount", mutate: func(r *TransactionRecord) { r.Amount = EUR(-1) }, wantField: "amount"},
		{name: "unknown kind", mutate: func(r *TransactionRecord) { r.Kind = "transfer" }, wantField: "kind"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := valid
			tc.mutate(&r)
			err := r.Validate()
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if ve.Field != tc.wantField {
				t.Errorf("ValidationError.Field = %q, want %q", ve.Field, tc.wantField)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("expense"); err != nil || k != Expense {
		t.Errorf("ParseKind(expense) = %v, %v", k, err)
	}
	if k, err := ParseKind("income"); err != nil || k != Income {
		t.Errorf("ParseKind(income) = %v, %v", k, err)
	}
	if _, err := ParseKind("transfer"); err == nil {
		t.Errorf("ParseKind(transfer) succeeded, want error")
	}
}

func TestRecordID_String(t *testing.T) {
	id := RecordID{Partition: MustParsePeriodKey("2025-10"), Index: 4}
	if got := id.String(); got != "2025-10#4" {
		t.Errorf("RecordID = %q, want 2025-10#4", got)
	}
}
