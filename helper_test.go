package ledger

// EUR is a helper for tests to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// NO is a helper for tests to create money with no currency set
func NO(v float64) Money { return M(v, "") }

// rec is a helper for tests to build a valid record from consts.
func rec(date, category string, amount float64, kind Kind, note string) TransactionRecord {
	return TransactionRecord{
		Date:     MustParseDate(date),
		Category: category,
		Amount:   EUR(amount),
		Kind:     kind,
		Note:     note,
	}
}
