package ledger

import "fmt"

// Percent is a share of a breakdown total, in [0,100].
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// String formats the percent with 1 decimal place, e.g. "58.6%".
func (p Percent) String() string {
	return fmt.Sprintf("%.1f%%", float64(p))
}
