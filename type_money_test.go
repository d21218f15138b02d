package ledger

import (
	"encoding/json"
	"testing"
)

func TestMoney_Arithmetic(t *testing.T) {
	sum := EUR(25.50).Add(EUR(18))
	if !sum.Equal(EUR(43.50)) {
		t.Errorf("25.50 + 18.00 = %s", sum.Fixed())
	}
	diff := EUR(10).Sub(EUR(43.50))
	if !diff.IsNegative() || diff.Fixed() != "-33.50" {
		t.Errorf("10.00 - 43.50 = %s", diff.Fixed())
	}
}

func TestMoney_WeakCurrency(t *testing.T) {
	// The zero Money has no currency and adopts the other operand's.
	var zero Money
	sum := zero.Add(EUR(5))
	if sum.Currency() != "EUR" {
		t.Errorf("currency = %q, want EUR", sum.Currency())
	}

	defer func() {
		if recover() == nil {
			t.Error("mixing currencies did not panic")
		}
	}()
	EUR(1).Add(M(1, "USD"))
}

func TestMoney_PercentOf(t *testing.T) {
	testCases := []struct {
		part, total float64
		want        Percent
	}{
		{25.50, 43.50, 58.6}, // 58.62 rounds down
		{18.00, 43.50, 41.4}, // 41.37 rounds half-up
		{1, 3, 33.3},
		{0, 43.50, 0},
	}
	for _, tc := range testCases {
		if got := EUR(tc.part).PercentOf(EUR(tc.total)); !got.Equal(tc.want) {
			t.Errorf("%.2f of %.2f = %s, want %s", tc.part, tc.total, got, tc.want)
		}
	}
	if got := EUR(5).PercentOf(EUR(0)); got != 0 {
		t.Errorf("share of a zero total = %s, want 0", got)
	}
}

func TestMoney_JSON(t *testing.T) {
	data, err := json.Marshal(EUR(25.5))
	if err != nil {
		t.Fatal(err)
	}
	// Bare number at currency precision, no quotes.
	if string(data) != "25.50" {
		t.Errorf("marshaled %s, want 25.50", data)
	}
}

func TestPercent_String(t *testing.T) {
	if got := Percent(58.6).String(); got != "58.6%" {
		t.Errorf("got %q", got)
	}
	if got := Percent(100).String(); got != "100.0%" {
		t.Errorf("got %q", got)
	}
}
