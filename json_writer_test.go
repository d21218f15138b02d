package ledger

import (
	"testing"
)

func TestJsonObjectWriter(t *testing.T) {
	var w jsonObjectWriter
	w.Append("b", 1)
	w.Append("a", "x")
	w.Optional("empty", "")
	w.Optional("note", "kept")

	got, err := w.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	// Fields come out in insertion order, zero-valued optionals dropped.
	want := `{"b":1,"a":"x","note":"kept"}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestJsonObjectWriter_Embed(t *testing.T) {
	var w jsonObjectWriter
	w.Append("first", 1)
	w.Embed([]byte(`{"second":2,"third":3}`))
	w.Append("fourth", 4)

	got, err := w.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	want := `{"first":1,"second":2,"third":3,"fourth":4}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestJsonObjectWriter_Empty(t *testing.T) {
	var w jsonObjectWriter
	got, err := w.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "{}" {
		t.Errorf("got %s, want {}", got)
	}
}
