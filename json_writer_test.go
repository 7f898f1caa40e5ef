package costbasis

import (
	"testing"
	"time"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty object", func(t *testing.T) {
		var w jsonObjectWriter
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := "{}"; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("b", 1)
		w.Append("a", "hello")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `{"b":1,"a":"hello"}`
		if string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("optional skips zero values", func(t *testing.T) {
		var w jsonObjectWriter
		w.Optional("a", "")
		w.Optional("b", 0)
		w.Optional("c", "x")
		got, err := w.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := `{"c":"x"}`; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("money keeps all digits", func(t *testing.T) {
		got, err := M(1234.5678, "USD").MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := `{"currency":"USD","amount":"1234.5678"}`; string(got) != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}

func TestJsonObjectWriter_Time(t *testing.T) {
	var w jsonObjectWriter
	w.Time("zero", time.Time{})
	w.Time("at", time.Date(2024, 3, 5, 15, 30, 0, 0, time.FixedZone("CET", 3600)))
	got, err := w.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `{"at":"2024-03-05T14:30:00Z"}`; string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
