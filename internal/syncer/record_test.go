package syncer

import (
	"encoding/json"
	"testing"
)

func TestAsString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"padded text", "  Nasi Uduk ", "Nasi Uduk"},
		{"json number", json.Number("42.5"), "42.5"},
		{"float", 3500.0, "3500"},
		{"bool", true, "true"},
		{"unsupported", []any{"x"}, ""},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := asString(tt.value); got != tt.want {
				t.Errorf("asString(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestFloatField(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value any
		def   float64
		want  float64
	}{
		{"float passthrough", 12.5, 40, 12.5},
		{"numeric string", " 20 ", 40, 20},
		{"json number", json.Number("11"), 40, 11},
		{"garbage string", "abc", 40, 40},
		{"nil uses default", nil, 40, 40},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := floatField(tt.value, tt.def); got != tt.want {
				t.Errorf("floatField(%v, %v) = %v, want %v", tt.value, tt.def, got, tt.want)
			}
		})
	}
}

func TestNumberField(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value any
		def   string
		want  string
	}{
		{"nil keeps default", nil, "1", "1"},
		{"blank string keeps default", "   ", "1", "1"},
		{"string passthrough", " 250 ", "1", "250"},
		{"float renders as form input", 4.0, "1", "4"},
		{"zero keeps non-empty default", 0.0, "1", "1"},
		{"zero with empty default renders", 0.0, "", "0"},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := numberField(tt.value, tt.def); got != tt.want {
				t.Errorf("numberField(%v, %q) = %q, want %q", tt.value, tt.def, got, tt.want)
			}
		})
	}
}

func TestSummariesFromRecordsPrefersExplicitHPPField(t *testing.T) {
	t.Parallel()

	records := []map[string]any{
		{"menu_id": "M1", "nama_menu": "A", "hpp_per_unit": 100.0, "hpp_per_piece": 999.0},
		{"menu_id": "M2", "nama_menu": "B", "hpp_per_piece": 250.0},
	}

	summaries := summariesFromRecords(records)
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries", len(summaries))
	}
	if summaries[0].HPPPerUnit != 100 {
		t.Errorf("hpp_per_unit should win, got %v", summaries[0].HPPPerUnit)
	}
	if summaries[1].HPPPerUnit != 250 {
		t.Errorf("hpp_per_piece fallback broken, got %v", summaries[1].HPPPerUnit)
	}
}
