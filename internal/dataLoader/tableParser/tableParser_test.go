package tableParser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KotFed0t/commodity_value_analyzer/internal/dataLoader"
	"github.com/shopspring/decimal"
)

func TestParse(t *testing.T) {
	rows := [][]string{
		{"Brent Crude Prices"},
		{},
		{"Source: exchange"},
		{" date ", "OPEN", "  Close  ", "Volume"},
		{"2024-01-02", "80.1", "85", "100"},
		{"2024-01-01", "79", "80", "100"},
		{},
		{"", "1", "2"},
		{"2024-01-03", "", "n/a"},
		{"45295", "1,081.5"},
	}

	got, err := Parse(context.Background(), rows, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 4 {
		t.Fatalf("expected 4 records, got %d", len(got))
	}

	if got[0].Date.Format(time.DateOnly) != "2024-01-02" {
		t.Errorf("first record date = %s, want 2024-01-02", got[0].Date.Format(time.DateOnly))
	}
	if !got[0].Open.Valid || !got[0].Open.Decimal.Equal(decimal.RequireFromString("80.1")) {
		t.Errorf("first record open = %+v, want 80.1", got[0].Open)
	}
	if !got[0].Close.Valid || !got[0].Close.Decimal.Equal(decimal.NewFromInt(85)) {
		t.Errorf("first record close = %+v, want 85", got[0].Close)
	}

	if got[2].Open.Valid || got[2].Close.Valid {
		t.Errorf("expected missing prices for 2024-01-03, got open=%+v close=%+v", got[2].Open, got[2].Close)
	}

	// Excel serial 45295 is 2024-01-04, the close cell is absent
	if got[3].Date.Format(time.DateOnly) != "2024-01-04" {
		t.Errorf("serial date = %s, want 2024-01-04", got[3].Date.Format(time.DateOnly))
	}
	if !got[3].Open.Decimal.Equal(decimal.RequireFromString("1081.5")) {
		t.Errorf("open with thousands separator = %s, want 1081.5", got[3].Open.Decimal)
	}
	if got[3].Close.Valid {
		t.Error("expected missing close for short row")
	}
}

func TestParse_MissingColumns(t *testing.T) {
	cases := map[string][][]string{
		"no date":   {{"Day", "Open", "Close"}, {"2024-01-01", "1", "2"}},
		"no close":  {{"Date", "Open", "Price"}, {"2024-01-01", "1", "2"}},
		"no header": {},
	}

	for name, rows := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(context.Background(), rows, 0)
			if !errors.Is(err, dataLoader.ErrMissingColumn) {
				t.Fatalf("expected ErrMissingColumn, got %v", err)
			}
		})
	}
}

func TestParse_OpenIsOptional(t *testing.T) {
	got, err := Parse(context.Background(), [][]string{{"Date", "Close"}, {"2024-01-01", "80"}}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Open.Valid {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestParse_InvalidDate(t *testing.T) {
	rows := [][]string{{"Date", "Open", "Close"}, {"2024-01-01", "1", "2"}, {"yesterday", "1", "2"}}

	_, err := Parse(context.Background(), rows, 0)
	if !errors.Is(err, dataLoader.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if err.Error() != `row 3: "yesterday": error invalid date` {
		t.Fatalf("unexpected error text: %q", err.Error())
	}
}

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]string{
		"Date":       "date",
		"  Close ":   "close",
		"O p e n":    "open",
		"\ufeffDate": "date",
		"\tCLOSE\n":  "close",
	}

	for in, want := range cases {
		if got := NormalizeHeader(in); got != want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{
		"2024-03-15",
		"2024-03-15 17:45:00",
		"2024-03-15T10:00:00Z",
		"2024/03/15",
		"03/15/2024",
		"3/15/2024",
		"15.03.2024",
		"Mar 15, 2024",
		"15 Mar 2024",
		"45366",
		" 2024-03-15 ",
	} {
		got, err := ParseDate(raw)
		if err != nil {
			t.Errorf("ParseDate(%q) unexpected error: %v", raw, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", raw, got, want)
		}
	}

	for _, raw := range []string{"", "abc", "-5", "2024-13-40"} {
		if _, err := ParseDate(raw); !errors.Is(err, dataLoader.ErrInvalidDate) {
			t.Errorf("ParseDate(%q) expected ErrInvalidDate, got %v", raw, err)
		}
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		raw   string
		valid bool
		want  string
	}{
		{"80", true, "80"},
		{" 85.25 ", true, "85.25"},
		{"1,234.5", true, "1234.5"},
		{"", false, ""},
		{"   ", false, ""},
		{"n/a", false, ""},
	}

	for _, tc := range cases {
		got := ParsePrice(tc.raw)
		if got.Valid != tc.valid {
			t.Errorf("ParsePrice(%q).Valid = %v, want %v", tc.raw, got.Valid, tc.valid)
			continue
		}
		if tc.valid && !got.Decimal.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("ParsePrice(%q) = %s, want %s", tc.raw, got.Decimal, tc.want)
		}
	}
}
