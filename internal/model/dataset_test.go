package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDatasetIsImmutable(t *testing.T) {
	src := []PriceRecord{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Close: decimal.NewNullDecimal(decimal.NewFromInt(80))},
	}

	ds := NewDataset(src)
	src[0].Close = decimal.NewNullDecimal(decimal.NewFromInt(1))

	got := ds.Records()
	if !got[0].Close.Decimal.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("dataset changed after source mutation: close = %s", got[0].Close.Decimal)
	}

	got[0].Close = decimal.NewNullDecimal(decimal.NewFromInt(2))
	if !ds.Records()[0].Close.Decimal.Equal(decimal.NewFromInt(80)) {
		t.Fatal("dataset changed after mutating Records() result")
	}
	if ds.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", ds.Len())
	}
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	in := time.Date(2024, 3, 5, 23, 59, 0, 0, loc)

	got := DateOnly(in)
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DateOnly(%v) = %v, want %v", in, got, want)
	}
}
