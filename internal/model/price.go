package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PriceRecord struct {
	Date  time.Time
	Open  decimal.NullDecimal
	Close decimal.NullDecimal
}

type FilteredRecord struct {
	PriceRecord
	TotalValue decimal.Decimal
	Difference decimal.Decimal
}

// Dataset is the read-only table of prices in load order. Records are not guaranteed to be sorted.
type Dataset struct {
	records []PriceRecord
}

func NewDataset(records []PriceRecord) Dataset {
	return Dataset{records: append([]PriceRecord(nil), records...)}
}

func (d Dataset) Len() int {
	return len(d.records)
}

// Records returns a copy, callers can't change the loaded data.
func (d Dataset) Records() []PriceRecord {
	return append([]PriceRecord(nil), d.records...)
}

// DateOnly truncates t to a calendar date at midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
