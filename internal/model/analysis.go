package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Analysis struct {
	Start            time.Time
	End              time.Time
	Quantity         int
	Records          []FilteredRecord
	LatestDate       time.Time
	LatestClose      decimal.Decimal
	LatestTotalValue decimal.Decimal
}
