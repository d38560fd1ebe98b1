package dataLoader

import "errors"

var (
	ErrMissingColumn     = errors.New("error required column not found")
	ErrUnsupportedFormat = errors.New("error unsupported dataset format")
	ErrInvalidDate       = errors.New("error invalid date")
	ErrSheetNotFound     = errors.New("error sheet not found")
)
