package service

import "errors"

var (
	ErrInvalidRange    = errors.New("error start date is after end date")
	ErrNoData          = errors.New("error no data for the selected date range")
	ErrInvalidQuantity = errors.New("error quantity must be a positive integer")
)
