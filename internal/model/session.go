package model

import "time"

type action int

const (
	ExpectingStartDate action = iota
	ExpectingEndDate
	ExpectingQuantity
)

// Next returns the field after a, wrapping to the start date.
func (a action) Next() action {
	if a >= ExpectingQuantity {
		return ExpectingStartDate
	}
	return a + 1
}

func (a action) Prev() action {
	if a <= ExpectingStartDate {
		return ExpectingQuantity
	}
	return a - 1
}

type Session struct {
	Action action
	Form   SubmissionForm
}

// SubmissionForm holds the raw user input until all three fields are collected.
type SubmissionForm struct {
	StartDate string
	EndDate   string
	Quantity  string
}

// ParsedForm is a form that passed input parsing and is ready for analysis.
type ParsedForm struct {
	Start    time.Time
	End      time.Time
	Quantity int
}
