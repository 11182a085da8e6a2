package models

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyMonth means the month has no first character to accent.
	ErrEmptyMonth = errors.New("evidence month must not be empty")
	// ErrInvalidYear means the year is not a two-digit offset.
	ErrInvalidYear = errors.New("evidence year must be between 0 and 99")
	// ErrIncompleteRecord means a display field is missing.
	ErrIncompleteRecord = errors.New("evidence record is incomplete")
)

// EvidenceRecord is the data printed on the evidence document. It can only be
// built through NewEvidenceRecord, so every value in circulation is complete.
type EvidenceRecord struct {
	month      string
	year       uint8
	repository string
	author     string
}

// NewEvidenceRecord validates and builds an EvidenceRecord. Year is the
// two-digit offset within the century (22 means 2022).
func NewEvidenceRecord(month string, year uint8, repository, author string) (EvidenceRecord, error) {
	if month == "" {
		return EvidenceRecord{}, ErrEmptyMonth
	}
	if year > 99 {
		return EvidenceRecord{}, fmt.Errorf("%w: got %d", ErrInvalidYear, year)
	}
	if repository == "" {
		return EvidenceRecord{}, fmt.Errorf("%w: repository is empty", ErrIncompleteRecord)
	}
	if author == "" {
		return EvidenceRecord{}, fmt.Errorf("%w: author is empty", ErrIncompleteRecord)
	}
	return EvidenceRecord{
		month:      month,
		year:       year,
		repository: repository,
		author:     author,
	}, nil
}

func (r EvidenceRecord) Month() string      { return r.month }
func (r EvidenceRecord) Year() uint8        { return r.year }
func (r EvidenceRecord) Repository() string { return r.repository }
func (r EvidenceRecord) Author() string     { return r.author }

// IsZero reports whether r is the zero value, i.e. was never constructed.
func (r EvidenceRecord) IsZero() bool {
	return r == EvidenceRecord{}
}
