package rollup

import (
	"errors"
	"fmt"

	"github.com/bitmark-inc/covid-rollup/schema"
)

var (
	ErrParse          = errors.New("date header parse failure")
	ErrInvalidRow     = errors.New("invalid row")
	ErrMalformedValue = errors.New("malformed value")
	ErrShapeMismatch  = errors.New("dataset shape mismatch")
	ErrUnknownKind    = errors.New("unknown dataset kind")
)

// ParseError - a header date field does not match month/day/year
type ParseError struct {
	Kind   schema.Kind
	Column int
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s header column %d: cannot parse date %q: %s", e.Kind, e.Column, e.Field, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// InvalidRowError - a data row has an empty country field
type InvalidRowError struct {
	Kind     schema.Kind
	Row      int
	Province string
}

func (e *InvalidRowError) Error() string {
	return fmt.Sprintf("%s row %d: empty country (province %q)", e.Kind, e.Row, e.Province)
}

func (e *InvalidRowError) Unwrap() error { return ErrInvalidRow }

// MalformedValueError - a per-date cell is not a non-negative integer
type MalformedValueError struct {
	Kind   schema.Kind
	Row    int
	Column int
	Date   string
	Value  string
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("%s row %d column %d (%s): malformed value %q", e.Kind, e.Row, e.Column, e.Date, e.Value)
}

func (e *MalformedValueError) Unwrap() error { return ErrMalformedValue }

// ShapeMismatchError - row count, cell count or date header disagrees with what the datasets require.
// Column is the first differing header column when What is "dates".
type ShapeMismatchError struct {
	Kind     schema.Kind
	Row      int
	Column   int
	What     string
	Expected int
	Actual   int
}

func (e *ShapeMismatchError) Error() string {
	switch e.What {
	case "rows":
		return fmt.Sprintf("%s: expected %d data rows, got %d", e.Kind, e.Expected, e.Actual)
	case "dates":
		return fmt.Sprintf("%s: date header differs from cases at column %d (expected %d dates, got %d)",
			e.Kind, e.Column, e.Expected, e.Actual)
	case "header columns":
		return fmt.Sprintf("%s header: expected at least %d columns, got %d", e.Kind, e.Expected, e.Actual)
	}
	return fmt.Sprintf("%s row %d: expected %d %s, got %d", e.Kind, e.Row, e.Expected, e.What, e.Actual)
}

func (e *ShapeMismatchError) Unwrap() error { return ErrShapeMismatch }

// KindError - a dataset kind other than cases, deaths or recovered
type KindError struct {
	Kind schema.Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("unknown dataset kind %q", e.Kind)
}

func (e *KindError) Unwrap() error { return ErrUnknownKind }

func checkKind(kind schema.Kind) error {
	if _, err := schema.ParseKind(string(kind)); nil != err {
		return &KindError{Kind: kind}
	}
	return nil
}

// withRow stamps the dataset row index on a row level error
func withRow(err error, row int) error {
	switch e := err.(type) {
	case *InvalidRowError:
		e.Row = row
	case *MalformedValueError:
		e.Row = row
	case *ShapeMismatchError:
		e.Row = row
	}
	return err
}
