package rollup

import (
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/covid-rollup/schema"
)

const (
	logPrefix = "rollup"

	unitedKingdom = "United Kingdom"

	// UnspecifiedUnitedKingdom is the key of United Kingdom rows without a province
	UnspecifiedUnitedKingdom = "United Kingdom (unspecified)"
)

// EffectiveCountry returns the accumulator key of a row.
// United Kingdom rows are keyed by their province.
func EffectiveCountry(country, province string) string {
	if country != unitedKingdom {
		return country
	}
	if province == "" {
		return UnspecifiedUnitedKingdom
	}
	return province
}

// FoldRow adds one data row of a dataset into acc.
// The row is validated completely before acc is touched.
func FoldRow(kind schema.Kind, row []string, dates []string, acc schema.Accumulator) error {
	return foldRow(log.WithField("prefix", logPrefix), kind, row, dates, acc)
}

func foldRow(logger *log.Entry, kind schema.Kind, row []string, dates []string, acc schema.Accumulator) error {
	if err := checkKind(kind); nil != err {
		return err
	}

	if len(row) < metadataColumns {
		return &ShapeMismatchError{
			Kind:     kind,
			What:     "cells",
			Expected: metadataColumns + len(dates),
			Actual:   len(row),
		}
	}

	province := row[0]
	country := row[1]
	if country == "" {
		return &InvalidRowError{
			Kind:     kind,
			Province: province,
		}
	}

	cells := row[metadataColumns:]
	if len(cells) != len(dates) {
		return &ShapeMismatchError{
			Kind:     kind,
			What:     "cells",
			Expected: metadataColumns + len(dates),
			Actual:   len(row),
		}
	}

	values := make([]int, len(cells))
	for j, cell := range cells {
		v, err := parseCount(cell)
		if nil != err {
			return &MalformedValueError{
				Kind:   kind,
				Column: metadataColumns + j,
				Date:   dates[j],
				Value:  cell,
			}
		}
		values[j] = v
	}

	key := EffectiveCountry(country, province)
	record, ok := acc[key]
	if !ok {
		record = schema.NewCountryRecord(row[2], row[3])
		acc[key] = record

		fields := log.Fields{
			"kind":    kind,
			"country": key,
		}
		if kind != schema.KindCases {
			logger.WithFields(fields).Warn("country not present in cases dataset")
		} else {
			logger.WithFields(fields).Debug("new country")
		}
	}

	for _, d := range dates {
		record.EnsureDate(d)
	}

	series := record.Series(kind)
	for j, v := range values {
		series.Add(dates[j], v)
	}

	return nil
}

// parseCount reads a cell as a non-negative integer, empty means zero
func parseCount(cell string) (int, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(cell)
	if nil != err {
		return 0, err
	}
	if v < 0 {
		return 0, ErrMalformedValue
	}
	return v, nil
}
