package rollup

import (
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/covid-rollup/schema"
)

// Dataset - provides the decoded csv rows of each dataset kind, header first
type Dataset interface {
	Rows(kind schema.Kind) ([][]string, error)
}

// Aggregator folds the cases, deaths and recovered datasets into one accumulator
type Aggregator struct {
	dataset Dataset
}

// NewAggregator - new aggregator reading from dataset
func NewAggregator(dataset Dataset) *Aggregator {
	return &Aggregator{
		dataset: dataset,
	}
}

// Run fetches and folds every dataset in order. Any error aborts the run and no accumulator is returned.
func (a *Aggregator) Run() (schema.Accumulator, error) {
	logger := log.WithFields(log.Fields{
		"prefix": logPrefix,
		"run":    uuid.New().String(),
	})

	acc := schema.NewAccumulator()
	expectedRows := -1

	// dates come from the cases header, deaths and recovered must repeat it exactly
	var canonical []string

	for _, kind := range schema.Kinds {
		rows, err := a.dataset.Rows(kind)
		if nil != err {
			logger.WithFields(log.Fields{
				"kind":  kind,
				"error": err,
			}).Error("fetch dataset")
			return nil, err
		}

		// deaths and recovered must line up with cases row for row
		if expectedRows >= 0 && len(rows)-1 != expectedRows {
			err := &ShapeMismatchError{
				Kind:     kind,
				What:     "rows",
				Expected: expectedRows,
				Actual:   len(rows) - 1,
			}
			logger.WithField("error", err).Error("dataset shape")
			return nil, err
		}

		dates, err := foldDataset(logger, kind, rows, canonical, acc)
		if nil != err {
			logger.WithFields(log.Fields{
				"kind":  kind,
				"error": err,
			}).Error("fold dataset")
			return nil, err
		}

		logger.WithFields(log.Fields{
			"kind":  kind,
			"rows":  len(rows) - 1,
			"dates": len(dates),
		}).Info("folded dataset")

		if expectedRows < 0 {
			expectedRows = len(rows) - 1
			canonical = dates
		}
	}

	logger.WithField("countries", len(acc)).Info("aggregation complete")

	return acc, nil
}

// FoldDataset parses the header of rows and folds every data row into acc.
// It returns the canonical date sequence of the dataset.
func FoldDataset(kind schema.Kind, rows [][]string, acc schema.Accumulator) ([]string, error) {
	return foldDataset(log.WithField("prefix", logPrefix), kind, rows, nil, acc)
}

// foldDataset folds rows into acc. A non-nil canonical is the date sequence the header must match.
func foldDataset(logger *log.Entry, kind schema.Kind, rows [][]string, canonical []string, acc schema.Accumulator) ([]string, error) {
	if err := checkKind(kind); nil != err {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, &ShapeMismatchError{
			Kind:     kind,
			What:     "rows",
			Expected: 1,
			Actual:   0,
		}
	}

	dates, err := parseDateHeader(kind, rows[0])
	if nil != err {
		return nil, err
	}

	if nil != canonical {
		if i := compareDates(canonical, dates); i >= 0 {
			return nil, &ShapeMismatchError{
				Kind:     kind,
				Column:   metadataColumns + i,
				What:     "dates",
				Expected: len(canonical),
				Actual:   len(dates),
			}
		}
	}

	// check every row before folding so a bad row late in the file leaves acc untouched
	for i, row := range rows[1:] {
		if len(row) != metadataColumns+len(dates) {
			return nil, &ShapeMismatchError{
				Kind:     kind,
				Row:      i + 1,
				What:     "cells",
				Expected: metadataColumns + len(dates),
				Actual:   len(row),
			}
		}
	}

	for i, row := range rows[1:] {
		if err := foldRow(logger, kind, row, dates, acc); nil != err {
			return nil, withRow(err, i+1)
		}
	}

	return dates, nil
}
