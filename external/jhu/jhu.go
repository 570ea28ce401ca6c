package jhu

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/covid-rollup/schema"
)

const (
	logPrefix = "jhu"

	SourceHTTP = "http"
	SourceFile = "file"

	defaultBaseURL = "https://github.com/CSSEGISandData/COVID-19/raw/master/csse_covid_19_data/csse_covid_19_time_series/"
)

var (
	ErrResponseStatus = fmt.Errorf("response status not ok")
	ErrEmptyDataset   = fmt.Errorf("empty dataset")
	ErrUnknownKind    = fmt.Errorf("no location for dataset kind")
	ErrUnknownSource  = fmt.Errorf("unknown dataset source")
)

// FileNames - published file name of each time series
var FileNames = map[schema.Kind]string{
	schema.KindCases:     "time_series_19-covid-Confirmed.csv",
	schema.KindDeaths:    "time_series_19-covid-Deaths.csv",
	schema.KindRecovered: "time_series_19-covid-Recovered.csv",
}

//go:generate mockgen -source=jhu.go -destination=../mocks/jhu.go -package=mocks

// Source - interface to obtain the raw time series csv of a dataset kind
type Source interface {
	Fetch(kind schema.Kind) ([]byte, error)
	Rows(kind schema.Kind) ([][]string, error)
}

// DefaultURLs returns the JHU CSSE time series locations
func DefaultURLs() map[schema.Kind]string {
	urls := make(map[schema.Kind]string)
	for kind, name := range FileNames {
		urls[kind] = defaultBaseURL + name
	}
	return urls
}

// New - new source of the named type, "http" reads urls and "file" reads dir
func New(source string, urls map[schema.Kind]string, dir string, timeout time.Duration) (Source, error) {
	switch source {
	case SourceHTTP, "":
		return NewHTTP(urls, timeout), nil
	case SourceFile:
		return NewDir(dir), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSource, source)
}

// ReadRows decodes csv data into rows. Rows may differ in length, the aggregator checks shape.
func ReadRows(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDataset
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if nil != err {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"error":  err,
		}).Error("decode csv")
		return nil, err
	}

	return rows, nil
}

func rowsOf(s Source, kind schema.Kind) ([][]string, error) {
	data, err := s.Fetch(kind)
	if nil != err {
		return nil, err
	}
	return ReadRows(data)
}
