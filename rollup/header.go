package rollup

import (
	"fmt"
	"strings"
	"time"

	"github.com/bitmark-inc/covid-rollup/schema"
)

const (
	// province, country, latitude, longitude
	metadataColumns = 4

	isoDateLayout = "2006-01-02"
)

// ParseDateHeader converts the dated columns of a header row into ISO dates.
// The first four fields are metadata and skipped. Every other field is m/d/yy with the year in the 2000s.
func ParseDateHeader(header []string) ([]string, error) {
	return parseDateHeader("", header)
}

func parseDateHeader(kind schema.Kind, header []string) ([]string, error) {
	if len(header) < metadataColumns {
		return nil, &ShapeMismatchError{
			Kind:     kind,
			What:     "header columns",
			Expected: metadataColumns,
			Actual:   len(header),
		}
	}

	dates := make([]string, 0, len(header)-metadataColumns)
	for i, field := range header[metadataColumns:] {
		d, err := parseHeaderDate(field)
		if nil != err {
			return nil, &ParseError{
				Kind:   kind,
				Column: metadataColumns + i,
				Field:  field,
				Reason: err.Error(),
			}
		}
		dates = append(dates, d.Format(isoDateLayout))
	}

	return dates, nil
}

func parseHeaderDate(field string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(field), "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("expected month/day/year")
	}

	// two digit year only, time.Parse would put 69-99 in the 1900s
	if len(parts[2]) != 2 {
		return time.Time{}, fmt.Errorf("expected two digit year")
	}

	return time.Parse("1/2/2006", parts[0]+"/"+parts[1]+"/20"+parts[2])
}

// compareDates returns the index of the first position where dates differs from canonical, -1 when equal
func compareDates(canonical, dates []string) int {
	for i := range canonical {
		if i >= len(dates) || dates[i] != canonical[i] {
			return i
		}
	}
	if len(dates) > len(canonical) {
		return len(canonical)
	}
	return -1
}
