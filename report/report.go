package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v2"

	"github.com/bitmark-inc/covid-rollup/schema"
)

const (
	logPrefix = "report"

	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatText = "text"
)

var ErrUnknownFormat = fmt.Errorf("unknown report format")

// Filter returns the countries of acc named in allow, compared case-insensitively.
// A nil allow-list keeps every country. acc itself is not modified.
func Filter(acc schema.Accumulator, allow []string) schema.Accumulator {
	out := schema.NewAccumulator()
	if nil == allow {
		for name, record := range acc {
			out[name] = record
		}
		return out
	}

	fold := cases.Fold()
	wanted := make(map[string]struct{}, len(allow))
	for _, name := range allow {
		wanted[fold.String(name)] = struct{}{}
	}

	for name, record := range acc {
		if _, ok := wanted[fold.String(name)]; ok {
			out[name] = record
		}
	}

	log.WithFields(log.Fields{
		"prefix":  logPrefix,
		"allowed": len(allow),
		"kept":    len(out),
	}).Debug("filter countries")

	return out
}

// Write formats acc to w. lang selects the headings of the text format.
func Write(w io.Writer, acc schema.Accumulator, format, lang string) error {
	switch strings.ToLower(format) {
	case FormatYAML, "":
		b, err := yaml.Marshal(acc)
		if nil != err {
			return err
		}
		_, err = w.Write(b)
		return err
	case FormatJSON:
		b, err := json.MarshalIndent(acc, "", "  ")
		if nil != err {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	case FormatText:
		return writeText(w, acc, lang)
	}

	return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// writeText prints the latest counts of each country as a table
func writeText(w io.Writer, acc schema.Accumulator, lang string) error {
	loc := newLocalizer(lang)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		localize(loc, "report.country"),
		localize(loc, "report.date"),
		localize(loc, "report.cases"),
		localize(loc, "report.deaths"),
		localize(loc, "report.recovered"),
	)

	for _, name := range acc.Countries() {
		r := acc[name]
		date, confirmed, ok := r.Cases.Latest()
		if !ok {
			fmt.Fprintf(tw, "%s\t-\t0\t0\t0\n", name)
			continue
		}
		deaths, _ := r.Deaths.Get(date)
		recovered, _ := r.Recovered.Get(date)
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n", name, date, confirmed, deaths, recovered)
	}

	return tw.Flush()
}
