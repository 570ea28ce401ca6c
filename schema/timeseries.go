package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v2"
)

// Kind identifies which series a dataset's values accumulate into
type Kind string

const (
	KindCases     Kind = "cases"
	KindDeaths    Kind = "deaths"
	KindRecovered Kind = "recovered"
)

// Kinds is the fixed fold order of the datasets
var Kinds = []Kind{KindCases, KindDeaths, KindRecovered}

// ParseKind - convert a dataset label into a Kind
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown dataset kind: %q", s)
}

// DatedSeries maps ISO dates (YYYY-MM-DD) to counts, iterated in date order.
type DatedSeries struct {
	dates  []string
	counts map[string]int
}

func NewDatedSeries() *DatedSeries {
	return &DatedSeries{
		dates:  []string{},
		counts: make(map[string]int),
	}
}

// Has reports whether date is a key of the series
func (s *DatedSeries) Has(date string) bool {
	_, ok := s.counts[date]
	return ok
}

// Get returns the count at date
func (s *DatedSeries) Get(date string) (int, bool) {
	v, ok := s.counts[date]
	return v, ok
}

// Insert adds date with a zero count, keeping the dates sorted. An existing date is left untouched.
func (s *DatedSeries) Insert(date string) {
	if s.Has(date) {
		return
	}

	i := sort.SearchStrings(s.dates, date)
	s.dates = append(s.dates, "")
	copy(s.dates[i+1:], s.dates[i:])
	s.dates[i] = date
	s.counts[date] = 0
}

// Add increments the count at date. The date must already be present.
func (s *DatedSeries) Add(date string, n int) bool {
	if !s.Has(date) {
		return false
	}
	s.counts[date] += n
	return true
}

// Dates returns a copy of the series keys in order
func (s *DatedSeries) Dates() []string {
	out := make([]string, len(s.dates))
	copy(out, s.dates)
	return out
}

func (s *DatedSeries) Len() int {
	return len(s.dates)
}

// Latest returns the last date of the series and its count
func (s *DatedSeries) Latest() (string, int, bool) {
	if len(s.dates) == 0 {
		return "", 0, false
	}
	d := s.dates[len(s.dates)-1]
	return d, s.counts[d], true
}

// MarshalJSON writes the series as an object with keys in date order
func (s *DatedSeries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range s.dates {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(d)
		if nil != err {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.WriteString(fmt.Sprintf("%d", s.counts[d]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML keeps the date order in yaml output
func (s *DatedSeries) MarshalYAML() (interface{}, error) {
	out := make(yaml.MapSlice, 0, len(s.dates))
	for _, d := range s.dates {
		out = append(out, yaml.MapItem{Key: d, Value: s.counts[d]})
	}
	return out, nil
}

// CountryRecord holds the rolled up series of one country
type CountryRecord struct {
	Latitude  string       `json:"latitude" yaml:"latitude"`
	Longitude string       `json:"longitude" yaml:"longitude"`
	Cases     *DatedSeries `json:"cases" yaml:"cases"`
	Deaths    *DatedSeries `json:"deaths" yaml:"deaths"`
	Recovered *DatedSeries `json:"recovered" yaml:"recovered"`
}

func NewCountryRecord(latitude, longitude string) *CountryRecord {
	return &CountryRecord{
		Latitude:  latitude,
		Longitude: longitude,
		Cases:     NewDatedSeries(),
		Deaths:    NewDatedSeries(),
		Recovered: NewDatedSeries(),
	}
}

// Series returns the series a dataset kind accumulates into, nil for an unknown kind
func (r *CountryRecord) Series(kind Kind) *DatedSeries {
	switch kind {
	case KindCases:
		return r.Cases
	case KindDeaths:
		return r.Deaths
	case KindRecovered:
		return r.Recovered
	}
	return nil
}

// EnsureDate inserts date with a zero count in all three series
func (r *CountryRecord) EnsureDate(date string) {
	r.Cases.Insert(date)
	r.Deaths.Insert(date)
	r.Recovered.Insert(date)
}

// Accumulator maps a country key to its record
type Accumulator map[string]*CountryRecord

func NewAccumulator() Accumulator {
	return make(Accumulator)
}

// Countries returns the country keys sorted alphabetically
func (a Accumulator) Countries() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MarshalYAML writes countries in alphabetical order
func (a Accumulator) MarshalYAML() (interface{}, error) {
	out := make(yaml.MapSlice, 0, len(a))
	for _, name := range a.Countries() {
		out = append(out, yaml.MapItem{Key: name, Value: a[name]})
	}
	return out, nil
}
