package jhu_test

import (
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/covid-rollup/external/jhu"
	"github.com/bitmark-inc/covid-rollup/schema"
)

const casesCSV = `Province/State,Country/Region,Lat,Long,1/22/20,1/23/20
,CountryA,10.0,20.0,1,2
"Bonaire, Sint Eustatius and Saba",Netherlands,12.1,-68.2,0,
`

func TestReadRows(t *testing.T) {
	rows, err := jhu.ReadRows([]byte(casesCSV))
	assert.NoError(t, err, "wrong ReadRows")
	assert.Len(t, rows, 3, "wrong row count")
	assert.Equal(t, []string{"Province/State", "Country/Region", "Lat", "Long", "1/22/20", "1/23/20"}, rows[0])
	assert.Equal(t, "Bonaire, Sint Eustatius and Saba", rows[2][0], "quoted field should be kept whole")
	assert.Equal(t, "", rows[2][5], "empty cell should be kept")
}

func TestReadRowsVariableLength(t *testing.T) {
	rows, err := jhu.ReadRows([]byte("a,b,c,d,1/22/20\n,X,1,2\n"))
	assert.NoError(t, err)
	assert.Len(t, rows[1], 4)
}

func TestReadRowsByteOrderMark(t *testing.T) {
	rows, err := jhu.ReadRows([]byte("\xef\xbb\xbfProvince/State,Country/Region\n"))
	assert.NoError(t, err)
	assert.Equal(t, "Province/State", rows[0][0])
}

func TestReadRowsEmpty(t *testing.T) {
	_, err := jhu.ReadRows([]byte("  \n"))
	assert.Equal(t, jhu.ErrEmptyDataset, err)
}

func TestHTTPSource(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/confirmed.csv" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(casesCSV))
	}))
	defer ts.Close()

	s := jhu.NewHTTP(map[schema.Kind]string{
		schema.KindCases:  ts.URL + "/confirmed.csv",
		schema.KindDeaths: ts.URL + "/missing.csv",
	}, time.Second)

	rows, err := s.Rows(schema.KindCases)
	assert.NoError(t, err, "wrong Rows")
	assert.Len(t, rows, 3)

	_, err = s.Fetch(schema.KindDeaths)
	assert.Equal(t, jhu.ErrResponseStatus, err, "wrong error for status 404")

	_, err = s.Fetch(schema.Kind("tested"))
	assert.Equal(t, jhu.ErrUnknownKind, err)
}

func TestDefaultURLs(t *testing.T) {
	urls := jhu.DefaultURLs()
	assert.Len(t, urls, 3)
	assert.Contains(t, urls[schema.KindRecovered], "time_series_19-covid-Recovered.csv")
}

func TestDirSource(t *testing.T) {
	dir, err := ioutil.TempDir("", "jhu")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	err = ioutil.WriteFile(filepath.Join(dir, jhu.FileNames[schema.KindCases]), []byte(casesCSV), 0644)
	assert.NoError(t, err)

	s := jhu.NewDir(dir)
	rows, err := s.Rows(schema.KindCases)
	assert.NoError(t, err, "wrong Rows")
	assert.Equal(t, "CountryA", rows[1][1])

	_, err = s.Rows(schema.KindDeaths)
	assert.Error(t, err, "missing file should fail")
}

func TestNew(t *testing.T) {
	s, err := jhu.New(jhu.SourceFile, nil, "/tmp", 0)
	assert.NoError(t, err)
	assert.NotNil(t, s)

	s, err = jhu.New("", nil, "", 0)
	assert.NoError(t, err)
	assert.NotNil(t, s)

	_, err = jhu.New("ftp", nil, "", 0)
	assert.True(t, errors.Is(err, jhu.ErrUnknownSource))
}
