package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/covid-rollup/schema"
)

type countryResponse struct {
	Latitude  string         `json:"latitude"`
	Longitude string         `json:"longitude"`
	Cases     map[string]int `json:"cases"`
	Deaths    map[string]int `json:"deaths"`
	Recovered map[string]int `json:"recovered"`
}

func testCountries() schema.Accumulator {
	acc := schema.NewAccumulator()

	italy := schema.NewCountryRecord("43.0", "12.0")
	japan := schema.NewCountryRecord("36.0", "138.0")
	for _, d := range []string{"2020-01-22", "2020-01-23"} {
		italy.EnsureDate(d)
		japan.EnsureDate(d)
	}
	italy.Cases.Add("2020-01-23", 7)
	japan.Deaths.Add("2020-01-22", 1)

	acc["Italy"] = italy
	acc["Japan"] = japan
	return acc
}

func serve(s *Server, target string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := s.setupRouter()

	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetCountries(t *testing.T) {
	w := serve(NewServer(testCountries()), "/api/countries")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp map[string]countryResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Nil(t, err, "wrong json response")
	assert.Len(t, resp, 2)
	assert.Equal(t, "43.0", resp["Italy"].Latitude)
	assert.Equal(t, map[string]int{"2020-01-22": 0, "2020-01-23": 7}, resp["Italy"].Cases)
}

func TestGetCountriesByRegion(t *testing.T) {
	w := serve(NewServer(testCountries()), "/api/countries?region=europe")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp map[string]countryResponse
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	assert.Contains(t, resp, "Italy")
}

func TestGetCountriesUnknownRegion(t *testing.T) {
	w := serve(NewServer(testCountries()), "/api/countries?region=atlantis")
	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong status code")

	var resp ErrorResponse
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1101), resp.Code)
}

func TestGetCountriesText(t *testing.T) {
	w := serve(NewServer(testCountries()), "/api/countries?format=text&region=asia")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, []string{"Japan", "2020-01-23", "0", "0", "0"}, strings.Fields(lines[1]))
}

func TestGetCountriesInvalidFormat(t *testing.T) {
	w := serve(NewServer(testCountries()), "/api/countries?format=xml")
	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong status code")
}

func TestGetCountry(t *testing.T) {
	w := serve(NewServer(testCountries()), "/api/countries/Japan")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp countryResponse
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "138.0", resp.Longitude)
	assert.Equal(t, map[string]int{"2020-01-22": 1, "2020-01-23": 0}, resp.Deaths)
}

func TestGetCountryNotFound(t *testing.T) {
	w := serve(NewServer(testCountries()), "/api/countries/Atlantis")
	assert.Equal(t, http.StatusNotFound, w.Code, "wrong status code")

	var resp ErrorResponse
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, errorCountryNotFound, resp)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/json"), "errors are json")
}

func TestRollupNotReadyIsJSON(t *testing.T) {
	w := serve(NewServer(nil), "/api/dates")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code, "wrong status code")
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/json"), "errors are json")

	var resp ErrorResponse
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, errorRollupNotReady, resp)
}

func TestGetDates(t *testing.T) {
	w := serve(NewServer(testCountries()), "/api/dates")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")

	var resp struct {
		Dates []string `json:"dates"`
	}
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"2020-01-22", "2020-01-23"}, resp.Dates)
}

func TestRollupNotReady(t *testing.T) {
	w := serve(NewServer(nil), "/api/countries")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code, "wrong status code")

	w = serve(NewServer(nil), "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code, "wrong status code")
}

func TestHealthz(t *testing.T) {
	w := serve(NewServer(testCountries()), "/healthz")
	assert.Equal(t, http.StatusOK, w.Code, "wrong status code")
	assert.Contains(t, w.Body.String(), `"status":"OK"`)
}
