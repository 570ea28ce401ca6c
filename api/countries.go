package api

import (
	"bytes"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/covid-rollup/consts"
	"github.com/bitmark-inc/covid-rollup/report"
)

func (s *Server) rollupReadyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if nil == s.countries {
			abortWithEncoding(c, http.StatusServiceUnavailable, errorRollupNotReady)
			return
		}
		c.Next()
	}
}

// getCountries returns every country, or the countries of `region`.
// `format` may ask for yaml or a text table instead of json.
func (s *Server) getCountries(c *gin.Context) {
	allow, err := consts.RegionCountries(c.Query("region"))
	if nil != err {
		abortWithEncoding(c, http.StatusBadRequest, errorUnknownRegion, err)
		return
	}

	countries := report.Filter(s.countries, allow)

	switch format := c.Query("format"); format {
	case "", report.FormatJSON:
		c.JSON(http.StatusOK, countries)
	case report.FormatYAML, report.FormatText:
		var buf bytes.Buffer
		if err := report.Write(&buf, countries, format, c.DefaultQuery("lang", "en")); shouldInterupt(err, c) {
			return
		}

		contentType := "text/plain; charset=utf-8"
		if format == report.FormatYAML {
			contentType = "application/x-yaml; charset=utf-8"
		}
		c.Data(http.StatusOK, contentType, buf.Bytes())
	default:
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidFormat)
	}
}

func (s *Server) getCountry(c *gin.Context) {
	record, ok := s.countries[c.Param("country")]
	if !ok {
		abortWithEncoding(c, http.StatusNotFound, errorCountryNotFound)
		return
	}

	c.JSON(http.StatusOK, record)
}

// getDates returns the union of the date keys, records are date aligned so this is the canonical sequence
func (s *Server) getDates(c *gin.Context) {
	seen := make(map[string]struct{})
	dates := make([]string, 0)
	for _, record := range s.countries {
		for _, d := range record.Cases.Dates() {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)

	c.JSON(http.StatusOK, gin.H{
		"dates": dates,
	})
}

func (s *Server) getRegions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"regions": consts.RegionNames(),
	})
}
