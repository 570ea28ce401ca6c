package main

import (
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/covid-rollup/consts"
	"github.com/bitmark-inc/covid-rollup/report"
	"github.com/bitmark-inc/covid-rollup/rollup"
)

type rollupCrawler struct {
	dataset rollup.Dataset
	region  string
	format  string
	lang    string
	out     io.Writer
}

// Run aggregates the three datasets, narrows them to the region and prints the result
func (c rollupCrawler) Run() error {
	allow, err := consts.RegionCountries(c.region)
	if nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "region": c.region, "error": err}).Error("region allow-list")
		return err
	}

	countries, err := rollup.NewAggregator(c.dataset).Run()
	if nil != err {
		return err
	}

	countries = report.Filter(countries, allow)
	log.WithFields(log.Fields{"prefix": logPrefix, "region": c.region, "countries": len(countries)}).Debug("data from JHU")

	return report.Write(c.out, countries, c.format, c.lang)
}

// newCrawler - new one-shot crawler printing to out
func newCrawler(dataset rollup.Dataset, region, format, lang string, out io.Writer) *rollupCrawler {
	return &rollupCrawler{
		dataset: dataset,
		region:  region,
		format:  format,
		lang:    lang,
		out:     out,
	}
}
