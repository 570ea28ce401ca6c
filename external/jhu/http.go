package jhu

import (
	"io/ioutil"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/covid-rollup/schema"
)

const defaultTimeout = 30 * time.Second

type httpSource struct {
	urls   map[schema.Kind]string
	client *http.Client
}

func (h httpSource) Fetch(kind schema.Kind) ([]byte, error) {
	url, ok := h.urls[kind]
	if !ok {
		return nil, ErrUnknownKind
	}

	resp, err := h.client.Get(url)
	if nil != err {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"url":    url,
			"error":  err,
		}).Error("get time series")
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"url":    url,
			"status": resp.StatusCode,
		}).Error("get time series")
		return nil, ErrResponseStatus
	}

	data, err := ioutil.ReadAll(resp.Body)
	if nil != err {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"error":  err,
		}).Error("read time series response")
		return nil, err
	}

	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"kind":   kind,
		"bytes":  len(data),
	}).Debug("fetched time series")

	return data, nil
}

func (h httpSource) Rows(kind schema.Kind) ([][]string, error) {
	return rowsOf(h, kind)
}

// NewHTTP - new source fetching each kind from its url, missing kinds use the JHU defaults
func NewHTTP(urls map[schema.Kind]string, timeout time.Duration) Source {
	u := DefaultURLs()
	for kind, url := range urls {
		if url != "" {
			u[kind] = url
		}
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &httpSource{
		urls: u,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}
