package jhu

import (
	"io/ioutil"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/covid-rollup/schema"
)

type dirSource struct {
	dir string
}

func (d dirSource) Fetch(kind schema.Kind) ([]byte, error) {
	name, ok := FileNames[kind]
	if !ok {
		return nil, ErrUnknownKind
	}

	p := filepath.Join(d.dir, name)
	data, err := ioutil.ReadFile(p)
	if nil != err {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"path":   p,
			"error":  err,
		}).Error("read time series file")
		return nil, err
	}

	return data, nil
}

func (d dirSource) Rows(kind schema.Kind) ([][]string, error) {
	return rowsOf(d, kind)
}

// NewDir - new source reading the published file names from a local directory
func NewDir(dir string) Source {
	return &dirSource{
		dir: filepath.Clean(dir),
	}
}
