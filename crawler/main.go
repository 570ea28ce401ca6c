package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/bitmark-inc/covid-rollup/external/jhu"
	"github.com/bitmark-inc/covid-rollup/report"
	"github.com/bitmark-inc/covid-rollup/schema"
)

const (
	logPrefix      = "cron"
	defaultTimeout = 30 * time.Second
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	// stdout carries the report
	log.SetOutput(os.Stderr)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("rollup")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("jhu.source", jhu.SourceHTTP)
	viper.SetDefault("jhu.timeout", defaultTimeout)
	viper.SetDefault("report.format", report.FormatYAML)
	viper.SetDefault("report.lang", "en")
}

func main() {
	var configFile, region, format string

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.StringVar(&region, "region", "", "[optional] only print countries of this region, overrides report.region")
	flag.StringVar(&format, "format", "", "[optional] yaml, json or text, overrides report.format")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}

	report.InitI18NBundle(viper.GetString("i18n.dir"))

	if region == "" {
		region = viper.GetString("report.region")
	}
	if format == "" {
		format = viper.GetString("report.format")
	}

	source, err := jhu.New(
		viper.GetString("jhu.source"),
		map[schema.Kind]string{
			schema.KindCases:     viper.GetString("jhu.url.cases"),
			schema.KindDeaths:    viper.GetString("jhu.url.deaths"),
			schema.KindRecovered: viper.GetString("jhu.url.recovered"),
		},
		viper.GetString("jhu.dir"),
		viper.GetDuration("jhu.timeout"),
	)
	if nil != err {
		log.WithFields(log.Fields{"prefix": logPrefix, "error": err}).Fatal("dataset source")
	}

	c := newCrawler(source, region, format, viper.GetString("report.lang"), os.Stdout)
	if err := c.Run(); nil != err {
		sentry.CaptureException(err)
		sentry.Flush(5 * time.Second)
		log.WithFields(log.Fields{"prefix": logPrefix, "error": err}).Fatal("rollup time series")
	}
}
