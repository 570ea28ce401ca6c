package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/bitmark-inc/covid-rollup/api"
	"github.com/bitmark-inc/covid-rollup/external/jhu"
	"github.com/bitmark-inc/covid-rollup/report"
	"github.com/bitmark-inc/covid-rollup/rollup"
	"github.com/bitmark-inc/covid-rollup/schema"
)

var (
	server *api.Server
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

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
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("rollup")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("jhu.source", jhu.SourceHTTP)
	viper.SetDefault("jhu.timeout", 30*time.Second)
}

func newSource() (jhu.Source, error) {
	return jhu.New(
		viper.GetString("jhu.source"),
		map[schema.Kind]string{
			schema.KindCases:     viper.GetString("jhu.url.cases"),
			schema.KindDeaths:    viper.GetString("jhu.url.deaths"),
			schema.KindRecovered: viper.GetString("jhu.url.recovered"),
		},
		viper.GetString("jhu.dir"),
		viper.GetDuration("jhu.timeout"),
	)
}

func main() {
	var configFile string

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown rollup api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		sentry.Flush(5 * time.Second)
		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	report.InitI18NBundle(viper.GetString("i18n.dir"))

	source, err := newSource()
	if err != nil {
		log.Panic(err)
	}

	// the rollup is built once and served read only
	countries, err := rollup.NewAggregator(source).Run()
	if err != nil {
		sentry.CaptureException(err)
		sentry.Flush(5 * time.Second)
		log.WithField("prefix", "init").Fatalf("aggregate time series: %s", err)
	}
	log.WithField("prefix", "init").Infof("Aggregated %d countries", len(countries))

	// Init http server
	server = api.NewServer(countries)
	log.WithField("prefix", "init").Info("Initialized http server")

	log.Fatal(server.Run(":" + viper.GetString("server.port")))
}
