package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/davecgh/go-spew/spew"
	"github.com/foomo/exporter"
	"github.com/foomo/exporter/config"
	"github.com/foomo/exporter/reports"
	"github.com/foomo/exporter/store"
	flags "github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	Config      string `short:"c" long:"config" description:"path to the yaml config" required:"true"`
	DB          string `long:"db" description:"sqlite database with the visited resources of a crawl" required:"true"`
	ExportDir   string `long:"export-dir" description:"overrides exportdir from the config"`
	Reports     string `long:"reports" description:"report format: console | html | json | yaml"`
	ReportFile  string `long:"report-file" description:"write the report to this file instead of stdout"`
	MetricsFile string `long:"metrics-file" description:"write prometheus metrics in text format to this file"`
	UserAgent   string `long:"user-agent" description:"agent to check robots.txt rules for" default:"*"`
	Slowest     int    `long:"slowest" description:"number of resources in the slowest report" default:"20"`
	Debug       bool   `long:"debug" description:"dump the effective config and log debug messages"`
}

func must(comment string, err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, comment, err)
		os.Exit(1)
	}
}

func main() {
	opts := &options{}
	_, errParse := flags.Parse(opts)
	if errParse != nil {
		if flags.WroteHelp(errParse) {
			os.Exit(0)
		}
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	logger, errLogger := newLogger(opts.Debug)
	must("could not create logger:", errLogger)
	defer logger.Sync()
	must("export failed:", run(ctx, opts, logger, os.Stdout))
}

func newLogger(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewProduction()
	}
	conf := zap.NewDevelopmentConfig()
	conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	conf.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	conf.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	conf.Sampling = nil
	return conf.Build()
}

func newConverter(conf *config.Config) exporter.Converter {
	if conf.Converter.Command == "" {
		return &exporter.TextConverter{PrettyTables: true}
	}
	return &exporter.CommandConverter{
		Command: conf.Converter.Command,
		Args:    conf.Converter.Args,
	}
}

func run(ctx context.Context, opts *options, logger *zap.Logger, stdout io.Writer) error {
	conf, errConf := config.Get(opts.Config)
	if errConf != nil {
		return fmt.Errorf("config: %w", errConf)
	}
	if opts.ExportDir != "" {
		conf.ExportDir = opts.ExportDir
	}
	if opts.Reports != "" {
		conf.Reports = opts.Reports
	}
	if opts.Debug {
		spew.Fdump(os.Stderr, conf)
	}
	policy, errPolicy := config.NewPolicy(conf)
	if errPolicy != nil {
		return fmt.Errorf("config: %w", errPolicy)
	}

	db, errOpen := store.OpenSQLite(opts.DB)
	if errOpen != nil {
		return errOpen
	}
	defer db.Close()
	resources, errLoad := db.Load(ctx)
	if errLoad != nil {
		return errLoad
	}

	reg := prometheus.NewRegistry()
	registry := reports.NewRegistry()
	if conf.Enabled() {
		e, errExporter := exporter.NewExporter(conf, resources, policy, newConverter(conf), logger, reg)
		if errExporter != nil {
			return errExporter
		}
		summary, errExport := e.Export(ctx)
		if errExport != nil {
			return errExport
		}
		registry.AddExportSummary(summary)
	} else {
		logger.Info("no export dir configured, only reporting")
	}

	robots, errRobots := exporter.RobotsData(resources, policy.InitialURL())
	if errRobots != nil {
		logger.Debug("no robots.txt report", zap.Error(errRobots))
	}
	if errAnalyze := analyze(registry, resources, robots, policy.InitialURL().Hostname(), opts); errAnalyze != nil {
		return errAnalyze
	}

	w := stdout
	if opts.ReportFile != "" {
		f, errCreate := os.Create(opts.ReportFile)
		if errCreate != nil {
			return errCreate
		}
		defer f.Close()
		w = f
	}
	if errWrite := registry.Write(w, conf.Reports); errWrite != nil {
		return errWrite
	}
	if opts.MetricsFile != "" {
		if errMetrics := prometheus.WriteToTextfile(opts.MetricsFile, reg); errMetrics != nil {
			return fmt.Errorf("metrics: %w", errMetrics)
		}
	}
	return nil
}
