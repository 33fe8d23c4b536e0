package main

import (
	"context"
	"flag"
	"os"
	"time"

	tracer "github.com/ease-lab/vhive/utils/tracing/go"
	log "github.com/sirupsen/logrus"

	"github.com/eth-easl/schedplot/pkg/config"
	"github.com/eth-easl/schedplot/pkg/pipeline"
)

const (
	zipkinAddr = "http://localhost:9411/api/v2/spans"
)

var (
	configPath = flag.String("config", "", "Path to plot configuration file (JSON or YAML), built-in defaults if empty")
	inputPath  = flag.String("input", "", "Overrides the benchmark CSV file")
	outputPath = flag.String("output", "", "Overrides the figure file, the extension selects the format")
	summary    = flag.String("summary", "", "Also write the aggregated tables to this CSV file")
	show       = flag.Bool("show", true, "Open the figure in the default viewer")
	verbosity  = flag.String("verbosity", "info", "Logging verbosity - choose from [info, debug, trace]")
)

func init() {
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: time.StampMilli,
		FullTimestamp:   true,
	})
	log.SetOutput(os.Stdout)

	switch *verbosity {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "trace":
		log.SetLevel(log.TraceLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

func main() {
	cfg, err := config.ReadBenchmarkConfiguration(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *inputPath != "" {
		cfg.InputPath = *inputPath
	}
	if *outputPath != "" {
		cfg.OutputPath = *outputPath
	}
	if *summary != "" {
		cfg.SummaryPath = *summary
	}
	cfg.Show = cfg.Show && *show

	if cfg.EnableZipkinTracing {
		shutdown, err := tracer.InitBasicTracer(zipkinAddr, "schedplot")
		if err != nil {
			log.Warn("Cannot initialize Zipkin tracing: ", err)
		} else {
			defer shutdown()
		}
	}

	if err := pipeline.RunBenchmark(context.Background(), cfg, pipeline.NewRenderer(cfg.RunConfiguration)); err != nil {
		log.Fatal(err)
	}
}
