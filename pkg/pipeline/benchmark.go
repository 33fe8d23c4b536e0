package pipeline

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"gonum.org/v1/plot/vg"

	"github.com/eth-easl/schedplot/pkg/aggregate"
	"github.com/eth-easl/schedplot/pkg/chart"
	"github.com/eth-easl/schedplot/pkg/common"
	"github.com/eth-easl/schedplot/pkg/config"
	"github.com/eth-easl/schedplot/pkg/metric"
	"github.com/eth-easl/schedplot/pkg/pivot"
	"github.com/eth-easl/schedplot/pkg/record"
)

const tracerName = "github.com/eth-easl/schedplot/pkg/pipeline"

// stage runs fn inside a tracing span named after the pipeline step.
func stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name)
	defer span.End()

	err := fn(ctx)
	if err != nil {
		span.RecordError(err)
	}
	return err
}

// NewRenderer builds the gonum/plot renderer described by the run configuration.
func NewRenderer(cfg config.RunConfiguration) *chart.PlotRenderer {
	r := chart.NewPlotRenderer(cfg.OutputPath, cfg.Show)
	r.Width = vg.Length(cfg.FigureWidthInch) * vg.Inch
	r.PanelHeight = vg.Length(cfg.PanelHeightInch) * vg.Inch
	return r
}

// RunBenchmark loads the scheduler benchmark file, summarises every configured
// metric per utilization bucket and hands the panels to the renderer. Nothing
// is rendered unless every panel could be built.
func RunBenchmark(ctx context.Context, cfg config.BenchmarkConfiguration, renderer chart.Renderer) error {
	logger := log.WithField("run", uuid.New().String())
	logger.Infof("Plotting scheduler benchmark %s", cfg.InputPath)

	panels, err := BuildPanels(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if cfg.SummaryPath != "" {
		err := stage(ctx, "export", func(context.Context) error {
			exporter := metric.NewExporter()
			for _, panel := range panels {
				exporter.ReportTable(panel.Table)
			}
			return exporter.FinishAndSave(cfg.SummaryPath)
		})
		if err != nil {
			return err
		}
	}

	return stage(ctx, "render", func(context.Context) error {
		return renderer.RenderPanels(panels)
	})
}

// BuildPanels runs load, derive, pivot/bucket and aggregate for every panel.
func BuildPanels(ctx context.Context, cfg config.BenchmarkConfiguration, logger *log.Entry) ([]chart.Panel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	delimiter, _ := cfg.DelimiterRune()
	opts := record.DefaultOptions()
	opts.Delimiter = delimiter

	var records []record.BenchmarkRecord
	err := stage(ctx, "load", func(context.Context) (err error) {
		records, err = record.LoadBenchmarks(cfg.InputPath, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	logger.Debugf("Loaded %d records", len(records))

	var derived []record.DerivedRecord
	err = stage(ctx, "derive", func(context.Context) (err error) {
		derived, err = record.Derive(records)
		return err
	})
	if err != nil {
		return nil, err
	}

	bucketing := pivot.Bucketing{Width: cfg.BucketWidth, Min: cfg.BucketMin, Max: cfg.BucketMax}
	if err := bucketing.Validate(); err != nil {
		return nil, err
	}

	panels := make([]chart.Panel, 0, len(cfg.Panels))
	for _, panelCfg := range cfg.Panels {
		var table *aggregate.Table
		err := stage(ctx, "aggregate "+panelCfg.Metric, func(context.Context) error {
			pivoted, err := pivot.Build(derived, panelCfg.Metric, cfg.Axis, common.ColumnVariant)
			if err != nil {
				return err
			}
			assignment, err := bucketing.Assign(pivoted)
			if err != nil {
				return err
			}
			table, err = aggregate.Aggregate(pivoted, assignment)
			return err
		})
		if err != nil {
			return nil, err
		}

		if logger.Logger.IsLevelEnabled(log.DebugLevel) {
			logger.Debugf("%s per %s bucket:\n%s", panelCfg.Metric, cfg.Axis, formatTable(table))
		}
		panels = append(panels, chart.Panel{Table: table, Options: panelOptions(panelCfg)})
	}

	if !anyObserved(panels) {
		logger.Warnf("No %s value of %s falls into [%v, %v), every panel is empty",
			cfg.Axis, cfg.InputPath, bucketing.Min, bucketing.Max)
	}

	return panels, nil
}

func anyObserved(panels []chart.Panel) bool {
	for _, panel := range panels {
		if len(panel.Table.ObservedLabels()) > 0 {
			return true
		}
	}
	return false
}

func panelOptions(c config.PanelConfiguration) chart.PanelOptions {
	opts := chart.PanelOptions{
		Title:  c.Title,
		XLabel: c.XLabel,
		YLabel: c.YLabel,
		LogY:   c.LogY,
	}
	if len(c.YRange) == 2 {
		opts.YRange = &chart.Range{Min: c.YRange[0], Max: c.YRange[1]}
	}
	return opts
}

// formatTable renders an aggregated table as "mean ± std (n)" text for logs.
func formatTable(t *aggregate.Table) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%-8s", t.Axis)
	for _, v := range t.Columns {
		fmt.Fprintf(&sb, " %26s", v)
	}
	sb.WriteString("\n")

	for row, label := range t.Labels {
		fmt.Fprintf(&sb, "%-8s", label)
		for col := range t.Columns {
			if t.Count[row][col] == 0 {
				fmt.Fprintf(&sb, " %26s", "-")
				continue
			}
			std := "NaN"
			if !math.IsNaN(t.Std[row][col]) {
				std = fmt.Sprintf("%.4g", t.Std[row][col])
			}
			fmt.Fprintf(&sb, " %26s", fmt.Sprintf("%.4g ± %s (%d)", t.Mean[row][col], std, t.Count[row][col]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
