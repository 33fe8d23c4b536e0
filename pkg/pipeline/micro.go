package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"

	"github.com/eth-easl/schedplot/pkg/chart"
	"github.com/eth-easl/schedplot/pkg/common"
	"github.com/eth-easl/schedplot/pkg/config"
	"github.com/eth-easl/schedplot/pkg/record"
)

// RunMicro plots the configured micro-benchmark column against the budget.
// There is no derivation, bucketing or aggregation on this path.
func RunMicro(ctx context.Context, cfg config.MicroConfiguration, renderer chart.Renderer) error {
	logger := log.WithField("run", uuid.New().String())
	logger.Infof("Plotting micro-benchmark %s", cfg.InputPath)

	series, err := BuildSeries(ctx, cfg, logger)
	if err != nil {
		return err
	}

	return stage(ctx, "render", func(context.Context) error {
		return renderer.RenderSeries(series)
	})
}

func BuildSeries(ctx context.Context, cfg config.MicroConfiguration, logger *log.Entry) (chart.Series, error) {
	if err := cfg.Validate(); err != nil {
		return chart.Series{}, err
	}
	delimiter, _ := cfg.DelimiterRune()
	opts := record.DefaultOptions()
	opts.Delimiter = delimiter

	var records []record.MicroRecord
	err := stage(ctx, "load", func(context.Context) (err error) {
		records, err = record.LoadMicro(cfg.InputPath, cfg.YColumn, opts)
		return err
	})
	if err != nil {
		return chart.Series{}, err
	}

	series := chart.Series{
		Title:  cfg.Title,
		Label:  cfg.YColumn,
		XLabel: cfg.XLabel,
		YLabel: cfg.YLabel,
		X:      make([]float64, len(records)),
		Y:      make([]float64, len(records)),
	}
	for i, r := range records {
		series.X[i] = r.Budget
		series.Y[i], _ = r.Column(cfg.YColumn)
	}

	if len(series.Y) > 0 {
		data := stats.Float64Data(series.Y)
		median, _ := stats.Median(data)
		min, _ := stats.Min(data)
		max, _ := stats.Max(data)
		logger.WithField("points", len(series.Y)).
			WithField(common.ColumnBudget, []float64{series.X[0], series.X[len(series.X)-1]}).
			Infof("%s: median %.4g, min %.4g, max %.4g", cfg.YColumn, median, min, max)
	}

	return series, nil
}
