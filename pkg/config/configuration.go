package config

import (
	"unicode/utf8"

	"github.com/eth-easl/schedplot/pkg/common"
)

// RunConfiguration is shared by both plotting pipelines.
type RunConfiguration struct {
	InputPath  string `json:"InputPath" yaml:"InputPath"`
	OutputPath string `json:"OutputPath" yaml:"OutputPath"`
	Delimiter  string `json:"Delimiter" yaml:"Delimiter"`

	Show            bool    `json:"Show" yaml:"Show"`
	FigureWidthInch float64 `json:"FigureWidthInch" yaml:"FigureWidthInch"`
	PanelHeightInch float64 `json:"PanelHeightInch" yaml:"PanelHeightInch"`

	EnableZipkinTracing bool `json:"EnableZipkinTracing" yaml:"EnableZipkinTracing"`
}

type PanelConfiguration struct {
	Metric string    `json:"Metric" yaml:"Metric"`
	Title  string    `json:"Title" yaml:"Title"`
	XLabel string    `json:"XLabel" yaml:"XLabel"`
	YLabel string    `json:"YLabel" yaml:"YLabel"`
	LogY   bool      `json:"LogY" yaml:"LogY"`
	YRange []float64 `json:"YRange,omitempty" yaml:"YRange,omitempty"` // empty or [min, max]
}

// BenchmarkConfiguration drives the scheduler benchmark figure.
type BenchmarkConfiguration struct {
	RunConfiguration `yaml:",inline"`

	Axis        string               `json:"Axis" yaml:"Axis"`
	BucketWidth float64              `json:"BucketWidth" yaml:"BucketWidth"`
	BucketMin   float64              `json:"BucketMin" yaml:"BucketMin"`
	BucketMax   float64              `json:"BucketMax" yaml:"BucketMax"`
	Panels      []PanelConfiguration `json:"Panels" yaml:"Panels"`

	// SummaryPath, when set, receives the aggregated tables as CSV.
	SummaryPath string `json:"SummaryPath,omitempty" yaml:"SummaryPath,omitempty"`
}

// MicroConfiguration drives the budgeted context switch figure.
type MicroConfiguration struct {
	RunConfiguration `yaml:",inline"`

	YColumn string `json:"YColumn" yaml:"YColumn"`
	Title   string `json:"Title" yaml:"Title"`
	XLabel  string `json:"XLabel" yaml:"XLabel"`
	YLabel  string `json:"YLabel" yaml:"YLabel"`
}

func DefaultBenchmarkConfiguration() BenchmarkConfiguration {
	return BenchmarkConfiguration{
		RunConfiguration: RunConfiguration{
			InputPath:       common.DefaultBenchmarkInput,
			OutputPath:      "figs/benchmark.png",
			Delimiter:       ",",
			Show:            true,
			FigureWidthInch: 8,
			PanelHeightInch: 4,
		},
		Axis:        common.ColumnUtilization,
		BucketWidth: common.DefaultBucketWidth,
		BucketMin:   common.DefaultBucketMin,
		BucketMax:   common.DefaultBucketMax,
		Panels: []PanelConfiguration{
			{
				Metric: common.MetricMissRatio,
				XLabel: "Utilization",
				YLabel: "Deadline-Miss Ratio",
				LogY:   true,
			},
			{
				Metric: common.MetricOverhead,
				XLabel: "Utilization Factor",
				YLabel: "Scheduler-Overhead Factor",
				YRange: []float64{0.9, 1.2},
			},
		},
	}
}

func DefaultMicroConfiguration() MicroConfiguration {
	return MicroConfiguration{
		RunConfiguration: RunConfiguration{
			InputPath:       common.DefaultMicroInput,
			OutputPath:      "figs/context_switch_overhead.png",
			Delimiter:       ",",
			Show:            true,
			FigureWidthInch: 8,
			PanelHeightInch: 4,
		},
		YColumn: common.ColumnPerYield,
		XLabel:  common.ColumnBudget,
		YLabel:  common.ColumnPerYield,
	}
}

// DelimiterRune is the single character separating input columns.
func (c *RunConfiguration) DelimiterRune() (rune, error) {
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return 0, common.SchemaError("delimiter must be a single character, got %q", c.Delimiter)
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r, nil
}

func (c *RunConfiguration) validate() error {
	if c.InputPath == "" {
		return common.SchemaError("InputPath is empty")
	}
	if c.OutputPath == "" {
		return common.SchemaError("OutputPath is empty")
	}
	if !(c.FigureWidthInch > 0) || !(c.PanelHeightInch > 0) {
		return common.SchemaError("figure size must be positive, got %vx%v inch", c.FigureWidthInch, c.PanelHeightInch)
	}
	_, err := c.DelimiterRune()
	return err
}

func (c *BenchmarkConfiguration) Validate() error {
	if err := c.RunConfiguration.validate(); err != nil {
		return err
	}
	if len(c.Panels) == 0 {
		return common.SchemaError("no panels configured")
	}
	for i, panel := range c.Panels {
		if panel.Metric == "" {
			return common.SchemaError("panel %d has no metric", i)
		}
		if len(panel.YRange) != 0 && len(panel.YRange) != 2 {
			return common.SchemaError("panel %d: YRange must be [min, max]", i)
		}
	}
	return nil
}

func (c *MicroConfiguration) Validate() error {
	if err := c.RunConfiguration.validate(); err != nil {
		return err
	}
	if c.YColumn == "" {
		return common.SchemaError("YColumn is empty")
	}
	return nil
}
