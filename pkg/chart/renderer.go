package chart

import (
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/eth-easl/schedplot/pkg/aggregate"
	"github.com/eth-easl/schedplot/pkg/common"
)

// Range fixes an axis to [Min, Max].
type Range struct {
	Min float64
	Max float64
}

type PanelOptions struct {
	Title  string
	XLabel string
	YLabel string
	LogY   bool
	YRange *Range
}

// Panel is one grouped bar chart: bar heights from table.Mean, error bars from table.Std.
type Panel struct {
	Table   *aggregate.Table
	Options PanelOptions
}

// Series is a single line/marker curve of Y against X.
type Series struct {
	Title  string
	Label  string
	XLabel string
	YLabel string
	X      []float64
	Y      []float64
}

// Renderer is the only place the pipelines touch a drawing surface.
type Renderer interface {
	// RenderPanels draws one panel per entry, stacked vertically on one figure.
	RenderPanels(panels []Panel) error
	// RenderSeries draws a single line chart.
	RenderSeries(series Series) error
}

// PlotRenderer draws figures with gonum/plot into OutputPath; the image format
// follows the file extension. With Show set the written figure is handed to
// the platform viewer.
type PlotRenderer struct {
	OutputPath  string
	Width       vg.Length
	PanelHeight vg.Length
	Show        bool
}

func NewPlotRenderer(outputPath string, show bool) *PlotRenderer {
	return &PlotRenderer{
		OutputPath:  outputPath,
		Width:       8 * vg.Inch,
		PanelHeight: 4 * vg.Inch,
		Show:        show,
	}
}

func (r *PlotRenderer) RenderPanels(panels []Panel) error {
	if len(panels) == 0 {
		return common.RenderError(errNothingToDraw, "render %s", r.OutputPath)
	}

	plots := make([][]*plot.Plot, len(panels))
	for i, panel := range panels {
		p, err := newBarPlot(panel)
		if err != nil {
			return err
		}
		plots[i] = []*plot.Plot{p}
	}

	return r.present(plots)
}

func (r *PlotRenderer) RenderSeries(series Series) error {
	p, err := newSeriesPlot(series)
	if err != nil {
		return err
	}
	return r.present([][]*plot.Plot{{p}})
}

func (r *PlotRenderer) present(plots [][]*plot.Plot) error {
	if err := r.save(plots); err != nil {
		return err
	}
	log.Infof("Figure written to %s", r.OutputPath)

	if !r.Show {
		return nil
	}
	return Display(r.OutputPath)
}

func (r *PlotRenderer) save(plots [][]*plot.Plot) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(r.OutputPath), "."))
	if format == "" {
		format = "png"
	}

	rows := len(plots)
	c, err := draw.NewFormattedCanvas(r.Width, r.PanelHeight*vg.Length(rows), format)
	if err != nil {
		return common.RenderError(err, "unsupported figure format %q", format)
	}

	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(2),
		PadBottom: vg.Points(2),
		PadLeft:   vg.Points(2),
		PadRight:  vg.Points(2),
	}
	canvases := plot.Align(plots, tiles, draw.New(c))
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	if dir := filepath.Dir(r.OutputPath); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return common.IOError(err, "cannot create output directory %s", dir)
		}
	}

	f, err := os.Create(r.OutputPath)
	if err != nil {
		return common.IOError(err, "cannot create %s", r.OutputPath)
	}
	defer f.Close()

	if _, err := c.WriteTo(f); err != nil {
		return common.IOError(err, "cannot write %s", r.OutputPath)
	}
	return nil
}
