package chart

import (
	"errors"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/eth-easl/schedplot/pkg/common"
)

var errNothingToDraw = errors.New("nothing to draw")

const (
	barWidth   = vg.Length(9)
	barSpacing = vg.Length(1)
	capWidth   = vg.Length(6)

	defaultLogFloor = 1e-3
)

func newBarPlot(panel Panel) (*plot.Plot, error) {
	t, opts := panel.Table, panel.Options
	if t == nil || len(t.Labels) == 0 {
		return nil, common.RenderError(errNothingToDraw, "panel %q", opts.Title)
	}
	if r := opts.YRange; r != nil && (!(r.Max > r.Min) || (opts.LogY && r.Min <= 0)) {
		return nil, common.RenderError(errors.New("invalid y range"), "panel %q: [%v, %v]", opts.Title, r.Min, r.Max)
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.Legend.Top = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	p.Add(grid)

	groupWidth := (barWidth + barSpacing) * vg.Length(len(t.Columns)-1)
	for col, variant := range t.Columns {
		mean := make([]float64, len(t.Labels))
		std := make([]float64, len(t.Labels))
		heights := make(plotter.Values, len(t.Labels))
		for row := range t.Labels {
			mean[row], std[row] = t.Mean[row][col], t.Std[row][col]
			if t.Count[row][col] > 0 {
				heights[row] = mean[row]
			}
		}

		bars, err := plotter.NewBarChart(heights, barWidth)
		if err != nil {
			return nil, common.RenderError(err, "panel %q, variant %s", opts.Title, variant)
		}
		offset := (barWidth+barSpacing)*vg.Length(col) - groupWidth/2
		bars.Offset = offset
		bars.Color = plotutil.Color(col)
		bars.LineStyle.Width = 0

		p.Add(bars, &errorBars{
			mean:   mean,
			std:    std,
			offset: offset,
			style:  draw.LineStyle{Color: color.Black, Width: vg.Points(0.75)},
		})
		p.Legend.Add(variant.String(), bars)
	}
	p.NominalX(t.Labels...)

	if opts.LogY {
		floor := logFloor(t.Mean, t.Std)
		p.Y.Scale = clampedLogScale{floor: floor}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
		p.Y.Min = floor
		if p.Y.Max <= floor {
			p.Y.Max = floor * 10
		}
	}
	if opts.YRange != nil {
		p.Y.Min, p.Y.Max = opts.YRange.Min, opts.YRange.Max
	}

	return p, nil
}

// logFloor is the decade just below the smallest positive value that will be
// drawn, so that zero height bars and error bars reaching below zero stay on a
// log axis.
func logFloor(mean, std [][]float64) float64 {
	smallest := math.Inf(1)
	for row := range mean {
		for col, m := range mean[row] {
			for _, v := range []float64{m, m - std[row][col]} {
				if v > 0 && v < smallest {
					smallest = v
				}
			}
		}
	}
	if math.IsInf(smallest, 1) {
		return defaultLogFloor
	}
	return math.Pow(10, math.Floor(math.Log10(smallest)))
}

// clampedLogScale is plot.LogScale with non-positive values pinned to floor
// instead of panicking.
type clampedLogScale struct {
	floor float64
}

func (s clampedLogScale) Normalize(min, max, x float64) float64 {
	min, max, x = math.Max(min, s.floor), math.Max(max, s.floor), math.Max(x, s.floor)
	if max == min {
		return 0
	}
	logMin := math.Log(min)
	return (math.Log(x) - logMin) / (math.Log(max) - logMin)
}

// errorBars draws mean±std whiskers at the same canvas offset as the bar they
// belong to. Cells with a NaN std get no whisker.
type errorBars struct {
	mean   []float64
	std    []float64
	offset vg.Length
	style  draw.LineStyle
}

var _ plot.Plotter = (*errorBars)(nil)
var _ plot.DataRanger = (*errorBars)(nil)

func (e *errorBars) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)

	for i := range e.mean {
		if math.IsNaN(e.mean[i]) || math.IsNaN(e.std[i]) {
			continue
		}
		x := trX(float64(i)) + e.offset
		low, high := trY(e.mean[i]-e.std[i]), trY(e.mean[i]+e.std[i])

		lines := [][]vg.Point{
			{{X: x, Y: low}, {X: x, Y: high}},
			{{X: x - capWidth/2, Y: low}, {X: x + capWidth/2, Y: low}},
			{{X: x - capWidth/2, Y: high}, {X: x + capWidth/2, Y: high}},
		}
		c.StrokeLines(e.style, c.ClipLinesY(lines...)...)
	}
}

func (e *errorBars) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax = 0, float64(len(e.mean)-1)
	ymin, ymax = math.Inf(1), math.Inf(-1)
	for i := range e.mean {
		if math.IsNaN(e.mean[i]) || math.IsNaN(e.std[i]) {
			continue
		}
		ymin = math.Min(ymin, e.mean[i]-e.std[i])
		ymax = math.Max(ymax, e.mean[i]+e.std[i])
	}
	if math.IsInf(ymin, 1) {
		return xmin, xmax, 0, 0
	}
	return xmin, xmax, ymin, ymax
}
