package chart

import (
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"

	"github.com/eth-easl/schedplot/pkg/common"
)

func newSeriesPlot(s Series) (*plot.Plot, error) {
	if len(s.X) == 0 {
		return nil, common.RenderError(errNothingToDraw, "series %q", s.Title)
	}
	if len(s.X) != len(s.Y) {
		return nil, common.RenderError(errors.Errorf("%d x values, %d y values", len(s.X), len(s.Y)), "series %q", s.Title)
	}

	p := plot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = s.XLabel
	p.Y.Label.Text = s.YLabel
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(s.X))
	for i := range pts {
		pts[i].X = s.X[i]
		pts[i].Y = s.Y[i]
	}

	if err := plotutil.AddLinePoints(p, s.Label, pts); err != nil {
		return nil, common.RenderError(err, "series %q", s.Title)
	}
	return p, nil
}
