/*
Copyright © 2026 the hypersurf authors.
This file is part of hypersurf.

hypersurf is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

hypersurf is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with hypersurf.  If not, see <http://www.gnu.org/licenses/>.
*/

package plot

import (
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/spatialmodel/hypersurf/cloud"
)

// ErrNothingToDraw is returned when none of the points of a cloud
// have finite coordinates.
var ErrNothingToDraw = errors.New("plot: no finite points to draw")

// Options controls the appearance of a rendered image.
type Options struct {
	// Width and Height are the image size. They default to 6 inches.
	Width, Height vg.Length

	// Format is the image format, for example "png" or "svg".
	// It defaults to "png".
	Format string

	// Radius is the radius of each point. It defaults to 1 point.
	Radius vg.Length

	// ColorMap maps point values to colors. It defaults to
	// moreland.SmoothBlueRed. Its range is set from the values.
	ColorMap palette.ColorMap

	// Title is drawn above the image if it is not empty.
	Title string
}

func (o *Options) defaults() {
	if o.Width == 0 {
		o.Width = 6 * vg.Inch
	}
	if o.Height == 0 {
		o.Height = 6 * vg.Inch
	}
	if o.Format == "" {
		o.Format = "png"
	}
	if o.Radius == 0 {
		o.Radius = vg.Points(1)
	}
	if o.ColorMap == nil {
		o.ColorMap = moreland.SmoothBlueRed()
	}
}

// Values returns the per-point values used for coloring: the named
// auxiliary channel of p if it has one, or otherwise output coordinate
// 0, 1 or 2 when name is "x", "y" or "z".
func Values(p *cloud.Projected, name string) ([]float64, error) {
	if v, ok := p.Aux(name); ok {
		return v, nil
	}
	switch name {
	case "x":
		return p.Column(0), nil
	case "y":
		return p.Column(1), nil
	case "z":
		return p.Column(2), nil
	}
	return nil, fmt.Errorf("plot: no channel named %q; auxiliary channels are %v", name, p.AuxNames())
}

// Render draws the points of p as seen by cam and writes the image to w.
// Point i is colored by values[i]; values may be nil, in which case every
// point has the color at the middle of the color map. Points whose
// coordinates or value are not finite are left out.
func Render(w io.Writer, p *cloud.Projected, values []float64, cam Camera, o Options) error {
	o.defaults()
	if values != nil && len(values) != p.Len() {
		return fmt.Errorf("plot: %d values for %d points", len(values), p.Len())
	}
	xys, depth := cam.View(FromProjected(p))
	order := drawOrder(xys, depth, values)
	if len(order) == 0 {
		return ErrNothingToDraw
	}

	sorted := make(XYs, len(order))
	vals := make([]float64, len(order))
	for k, i := range order {
		sorted[k] = xys[i]
		if values != nil {
			vals[k] = values[i]
		}
	}
	lo, hi := floats.Min(vals), floats.Max(vals)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	o.ColorMap.SetMin(lo)
	o.ColorMap.SetMax(hi)

	plt, err := plot.New()
	if err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	plt.HideAxes()
	if o.Title != "" {
		plt.Title.Text = o.Title
	}
	s, err := plotter.NewScatter(sorted)
	if err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	var colorErr error
	s.GlyphStyleFunc = func(k int) draw.GlyphStyle {
		c, err := o.ColorMap.At(vals[k])
		if err != nil && colorErr == nil {
			colorErr = err
		}
		return draw.GlyphStyle{Color: c, Radius: o.Radius, Shape: draw.CircleGlyph{}}
	}
	plt.Add(s)

	wt, err := plt.WriterTo(o.Width, o.Height, o.Format)
	if err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	if colorErr != nil {
		return fmt.Errorf("plot: coloring points: %w", colorErr)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("plot: writing image: %w", err)
	}
	return nil
}
