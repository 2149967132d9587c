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

package surface

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Range is a closed interval [Min, Max] along one axis of the complex plane.
type Range struct {
	Min, Max float64
}

func (r Range) check() error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
		return fmt.Errorf("surface: range [%g, %g] is not finite: %w", r.Min, r.Max, ErrInvalidDomain)
	}
	if r.Min >= r.Max {
		return fmt.Errorf("surface: range minimum %g is not less than maximum %g: %w", r.Min, r.Max, ErrInvalidDomain)
	}
	return nil
}

// Grid is the sampling lattice in the complex plane: the Cartesian
// product of a list of real-axis samples and a list of imaginary-axis
// samples. A Grid is not modified after it is created.
type Grid struct {
	re, im []float64
}

// NewGrid creates a grid with resolution evenly spaced samples along
// each axis. The first sample of each axis is at the range minimum and,
// when resolution > 1, the last is at the range maximum.
func NewGrid(re, im Range, resolution int) (*Grid, error) {
	if err := checkResolution(resolution); err != nil {
		return nil, err
	}
	if err := re.check(); err != nil {
		return nil, err
	}
	if err := im.check(); err != nil {
		return nil, err
	}
	return &Grid{re: span(re, resolution), im: span(im, resolution)}, nil
}

// NewLine creates a one-dimensional grid with resolution samples along
// the real axis, all at imaginary part im.
func NewLine(re Range, im float64, resolution int) (*Grid, error) {
	if err := checkResolution(resolution); err != nil {
		return nil, err
	}
	if err := re.check(); err != nil {
		return nil, err
	}
	if math.IsNaN(im) || math.IsInf(im, 0) {
		return nil, fmt.Errorf("surface: imaginary offset %g is not finite: %w", im, ErrInvalidDomain)
	}
	return &Grid{re: span(re, resolution), im: []float64{im}}, nil
}

func checkResolution(resolution int) error {
	if resolution < 1 {
		return fmt.Errorf("surface: resolution %d is less than 1: %w", resolution, ErrInvalidDomain)
	}
	return nil
}

func span(r Range, n int) []float64 {
	if n == 1 {
		return []float64{r.Min}
	}
	return floats.Span(make([]float64, n), r.Min, r.Max)
}

// Real returns the real-axis sample coordinates.
func (g *Grid) Real() []float64 { return append([]float64(nil), g.re...) }

// Imag returns the imaginary-axis sample coordinates.
func (g *Grid) Imag() []float64 { return append([]float64(nil), g.im...) }

// Len returns the number of grid points.
func (g *Grid) Len() int { return len(g.re) * len(g.im) }

// At returns grid point i. Points are ordered row-major with the real
// axis outermost, so point i is Real()[i/len(Imag())] + Imag()[i%len(Imag())]i.
func (g *Grid) At(i int) complex128 {
	n := len(g.im)
	return complex(g.re[i/n], g.im[i%n])
}

// Ranges returns the sampled interval along each axis.
func (g *Grid) Ranges() []Range {
	return []Range{
		{Min: g.re[0], Max: g.re[len(g.re)-1]},
		{Min: g.im[0], Max: g.im[len(g.im)-1]},
	}
}
