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

package cloud

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Projected is a point cloud reduced to three coordinates, ready for
// rendering. Point i of a Projected cloud comes from point i of the
// cloud it was projected from, and the auxiliary channels of that cloud
// are carried over so colors computed from them stay valid.
type Projected struct {
	xyz      *mat.Dense
	aux      *mat.Dense
	auxNames []string
}

// Len returns the number of points.
func (p *Projected) Len() int {
	r, _ := p.xyz.Dims()
	return r
}

// XYZ returns the coordinates of point i. Together with Len it
// implements the gonum.org/v1/plot/plotter.XYZer interface.
func (p *Projected) XYZ(i int) (x, y, z float64) {
	row := p.xyz.RawRowView(i)
	return row[0], row[1], row[2]
}

// Point returns point i as a Vec of length 3.
func (p *Projected) Point(i int) Vec {
	return Vec(append([]float64(nil), p.xyz.RawRowView(i)...))
}

// Points returns a copy of all points.
func (p *Projected) Points() [][]float64 {
	o := make([][]float64, p.Len())
	for i := range o {
		o[i] = p.Point(i)
	}
	return o
}

// AuxNames returns the names of the carried auxiliary channels.
func (p *Projected) AuxNames() []string { return copyNames(p.auxNames) }

// Aux returns a copy of the named auxiliary channel.
func (p *Projected) Aux(name string) (values []float64, ok bool) {
	return auxColumn(p.aux, p.auxNames, name)
}

// Column returns a copy of output coordinate j (0, 1 or 2) of every point.
func (p *Projected) Column(j int) []float64 { return mat.Col(nil, j, p.xyz) }

// NewProjected creates a projected cloud from points that each have
// three coordinates. The points are copied.
func NewProjected(points [][]float64) (*Projected, error) {
	m, err := denseFromRows(points)
	if err != nil {
		return nil, err
	}
	if _, c := m.Dims(); c != 3 {
		return nil, fmt.Errorf("cloud: projected points have %d coordinates, not 3: %w", c, ErrRagged)
	}
	return &Projected{xyz: m}, nil
}

// WithAux returns a copy of p with one more auxiliary channel.
func (p *Projected) WithAux(name string, values []float64) (*Projected, error) {
	n := p.Len()
	if len(values) != n {
		return nil, fmt.Errorf("cloud: %d values of %s for %d points: %w", len(values), name, n, ErrRagged)
	}
	m := 0
	if p.aux != nil {
		_, m = p.aux.Dims()
	}
	aux := mat.NewDense(n, m+1, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			aux.Set(i, j, p.aux.At(i, j))
		}
		aux.Set(i, m, values[i])
	}
	return &Projected{
		xyz:      p.xyz,
		aux:      aux,
		auxNames: append(copyNames(p.auxNames), name),
	}, nil
}
