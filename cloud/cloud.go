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

/*Package cloud defines the point clouds that the surface generator
produces and the rotation engine consumes.*/
package cloud

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrRagged is returned when the points of a cloud do not all
	// have the same number of coordinates.
	ErrRagged = errors.New("cloud: points have different lengths")

	// ErrEmpty is returned when a cloud would contain no points.
	ErrEmpty = errors.New("cloud: no points")
)

// Point represents a point in vector space.
type Point interface {
	// Len returns the number of dimensions of this point.
	Len() int

	// D returns the point value in the specified dimension.
	D(int) float64
}

// Vec is a Point stored as a slice.
type Vec []float64

// Len returns the number of dimensions of v.
func (v Vec) Len() int { return len(v) }

// D returns the value of v in dimension i.
func (v Vec) D(i int) float64 { return v[i] }

// Make sure Vec fulfills the interface.
var _ Point = Vec{}

// Cloud is an ordered collection of points that all have the same
// embedding dimension. A Cloud may also carry auxiliary channels:
// per-point values that travel with the geometry but are never rotated.
// A Cloud is never modified after it is created, so it can be shared
// between goroutines without synchronization.
type Cloud struct {
	geom     *mat.Dense
	names    []string
	aux      *mat.Dense // nil if there are no auxiliary channels.
	auxNames []string
}

// New creates a cloud from a list of points. names optionally labels
// the coordinates; if given there must be one name per coordinate.
// The points are copied.
func New(points [][]float64, names ...string) (*Cloud, error) {
	m, err := denseFromRows(points)
	if err != nil {
		return nil, err
	}
	if err := checkNames(names, m); err != nil {
		return nil, err
	}
	return &Cloud{geom: m, names: copyNames(names)}, nil
}

// WithAux returns a copy of the receiver carrying the given auxiliary
// channels, where aux[i] holds the channel values for point i.
func (c *Cloud) WithAux(aux [][]float64, names ...string) (*Cloud, error) {
	m, err := denseFromRows(aux)
	if err != nil {
		return nil, fmt.Errorf("cloud: auxiliary channels: %w", err)
	}
	if r, _ := m.Dims(); r != c.Len() {
		return nil, fmt.Errorf("cloud: %d auxiliary rows for %d points: %w", r, c.Len(), ErrRagged)
	}
	if err := checkNames(names, m); err != nil {
		return nil, err
	}
	return &Cloud{geom: c.geom, names: c.names, aux: m, auxNames: copyNames(names)}, nil
}

// Len returns the number of points in the cloud.
func (c *Cloud) Len() int {
	r, _ := c.geom.Dims()
	return r
}

// Dim returns the embedding dimension of the cloud.
func (c *Cloud) Dim() int {
	_, d := c.geom.Dims()
	return d
}

// Names returns the coordinate names, or nil if the coordinates
// are unnamed.
func (c *Cloud) Names() []string { return copyNames(c.names) }

// Point returns a copy of the point at index i (where i < Len()).
func (c *Cloud) Point(i int) Vec {
	return Vec(append([]float64(nil), c.geom.RawRowView(i)...))
}

// At returns coordinate j of point i.
func (c *Cloud) At(i, j int) float64 { return c.geom.At(i, j) }

// Points returns a copy of all points.
func (c *Cloud) Points() [][]float64 {
	o := make([][]float64, c.Len())
	for i := range o {
		o[i] = c.Point(i)
	}
	return o
}

// AuxNames returns the names of the auxiliary channels.
func (c *Cloud) AuxNames() []string { return copyNames(c.auxNames) }

// Aux returns a copy of the named auxiliary channel for every point.
// ok is false if the cloud has no such channel.
func (c *Cloud) Aux(name string) (values []float64, ok bool) {
	return auxColumn(c.aux, c.auxNames, name)
}

// Transform returns a new cloud whose points are r·p for every point p
// of the receiver, where r is a Dim()×Dim() matrix. The auxiliary
// channels are carried over unchanged.
func (c *Cloud) Transform(r mat.Matrix) *Cloud {
	if rr, rc := r.Dims(); rr != c.Dim() || rc != c.Dim() {
		panic(fmt.Errorf("cloud: %dx%d transform for dimension %d", rr, rc, c.Dim()))
	}
	o := new(mat.Dense)
	o.Mul(c.geom, r.T())
	return &Cloud{geom: o, names: c.names, aux: c.aux, auxNames: c.auxNames}
}

// Linear projects every point through the 3×Dim() matrix p.
func (c *Cloud) Linear(p mat.Matrix) *Projected {
	if pr, pc := p.Dims(); pr != 3 || pc != c.Dim() {
		panic(fmt.Errorf("cloud: %dx%d projection for dimension %d", pr, pc, c.Dim()))
	}
	o := new(mat.Dense)
	o.Mul(c.geom, p.T())
	return &Projected{xyz: o, aux: c.aux, auxNames: c.auxNames}
}

// Select keeps coordinates i, j and k of every point, in that order.
// Values are copied directly, so a non-finite value in one coordinate
// never leaks into another.
func (c *Cloud) Select(i, j, k int) *Projected {
	n := c.Len()
	o := mat.NewDense(n, 3, nil)
	for p := 0; p < n; p++ {
		row := c.geom.RawRowView(p)
		o.Set(p, 0, row[i])
		o.Set(p, 1, row[j])
		o.Set(p, 2, row[k])
	}
	return &Projected{xyz: o, aux: c.aux, auxNames: c.auxNames}
}

func denseFromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}
	d := len(rows[0])
	data := make([]float64, 0, len(rows)*d)
	for i, r := range rows {
		if len(r) != d {
			return nil, fmt.Errorf("cloud: point %d has %d coordinates, point 0 has %d: %w", i, len(r), d, ErrRagged)
		}
		data = append(data, r...)
	}
	return mat.NewDense(len(rows), d, data), nil
}

func checkNames(names []string, m mat.Matrix) error {
	if _, c := m.Dims(); len(names) != 0 && len(names) != c {
		return fmt.Errorf("cloud: %d names for %d coordinates", len(names), c)
	}
	return nil
}

func copyNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	return append([]string(nil), names...)
}

func auxColumn(aux *mat.Dense, names []string, name string) ([]float64, bool) {
	for j, n := range names {
		if n == name {
			return mat.Col(nil, j, aux), true
		}
	}
	return nil, false
}
