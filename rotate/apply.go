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

package rotate

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/spatialmodel/hypersurf/cloud"
)

// Apply returns a new cloud holding op·p for every point p of c.
// c itself is not changed.
func Apply(c *cloud.Cloud, op *Operator) (*cloud.Cloud, error) {
	if c.Dim() != op.Dim() {
		return nil, fmt.Errorf("rotate: %d-dimensional cloud with %d-dimensional operator: %w",
			c.Dim(), op.Dim(), ErrDimensionMismatch)
	}
	return c.Transform(op.m), nil
}

// Projection reduces points of a given dimension to three coordinates.
type Projection interface {
	// Check returns an error wrapping ErrInvalidProjection if the
	// projection cannot be applied to points of dimension dim.
	Check(dim int) error

	// Project projects every point of c. It may assume that
	// Check(c.Dim()) returned nil.
	Project(c *cloud.Cloud) *cloud.Projected
}

// Project reduces every point of c to three coordinates using p.
// Point order is preserved.
func Project(c *cloud.Cloud, p Projection) (*cloud.Projected, error) {
	if p == nil {
		return nil, fmt.Errorf("rotate: nil projection: %w", ErrInvalidProjection)
	}
	if err := p.Check(c.Dim()); err != nil {
		return nil, err
	}
	return p.Project(c), nil
}

// RotateAndProject rotates c by angle about axis and projects the
// result with p. It returns exactly what Build, Apply and Project return
// when called in turn with the same arguments.
func RotateAndProject(c *cloud.Cloud, axis []float64, angle float64, p Projection) (*cloud.Projected, error) {
	op, err := Build(axis, angle, c.Dim())
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("rotate: nil projection: %w", ErrInvalidProjection)
	}
	if err := p.Check(c.Dim()); err != nil {
		return nil, err
	}
	rc, err := Apply(c, op)
	if err != nil {
		return nil, err
	}
	return p.Project(rc), nil
}

// Selection is an axis-aligned projection that keeps three coordinates.
type Selection []int

// Select returns the projection that keeps the coordinates at the given
// indices, in the given order. Exactly three indices are required when
// the projection is used.
func Select(indices ...int) Selection { return Selection(indices) }

// Check implements Projection.
func (s Selection) Check(dim int) error {
	if len(s) != 3 {
		return fmt.Errorf("rotate: selection of %d coordinates: %w", len(s), ErrInvalidProjection)
	}
	for _, i := range s {
		if i < 0 || i >= dim {
			return fmt.Errorf("rotate: coordinate %d selected from dimension %d: %w", i, dim, ErrInvalidProjection)
		}
	}
	return nil
}

// Project implements Projection.
func (s Selection) Project(c *cloud.Cloud) *cloud.Projected {
	return c.Select(s[0], s[1], s[2])
}

// LinearProjection projects points through a 3×N matrix.
type LinearProjection struct {
	m *mat.Dense
}

// Linear returns the projection p ↦ m·p. m is copied.
func Linear(m mat.Matrix) *LinearProjection {
	return &LinearProjection{m: mat.DenseCopyOf(m)}
}

// Check implements Projection.
func (l *LinearProjection) Check(dim int) error {
	if r, c := l.m.Dims(); r != 3 || c != dim {
		return fmt.Errorf("rotate: %d×%d projection matrix for dimension %d: %w", r, c, dim, ErrInvalidProjection)
	}
	return nil
}

// Project implements Projection.
func (l *LinearProjection) Project(c *cloud.Cloud) *cloud.Projected { return c.Linear(l.m) }

// Basis3 returns the projection onto three directions of the embedding
// space. The vectors are orthonormalized in order before use, so the
// first output coordinate always lies along vectors[0].
func Basis3(vectors [][]float64) (*LinearProjection, error) {
	if len(vectors) != 3 {
		return nil, fmt.Errorf("rotate: %d projection vectors: %w", len(vectors), ErrInvalidProjection)
	}
	n := len(vectors[0])
	for i, v := range vectors {
		if len(v) != n || n == 0 {
			return nil, fmt.Errorf("rotate: projection vector %d has length %d: %w", i, len(v), ErrInvalidProjection)
		}
	}
	o, err := orthonormalize(vectors)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidProjection)
	}
	m := mat.NewDense(3, n, nil)
	for i, v := range o {
		m.SetRow(i, v)
	}
	return &LinearProjection{m: m}, nil
}
