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
	"math"

	"gonum.org/v1/gonum/mat"
)

// Operator is an orthogonal N×N matrix that rotates points in an
// N-dimensional space. Operators are not modified after creation.
type Operator struct {
	m *mat.Dense
}

// Dim returns N.
func (o *Operator) Dim() int {
	r, _ := o.m.Dims()
	return r
}

// At returns the matrix element at row i and column j.
func (o *Operator) At(i, j int) float64 { return o.m.At(i, j) }

// Matrix returns a copy of the operator's matrix.
func (o *Operator) Matrix() *mat.Dense { return mat.DenseCopyOf(o.m) }

// Inverse returns the operator that undoes o, which is its transpose.
func (o *Operator) Inverse() *Operator {
	return &Operator{m: mat.DenseCopyOf(o.m.T())}
}

// MulVec returns o·v.
func (o *Operator) MulVec(v []float64) []float64 {
	if len(v) != o.Dim() {
		panic(fmt.Errorf("rotate: vector of length %d for %d-dimensional operator", len(v), o.Dim()))
	}
	out := mat.NewVecDense(len(v), nil)
	out.MulVec(o.m, mat.NewVecDense(len(v), append([]float64(nil), v...)))
	return out.RawVector().Data
}

// Identity returns the N-dimensional identity operator.
func Identity(dim int) (*Operator, error) {
	if dim < 1 {
		return nil, fmt.Errorf("rotate: dimension %d: %w", dim, ErrDimensionMismatch)
	}
	m := mat.NewDense(dim, dim, nil)
	for i := 0; i < dim; i++ {
		m.Set(i, i, 1)
	}
	return &Operator{m: m}, nil
}

// Build returns the operator that rotates by angle radians about axis
// in a space of dimension dim, using the plane chosen by Basis. axis
// does not need to be normalized.
func Build(axis []float64, angle float64, dim int) (*Operator, error) {
	if dim < 2 {
		return nil, fmt.Errorf("rotate: dimension %d is less than 2: %w", dim, ErrDimensionMismatch)
	}
	if len(axis) != dim {
		return nil, fmt.Errorf("rotate: axis of length %d in dimension %d: %w", len(axis), dim, ErrDimensionMismatch)
	}
	basis, err := Basis(axis)
	if err != nil {
		return nil, err
	}
	a, b := basis[0], basis[1]
	if dim > 2 {
		a, b = basis[1], basis[2]
	}
	return planeOperator(a, b, angle), nil
}

// planeOperator returns I + (cos θ - 1)(aaᵀ + bbᵀ) + sin θ (baᵀ - abᵀ),
// the rotation that turns unit vector a towards the orthogonal unit
// vector b by θ and fixes their orthogonal complement.
func planeOperator(a, b []float64, angle float64) *Operator {
	n := len(a)
	c, s := math.Cos(angle), math.Sin(angle)
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := (c-1)*(a[i]*a[j]+b[i]*b[j]) + s*(b[i]*a[j]-a[i]*b[j])
			if i == j {
				v++
			}
			m.Set(i, j, v)
		}
	}
	return &Operator{m: m}
}

// Plane returns the operator that rotates by angle radians in the plane
// of coordinates i and j, turning coordinate axis i towards axis j.
func Plane(i, j int, angle float64, dim int) (*Operator, error) {
	if i < 0 || j < 0 || i >= dim || j >= dim {
		return nil, fmt.Errorf("rotate: plane (%d, %d) in dimension %d: %w", i, j, dim, ErrDimensionMismatch)
	}
	if i == j {
		return nil, fmt.Errorf("rotate: plane (%d, %d): %w", i, j, ErrInvalidPlane)
	}
	op, err := Identity(dim)
	if err != nil {
		return nil, err
	}
	c, s := math.Cos(angle), math.Sin(angle)
	op.m.Set(i, i, c)
	op.m.Set(i, j, -s)
	op.m.Set(j, i, s)
	op.m.Set(j, j, c)
	return op, nil
}

// ChangeOfBasis returns the operator that maps a point to its
// coordinates along vectors. There must be one vector per dimension.
// The vectors are orthonormalized in order first, so the result is
// orthogonal and output coordinate 0 always lies along vectors[0].
func ChangeOfBasis(vectors [][]float64) (*Operator, error) {
	n := len(vectors)
	if n == 0 {
		return nil, fmt.Errorf("rotate: no basis vectors: %w", ErrDimensionMismatch)
	}
	for i, v := range vectors {
		if len(v) != n {
			return nil, fmt.Errorf("rotate: basis vector %d has length %d, want %d: %w", i, len(v), n, ErrDimensionMismatch)
		}
	}
	o, err := orthonormalize(vectors)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidBasis)
	}
	m := mat.NewDense(n, n, nil)
	for i, v := range o {
		m.SetRow(i, v)
	}
	return &Operator{m: m}, nil
}

// Compose returns the operator equivalent to applying ops in order:
// ops[0] first, then ops[1] and so on.
func Compose(ops ...*Operator) (*Operator, error) {
	if len(ops) == 0 {
		return nil, fmt.Errorf("rotate: nothing to compose: %w", ErrDimensionMismatch)
	}
	dim := ops[0].Dim()
	m := mat.DenseCopyOf(ops[0].m)
	for k, op := range ops[1:] {
		if op.Dim() != dim {
			return nil, fmt.Errorf("rotate: operator %d has dimension %d, operator 0 has %d: %w",
				k+1, op.Dim(), dim, ErrDimensionMismatch)
		}
		next := new(mat.Dense)
		next.Mul(op.m, m)
		m = next
	}
	return &Operator{m: m}, nil
}
