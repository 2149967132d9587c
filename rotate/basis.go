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

/*Package rotate rotates point clouds about an arbitrary axis in their
embedding space and projects them to three dimensions.

In three dimensions an axis fixes a unique plane of rotation. In N > 3
dimensions it does not, so the plane is chosen by a fixed convention:

 1. The normalized axis u becomes basis vector b0.
 2. The canonical vectors e0, e1, ..., e(N-1) are visited in order. Each
    is orthogonalized against every basis vector accepted so far and
    kept, normalized, if what remains is longer than BasisTolerance.
    Visiting stops once N vectors have been accepted.
 3. The rotation turns b1 towards b2 by the requested angle and leaves
    u and b3, ..., b(N-1) fixed.

For example, with N = 4 and u = e2 the basis is (e2, e0, e1, e3) and
the rotation acts in the plane of the first two coordinates. In two
dimensions there is no plane orthogonal to u, so the rotation acts in
the plane (b0, b1), which is the whole space.

Callers that need the rotation to act in another plane should choose
a different axis or build the operator with Plane.*/
package rotate

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrInvalidAxis is returned for a zero-length or non-finite axis.
	ErrInvalidAxis = errors.New("rotate: invalid axis")

	// ErrDimensionMismatch is returned when the shapes of an axis,
	// operator or cloud do not agree.
	ErrDimensionMismatch = errors.New("rotate: dimension mismatch")

	// ErrInvalidProjection is returned for a projection that does not
	// map the cloud's dimension to three coordinates.
	ErrInvalidProjection = errors.New("rotate: invalid projection")

	// ErrInvalidPlane is returned when a coordinate plane is named by
	// the same index twice.
	ErrInvalidPlane = errors.New("rotate: invalid plane")

	// ErrInvalidBasis is returned for basis vectors that are linearly
	// dependent or do not span the space.
	ErrInvalidBasis = errors.New("rotate: invalid basis")
)

// BasisTolerance is the residual length below which a canonical vector
// is treated as lying in the span of the basis built so far.
const BasisTolerance = 1e-9

// Basis returns the orthonormal basis generated from axis by the
// convention described in the package documentation. basis[0] is the
// normalized axis.
func Basis(axis []float64) (basis [][]float64, err error) {
	n := len(axis)
	if n == 0 {
		return nil, fmt.Errorf("rotate: empty axis: %w", ErrDimensionMismatch)
	}
	norm := floats.Norm(axis, 2)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return nil, fmt.Errorf("rotate: axis %v has length %g: %w", axis, norm, ErrInvalidAxis)
	}
	u := append([]float64(nil), axis...)
	floats.Scale(1/norm, u)
	basis = append(make([][]float64, 0, n), u)

	for k := 0; k < n && len(basis) < n; k++ {
		v := make([]float64, n)
		v[k] = 1
		if r := orthogonalize(v, basis); r > BasisTolerance {
			floats.Scale(1/r, v)
			basis = append(basis, v)
		}
	}
	if len(basis) != n {
		panic("not possible")
	}
	return basis, nil
}

// orthogonalize removes from v its components along each vector in
// basis, which must be orthonormal, and returns the length of what
// remains. Two passes of modified Gram-Schmidt keep the result
// orthogonal to working precision.
func orthogonalize(v []float64, basis [][]float64) float64 {
	for pass := 0; pass < 2; pass++ {
		for _, b := range basis {
			floats.AddScaled(v, -floats.Dot(v, b), b)
		}
	}
	return floats.Norm(v, 2)
}

// orthonormalize returns an orthonormal version of vectors, in order.
// It fails if the vectors are linearly dependent.
func orthonormalize(vectors [][]float64) ([][]float64, error) {
	o := make([][]float64, 0, len(vectors))
	for i, v := range vectors {
		w := append([]float64(nil), v...)
		if r := orthogonalize(w, o); r > BasisTolerance && !math.IsNaN(r) && !math.IsInf(r, 0) {
			floats.Scale(1/r, w)
			o = append(o, w)
		} else {
			return nil, fmt.Errorf("rotate: vector %d (%v) depends on the vectors before it", i, v)
		}
	}
	return o, nil
}
