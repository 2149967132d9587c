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

/*Package surface samples a complex function over a grid in the complex
plane and embeds the samples as a point cloud.

Each grid point z = x + iy with value w = f(z) becomes the point
(x, y, Re w, Im w), optionally followed by extra channels such as |w|.
Channels listed in Options.Embed become coordinates and are rotated
along with the rest of the geometry; channels listed in Options.Aux are
carried alongside each point but never rotated.*/
package surface

import (
	"errors"
	"fmt"

	"github.com/spatialmodel/hypersurf/cloud"
)

var (
	// ErrInvalidDomain is returned for a bad range or resolution.
	ErrInvalidDomain = errors.New("surface: invalid domain")

	// ErrEvaluation is matched by errors returned when the
	// sampled function fails.
	ErrEvaluation = errors.New("surface: function evaluation failed")

	// ErrInvalidChannel is returned for a Channel that is not one of
	// the defined constants.
	ErrInvalidChannel = errors.New("surface: invalid channel")
)

// Names of the four base coordinates.
var baseNames = []string{"re(z)", "im(z)", "re(w)", "im(w)"}

// BaseDim is the number of coordinates every embedded point has before
// any extra channels.
const BaseDim = 4

// Function is a complex function to be sampled. Eval may return
// non-finite values; those are kept as data. A non-nil error aborts the
// generation.
type Function interface {
	Eval(z complex128) (complex128, error)
}

// Func adapts an ordinary function to the Function interface.
type Func func(complex128) complex128

// Eval returns f(z).
func (f Func) Eval(z complex128) (complex128, error) { return f(z), nil }

// EvalError reports the input at which a Function failed.
type EvalError struct {
	Z   complex128
	Err error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("surface: evaluating f(%v): %v", e.Z, e.Err)
}

// Unwrap returns the error returned by the function.
func (e *EvalError) Unwrap() error { return e.Err }

// Is reports whether target is ErrEvaluation.
func (e *EvalError) Is(target error) bool { return target == ErrEvaluation }

// Options specifies the optional channels of a generated cloud.
type Options struct {
	// Embed lists channels appended to each point as extra
	// coordinates, in order.
	Embed []Channel

	// Aux lists channels stored as auxiliary data, in order.
	Aux []Channel
}

func (o *Options) check() error {
	for _, chs := range [][]Channel{o.Embed, o.Aux} {
		for _, ch := range chs {
			if !ch.valid() {
				return fmt.Errorf("surface: channel %d: %w", int(ch), ErrInvalidChannel)
			}
		}
	}
	return nil
}

// Dim returns the embedding dimension of clouds generated with o.
func (o *Options) Dim() int {
	if o == nil {
		return BaseDim
	}
	return BaseDim + len(o.Embed)
}

// Generate evaluates f at every point of g and returns the embedded
// point cloud, with one point per grid point in the order of g.At.
// o may be nil.
func Generate(f Function, g *Grid, o *Options) (*cloud.Cloud, error) {
	if o == nil {
		o = new(Options)
	}
	if err := o.check(); err != nil {
		return nil, err
	}
	n := g.Len()
	dim := o.Dim()
	points := make([][]float64, n)
	var aux [][]float64
	if len(o.Aux) > 0 {
		aux = make([][]float64, n)
	}
	for i := 0; i < n; i++ {
		z := g.At(i)
		w, err := f.Eval(z)
		if err != nil {
			return nil, &EvalError{Z: z, Err: err}
		}
		p := make([]float64, BaseDim, dim)
		p[0], p[1], p[2], p[3] = real(z), imag(z), real(w), imag(w)
		for _, ch := range o.Embed {
			p = append(p, ch.Value(w))
		}
		points[i] = p
		if aux != nil {
			a := make([]float64, len(o.Aux))
			for j, ch := range o.Aux {
				a[j] = ch.Value(w)
			}
			aux[i] = a
		}
	}
	c, err := cloud.New(points, channelNames(baseNames, o.Embed)...)
	if err != nil {
		panic(err) // not possible: every point has length dim.
	}
	if aux == nil {
		return c, nil
	}
	return c.WithAux(aux, channelNames(nil, o.Aux)...)
}

// GenerateRange builds a resolution×resolution grid over re and im
// and samples f on it.
func GenerateRange(f Function, re, im Range, resolution int, o *Options) (*cloud.Cloud, error) {
	g, err := NewGrid(re, im, resolution)
	if err != nil {
		return nil, err
	}
	return Generate(f, g, o)
}

func channelNames(base []string, chs []Channel) []string {
	o := append([]string(nil), base...)
	for _, ch := range chs {
		o = append(o, ch.String())
	}
	return o
}
