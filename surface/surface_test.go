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
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"reflect"
	"testing"

	"github.com/kr/pretty"
)

var square = Func(func(z complex128) complex128 { return z * z })

func TestGenerateShape(t *testing.T) {
	for _, res := range []int{1, 2, 3, 10, 33} {
		t.Run(fmt.Sprint(res), func(t *testing.T) {
			c, err := GenerateRange(square, Range{-1, 1}, Range{-2, 2}, res, nil)
			if err != nil {
				t.Fatal(err)
			}
			if c.Len() != res*res {
				t.Errorf("length %d != %d", c.Len(), res*res)
			}
			if c.Dim() != BaseDim {
				t.Errorf("dimension %d != %d", c.Dim(), BaseDim)
			}
		})
	}
}

func TestGenerateSquare(t *testing.T) {
	c, err := GenerateRange(square, Range{-1, 1}, Range{-1, 1}, 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]float64{
		{-1, -1, 0, 2},
		{-1, 0, 1, 0},
		{-1, 1, 0, -2},
		{0, -1, -1, 0},
		{0, 0, 0, 0},
		{0, 1, -1, 0},
		{1, -1, 0, -2},
		{1, 0, 1, 0},
		{1, 1, 0, 2},
	}
	if !reflect.DeepEqual(c.Points(), want) {
		t.Errorf("points: %v", pretty.Diff(c.Points(), want))
	}
	if !reflect.DeepEqual(c.Names(), []string{"re(z)", "im(z)", "re(w)", "im(w)"}) {
		t.Errorf("names: %v", c.Names())
	}
}

func TestGenerateDeterministic(t *testing.T) {
	f := Func(func(z complex128) complex128 { return cmplx.Exp(z) / (z - 0.3i) })
	a, err := GenerateRange(f, Range{-2, 2}, Range{-2, 2}, 17, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateRange(f, Range{-2, 2}, Range{-2, 2}, 17, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Points(), b.Points()) {
		t.Error("identical inputs gave different clouds")
	}
}

func TestGenerateChannels(t *testing.T) {
	g, err := NewGrid(Range{0, 1}, Range{0, 1}, 2)
	if err != nil {
		t.Fatal(err)
	}
	c, err := Generate(square, g, &Options{Embed: []Channel{Modulus}, Aux: []Channel{Argument, Modulus}})
	if err != nil {
		t.Fatal(err)
	}
	if c.Dim() != 5 {
		t.Fatalf("dimension %d != 5", c.Dim())
	}
	// Last point is z = 1+i, w = 2i.
	if !reflect.DeepEqual(c.Point(3), []float64{1, 1, 0, 2, 2}) {
		t.Errorf("point 3: %v", c.Point(3))
	}
	arg, ok := c.Aux("arg(w)")
	if !ok {
		t.Fatal("missing arg(w) channel")
	}
	if arg[3] != math.Pi/2 {
		t.Errorf("arg: %v", arg)
	}
	if !reflect.DeepEqual(c.AuxNames(), []string{"arg(w)", "|w|"}) {
		t.Errorf("aux names: %v", c.AuxNames())
	}
}

func TestGenerateNonFinite(t *testing.T) {
	inv := Func(func(z complex128) complex128 { return 1 / z })
	c, err := GenerateRange(inv, Range{-1, 1}, Range{-1, 1}, 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	// z = 0 is the center of the grid.
	p := c.Point(4)
	if !math.IsInf(p[2], 0) && !math.IsNaN(p[2]) {
		t.Errorf("1/0 should give a non-finite value, got %v", p)
	}
}

type failing struct{}

var errBoom = errors.New("boom")

func (failing) Eval(z complex128) (complex128, error) {
	if real(z) > 0 {
		return 0, errBoom
	}
	return z, nil
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		re, im Range
		res    int
		want   error
	}{
		{name: "zero resolution", re: Range{-1, 1}, im: Range{-1, 1}, res: 0, want: ErrInvalidDomain},
		{name: "negative resolution", re: Range{-1, 1}, im: Range{-1, 1}, res: -3, want: ErrInvalidDomain},
		{name: "empty real range", re: Range{1, 1}, im: Range{-1, 1}, res: 3, want: ErrInvalidDomain},
		{name: "reversed imaginary range", re: Range{-1, 1}, im: Range{1, -1}, res: 3, want: ErrInvalidDomain},
		{name: "infinite range", re: Range{-1, math.Inf(1)}, im: Range{-1, 1}, res: 3, want: ErrInvalidDomain},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := GenerateRange(square, test.re, test.im, test.res, nil)
			if !errors.Is(err, test.want) {
				t.Errorf("have %v, want %v", err, test.want)
			}
		})
	}

	_, err := GenerateRange(failing{}, Range{-1, 1}, Range{-1, 1}, 3, nil)
	if !errors.Is(err, ErrEvaluation) || !errors.Is(err, errBoom) {
		t.Errorf("evaluation failure: %v", err)
	}
	var ee *EvalError
	if !errors.As(err, &ee) || ee.Z != complex(1, -1) {
		t.Errorf("failing input: %v", err)
	}
}

func TestGenerateInvalidChannel(t *testing.T) {
	for _, o := range []*Options{
		{Embed: []Channel{Modulus, Channel(7)}},
		{Aux: []Channel{Channel(-1)}},
	} {
		_, err := GenerateRange(square, Range{-1, 1}, Range{-1, 1}, 3, o)
		if !errors.Is(err, ErrInvalidChannel) {
			t.Errorf("%+v: have %v, want %v", *o, err, ErrInvalidChannel)
		}
	}
}

func TestNewLine(t *testing.T) {
	g, err := NewLine(Range{0, 2}, 0.5, 5)
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != 5 {
		t.Errorf("length %d", g.Len())
	}
	if g.At(4) != complex(2, 0.5) {
		t.Errorf("last point %v", g.At(4))
	}
	c, err := Generate(square, g, nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 5 {
		t.Errorf("cloud length %d", c.Len())
	}
}

func TestGridImmutable(t *testing.T) {
	g, err := NewGrid(Range{0, 1}, Range{0, 1}, 2)
	if err != nil {
		t.Fatal(err)
	}
	g.Real()[0] = 10
	if g.At(0) != 0 {
		t.Errorf("grid changed: %v", g.At(0))
	}
	if !reflect.DeepEqual(g.Ranges(), []Range{{0, 1}, {0, 1}}) {
		t.Errorf("ranges: %v", g.Ranges())
	}
}
