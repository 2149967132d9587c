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

package functions

import (
	"testing"

	"github.com/spatialmodel/hypersurf/surface"
)

// Make sure the functions fulfill the interface.
var (
	_ surface.Function = Square{}
	_ surface.Function = Cubic{}
	_ surface.Function = Mandelbrot{}
)

func TestSquare(t *testing.T) {
	w, _ := Square{A: 1}.Eval(1 + 1i)
	if w != 2i {
		t.Errorf("z²(1+i) = %v", w)
	}
	w, _ = Square{A: 2, B: 1, C: 1i}.Eval(2)
	if w != 10+1i {
		t.Errorf("2z²+z+i at 2 = %v", w)
	}
}

func TestCubic(t *testing.T) {
	c := Cubic{A: 1, B: 2, C: -1, D: 0, Offset: 0.75}
	w, _ := c.Eval(1.75)
	if w != 2 {
		t.Errorf("cubic at offset+1 = %v, want 2", w)
	}
}

func TestMandelbrot(t *testing.T) {
	m := Mandelbrot{Bailout: 2, Iterations: 50}
	if w, _ := m.Eval(0); w != 0 {
		t.Errorf("origin: %v", w)
	}
	if w, _ := m.Eval(-1); w != -1 && w != 0 {
		t.Errorf("period-2 point: %v", w)
	}
	if w, _ := m.Eval(3); w != 0 {
		t.Errorf("escaped point should map to 0, got %v", w)
	}
	m.KeepEscaped = true
	if w, _ := m.Eval(3); w != 3 {
		t.Errorf("escaped point should stop at its first value above the bailout, got %v", w)
	}
}

func TestLookup(t *testing.T) {
	f, err := Lookup("cubic", map[string]interface{}{
		"a":      int64(1),
		"b":      2.0,
		"c":      []interface{}{-1.0, int64(0)},
		"offset": 0.75,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := Cubic{A: 1, B: 2, C: -1, Offset: 0.75}
	if f.(Cubic) != want {
		t.Errorf("have %+v, want %+v", f, want)
	}

	m, err := Lookup("mandelbrot", map[string]interface{}{"bailout": 4, "iterations": "100"})
	if err != nil {
		t.Fatal(err)
	}
	if m.(Mandelbrot).Iterations != 100 || m.(Mandelbrot).Bailout != 4 {
		t.Errorf("mandelbrot: %+v", m)
	}

	if _, err := Lookup("sine", nil); err == nil {
		t.Error("expected an error for an unknown function")
	}
	if _, err := Lookup("square", map[string]interface{}{"a": []interface{}{1.0}}); err == nil {
		t.Error("expected an error for a one-element complex parameter")
	}
}
