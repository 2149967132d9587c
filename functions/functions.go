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

// Package functions holds complex functions that can be sampled by
// package surface.
package functions

import (
	"fmt"
	"math/cmplx"
	"sort"

	"github.com/spf13/cast"

	"github.com/spatialmodel/hypersurf/surface"
)

// Square is the complex quadratic a·z² + b·z + c.
type Square struct {
	A, B, C complex128
}

// Eval returns a·z² + b·z + c.
func (s Square) Eval(z complex128) (complex128, error) {
	return s.A*z*z + s.B*z + s.C, nil
}

// Cubic is the complex cubic a·u³ + b·u² + c·u + d with u = z - Offset.
type Cubic struct {
	A, B, C, D complex128
	Offset     complex128
}

// Eval returns the cubic evaluated at z.
func (c Cubic) Eval(z complex128) (complex128, error) {
	u := z - c.Offset
	return c.A*u*u*u + c.B*u*u + c.C*u + c.D, nil
}

// Mandelbrot iterates w ← w² + z from w = 0 for Iterations steps,
// freezing w once |w| reaches Bailout. Points that escaped map to 0,
// so only the bounded part of the set has a non-zero surface.
type Mandelbrot struct {
	Bailout    float64
	Iterations int

	// KeepEscaped, if true, returns the last value reached by escaped
	// points instead of 0.
	KeepEscaped bool
}

// Eval returns the iterated value at z.
func (m Mandelbrot) Eval(z complex128) (complex128, error) {
	var w complex128
	for i := 0; i < m.Iterations; i++ {
		if cmplx.Abs(w) >= m.Bailout {
			break
		}
		w = w*w + z
	}
	if !m.KeepEscaped && cmplx.Abs(w) >= m.Bailout {
		return 0, nil
	}
	return w, nil
}

// Maker creates a Function from a set of named parameters.
type Maker func(params map[string]interface{}) (surface.Function, error)

var registry = map[string]Maker{
	"square": func(p map[string]interface{}) (surface.Function, error) {
		var s Square
		var err error
		if s.A, err = complexParam(p, "a", 1); err != nil {
			return nil, err
		}
		if s.B, err = complexParam(p, "b", 0); err != nil {
			return nil, err
		}
		if s.C, err = complexParam(p, "c", 0); err != nil {
			return nil, err
		}
		return s, nil
	},
	"cubic": func(p map[string]interface{}) (surface.Function, error) {
		var c Cubic
		var err error
		if c.A, err = complexParam(p, "a", 1); err != nil {
			return nil, err
		}
		if c.B, err = complexParam(p, "b", 0); err != nil {
			return nil, err
		}
		if c.C, err = complexParam(p, "c", 0); err != nil {
			return nil, err
		}
		if c.D, err = complexParam(p, "d", 0); err != nil {
			return nil, err
		}
		if c.Offset, err = complexParam(p, "offset", 0); err != nil {
			return nil, err
		}
		return c, nil
	},
	"mandelbrot": func(p map[string]interface{}) (surface.Function, error) {
		m := Mandelbrot{Bailout: 2, Iterations: 250}
		if v, ok := p["bailout"]; ok {
			b, err := cast.ToFloat64E(v)
			if err != nil {
				return nil, fmt.Errorf("functions: mandelbrot bailout: %v", err)
			}
			m.Bailout = b
		}
		if v, ok := p["iterations"]; ok {
			n, err := cast.ToIntE(v)
			if err != nil {
				return nil, fmt.Errorf("functions: mandelbrot iterations: %v", err)
			}
			m.Iterations = n
		}
		if v, ok := p["keep_escaped"]; ok {
			k, err := cast.ToBoolE(v)
			if err != nil {
				return nil, fmt.Errorf("functions: mandelbrot keep_escaped: %v", err)
			}
			m.KeepEscaped = k
		}
		if m.Bailout <= 0 || m.Iterations < 0 {
			return nil, fmt.Errorf("functions: invalid mandelbrot parameters %+v", m)
		}
		return m, nil
	},
}

// Lookup returns the function registered under name, configured with
// params. Complex parameters may be given as a number or as a
// two-element [real, imaginary] list.
func Lookup(name string, params map[string]interface{}) (surface.Function, error) {
	mk, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("functions: unknown function %q; valid names are %v", name, Names())
	}
	return mk(params)
}

// Names returns the registered function names in sorted order.
func Names() []string {
	o := make([]string, 0, len(registry))
	for n := range registry {
		o = append(o, n)
	}
	sort.Strings(o)
	return o
}

func complexParam(p map[string]interface{}, key string, def complex128) (complex128, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	if s, err := cast.ToSliceE(v); err == nil {
		if len(s) != 2 {
			return 0, fmt.Errorf("functions: parameter %s needs [real, imaginary], got %v", key, v)
		}
		re, err := cast.ToFloat64E(s[0])
		if err != nil {
			return 0, fmt.Errorf("functions: parameter %s: %v", key, err)
		}
		im, err := cast.ToFloat64E(s[1])
		if err != nil {
			return 0, fmt.Errorf("functions: parameter %s: %v", key, err)
		}
		return complex(re, im), nil
	}
	re, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("functions: parameter %s: %v", key, err)
	}
	return complex(re, 0), nil
}
