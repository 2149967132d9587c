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

package plot

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/spatialmodel/hypersurf/cloud"
	"github.com/spatialmodel/hypersurf/rotate"
	"github.com/spatialmodel/hypersurf/surface"
)

func TestCameraView(t *testing.T) {
	pts := XYZs{{1, 2, 3}, {0, 0, 1}}
	tests := []struct {
		cam   Camera
		xys   XYs
		depth []float64
	}{
		{cam: Camera{Elevation: 90}, xys: XYs{{1, 2}, {0, 0}}, depth: []float64{3, 1}},
		{cam: Camera{Elevation: 0}, xys: XYs{{1, 3}, {0, 1}}, depth: []float64{-2, 0}},
		{cam: Camera{Elevation: 90, Azimuth: 90}, xys: XYs{{2, -1}, {0, 0}}, depth: []float64{3, 1}},
	}
	for _, test := range tests {
		xys, depth := test.cam.View(pts)
		for i := range xys {
			if math.Abs(xys[i].X-test.xys[i].X) > 1e-12 || math.Abs(xys[i].Y-test.xys[i].Y) > 1e-12 {
				t.Errorf("%+v point %d: %v != %v", test.cam, i, xys[i], test.xys[i])
			}
		}
		if !floats.EqualApprox(depth, test.depth, 1e-12) {
			t.Errorf("%+v depth: %v != %v", test.cam, depth, test.depth)
		}
	}
}

func TestViews(t *testing.T) {
	v := Views([]float64{0, 45}, []float64{0, 30, 60}, -45)
	if len(v) != 6 {
		t.Fatalf("%d views", len(v))
	}
	if v[4] != (Camera{Elevation: 45, Azimuth: 30, Roll: -45}) {
		t.Errorf("view 4: %+v", v[4])
	}
}

func TestDrawOrder(t *testing.T) {
	xys := XYs{{0, 0}, {math.NaN(), 0}, {1, 1}, {2, 2}}
	o := drawOrder(xys, []float64{5, 0, -1, 2}, []float64{1, 1, 1, math.Inf(1)})
	if len(o) != 2 || o[0] != 2 || o[1] != 0 {
		t.Errorf("order: %v", o)
	}
}

func TestRender(t *testing.T) {
	f := surface.Func(func(z complex128) complex128 { return z * z * z })
	c, err := surface.GenerateRange(f, surface.Range{Min: -1, Max: 1}, surface.Range{Min: -1, Max: 1}, 20,
		&surface.Options{Aux: []surface.Channel{surface.Argument}})
	if err != nil {
		t.Fatal(err)
	}
	p, err := rotate.RotateAndProject(c, []float64{1, 0, 1, 0}, 0.5, rotate.Select(0, 1, 2))
	if err != nil {
		t.Fatal(err)
	}
	values, err := Values(p, "arg(w)")
	if err != nil {
		t.Fatal(err)
	}
	b := new(bytes.Buffer)
	if err := Render(b, p, values, Camera{Elevation: 30, Azimuth: 45}, Options{Title: "z^3"}); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG image")
	}

	if _, err := Values(p, "hue"); err == nil {
		t.Error("expected an error for an unknown channel")
	}
	if z, _ := Values(p, "z"); len(z) != p.Len() {
		t.Errorf("z values: %d", len(z))
	}
}

func TestRenderNothing(t *testing.T) {
	c, err := cloud.New([][]float64{{math.NaN(), 0, 0, 0}})
	if err != nil {
		t.Fatal(err)
	}
	p, err := rotate.Project(c, rotate.Select(0, 1, 2))
	if err != nil {
		t.Fatal(err)
	}
	if err := Render(new(bytes.Buffer), p, nil, Camera{}, Options{}); !errors.Is(err, ErrNothingToDraw) {
		t.Errorf("have %v, want %v", err, ErrNothingToDraw)
	}
}
