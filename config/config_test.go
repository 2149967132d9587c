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

package config

import (
	"context"
	"io/ioutil"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/spatialmodel/hypersurf/functions"
	"github.com/spatialmodel/hypersurf/surface"
)

func TestLoad(t *testing.T) {
	c, err := Load("testdata/config.toml")
	if err != nil {
		t.Fatal(err)
	}
	f, err := c.Fn()
	if err != nil {
		t.Fatal(err)
	}
	if want := (functions.Cubic{A: 1, B: 2, C: -1, Offset: 0.75}); f.(functions.Cubic) != want {
		t.Errorf("function: %+v != %+v", f, want)
	}
	if n := len(c.Sweep.Transforms); n != 2 {
		t.Fatalf("%d transforms", n)
	}
	if c.Sweep.Transforms[0].Max != Angle(2*math.Pi) {
		t.Errorf("max angle: %v", c.Sweep.Transforms[0].Max)
	}
	if c.Sweep.Transforms[1].Min != Angle(-math.Pi/2) {
		t.Errorf("min angle: %v", c.Sweep.Transforms[1].Min)
	}
	if len(c.Sweep.Basis) != 4 || c.Sweep.BasisTurn == nil {
		t.Fatalf("basis %v, turn %v", c.Sweep.Basis, c.Sweep.BasisTurn)
	}
	if b := c.Sweep.BasisTurn; b.Vector != 0 || !reflect.DeepEqual(b.Plane, []int{0, 2}) || b.Max != Angle(math.Pi/2) {
		t.Errorf("basis turn: %+v", *b)
	}
	if c.Output.Frames != "frames.json" {
		t.Errorf("default frames file: %q", c.Output.Frames)
	}
	if len(c.Cameras()) != 6 {
		t.Errorf("%d cameras", len(c.Cameras()))
	}
}

func TestPipeline(t *testing.T) {
	c, err := Load("testdata/config.toml")
	if err != nil {
		t.Fatal(err)
	}
	f, err := c.Fn()
	if err != nil {
		t.Fatal(err)
	}
	g, err := c.Grid()
	if err != nil {
		t.Fatal(err)
	}
	o, err := c.SurfaceOptions()
	if err != nil {
		t.Fatal(err)
	}
	base, err := surface.Generate(f, g, o)
	if err != nil {
		t.Fatal(err)
	}
	if base.Len() != 40*40 || base.Dim() != 4 {
		t.Fatalf("cloud shape %d×%d", base.Len(), base.Dim())
	}
	log := logrus.New()
	log.Out = ioutil.Discard
	s, err := c.AnimationSweep(log)
	if err != nil {
		t.Fatal(err)
	}
	p, err := c.ProjectionOp()
	if err != nil {
		t.Fatal(err)
	}
	frames, err := s.Project(context.Background(), base, p)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 9 {
		t.Errorf("%d frames", len(frames))
	}
	if !reflect.DeepEqual(frames[0].AuxNames(), []string{"arg(w)", "|w|"}) {
		t.Errorf("aux names: %v", frames[0].AuxNames())
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []string{
		"[domain]\nresolution = \"many\"\n",
		"[[sweep.transforms]]\nmin = \"2 * \"\n",
		"[[sweep.transforms]]\nmax = \"2 * phi\"\n",
	}
	for _, test := range tests {
		if _, err := Decode(strings.NewReader(test)); err == nil {
			t.Errorf("expected an error decoding %q", test)
		}
	}

	c, err := Decode(strings.NewReader("[function]\nname = \"square\"\n[projection]\nselect = [0, 1]\nbasis = [[1.0, 0.0]]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.ProjectionOp(); err == nil {
		t.Error("expected an error for a projection with both select and basis")
	}
	c.Surface.Embed = []string{"hue"}
	if _, err := c.SurfaceOptions(); err == nil {
		t.Error("expected an error for an unknown channel")
	}
}

func TestEvalAngle(t *testing.T) {
	for expr, want := range map[string]float64{
		"pi":            math.Pi,
		"2 * pi":        2 * math.Pi,
		"tau / 4":       math.Pi / 2,
		"-pi / 3":       -math.Pi / 3,
		"90 * pi / 180": math.Pi / 2,
	} {
		got, err := EvalAngle(expr)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got-want) > 1e-15 {
			t.Errorf("%s = %v, want %v", expr, got, want)
		}
	}
}
