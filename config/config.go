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

// Package config reads the TOML description of a surface, its
// animation and how it is drawn.
package config

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/Knetic/govaluate"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"

	"github.com/spatialmodel/hypersurf/animate"
	"github.com/spatialmodel/hypersurf/functions"
	"github.com/spatialmodel/hypersurf/plot"
	"github.com/spatialmodel/hypersurf/rotate"
	"github.com/spatialmodel/hypersurf/surface"
)

// Config holds the settings for one run.
type Config struct {
	Function   Function   `toml:"function"`
	Domain     Domain     `toml:"domain"`
	Surface    Surface    `toml:"surface"`
	Sweep      Sweep      `toml:"sweep"`
	Projection Projection `toml:"projection"`
	Render     Render     `toml:"render"`
	Output     Output     `toml:"output"`
}

// Function names a function from package functions and its parameters.
type Function struct {
	Name   string                 `toml:"name"`
	Params map[string]interface{} `toml:"params"`
}

// Domain is the sampled region of the complex plane.
type Domain struct {
	Real       [2]float64 `toml:"real"`
	Imag       [2]float64 `toml:"imag"`
	Resolution int        `toml:"resolution"`

	// Line, if true, samples only the real axis at imaginary part Imag[0].
	Line bool `toml:"line"`
}

// Surface lists the extra channels of the generated cloud.
type Surface struct {
	Embed []string `toml:"embed"`
	Aux   []string `toml:"aux"`
}

// Sweep describes the animation.
type Sweep struct {
	Segments   int         `toml:"segments"`
	Ease       string      `toml:"ease"`
	Transforms []Transform `toml:"transforms"`

	// Basis optionally changes the basis of every frame before the
	// transforms; BasisTurn turns one of its vectors across the sweep.
	Basis     [][]float64 `toml:"basis"`
	BasisTurn *BasisTurn  `toml:"basis_turn"`
}

// BasisTurn turns one vector of the sweep basis.
type BasisTurn struct {
	Vector int   `toml:"vector"`
	Plane  []int `toml:"plane"`
	Min    Angle `toml:"min"`
	Max    Angle `toml:"max"`
}

// Transform is one rotation of a sweep.
type Transform struct {
	Axis  []float64 `toml:"axis"`
	Plane []int     `toml:"plane"`
	Min   Angle     `toml:"min"`
	Max   Angle     `toml:"max"`
}

// Projection selects three coordinates or three basis vectors.
type Projection struct {
	Select []int       `toml:"select"`
	Basis  [][]float64 `toml:"basis"`
}

// Render describes how frames are drawn.
type Render struct {
	Color      string    `toml:"color"`
	Elevations []float64 `toml:"elevations"`
	Azimuths   []float64 `toml:"azimuths"`
	Roll       float64   `toml:"roll"`
	Frame      int       `toml:"frame"`
	Width      float64   `toml:"width"`  // inches
	Height     float64   `toml:"height"` // inches
}

// Output names the files that are written.
type Output struct {
	Dir    string `toml:"dir"`
	Frames string `toml:"frames"`
	XLSX   string `toml:"xlsx"`
	Label  string `toml:"label"`
}

// Angle is an angle in radians. In TOML it may be written as a number
// or as an arithmetic expression in pi, such as "2 * pi".
type Angle float64

// UnmarshalTOML implements toml.Unmarshaler.
func (a *Angle) UnmarshalTOML(v interface{}) error {
	s, ok := v.(string)
	if !ok {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return fmt.Errorf("config: angle: %v", err)
		}
		*a = Angle(f)
		return nil
	}
	f, err := EvalAngle(s)
	if err != nil {
		return err
	}
	*a = Angle(f)
	return nil
}

// EvalAngle evaluates an angle expression. The variables pi and tau are
// defined.
func EvalAngle(expr string) (float64, error) {
	e, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return 0, fmt.Errorf("config: angle %q: %v", expr, err)
	}
	r, err := e.Evaluate(map[string]interface{}{"pi": math.Pi, "tau": 2 * math.Pi})
	if err != nil {
		return 0, fmt.Errorf("config: angle %q: %v", expr, err)
	}
	f, err := cast.ToFloat64E(r)
	if err != nil {
		return 0, fmt.Errorf("config: angle %q: %v", expr, err)
	}
	return f, nil
}

// Decode reads a configuration from r.
func Decode(r io.Reader) (*Config, error) {
	c := new(Config)
	if _, err := toml.DecodeReader(r, c); err != nil {
		return nil, fmt.Errorf("config: %v", err)
	}
	c.defaults()
	return c, nil
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %v", err)
	}
	defer f.Close()
	return Decode(f)
}

func (c *Config) defaults() {
	if c.Domain.Resolution == 0 {
		c.Domain.Resolution = 160
	}
	if c.Domain.Real == [2]float64{} {
		c.Domain.Real = [2]float64{-2, 2}
	}
	if c.Domain.Imag == [2]float64{} && !c.Domain.Line {
		c.Domain.Imag = [2]float64{-2, 2}
	}
	if len(c.Projection.Select) == 0 && len(c.Projection.Basis) == 0 {
		c.Projection.Select = []int{0, 1, 2}
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "."
	}
	if c.Output.Frames == "" {
		c.Output.Frames = "frames.json"
	}
	if c.Output.Label == "" {
		c.Output.Label = c.Function.Name
	}
	if len(c.Render.Elevations) == 0 {
		c.Render.Elevations = []float64{30}
	}
	if len(c.Render.Azimuths) == 0 {
		c.Render.Azimuths = []float64{-60}
	}
	if c.Render.Width == 0 {
		c.Render.Width = 6
	}
	if c.Render.Height == 0 {
		c.Render.Height = 6
	}
}

// Fn returns the configured function.
func (c *Config) Fn() (surface.Function, error) {
	return functions.Lookup(c.Function.Name, c.Function.Params)
}

// Grid returns the sampling grid.
func (c *Config) Grid() (*surface.Grid, error) {
	re := surface.Range{Min: c.Domain.Real[0], Max: c.Domain.Real[1]}
	if c.Domain.Line {
		return surface.NewLine(re, c.Domain.Imag[0], c.Domain.Resolution)
	}
	im := surface.Range{Min: c.Domain.Imag[0], Max: c.Domain.Imag[1]}
	return surface.NewGrid(re, im, c.Domain.Resolution)
}

// SurfaceOptions returns the channel options for the surface generator.
func (c *Config) SurfaceOptions() (*surface.Options, error) {
	o := new(surface.Options)
	for _, s := range c.Surface.Embed {
		ch, err := surface.ParseChannel(s)
		if err != nil {
			return nil, err
		}
		o.Embed = append(o.Embed, ch)
	}
	for _, s := range c.Surface.Aux {
		ch, err := surface.ParseChannel(s)
		if err != nil {
			return nil, err
		}
		o.Aux = append(o.Aux, ch)
	}
	return o, nil
}

// AnimationSweep returns the configured sweep, logging to log.
func (c *Config) AnimationSweep(log logrus.FieldLogger) (*animate.Sweep, error) {
	e, err := animate.EaseByName(c.Sweep.Ease)
	if err != nil {
		return nil, err
	}
	s := &animate.Sweep{Segments: c.Sweep.Segments, Ease: e, Basis: c.Sweep.Basis, Log: log}
	if b := c.Sweep.BasisTurn; b != nil {
		s.BasisTurn = &animate.BasisTurn{
			Vector: b.Vector,
			Plane:  b.Plane,
			Min:    float64(b.Min),
			Max:    float64(b.Max),
		}
	}
	for _, t := range c.Sweep.Transforms {
		s.Transforms = append(s.Transforms, animate.Transform{
			Axis:  t.Axis,
			Plane: t.Plane,
			Min:   float64(t.Min),
			Max:   float64(t.Max),
		})
	}
	return s, nil
}

// ProjectionOp returns the configured projection.
func (c *Config) ProjectionOp() (rotate.Projection, error) {
	if len(c.Projection.Basis) > 0 {
		if len(c.Projection.Select) > 0 {
			return nil, fmt.Errorf("config: projection has both select and basis: %w", rotate.ErrInvalidProjection)
		}
		return rotate.Basis3(c.Projection.Basis)
	}
	return rotate.Select(c.Projection.Select...), nil
}

// Cameras returns the configured views.
func (c *Config) Cameras() []plot.Camera {
	return plot.Views(c.Render.Elevations, c.Render.Azimuths, c.Render.Roll)
}
