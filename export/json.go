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

// Package export writes animation frames to files.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/spatialmodel/hypersurf/cloud"
	"github.com/spatialmodel/hypersurf/surface"
)

// Num is a float64 that encodes non-finite values as JSON null, which
// decodes back to NaN.
type Num float64

// MarshalJSON implements json.Marshaler.
func (n Num) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Num) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = Num(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	*n = Num(f)
	return nil
}

// Document is a sequence of frames that share a sampling domain.
// Frames[f][i] holds the coordinates of point i in frame f.
type Document struct {
	Ranges []surface.Range  `json:"ranges"`
	Names  []string         `json:"names,omitempty"`
	Aux    map[string][]Num `json:"aux,omitempty"`
	Frames [][][]Num        `json:"frames"`
}

// Points is satisfied by *cloud.Cloud and *cloud.Projected.
type Points interface {
	Len() int
	Point(i int) cloud.Vec
	AuxNames() []string
	Aux(name string) ([]float64, bool)
}

// New creates a document from frames that all have the same points.
// The auxiliary channels are taken from the first frame.
func New(ranges []surface.Range, names []string, frames ...Points) (*Document, error) {
	d := &Document{Ranges: ranges, Names: names, Frames: make([][][]Num, len(frames))}
	for f, fr := range frames {
		if f > 0 && fr.Len() != frames[0].Len() {
			return nil, fmt.Errorf("export: frame %d has %d points, frame 0 has %d", f, fr.Len(), frames[0].Len())
		}
		pts := make([][]Num, fr.Len())
		for i := range pts {
			pts[i] = point(fr.Point(i))
		}
		d.Frames[f] = pts
	}
	if len(frames) > 0 {
		for _, name := range frames[0].AuxNames() {
			v, _ := frames[0].Aux(name)
			if d.Aux == nil {
				d.Aux = make(map[string][]Num)
			}
			d.Aux[name] = nums(v)
		}
	}
	return d, nil
}

// Projected is a convenience wrapper around New for projected frames.
func Projected(ranges []surface.Range, frames []*cloud.Projected) (*Document, error) {
	p := make([]Points, len(frames))
	for i, f := range frames {
		p[i] = f
	}
	return New(ranges, []string{"x", "y", "z"}, p...)
}

// Clouds is a convenience wrapper around New for rotated clouds.
func Clouds(ranges []surface.Range, frames []*cloud.Cloud) (*Document, error) {
	p := make([]Points, len(frames))
	var names []string
	for i, f := range frames {
		p[i] = f
		if i == 0 {
			names = f.Names()
		}
	}
	return New(ranges, names, p...)
}

// Frame returns frame f as plain float64 slices, with NaN where
// the document holds null.
func (d *Document) Frame(f int) [][]float64 {
	o := make([][]float64, len(d.Frames[f]))
	for i, p := range d.Frames[f] {
		o[i] = floats(p)
	}
	return o
}

// AuxValues returns the named auxiliary channel.
func (d *Document) AuxValues(name string) ([]float64, bool) {
	v, ok := d.Aux[name]
	if !ok {
		return nil, false
	}
	return floats(v), true
}

// WriteJSON writes d to w as indented JSON.
func WriteJSON(w io.Writer, d *Document) error {
	e := json.NewEncoder(w)
	e.SetIndent("", "    ")
	if err := e.Encode(d); err != nil {
		return fmt.Errorf("export: writing JSON: %w", err)
	}
	return nil
}

// ReadJSON reads a document written by WriteJSON.
func ReadJSON(r io.Reader) (*Document, error) {
	d := new(Document)
	if err := json.NewDecoder(r).Decode(d); err != nil {
		return nil, fmt.Errorf("export: reading JSON: %w", err)
	}
	for f, fr := range d.Frames {
		if f > 0 && len(fr) != len(d.Frames[0]) {
			return nil, fmt.Errorf("export: frame %d has %d points, frame 0 has %d", f, len(fr), len(d.Frames[0]))
		}
	}
	return d, nil
}

func nums(v []float64) []Num {
	o := make([]Num, len(v))
	for i, f := range v {
		o[i] = Num(f)
	}
	return o
}

func point(p cloud.Point) []Num {
	o := make([]Num, p.Len())
	for i := range o {
		o[i] = Num(p.D(i))
	}
	return o
}

func floats(v []Num) []float64 {
	o := make([]float64, len(v))
	for i, f := range v {
		o[i] = float64(f)
	}
	return o
}

// Projected returns frame f as a projected cloud carrying the
// document's auxiliary channels. The frame must have three coordinates
// per point.
func (d *Document) Projected(f int) (*cloud.Projected, error) {
	if f < 0 || f >= len(d.Frames) {
		return nil, fmt.Errorf("export: frame %d of %d", f, len(d.Frames))
	}
	p, err := cloud.NewProjected(d.Frame(f))
	if err != nil {
		return nil, fmt.Errorf("export: frame %d: %w", f, err)
	}
	names := make([]string, 0, len(d.Aux))
	for n := range d.Aux {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		v, _ := d.AuxValues(n)
		if p, err = p.WithAux(n, v); err != nil {
			return nil, fmt.Errorf("export: frame %d: %w", f, err)
		}
	}
	return p, nil
}
