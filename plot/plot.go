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

// Package plot turns projected point clouds into images.
package plot

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/plot/plotter"

	"github.com/spatialmodel/hypersurf/cloud"
)

// XYs implements the gonum.org/v1/plot/plotter.XYer interface.
type XYs []XY

// XY is an x and y value.
type XY struct{ X, Y float64 }

// Len returns the number of X,Y pairs.
func (xys XYs) Len() int {
	return len(xys)
}

// XY return the x and y values at index i, where i < Len()
func (xys XYs) XY(i int) (float64, float64) {
	return xys[i].X, xys[i].Y
}

// XYZs implements the gonum.org/v1/plot/plotter.XYZer interface.
type XYZs []XYZ

// XYZ is an x, y and z value.
type XYZ struct{ X, Y, Z float64 }

// Len returns the number of X,Y,Z triples.
func (xyzs XYZs) Len() int { return len(xyzs) }

// XYZ returns the x, y and z values at index i.
func (xyzs XYZs) XYZ(i int) (float64, float64, float64) {
	return xyzs[i].X, xyzs[i].Y, xyzs[i].Z
}

// XY returns the x and y values at index i.
func (xyzs XYZs) XY(i int) (float64, float64) { return xyzs[i].X, xyzs[i].Y }

var (
	_ plotter.XYer  = XYs{}
	_ plotter.XYZer = XYZs{}
)

// FromProjected copies the points of p.
func FromProjected(p *cloud.Projected) XYZs {
	o := make(XYZs, p.Len())
	for i := range o {
		o[i].X, o[i].Y, o[i].Z = p.XYZ(i)
	}
	return o
}

// Camera is a viewpoint looking at the origin, in degrees.
// Elevation 90 looks straight down the z axis; elevation 0 looks
// horizontally with the z axis pointing up the image. Azimuth turns
// the scene about the z axis and Roll turns the image about the line
// of sight.
type Camera struct {
	Elevation, Azimuth, Roll float64
}

func (c Camera) matrix() mgl64.Mat3 {
	el := mgl64.Rotate3DX(mgl64.DegToRad(c.Elevation - 90))
	az := mgl64.Rotate3DZ(mgl64.DegToRad(-c.Azimuth))
	roll := mgl64.Rotate3DZ(mgl64.DegToRad(c.Roll))
	return roll.Mul3(el).Mul3(az)
}

// View projects xyzs onto the image plane of the camera. It returns the
// image coordinates and the depth of each point, where larger depths
// are nearer the camera.
func (c Camera) View(xyzs XYZs) (xys XYs, depth []float64) {
	m := c.matrix()
	xys = make(XYs, len(xyzs))
	depth = make([]float64, len(xyzs))
	for i, p := range xyzs {
		v := m.Mul3x1(mgl64.Vec3{p.X, p.Y, p.Z})
		xys[i] = XY{X: v.X(), Y: v.Y()}
		depth[i] = v.Z()
	}
	return xys, depth
}

// Views returns a camera for every combination of the given elevations
// and azimuths, elevation varying slowest.
func Views(elevations, azimuths []float64, roll float64) []Camera {
	o := make([]Camera, 0, len(elevations)*len(azimuths))
	for _, e := range elevations {
		for _, a := range azimuths {
			o = append(o, Camera{Elevation: e, Azimuth: a, Roll: roll})
		}
	}
	return o
}

// drawOrder returns the indices of the points that can be drawn, that
// is those with finite image coordinates, depth and value, sorted from
// farthest to nearest.
func drawOrder(xys XYs, depth, values []float64) []int {
	o := make([]int, 0, len(xys))
	for i, p := range xys {
		if bad(p.X) || bad(p.Y) || bad(depth[i]) || (values != nil && bad(values[i])) {
			continue
		}
		o = append(o, i)
	}
	sort.SliceStable(o, func(a, b int) bool { return depth[o[a]] < depth[o[b]] })
	return o
}

func bad(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }
