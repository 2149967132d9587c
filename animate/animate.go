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

// Package animate drives a sequence of rotations of one base cloud,
// producing the frames of an animation.
package animate

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tanema/gween/ease"

	"github.com/spatialmodel/hypersurf/cloud"
	"github.com/spatialmodel/hypersurf/rotate"
)

// ErrInvalidSweep is returned for a sweep that cannot be run.
var ErrInvalidSweep = errors.New("animate: invalid sweep")

// Transform is one rotation that varies across a sweep. Exactly one of
// Axis and Plane must be set.
type Transform struct {
	// Axis is the rotation axis, interpreted by rotate.Build.
	Axis []float64

	// Plane holds two coordinate indices; the rotation turns the
	// first coordinate axis towards the second (see rotate.Plane).
	Plane []int

	// Min and Max are the angles in radians at the first and last frames.
	Min, Max float64
}

func (t Transform) operator(angle float64, dim int) (*rotate.Operator, error) {
	if len(t.Plane) > 0 {
		return rotate.Plane(t.Plane[0], t.Plane[1], angle, dim)
	}
	return rotate.Build(t.Axis, angle, dim)
}

func (t Transform) check() error {
	switch {
	case len(t.Axis) > 0 && len(t.Plane) > 0:
		return fmt.Errorf("animate: transform has both an axis and a plane: %w", ErrInvalidSweep)
	case len(t.Axis) == 0 && len(t.Plane) == 0:
		return fmt.Errorf("animate: transform has neither an axis nor a plane: %w", ErrInvalidSweep)
	case len(t.Plane) != 0 && len(t.Plane) != 2:
		return fmt.Errorf("animate: plane %v does not have two coordinates: %w", t.Plane, ErrInvalidSweep)
	}
	return nil
}

// BasisTurn turns one vector of a sweep's basis across the sweep, so
// that every frame sees the points in a different basis. The vector is
// turned before the basis is orthonormalized.
type BasisTurn struct {
	// Vector is the index of the basis vector that turns.
	Vector int

	// Plane holds two coordinate indices; the vector turns from the
	// first coordinate axis towards the second.
	Plane []int

	// Min and Max are the angles in radians at the first and last frames.
	Min, Max float64
}

// Sweep specifies an animation: Segments+1 frames, where the angle of
// every transform moves from its Min at the first frame to its Max at
// the last. The rotation of a frame is the matrix product of the
// transforms in order, T0·T1·…·Tk, so the last transform acts on a
// point first.
type Sweep struct {
	Segments   int
	Transforms []Transform

	// Basis, if not empty, holds one vector per dimension. Each frame
	// first maps points to their coordinates along the orthonormalized
	// basis and then applies the transforms.
	Basis [][]float64

	// BasisTurn, if not nil, turns one vector of Basis from frame to frame.
	BasisTurn *BasisTurn

	// Ease, if not nil, shapes the progress from the first frame to
	// the last, for example ease.InOutSine. The default is linear.
	Ease ease.TweenFunc

	// Log receives progress messages. If nil, the logrus standard
	// logger is used.
	Log logrus.FieldLogger
}

// Frames returns the number of frames in the sweep.
func (s *Sweep) Frames() int { return s.Segments + 1 }

func (s *Sweep) log() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}

// Check returns an error if the sweep cannot rotate clouds of
// dimension dim.
func (s *Sweep) Check(dim int) error {
	if s.Segments < 0 {
		return fmt.Errorf("animate: %d segments: %w", s.Segments, ErrInvalidSweep)
	}
	if len(s.Transforms) == 0 {
		return fmt.Errorf("animate: no transforms: %w", ErrInvalidSweep)
	}
	for i, t := range s.Transforms {
		if err := t.check(); err != nil {
			return fmt.Errorf("transform %d: %w", i, err)
		}
		if _, err := t.operator(t.Min, dim); err != nil {
			return fmt.Errorf("animate: transform %d: %w", i, err)
		}
	}
	if b := s.BasisTurn; b != nil {
		switch {
		case len(s.Basis) == 0:
			return fmt.Errorf("animate: basis turn without a basis: %w", ErrInvalidSweep)
		case b.Vector < 0 || b.Vector >= len(s.Basis):
			return fmt.Errorf("animate: basis turn of vector %d of %d: %w", b.Vector, len(s.Basis), ErrInvalidSweep)
		case len(b.Plane) != 2:
			return fmt.Errorf("animate: basis turn plane %v does not have two coordinates: %w", b.Plane, ErrInvalidSweep)
		}
	}
	if len(s.Basis) > 0 {
		if len(s.Basis) != dim {
			return fmt.Errorf("animate: %d basis vectors in dimension %d: %w", len(s.Basis), dim, rotate.ErrDimensionMismatch)
		}
		if _, err := s.basis(0); err != nil {
			return err
		}
	}
	return nil
}

// progress returns how far frame is through the sweep, from 0 to 1.
func (s *Sweep) progress(frame int) float64 {
	if s.Segments == 0 {
		return 0
	}
	p := float64(frame) / float64(s.Segments)
	if s.Ease != nil {
		return float64(s.Ease(float32(p), 0, 1, 1))
	}
	return p
}

func lerp(from, to, p float64) float64 { return from + p*(to-from) }

// Angles returns the angle of each transform at the given frame.
func (s *Sweep) Angles(frame int) []float64 {
	p := s.progress(frame)
	o := make([]float64, len(s.Transforms))
	for i, t := range s.Transforms {
		o[i] = lerp(t.Min, t.Max, p)
	}
	return o
}

// basis returns the change of basis for the given frame, or nil if the
// sweep has no basis.
func (s *Sweep) basis(frame int) (*rotate.Operator, error) {
	if len(s.Basis) == 0 {
		return nil, nil
	}
	vectors := s.Basis
	if b := s.BasisTurn; b != nil {
		dim := len(s.Basis[b.Vector])
		turn, err := rotate.Plane(b.Plane[0], b.Plane[1], lerp(b.Min, b.Max, s.progress(frame)), dim)
		if err != nil {
			return nil, fmt.Errorf("animate: basis turn: %w", err)
		}
		vectors = append([][]float64(nil), s.Basis...)
		vectors[b.Vector] = turn.MulVec(s.Basis[b.Vector])
	}
	op, err := rotate.ChangeOfBasis(vectors)
	if err != nil {
		return nil, fmt.Errorf("animate: frame %d basis: %w", frame, err)
	}
	return op, nil
}

// Operator returns the rotation for the given frame in dimension dim.
func (s *Sweep) Operator(frame, dim int) (*rotate.Operator, error) {
	angles := s.Angles(frame)
	// Listed in the order they act on a point.
	ops := make([]*rotate.Operator, 0, len(s.Transforms)+1)
	b, err := s.basis(frame)
	if err != nil {
		return nil, err
	}
	if b != nil {
		ops = append(ops, b)
	}
	for i := len(s.Transforms) - 1; i >= 0; i-- {
		op, err := s.Transforms[i].operator(angles[i], dim)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return rotate.Compose(ops...)
}

// Run returns the rotated cloud for every frame. Frames are computed in
// parallel from the same base cloud, which is not modified.
func (s *Sweep) Run(ctx context.Context, base *cloud.Cloud) ([]*cloud.Cloud, error) {
	if err := s.Check(base.Dim()); err != nil {
		return nil, err
	}
	o := make([]*cloud.Cloud, s.Frames())
	err := s.each(ctx, base, func(i int, op *rotate.Operator) error {
		c, err := rotate.Apply(base, op)
		o[i] = c
		return err
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Project returns every frame of the sweep projected with p.
func (s *Sweep) Project(ctx context.Context, base *cloud.Cloud, p rotate.Projection) ([]*cloud.Projected, error) {
	if p == nil {
		return nil, fmt.Errorf("animate: nil projection: %w", rotate.ErrInvalidProjection)
	}
	if err := s.Check(base.Dim()); err != nil {
		return nil, err
	}
	if err := p.Check(base.Dim()); err != nil {
		return nil, err
	}
	o := make([]*cloud.Projected, s.Frames())
	err := s.each(ctx, base, func(i int, op *rotate.Operator) error {
		c, err := rotate.Apply(base, op)
		if err != nil {
			return err
		}
		o[i], err = rotate.Project(c, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// each calls f with the operator of every frame, spreading the frames
// across GOMAXPROCS goroutines. The sweep must already have been checked.
func (s *Sweep) each(ctx context.Context, base *cloud.Cloud, f func(frame int, op *rotate.Operator) error) error {
	start := time.Now()
	log := s.log().WithFields(logrus.Fields{
		"frames":     s.Frames(),
		"transforms": len(s.Transforms),
		"points":     base.Len(),
		"dimension":  base.Dim(),
	})
	log.Info("starting sweep")

	n := s.Frames()
	ncpu := runtime.GOMAXPROCS(0)
	if ncpu > n {
		ncpu = n
	}
	errs := make([]error, n)
	var wg sync.WaitGroup
	wg.Add(ncpu)
	for p := 0; p < ncpu; p++ {
		go func(p int) {
			defer wg.Done()
			for i := p; i < n; i += ncpu {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					return
				}
				op, err := s.Operator(i, base.Dim())
				if err != nil {
					errs[i] = err
					continue
				}
				errs[i] = f(i, op)
			}
		}(p)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("animate: frame %d: %w", i, err)
		}
	}
	log.WithField("duration", time.Since(start)).Info("finished sweep")
	return nil
}
