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
	"fmt"
	"math"
	"math/cmplx"
)

// Channel is a real-valued quantity derived from a function value w,
// used as an extra coordinate or as auxiliary per-point data.
type Channel int

const (
	// Modulus is |w|.
	Modulus Channel = iota
	// Argument is arg(w) in (-π, π].
	Argument
	// LogModulus is log|w|.
	LogModulus
)

func (c Channel) valid() bool { return c >= Modulus && c <= LogModulus }

// Value returns the channel value for w.
func (c Channel) Value(w complex128) float64 {
	switch c {
	case Modulus:
		return cmplx.Abs(w)
	case Argument:
		return cmplx.Phase(w)
	case LogModulus:
		return math.Log(cmplx.Abs(w))
	default:
		panic(fmt.Errorf("surface: invalid channel %d", int(c)))
	}
}

func (c Channel) String() string {
	switch c {
	case Modulus:
		return "|w|"
	case Argument:
		return "arg(w)"
	case LogModulus:
		return "log|w|"
	default:
		return fmt.Sprintf("Channel(%d)", int(c))
	}
}

// ParseChannel returns the channel with the given name, accepting
// either its String form or one of "modulus", "argument" and "logmodulus".
func ParseChannel(s string) (Channel, error) {
	switch s {
	case "modulus", "|w|":
		return Modulus, nil
	case "argument", "arg(w)":
		return Argument, nil
	case "logmodulus", "log|w|":
		return LogModulus, nil
	}
	return 0, fmt.Errorf("surface: unknown channel %q", s)
}
