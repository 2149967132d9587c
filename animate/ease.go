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

package animate

import (
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"
)

// easings maps names to easing functions. Linear progress is computed
// without an easing function, in float64.
var easings = map[string]ease.TweenFunc{
	"linear":         nil,
	"in-out-sine":    ease.InOutSine,
	"in-out-quad":    ease.InOutQuad,
	"in-out-cubic":   ease.InOutCubic,
	"in-out-expo":    ease.InOutExpo,
	"out-in-sine":    ease.OutInSine,
	"in-out-back":    ease.InOutBack,
	"out-bounce":     ease.OutBounce,
	"in-out-elastic": ease.InOutElastic,
}

// EaseByName returns the easing function with the given name.
// The empty name and "linear" select no easing (nil).
func EaseByName(name string) (ease.TweenFunc, error) {
	if name == "" {
		return nil, nil
	}
	f, ok := easings[name]
	if !ok {
		names := make([]string, 0, len(easings))
		for n := range easings {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("animate: unknown easing %q; valid names are %v", name, names)
	}
	return f, nil
}
