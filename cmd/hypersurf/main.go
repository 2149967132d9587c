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


// Command hypersurf computes rotation animations of complex-function
// surfaces and renders their frames.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := Root.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
