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

package export

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/tealeg/xlsx"
)

// WriteXLSX writes d to w as a workbook with one sheet per frame. Each
// sheet has a header row followed by one row per point: the point's
// coordinates and then its auxiliary channels. Non-finite values are
// written as empty cells.
func WriteXLSX(w io.Writer, d *Document) error {
	file := xlsx.NewFile()
	auxNames := make([]string, 0, len(d.Aux))
	for n := range d.Aux {
		auxNames = append(auxNames, n)
	}
	sort.Strings(auxNames)

	for f, frame := range d.Frames {
		sheet, err := file.AddSheet(fmt.Sprintf("frame %d", f))
		if err != nil {
			return fmt.Errorf("export: adding sheet: %w", err)
		}
		header := sheet.AddRow()
		for j := 0; len(frame) > 0 && j < len(frame[0]); j++ {
			name := fmt.Sprintf("x%d", j)
			if j < len(d.Names) {
				name = d.Names[j]
			}
			header.AddCell().SetString(name)
		}
		for _, n := range auxNames {
			header.AddCell().SetString(n)
		}
		for i, p := range frame {
			row := sheet.AddRow()
			for _, v := range p {
				setFloat(row.AddCell(), float64(v))
			}
			for _, n := range auxNames {
				setFloat(row.AddCell(), float64(d.Aux[n][i]))
			}
		}
	}
	if err := file.Write(w); err != nil {
		return fmt.Errorf("export: writing workbook: %w", err)
	}
	return nil
}

func setFloat(c *xlsx.Cell, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	c.SetFloat(v)
}
