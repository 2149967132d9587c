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

package cloud

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
)

// header is the fixed-size prefix of a serialized cloud.
type header struct {
	N, D, M uint64
}

// MarshalBinary serializes this cloud into a byte array.
func (c *Cloud) MarshalBinary() ([]byte, error) {
	b := bytes.NewBuffer(nil)
	h := header{N: uint64(c.Len()), D: uint64(c.Dim())}
	if c.aux != nil {
		_, m := c.aux.Dims()
		h.M = uint64(m)
	}
	if err := binary.Write(b, binary.LittleEndian, h); err != nil {
		return nil, err
	}
	if err := writeNames(b, c.names); err != nil {
		return nil, err
	}
	if err := writeNames(b, c.auxNames); err != nil {
		return nil, err
	}
	if err := writeRows(b, c.geom); err != nil {
		return nil, err
	}
	if c.aux != nil {
		if err := writeRows(b, c.aux); err != nil {
			return nil, err
		}
	}
	return b.Bytes(), nil
}

// UnmarshalBinary initializes this cloud from a byte array.
func (c *Cloud) UnmarshalBinary(b []byte) error {
	r := bytes.NewReader(b)
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("unmarshalling cloud: %w", err)
	}
	if h.N == 0 || h.D == 0 {
		return ErrEmpty
	}
	// Compared by division so that a corrupt header cannot overflow.
	limit := uint64(len(b)) / 8
	if h.D > limit || h.M > limit || h.D+h.M > limit/h.N {
		return fmt.Errorf("unmarshalling cloud: %dx%d points in %d bytes: %w", h.N, h.D+h.M, len(b), io.ErrUnexpectedEOF)
	}
	names, err := readNames(r)
	if err != nil {
		return fmt.Errorf("unmarshalling cloud: %w", err)
	}
	auxNames, err := readNames(r)
	if err != nil {
		return fmt.Errorf("unmarshalling cloud: %w", err)
	}
	geom := make([]float64, h.N*h.D)
	if err := binary.Read(r, binary.LittleEndian, geom); err != nil {
		return fmt.Errorf("unmarshalling cloud: %w", err)
	}
	c.geom = mat.NewDense(int(h.N), int(h.D), geom)
	c.names = names
	c.aux, c.auxNames = nil, auxNames
	if h.M > 0 {
		aux := make([]float64, h.N*h.M)
		if err := binary.Read(r, binary.LittleEndian, aux); err != nil {
			return fmt.Errorf("unmarshalling cloud: %w", err)
		}
		c.aux = mat.NewDense(int(h.N), int(h.M), aux)
	}
	return nil
}

// writeRows writes m row by row so that the row stride never
// reaches the output.
func writeRows(w io.Writer, m *mat.Dense) error {
	r, _ := m.Dims()
	for i := 0; i < r; i++ {
		if err := binary.Write(w, binary.LittleEndian, m.RawRowView(i)); err != nil {
			return err
		}
	}
	return nil
}

func writeNames(w io.Writer, names []string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(names))); err != nil {
		return err
	}
	for _, n := range names {
		if err := binary.Write(w, binary.LittleEndian, uint32(len(n))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, n); err != nil {
			return err
		}
	}
	return nil
}

// readNames reads names written by writeNames. Counts and lengths
// larger than the unread input are rejected before allocating.
func readNames(r *bytes.Reader) ([]string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	if uint64(n)*4 > uint64(r.Len()) {
		return nil, fmt.Errorf("%d names in %d bytes: %w", n, r.Len(), io.ErrUnexpectedEOF)
	}
	o := make([]string, n)
	for i := range o {
		var l uint32
		if err := binary.Read(r, binary.LittleEndian, &l); err != nil {
			return nil, err
		}
		if uint64(l) > uint64(r.Len()) {
			return nil, fmt.Errorf("name of %d bytes in %d: %w", l, r.Len(), io.ErrUnexpectedEOF)
		}
		b := make([]byte, l)
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, err
		}
		o[i] = string(b)
	}
	return o, nil
}
