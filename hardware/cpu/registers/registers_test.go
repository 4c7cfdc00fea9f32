// This file is part of GopherRV.
//
// GopherRV is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherRV is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherRV.  If not, see <https://www.gnu.org/licenses/>.

package registers_test

import (
	"testing"

	"github.com/gopherrv/gopherrv/hardware/cpu/registers"
	"github.com/gopherrv/gopherrv/test"
)

func TestZeroRegister(t *testing.T) {
	var f registers.File

	f.Write(0, 0xffffffff)
	test.Equate(t, f.Read(0), 0)

	f.Write(1, 0xffffffff)
	test.Equate(t, f.Read(1), uint32(0xffffffff))

	f.Reset()
	test.Equate(t, f.Read(1), 0)
}

func TestNumber(t *testing.T) {
	lookups := []struct {
		name string
		num  uint32
	}{
		{"x0", 0}, {"zero", 0},
		{"ra", 1}, {"sp", 2}, {"gp", 3}, {"tp", 4},
		{"t0", 5}, {"t2", 7},
		{"s0", 8}, {"fp", 8}, {"s1", 9},
		{"a0", 10}, {"a7", 17},
		{"s2", 18}, {"s11", 27},
		{"t3", 28}, {"t6", 31},
		{"x31", 31},

		// case is not significant
		{"SP", 2}, {"X5", 5}, {"A0", 10},
	}

	for _, l := range lookups {
		n, ok := registers.Number(l.name)
		test.ExpectedSuccess(t, ok)
		test.Equate(t, n, l.num)
	}

	// invalid names
	for _, name := range []string{"x32", "x-1", "q0", "", "x"} {
		_, ok := registers.Number(name)
		test.ExpectedFailure(t, ok)
	}
}
