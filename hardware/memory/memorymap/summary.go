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

package memorymap

import (
	"fmt"
	"strings"
)

// Summary returns a formatted table of the memory map. Used by the DEBUG
// mode MAP command.
func Summary() string {
	s := strings.Builder{}

	line := func(origin, memtop uint32, area Area) {
		s.WriteString(fmt.Sprintf("%08x -> %08x    %s\n", origin, memtop-1, area))
	}

	line(OriginText, MemtopText, Text)
	line(OriginData, MemtopData, Data)
	line(OriginHeap, MemtopHeap, Heap)
	line(OriginStack, MemtopStack, Stack)
	line(OriginRAM, MemtopRAM, RAM)
	line(OriginDisplay, MemtopDisplay, DisplayBuffer)
	line(OriginDispCtrl, MemtopDispCtrl, DisplayCtrl)
	line(OriginCycTimer, MemtopCycTimer, CycleTimer)
	line(OriginRTTimer, MemtopRTTimer, RealTimeTimer)

	return s.String()
}
