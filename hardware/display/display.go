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

// Package display implements the text-mode display of the machine. An 80x25
// character grid backed by the display buffer MMIO range, and a block of
// control registers for the cursor, scrolling and screen clearing.
//
// The package does not render anything itself. An external renderer calls
// Snapshot() (or String() for a quick bordered rendering) whenever it
// wants a picture of the screen; the choice of renderer is left to the
// caller.
package display

import (
	"strings"

	"github.com/gopherrv/gopherrv/hardware/memory/memorymap"
)

// Display geometry.
const (
	Cols = 80
	Rows = 25
)

// Control register offsets, relative to the start of the control block.
const (
	CtrlPage    = 0x00
	CtrlCursorX = 0x01
	CtrlCursorY = 0x02
	CtrlMode    = 0x03
	CtrlScroll  = 0x04
	CtrlClear   = 0x05
	CtrlPutChar = 0x06
)

// offset of the control block relative to the display buffer origin. the
// display is a single device on the memory bus covering both the buffer
// and the control block.
const ctrlBase = memorymap.OriginDispCtrl - memorymap.OriginDisplay

// the character used to blank the grid.
const blank = 0x20

// Display is the 80x25 text-mode display.
type Display struct {
	grid [Rows][Cols]uint8

	page    uint8
	cursorX uint8
	cursorY uint8
	mode    uint8
	scroll  bool
}

// NewDisplay is the preferred method of initialisation for the Display
// type.
func NewDisplay() *Display {
	dsp := &Display{}
	dsp.Reset()
	return dsp
}

// Reset clears the grid and returns every control register to its power-on
// state.
func (dsp *Display) Reset() {
	dsp.clear()
	dsp.page = 0
	dsp.mode = 0
	dsp.scroll = true
}

func (dsp *Display) clear() {
	for y := 0; y < Rows; y++ {
		for x := 0; x < Cols; x++ {
			dsp.grid[y][x] = blank
		}
	}
	dsp.cursorX = 0
	dsp.cursorY = 0
}

// Snapshot returns a copy of the character grid. Safe for an external
// renderer to hold on to.
func (dsp *Display) Snapshot() [Rows][Cols]uint8 {
	return dsp.grid
}

// Line returns row y of the grid as a string. Rows outside the grid return
// the empty string.
func (dsp *Display) Line(y int) string {
	if y < 0 || y >= Rows {
		return ""
	}
	return string(dsp.grid[y][:])
}

// Cursor returns the current cursor position.
func (dsp *Display) Cursor() (x int, y int) {
	return int(dsp.cursorX), int(dsp.cursorY)
}

// String renders the grid with box-drawing borders. Used by the debugger's
// DISPLAY command and by the live renderer in run mode.
func (dsp *Display) String() string {
	s := strings.Builder{}
	s.WriteString("┌" + strings.Repeat("─", Cols) + "┐\n")
	for y := 0; y < Rows; y++ {
		s.WriteString("│")
		s.WriteString(dsp.Line(y))
		s.WriteString("│\n")
	}
	s.WriteString("└" + strings.Repeat("─", Cols) + "┘\n")
	return s.String()
}

// scrollUp moves every row up by one and blanks the bottom row.
func (dsp *Display) scrollUp() {
	copy(dsp.grid[:], dsp.grid[1:])
	for x := 0; x < Cols; x++ {
		dsp.grid[Rows-1][x] = blank
	}
}

// putChar writes a byte at the cursor, interpreting the control characters
// the way a teletype would, and advances the cursor.
func (dsp *Display) putChar(data uint8) {
	switch data {
	case 0x0a: // newline
		dsp.cursorX = 0
		dsp.cursorY++
	case 0x0d: // carriage return
		dsp.cursorX = 0
	case 0x08: // backspace
		if dsp.cursorX > 0 {
			dsp.cursorX--
			dsp.grid[dsp.cursorY][dsp.cursorX] = blank
		}
	case 0x09: // tab, to the next stop of four
		n := 4 - (dsp.cursorX % 4)
		for i := uint8(0); i < n && dsp.cursorX < Cols; i++ {
			dsp.grid[dsp.cursorY][dsp.cursorX] = blank
			dsp.cursorX++
		}
	default:
		if data < 0x20 || data > 0x7e {
			return
		}
		dsp.grid[dsp.cursorY][dsp.cursorX] = data
		dsp.cursorX++
	}

	if dsp.cursorX >= Cols {
		dsp.cursorX = 0
		dsp.cursorY++
	}

	if dsp.cursorY >= Rows {
		if dsp.scroll {
			dsp.scrollUp()
		}
		dsp.cursorY = Rows - 1
	}
}

// ReadRegister implements the chipbus.Device interface. Offsets are
// relative to the display buffer origin; the control block begins at
// ctrlBase.
func (dsp *Display) ReadRegister(offset uint32) uint8 {
	if offset < ctrlBase {
		cell := offset % (Rows * Cols)
		return dsp.grid[cell/Cols][cell%Cols]
	}

	switch offset - ctrlBase {
	case CtrlPage:
		return dsp.page
	case CtrlCursorX:
		return dsp.cursorX
	case CtrlCursorY:
		return dsp.cursorY
	case CtrlMode:
		return dsp.mode
	case CtrlScroll:
		if dsp.scroll {
			return 1
		}
		return 0
	}

	// the clear strobe and the cursor channel are write-only
	return 0
}

// WriteRegister implements the chipbus.Device interface.
//
// Writes into the buffer range place the byte directly in the grid with no
// cursor movement. Writes to the cursor channel (CtrlPutChar) go through
// the teletype path.
func (dsp *Display) WriteRegister(offset uint32, data uint8) {
	if offset < ctrlBase {
		cell := offset % (Rows * Cols)
		dsp.grid[cell/Cols][cell%Cols] = data
		return
	}

	switch offset - ctrlBase {
	case CtrlPage:
		dsp.page = data & 0x0f
	case CtrlCursorX:
		dsp.cursorX = data % Cols
	case CtrlCursorY:
		dsp.cursorY = data % Rows
	case CtrlMode:
		dsp.mode = data
	case CtrlScroll:
		dsp.scroll = data != 0
	case CtrlClear:
		if data != 0 {
			dsp.clear()
		}
	case CtrlPutChar:
		dsp.putChar(data)
	}
}
