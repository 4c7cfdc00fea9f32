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

// Package clocks implements the pacing clock: an optional per-step sleep
// that throttles the step loop to a target number of instructions per
// second.
//
// The pacing clock must never be used to drive the real-time timer; the
// timer samples the wall clock itself and pacing drift would otherwise
// compound.
package clocks

import (
	"fmt"
	"time"
)

// Valid range for the pacing frequency.
const (
	MinFrequency = 1
	MaxFrequency = 10000
)

// Pacing sleeps at the end of each step to hold the step loop at a target
// frequency. When disabled the Tick() function returns immediately.
type Pacing struct {
	enabled   bool
	frequency int
	cycle     time.Duration
	lastTick  time.Time
}

// NewPacing is the preferred method of initialisation for the Pacing type.
// The clock begins disabled.
func NewPacing() *Pacing {
	clk := &Pacing{}
	clk.SetFrequency(1000)
	return clk
}

func (clk *Pacing) String() string {
	if !clk.enabled {
		return "pacing disabled (maximum speed)"
	}
	return fmt.Sprintf("pacing at %dHz (%s per step)", clk.frequency, clk.cycle)
}

// SetFrequency sets the target step frequency. Values outside the valid
// range are clamped.
func (clk *Pacing) SetFrequency(hz int) {
	if hz < MinFrequency {
		hz = MinFrequency
	}
	if hz > MaxFrequency {
		hz = MaxFrequency
	}
	clk.frequency = hz
	clk.cycle = time.Second / time.Duration(hz)
}

// Enable or disable pacing. Enabling resets the timing anchor.
func (clk *Pacing) Enable(enable bool) {
	clk.enabled = enable
	clk.lastTick = time.Time{}
}

// Tick sleeps for the remainder of the current cycle. Called at the end of
// every step.
func (clk *Pacing) Tick() {
	if !clk.enabled {
		return
	}

	now := time.Now()

	if clk.lastTick.IsZero() {
		clk.lastTick = now
		return
	}

	elapsed := now.Sub(clk.lastTick)
	if remaining := clk.cycle - elapsed; remaining > 0 {
		time.Sleep(remaining)
		clk.lastTick = clk.lastTick.Add(clk.cycle)
		return
	}

	// running behind. re-anchor rather than trying to catch up
	clk.lastTick = now
}
