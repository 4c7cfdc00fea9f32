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

// Package hardware assembles the components of the machine - CPU, memory,
// timers and display - into the VM type, and implements the step loop that
// drives them.
//
// The machine is single threaded and cooperative. Each call to Step()
// advances the timers, samples the interrupt lines, takes a trap if one is
// due and executes at most one instruction. The only wall-clock input is
// the real-time timer's sample, taken inside the step; nothing interrupts
// execution asynchronously and no locks guard the machine state.
package hardware
