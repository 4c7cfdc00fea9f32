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

package hardware

// Checking the continue condition on every step is expensive for some
// callers. The ContinueBrake value can be used to filter a continueCheck()
// implementation:
//
//	brake++
//	if brake >= hardware.ContinueBrake {
//		brake = 0
//		... expensive check ...
//	}
const ContinueBrake = 100

// Run the machine until it halts, fails, or the continueCheck function
// returns false. A nil continueCheck runs until halt or error.
func (vm *VM) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	for !vm.CPU.Halted {
		if err := vm.Step(); err != nil {
			return err
		}

		cont, err := continueCheck()
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}

	return nil
}

// RunForSteps runs the machine for at most the specified number of steps.
// Useful for tests. Returns the number of steps taken.
func (vm *VM) RunForSteps(steps int) (int, error) {
	taken := 0
	for taken < steps && !vm.CPU.Halted {
		if err := vm.Step(); err != nil {
			return taken, err
		}
		taken++
	}
	return taken, nil
}
