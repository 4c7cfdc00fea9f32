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

package colorterm

import "github.com/gopherrv/gopherrv/debugger/terminal"

// the ansi sequences used by the colour terminal.
const (
	ansiOff       = "\033[0m"
	ansiClearLine = "\033[2K"

	penPrompt   = "\033[1;34m" // bright blue
	penFeedback = "\033[2m"    // dim
	penHelp     = "\033[1;36m" // bright cyan
	penError    = "\033[1;31m" // bright red
)

// pen returns the ansi sequence for an output style.
func pen(style terminal.Style) string {
	switch style {
	case terminal.StyleHelp:
		return penHelp
	case terminal.StyleFeedback:
		return penFeedback
	case terminal.StyleError:
		return penError
	}
	return ""
}
