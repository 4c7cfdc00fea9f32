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

package modalflag_test

import (
	"testing"

	"github.com/gopherrv/gopherrv/modalflag"
	"github.com/gopherrv/gopherrv/test"
)

func TestNoModes(t *testing.T) {
	md := modalflag.Modes{Output: &test.Writer{}}
	md.NewArgs([]string{"program.asm"})

	p, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(p), int(modalflag.ParseContinue))
	test.Equate(t, len(md.RemainingArgs()), 1)
	test.Equate(t, md.GetArg(0), "program.asm")
}

func TestDefaultSubMode(t *testing.T) {
	md := modalflag.Modes{Output: &test.Writer{}}
	md.NewArgs([]string{"program.asm"})
	md.AddSubModes("RUN", "DEBUG", "DISASM")

	p, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(p), int(modalflag.ParseContinue))

	// no sub-mode in the arguments so the default is selected
	test.Equate(t, md.Mode(), "RUN")
	test.Equate(t, md.GetArg(0), "program.asm")
}

func TestSelectedSubMode(t *testing.T) {
	md := modalflag.Modes{Output: &test.Writer{}}
	md.NewArgs([]string{"debug", "program.asm"})
	md.AddSubModes("RUN", "DEBUG", "DISASM")

	p, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(p), int(modalflag.ParseContinue))
	test.Equate(t, md.Mode(), "DEBUG")

	// arguments for the sub-mode continue from where the last parse ended
	md.NewMode()
	term := md.AddString("term", "COLOR", "terminal type")
	p, err = md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(p), int(modalflag.ParseContinue))
	test.Equate(t, *term, "COLOR")
	test.Equate(t, md.GetArg(0), "program.asm")
	test.Equate(t, md.Path(), "DEBUG")
}

func TestFlags(t *testing.T) {
	md := modalflag.Modes{Output: &test.Writer{}}
	md.NewArgs([]string{"-max", "1000", "program.asm"})

	max := md.AddInt("max", 0, "maximum instructions")
	p, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(p), int(modalflag.ParseContinue))
	test.Equate(t, *max, 1000)
}
