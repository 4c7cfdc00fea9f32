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

package modalflag

import (
	"flag"
	"io"
	"strings"
)

const modeSeparator = "/"

// Modes provides an easy way of handling command line arguments. The Output
// field must be specified before calling Parse(); help messages are written
// to it.
type Modes struct {
	// where to print output (help messages etc). there is no default
	Output io.Writer

	// whether Parse() has been called recently
	parsed bool

	// the underlying flag structure. a new flagset is created on every call
	// to NewArgs() and NewMode()
	flags *flag.FlagSet

	// the argument list as specified by the NewArgs() function
	args    []string
	argsIdx int

	// the most recent list of sub-modes specified with the AddSubModes()
	// function
	subModes []string

	// path is the series of sub-modes that have been found during
	// subsequent calls to Parse(). never reset
	path []string

	// some modes benefit from a verbose explanation. see AdditionalHelp()
	additionalHelp string
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the last mode to be encountered.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns a string of all the modes encountered during parsing.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// NewArgs with a string of arguments (from the command line for example).
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0

	// by definition, a newly initialised Modes struct begins with a new mode
	md.NewMode()
}

// NewMode indicates that further arguments should be considered part of a
// new mode.
func (md *Modes) NewMode() {
	md.subModes = []string{}
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.parsed = false
}

// AdditionalHelp adds extensive help text to be displayed in addition to
// the regular help on available flags.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// Parsed returns false if Parse() has not yet been called since either a
// call to NewArgs() or NewMode().
func (md *Modes) Parsed() bool {
	return md.parsed
}

// ParseResult is returned from the Parse() function.
type ParseResult int

// a list of valid ParseResult values.
const (
	// continue with command line processing. if sub-modes were specified in
	// the preceding call to AddSubModes() then the Mode() function should
	// be checked
	ParseContinue ParseResult = iota

	// help was requested and has been printed
	ParseHelp

	// an error has occurred and is returned as the second return value
	ParseError
)

// Parse the current layer of arguments. Help messages are handled
// automatically; the ParseHelp result indicates that one has been printed
// and that the program should end without further output.
func (md *Modes) Parse() (ParseResult, error) {
	// flag the parsed field in all instances, even if we eventually return
	// an error
	md.parsed = true

	// set output of flags.Parse() to an instance of helpWriter
	hw := &helpWriter{}
	md.flags.SetOutput(hw)

	err := md.flags.Parse(md.args[md.argsIdx:])
	if err != nil {
		if err == flag.ErrHelp {
			hw.Help(md.Output, md.Path(), md.subModes, md.additionalHelp)
			hw.Clear()
			return ParseHelp, nil
		}

		// flags have been set that are not recognised. if sub-modes have
		// been defined, set selected mode to the default mode and continue.
		// otherwise return the error
		if len(md.subModes) > 0 {
			md.path = append(md.path, md.subModes[0])
		} else {
			return ParseError, err
		}
	} else if len(md.subModes) > 0 {
		arg := strings.ToUpper(md.flags.Arg(0))

		// check to see if the single argument is in the list of modes,
		// starting off assuming it isn't
		mode := md.subModes[0]
		for i := range md.subModes {
			if md.subModes[i] == arg {
				mode = arg
				md.argsIdx++
				break // for loop
			}
		}

		// add mode (either one we've found or the default) to the path
		md.path = append(md.path, mode)
	}

	return ParseContinue, nil
}

// RemainingArgs after a call to Parse() ie. arguments that aren't flags or
// a listed sub-mode.
func (md *Modes) RemainingArgs() []string {
	return md.flags.Args()
}

// GetArg returns the numbered argument that isn't a flag or listed
// sub-mode.
func (md *Modes) GetArg(i int) string {
	return md.flags.Arg(i)
}

// AddSubModes to list of sub-modes for next parse. The first sub-mode in
// the list is considered to be the default sub-mode.
//
// Note that sub-mode comparisons are case insensitive.
func (md *Modes) AddSubModes(submodes ...string) {
	md.subModes = append(md.subModes, submodes...)
	for i := range md.subModes {
		md.subModes[i] = strings.ToUpper(md.subModes[i])
	}
}

// AddBool adds a boolean flag to the current mode.
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddInt adds an integer flag to the current mode.
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddString adds a string flag to the current mode.
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// AddUint adds an unsigned integer flag to the current mode.
func (md *Modes) AddUint(name string, value uint, usage string) *uint {
	return md.flags.Uint(name, value, usage)
}
