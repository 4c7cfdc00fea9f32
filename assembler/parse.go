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

package assembler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gopherrv/gopherrv/hardware/cpu/registers"
)

// stripComment removes a # or ; comment from the line, taking care not to
// cut inside a string or character literal.
func stripComment(line string) string {
	var inString bool
	var inChar bool
	var escaped bool

	for i := 0; i < len(line); i++ {
		c := line[i]

		if escaped {
			escaped = false
			continue
		}

		switch c {
		case '\\':
			escaped = inString || inChar
		case '"':
			if !inChar {
				inString = !inString
			}
		case '\'':
			if !inString {
				inChar = !inChar
			}
		case '#', ';':
			if !inString && !inChar {
				return line[:i]
			}
		}
	}

	return line
}

// splitFields divides a statement into its mnemonic and operands. Operands
// are separated by commas and/or whitespace except inside string and
// character literals, so a memory operand like 8(sp) is a single field and
// so is a quoted string containing spaces.
func splitFields(line string) []string {
	var fields []string
	var field strings.Builder
	var inString bool
	var inChar bool
	var escaped bool

	flush := func() {
		if field.Len() > 0 {
			fields = append(fields, field.String())
			field.Reset()
		}
	}

	for i := 0; i < len(line); i++ {
		c := line[i]

		if escaped {
			field.WriteByte(c)
			escaped = false
			continue
		}

		switch c {
		case '\\':
			if inString || inChar {
				escaped = true
			}
			field.WriteByte(c)
		case '"':
			if !inChar {
				inString = !inString
			}
			field.WriteByte(c)
		case '\'':
			if !inString {
				inChar = !inChar
			}
			field.WriteByte(c)
		case ',', ' ', '\t':
			if inString || inChar {
				field.WriteByte(c)
			} else {
				flush()
			}
		default:
			field.WriteByte(c)
		}
	}
	flush()

	return fields
}

// table of escape sequences valid in string and character literals.
var escapes = map[byte]byte{
	'n':  0x0a,
	't':  0x09,
	'r':  0x0d,
	'0':  0x00,
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
}

// parseCharLiteral returns the value of a single-quoted character literal,
// escapes included.
func parseCharLiteral(s string) (int64, error) {
	if len(s) < 3 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return 0, fmt.Errorf("unterminated character literal: %s", s)
	}

	body := s[1 : len(s)-1]

	if body[0] == '\\' {
		if len(body) != 2 {
			return 0, fmt.Errorf("bad character literal: %s", s)
		}
		v, ok := escapes[body[1]]
		if !ok {
			return 0, fmt.Errorf("unknown escape sequence: \\%c", body[1])
		}
		return int64(v), nil
	}

	if len(body) != 1 {
		return 0, fmt.Errorf("multi-character literal not supported: %s", s)
	}

	return int64(body[0]), nil
}

// parseString returns the bytes of a double-quoted string literal with
// escape sequences applied.
func parseString(s string) ([]byte, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return nil, fmt.Errorf("unterminated string literal: %s", s)
	}

	body := s[1 : len(s)-1]
	b := make([]byte, 0, len(body))

	for i := 0; i < len(body); i++ {
		if body[i] != '\\' {
			b = append(b, body[i])
			continue
		}

		i++
		if i >= len(body) {
			return nil, fmt.Errorf("unterminated string literal: %s", s)
		}

		v, ok := escapes[body[i]]
		if !ok {
			return nil, fmt.Errorf("unknown escape sequence: \\%c", body[i])
		}
		b = append(b, v)
	}

	return b, nil
}

// parseInt returns the value of an integer or character literal. Decimal,
// hexadecimal (0x) and binary (0b) forms are accepted, optionally signed.
func parseInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("missing value")
	}

	if s[0] == '\'' {
		return parseCharLiteral(s)
	}

	neg := false
	body := s
	switch body[0] {
	case '-':
		neg = true
		body = body[1:]
	case '+':
		body = body[1:]
	}

	base := 10
	lower := strings.ToLower(body)
	if strings.HasPrefix(lower, "0x") {
		base = 16
		body = body[2:]
	} else if strings.HasPrefix(lower, "0b") {
		base = 2
		body = body[2:]
	}

	v, err := strconv.ParseInt(body, base, 64)
	if err != nil {
		return 0, fmt.Errorf("bad integer literal: %s", s)
	}

	if neg {
		v = -v
	}
	return v, nil
}

// parseRegister converts a register operand to a register number. Accepts
// the xN form and ABI names, case insensitively.
func parseRegister(s string) (uint32, error) {
	n, ok := registers.Number(s)
	if !ok {
		return 0, fmt.Errorf("invalid register name: %s", s)
	}
	return n, nil
}

// parseMemOperand splits a memory operand of the form offset(reg). A
// missing offset is zero.
func parseMemOperand(s string) (int64, uint32, error) {
	open := strings.IndexByte(s, '(')
	end := strings.LastIndexByte(s, ')')
	if open == -1 || end == -1 || end < open {
		return 0, 0, fmt.Errorf("invalid memory operand: %s", s)
	}

	var offset int64
	var err error
	if o := strings.TrimSpace(s[:open]); o != "" {
		offset, err = parseInt(o)
		if err != nil {
			return 0, 0, err
		}
	}

	reg, err := parseRegister(s[open+1 : end])
	if err != nil {
		return 0, 0, err
	}

	return offset, reg, nil
}

// isLabelRef returns true if the operand looks like a label reference
// rather than a literal.
func isLabelRef(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return c == '_' || c == '.' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
