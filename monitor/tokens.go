// This file is part of socemu.
//
// socemu is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// socemu is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with socemu.  If not, see <https://www.gnu.org/licenses/>.

package monitor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mdpp/socemu/curated"
)

// Tokens is tokenised input. The tokens are walked through with Get().
type Tokens struct {
	input  string
	tokens []string
	curr   int
}

// TokeniseInput creates and returns a new Tokens instance.
func TokeniseInput(input string) *Tokens {
	tk := &Tokens{
		input:  strings.TrimSpace(input),
		tokens: strings.Fields(input),
	}

	// normalise hex notation
	for i, t := range tk.tokens {
		if len(t) > 1 && t[0] == '$' {
			tk.tokens[i] = fmt.Sprintf("0x%s", t[1:])
		}
	}

	return tk
}

func (tk *Tokens) String() string {
	return tk.input
}

// IsEnd returns true if we're at the end of the token list.
func (tk Tokens) IsEnd() bool {
	return tk.curr >= len(tk.tokens)
}

// Remaining returns the count of remaining tokens in the token list.
func (tk Tokens) Remaining() int {
	return len(tk.tokens) - tk.curr
}

// Remainder returns the remaining tokens as a string.
func (tk Tokens) Remainder() string {
	return strings.Join(tk.tokens[tk.curr:], " ")
}

// Get returns the next token in the list and advances. Returns false if the
// end of the list has been reached.
func (tk *Tokens) Get() (string, bool) {
	if tk.curr >= len(tk.tokens) {
		return "", false
	}
	tk.curr++
	return tk.tokens[tk.curr-1], true
}

// Peek returns the next token in the list without advancing.
func (tk Tokens) Peek() (string, bool) {
	if tk.curr >= len(tk.tokens) {
		return "", false
	}
	return tk.tokens[tk.curr], true
}

// Number returns the next token as an unsigned number.
func (tk *Tokens) Number() (uint64, error) {
	t, ok := tk.Get()
	if !ok {
		return 0, curated.Errorf(NumberExpected)
	}
	v, err := strconv.ParseUint(t, 0, 64)
	if err != nil {
		return 0, curated.Errorf(NotANumber, t)
	}
	return v, nil
}
