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

package interrupts

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Controller is the input side of the platform interrupt controller.
type Controller interface {
	Assert(line int)
	Deassert(line int)
}

// Lines records the level of each input line of an interrupt controller.
// Line zero is reserved and can never be asserted.
type Lines struct {
	levels []atomic.Bool

	// number of transitions from deasserted to asserted
	edges []atomic.Uint64
}

// NewLines is the preferred method of initialisation for the Lines type.
func NewLines(sources int) *Lines {
	return &Lines{
		levels: make([]atomic.Bool, sources),
		edges:  make([]atomic.Uint64, sources),
	}
}

func (l *Lines) valid(line int) bool {
	return line > 0 && line < len(l.levels)
}

// Assert implements the Controller interface.
func (l *Lines) Assert(line int) {
	if !l.valid(line) {
		return
	}
	if !l.levels[line].Swap(true) {
		l.edges[line].Add(1)
	}
}

// Deassert implements the Controller interface.
func (l *Lines) Deassert(line int) {
	if !l.valid(line) {
		return
	}
	l.levels[line].Store(false)
}

// Sources returns the number of lines, including the reserved line zero.
func (l *Lines) Sources() int {
	return len(l.levels)
}

// Level returns true if the line is asserted.
func (l *Lines) Level(line int) bool {
	if !l.valid(line) {
		return false
	}
	return l.levels[line].Load()
}

// Edges returns the number of times the line has been asserted.
func (l *Lines) Edges(line int) uint64 {
	if !l.valid(line) {
		return 0
	}
	return l.edges[line].Load()
}

// Pending returns the asserted lines in ascending order.
func (l *Lines) Pending() []int {
	var p []int
	for i := 1; i < len(l.levels); i++ {
		if l.levels[i].Load() {
			p = append(p, i)
		}
	}
	return p
}

// Reset deasserts every line and clears the edge counts.
func (l *Lines) Reset() {
	for i := range l.levels {
		l.levels[i].Store(false)
		l.edges[i].Store(0)
	}
}

func (l *Lines) String() string {
	p := l.Pending()
	if len(p) == 0 {
		return "no pending interrupts"
	}
	s := make([]string, len(p))
	for i, n := range p {
		s[i] = fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("pending: %s", strings.Join(s, " "))
}

// Line is the interrupt output of a device.
type Line struct {
	ctrl Controller
	n    int
}

// NewLine connects a device output to an input of the controller.
func NewLine(ctrl Controller, n int) Line {
	return Line{ctrl: ctrl, n: n}
}

// Number returns the controller input the line is connected to. Zero if it
// is not connected.
func (l Line) Number() int {
	if l.ctrl == nil {
		return 0
	}
	return l.n
}

// Set drives the level of the line.
func (l Line) Set(level bool) {
	if l.ctrl == nil {
		return
	}
	if level {
		l.ctrl.Assert(l.n)
	} else {
		l.ctrl.Deassert(l.n)
	}
}
