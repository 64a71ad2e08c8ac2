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

package interrupts_test

import (
	"sync"
	"testing"

	"github.com/mdpp/socemu/hardware/interrupts"
	"github.com/mdpp/socemu/test"
)

func TestLines(t *testing.T) {
	l := interrupts.NewLines(54)
	test.ExpectEquality(t, l.Sources(), 54)
	test.ExpectEquality(t, l.String(), "no pending interrupts")

	l.Assert(23)
	l.Assert(23)
	l.Assert(1)
	test.ExpectSuccess(t, l.Level(23))
	test.ExpectEquality(t, l.Edges(23), uint64(1))
	test.ExpectEquality(t, l.String(), "pending: 1 23")

	l.Deassert(23)
	test.ExpectFailure(t, l.Level(23))
	l.Assert(23)
	test.ExpectEquality(t, l.Edges(23), uint64(2))

	// line zero and lines beyond the controller are ignored
	l.Assert(0)
	l.Assert(54)
	test.ExpectFailure(t, l.Level(0))
	test.ExpectFailure(t, l.Level(54))

	l.Reset()
	test.ExpectEquality(t, len(l.Pending()), 0)
	test.ExpectEquality(t, l.Edges(23), uint64(0))
}

func TestLine(t *testing.T) {
	l := interrupts.NewLines(54)
	pin := interrupts.NewLine(l, 24)
	test.ExpectEquality(t, pin.Number(), 24)

	pin.Set(true)
	test.ExpectSuccess(t, l.Level(24))
	pin.Set(false)
	test.ExpectFailure(t, l.Level(24))

	// an unconnected line does nothing
	var nc interrupts.Line
	test.ExpectEquality(t, nc.Number(), 0)
	nc.Set(true)
}

func TestConcurrentLines(t *testing.T) {
	l := interrupts.NewLines(54)
	var wg sync.WaitGroup
	for i := 1; i < 54; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			l.Assert(n)
		}(i)
	}
	wg.Wait()
	test.ExpectEquality(t, len(l.Pending()), 53)
}
