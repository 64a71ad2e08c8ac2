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

package bus_test

import (
	"testing"

	"github.com/mdpp/socemu/curated"
	"github.com/mdpp/socemu/hardware/memory/bus"
	"github.com/mdpp/socemu/logger"
	"github.com/mdpp/socemu/test"
)

type word struct {
	value  uint64
	offset uint64
	size   int
	reset  bool
}

func (w *word) Read(offset uint64, size int) uint64 {
	w.offset = offset
	w.size = size
	return w.value
}

func (w *word) Write(offset uint64, size int, value uint64) {
	w.offset = offset
	w.size = size
	w.value = value
}

func (w *word) Reset() {
	w.reset = true
}

type quiet struct{}

func (quiet) AllowLogging() bool { return false }

func TestMap(t *testing.T) {
	as := bus.NewAddressSpace(34, quiet{})

	test.ExpectSuccess(t, as.Map("a", 0x1000, 0x100, &word{}))
	test.ExpectSuccess(t, as.Map("b", 0x0, 0x100, &word{}))
	test.ExpectSuccess(t, as.Map("c", 0x1100, 0x100, &word{}))

	// regions are kept in address order
	r := as.Regions()
	test.DemandEquality(t, len(r), 3)
	test.ExpectEquality(t, r[0].Name, "b")
	test.ExpectEquality(t, r[1].Name, "a")
	test.ExpectEquality(t, r[2].Name, "c")
	test.ExpectEquality(t, r[1].String(), "000001000 -> 0000010ff\ta")

	err := as.Map("d", 0x10ff, 0x2, &word{})
	test.ExpectSuccess(t, curated.Is(err, bus.RegionOverlap))
	test.ExpectEquality(t, err.Error(), "bus: region d overlaps a")

	err = as.Map("e", 0x2000, 0, &word{})
	test.ExpectSuccess(t, curated.Is(err, bus.RegionEmpty))

	err = as.Map("f", 0x3ffffff00, 0x200, &word{})
	test.ExpectSuccess(t, curated.Is(err, bus.RegionOutOfRange))

	err = as.Map("a", 0x8000, 0x100, &word{})
	test.ExpectSuccess(t, curated.Is(err, bus.RegionDuplicate))

	// the very top of the address space is allowed
	test.ExpectSuccess(t, as.Map("top", 0x3ffffff00, 0x100, &word{}))

	as.Seal()
	test.ExpectSuccess(t, as.IsSealed())
	err = as.Map("g", 0x9000, 0x100, &word{})
	test.ExpectSuccess(t, curated.Is(err, bus.Sealed))
	err = as.Remap("a", &word{})
	test.ExpectSuccess(t, curated.Is(err, bus.Sealed))
}

func TestAccess(t *testing.T) {
	as := bus.NewAddressSpace(34, quiet{})
	w := &word{value: 0x1234}
	test.DemandSuccess(t, as.Map("w", 0x80500200, 0x80, w))
	as.Seal()

	v, ok := as.Read(0x80500208, 4)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, uint64(0x1234))
	test.ExpectEquality(t, w.offset, uint64(8))
	test.ExpectEquality(t, w.size, 4)

	ok = as.Write(0x8050027c, 4, 0xff)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, w.offset, uint64(0x7c))
	test.ExpectEquality(t, w.value, uint64(0xff))

	// unmapped
	v, ok = as.Read(0x80500300, 4)
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, v, uint64(0))

	// straddles the end of the region
	ok = as.Write(0x8050027e, 4, 0)
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, w.value, uint64(0xff))

	_, ok = as.Lookup(0x80500200)
	test.ExpectSuccess(t, ok)
	_, ok = as.Lookup(0x805001ff)
	test.ExpectFailure(t, ok)
	_, ok = as.Lookup(0x80500280)
	test.ExpectFailure(t, ok)

	as.Reset()
	test.ExpectSuccess(t, w.reset)
}

func TestGuestErrorLogging(t *testing.T) {
	logger.Clear()
	defer logger.Clear()

	as := bus.NewAddressSpace(34, logger.Allow)
	as.Seal()
	as.Read(0x10, 4)

	tw := &test.CompareWriter{}
	logger.Tail(tw, 1)
	test.ExpectEquality(t, tw.String(), "GUEST ERROR: read of 4 bytes at unmapped address 0x10\n")
}

type loadable struct {
	word
	data []byte
}

func (l *loadable) Load(offset uint64, data []byte) error {
	copy(l.data[offset:], data)
	return nil
}

func TestLoadAt(t *testing.T) {
	as := bus.NewAddressSpace(34, quiet{})
	l := &loadable{data: make([]byte, 16)}
	test.DemandSuccess(t, as.Map("rom", 0x1000, 16, l))
	test.DemandSuccess(t, as.Map("reg", 0x2000, 16, &word{}))

	test.ExpectSuccess(t, as.LoadAt(0x1004, []byte{1, 2, 3, 4}))
	test.ExpectEquality(t, l.data[4], byte(1))
	test.ExpectEquality(t, l.data[7], byte(4))

	err := as.LoadAt(0x100e, []byte{1, 2, 3, 4})
	test.ExpectSuccess(t, curated.Is(err, bus.LoadOutOfRange))

	err = as.LoadAt(0x2000, []byte{1})
	test.ExpectSuccess(t, curated.Is(err, bus.NotLoadable))
}

func TestRemap(t *testing.T) {
	as := bus.NewAddressSpace(34, quiet{})
	a := &word{value: 1}
	b := &word{value: 2}
	test.DemandSuccess(t, as.Map("x", 0x100, 0x10, a))
	test.DemandSuccess(t, as.Remap("x", b))

	v, _ := as.Read(0x100, 4)
	test.ExpectEquality(t, v, uint64(2))

	err := as.Remap("y", b)
	test.ExpectSuccess(t, curated.Is(err, bus.RegionUnknown))
}

func TestPeekPoke(t *testing.T) {
	as := bus.NewAddressSpace(34, quiet{})
	w := &word{}
	test.DemandSuccess(t, as.Map("w", 0x100, 0x10, w))

	test.ExpectSuccess(t, as.Poke(0x104, 0xabcd))
	test.ExpectEquality(t, w.value, uint64(0xabcd))
	v, ok := as.Peek(0x104)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, uint32(0xabcd))

	_, ok = as.Peek(0x200)
	test.ExpectFailure(t, ok)
}
