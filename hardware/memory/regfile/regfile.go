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

package regfile

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mdpp/socemu/curated"
	"github.com/mdpp/socemu/hardware/memory/bus"
	"github.com/mdpp/socemu/logger"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Sentinal error patterns.
const (
	DuplicateOffset = "regfile: %s: register %s at offset %#x already defined as %s"
	BadOffset       = "regfile: %s: register %s has bad offset %#x"
	NoField         = "regfile: %s: register %s has no field"
)

// Width of every register in bytes.
const Width = 4

// Access mode of a register.
type Access int

// List of valid Access modes.
const (
	RO Access = iota
	WO
	RW
)

func (a Access) String() string {
	switch a {
	case RO:
		return "RO"
	case WO:
		return "WO"
	case RW:
		return "RW"
	}
	return "undefined"
}

// Register describes one register of the block.
type Register struct {
	Name   string
	Offset uint64
	Access Access

	// the value of the register. owned by the peripheral
	Field *uint32

	// bits that are always set when the register is written
	Sticky uint32

	// value stored in the field by Reset()
	Reset uint32

	// called after a write has been stored. the argument is the stored value
	OnWrite func(value uint32)
}

func (r Register) String() string {
	return fmt.Sprintf("%02x %-18s %s %08x", r.Offset, r.Name, r.Access, *r.Field)
}

// File is a block of registers.
type File struct {
	crit sync.Mutex

	name string
	size uint64
	perm logger.Permission

	// the dispatch table
	regs map[uint64]*Register

	onReset []func()
}

// New is the preferred method of initialisation for the File type. The size
// is the size of the memory window occupied by the block.
func New(name string, size uint64, perm logger.Permission) *File {
	return &File{
		name: name,
		size: size,
		perm: perm,
		regs: make(map[uint64]*Register),
	}
}

// Name returns the name used when logging.
func (f *File) Name() string {
	return f.name
}

// Size returns the size of the memory window.
func (f *File) Size() uint64 {
	return f.size
}

// Define a register. Must only be called during construction of the
// peripheral.
func (f *File) Define(r Register) error {
	if r.Field == nil {
		return curated.Errorf(NoField, f.name, r.Name)
	}
	if r.Offset%Width != 0 || r.Offset+Width > f.size {
		return curated.Errorf(BadOffset, f.name, r.Name, r.Offset)
	}
	if e, ok := f.regs[r.Offset]; ok {
		return curated.Errorf(DuplicateOffset, f.name, r.Name, r.Offset, e.Name)
	}
	f.regs[r.Offset] = &r
	return nil
}

// MustDefine defines all the registers and panics on error. Intended for
// peripherals with a static register table where an error is a programming
// mistake.
func (f *File) MustDefine(regs ...Register) {
	for _, r := range regs {
		if err := f.Define(r); err != nil {
			panic(err)
		}
	}
}

// OnReset adds a function to be called at the end of Reset(). The function is
// called with the lock held.
func (f *File) OnReset(hook func()) {
	f.onReset = append(f.onReset, hook)
}

func (f *File) guestError(format string, args ...any) {
	logger.Logf(f.perm, bus.GuestError, "%s: %s", f.name, fmt.Sprintf(format, args...))
}

// Read implements the bus.Device interface.
func (f *File) Read(offset uint64, size int) uint64 {
	f.crit.Lock()
	defer f.crit.Unlock()

	if size != Width {
		f.guestError("read of %d bytes at offset %#x", size, offset)
		return 0
	}

	r, ok := f.regs[offset]
	if !ok {
		f.guestError("read of unknown register at offset %#x", offset)
		return 0
	}

	if r.Access == WO {
		f.guestError("read of write-only register %s", r.Name)
		return 0
	}

	return uint64(*r.Field)
}

// Write implements the bus.Device interface.
func (f *File) Write(offset uint64, size int, value uint64) {
	f.crit.Lock()
	defer f.crit.Unlock()

	if size != Width {
		f.guestError("write of %d bytes at offset %#x", size, offset)
		return
	}

	r, ok := f.regs[offset]
	if !ok {
		f.guestError("write of %#x to unknown register at offset %#x", value, offset)
		return
	}

	if r.Access == RO {
		f.guestError("write of %#x to read-only register %s", value, r.Name)
		return
	}

	*r.Field = uint32(value) | r.Sticky
	if r.OnWrite != nil {
		r.OnWrite(*r.Field)
	}
}

// Update runs a function under the same lock as guest accesses. Used by
// collaborators, such as a network receive loop, that change register state
// outside of a guest access.
func (f *File) Update(update func()) {
	f.crit.Lock()
	defer f.crit.Unlock()
	update()
}

// Reset stores the reset value of every register and then calls the reset
// hooks.
func (f *File) Reset() {
	f.crit.Lock()
	defer f.crit.Unlock()

	for _, r := range f.regs {
		*r.Field = r.Reset
	}
	for _, hook := range f.onReset {
		hook()
	}
}

// Peek implements the bus.DebuggerBus interface. The access mode of the
// register is ignored.
func (f *File) Peek(offset uint64) (uint32, bool) {
	f.crit.Lock()
	defer f.crit.Unlock()

	r, ok := f.regs[offset]
	if !ok {
		return 0, false
	}
	return *r.Field, true
}

// Poke implements the bus.DebuggerBus interface. The value is stored as is:
// the access mode, the sticky bits and the OnWrite function are ignored.
func (f *File) Poke(offset uint64, value uint32) bool {
	f.crit.Lock()
	defer f.crit.Unlock()

	r, ok := f.regs[offset]
	if !ok {
		return false
	}
	*r.Field = value
	return true
}

// Registers returns a copy of the register table in offset order.
func (f *File) Registers() []Register {
	f.crit.Lock()
	defer f.crit.Unlock()

	offsets := maps.Keys(f.regs)
	slices.Sort(offsets)

	regs := make([]Register, 0, len(offsets))
	for _, o := range offsets {
		regs = append(regs, *f.regs[o])
	}
	return regs
}

// String returns a multiline listing of the registers and their current
// values.
func (f *File) String() string {
	s := strings.Builder{}
	for _, r := range f.Registers() {
		f.crit.Lock()
		s.WriteString(r.String())
		f.crit.Unlock()
		s.WriteString("\n")
	}
	return s.String()
}
