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

package memory

import (
	"github.com/mdpp/socemu/hardware/memory/bus"
	"github.com/mdpp/socemu/logger"
)

// ROM is memory that the guest can only read. The contents are installed by
// the machine builder with Load().
type ROM struct {
	store
}

// NewROM is the preferred method of initialisation for the ROM type.
func NewROM(name string, size uint64, perm logger.Permission) *ROM {
	return &ROM{
		store: store{
			name: name,
			perm: perm,
			data: make([]byte, size),
		},
	}
}

// Read implements the bus.Device interface.
func (rom *ROM) Read(offset uint64, size int) uint64 {
	return rom.read(offset, size)
}

// Write implements the bus.Device interface. All writes are dropped.
func (rom *ROM) Write(offset uint64, size int, value uint64) {
	logger.Logf(rom.perm, bus.GuestError, "%s: write of %#x to read-only memory at offset %#x", rom.name, value, offset)
}
