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

// Package unimplemented provides an inert device for memory windows that the
// board decodes but does not model. Every access is logged. Reads return zero
// and writes are ignored.
package unimplemented

import (
	"github.com/mdpp/socemu/logger"
)

// Tag used when logging accesses.
const Tag = "UNIMPLEMENTED"

// Device is an unimplemented device window.
type Device struct {
	name string
	size uint64
	perm logger.Permission
}

// New is the preferred method of initialisation for the Device type.
func New(name string, size uint64, perm logger.Permission) *Device {
	return &Device{
		name: name,
		size: size,
		perm: perm,
	}
}

// Name of the device.
func (d *Device) Name() string {
	return d.name
}

// Size of the window.
func (d *Device) Size() uint64 {
	return d.size
}

// Read implements the bus.Device interface.
func (d *Device) Read(offset uint64, size int) uint64 {
	logger.Logf(d.perm, Tag, "%s: read of %d bytes at offset %#x", d.name, size, offset)
	return 0
}

// Write implements the bus.Device interface.
func (d *Device) Write(offset uint64, size int, value uint64) {
	logger.Logf(d.perm, Tag, "%s: write of %#x (%d bytes) at offset %#x", d.name, value, size, offset)
}
