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

package bus

// DebuggerBus defines the meta-operations for register blocks. Think of these
// functions as "debugging" functions, that is operations outside of the
// normal operation of the machine. Peek() does not check the access mode of
// the register and Poke() stores the value without side effects.
type DebuggerBus interface {
	Peek(offset uint64) (uint32, bool)
	Poke(offset uint64, value uint32) bool
}

// Peek at the address space through the DebuggerBus of the device at the
// address. If the device does not implement DebuggerBus a normal read of four
// bytes is made.
func (as *AddressSpace) Peek(address uint64) (uint32, bool) {
	r, ok := as.decode(address, 4)
	if !ok {
		return 0, false
	}
	if d, ok := r.Device.(DebuggerBus); ok {
		return d.Peek(address - r.Base)
	}
	return uint32(r.Device.Read(address-r.Base, 4)), true
}

// Poke the address space through the DebuggerBus of the device at the
// address. If the device does not implement DebuggerBus a normal write of
// four bytes is made.
func (as *AddressSpace) Poke(address uint64, value uint32) bool {
	r, ok := as.decode(address, 4)
	if !ok {
		return false
	}
	if d, ok := r.Device.(DebuggerBus); ok {
		return d.Poke(address-r.Base, value)
	}
	r.Device.Write(address-r.Base, 4, uint64(value))
	return true
}
