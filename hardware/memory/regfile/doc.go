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

// Package regfile implements a generic block of 32 bit memory-mapped
// registers. Peripheral models declare their registers in a table at
// construction time and the File dispatches guest accesses through the
// table:
//
//	f := regfile.New("can0", 0x80, env)
//	f.MustDefine(
//		regfile.Register{Name: "CONTROL", Offset: 0x00, Access: regfile.RW, Field: &s.control},
//		regfile.Register{Name: "COMMAND", Offset: 0x04, Access: regfile.WO, Field: &s.command, OnWrite: s.transmit},
//	)
//
// Each register refers to a uint32 field owned by the peripheral. Sticky bits
// are OR-ed into every value written to the register. The OnWrite function,
// if present, is called after the value has been stored.
//
// An access that the table does not allow is a guest error: reads return zero,
// writes are dropped and the access is logged. The emulation is never
// stopped by a guest error.
//
// All accesses, including the side effects of writes and any collaborator
// updates made through Update(), are serialised by a mutex belonging to the
// File.
package regfile
