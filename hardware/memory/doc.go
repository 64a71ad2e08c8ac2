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

// Package memory contains the plain memory devices of the board, the RAM and
// the boot ROM. Both implement the bus.Device interface and are mapped into
// the address space alongside the peripheral register blocks:
//
//	                  debugger (monitor)
//	                         |
//	                         |
//	CORES ---- bus ---- ADDRESS SPACE ---- DRAM
//	                         |
//	                         |---- MROM
//	                         |
//	                         |---- register blocks (regfile)
//	                         |
//	                          ---- unimplemented windows
//
// The memorymap package describes where each device is mapped. The bus
// package decodes an address to a device.
//
// Accesses may be 1, 2, 4 or 8 bytes wide and are little-endian. The ROM can
// only be changed through Load(), which is used by the machine builder to
// install the boot vector. A guest write to the ROM is a guest error.
package memory
