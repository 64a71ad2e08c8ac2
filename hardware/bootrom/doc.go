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

// Package bootrom constructs the contents of the boot ROM: the reset vector
// that every hart executes first, followed by the dynamic information record
// that tells the firmware where to go next.
//
// The reset vector loads the start address and the address of the hardware
// description from the data words at the end of the vector and jumps to the
// start address with the hart ID in a0, the description address in a1 and the
// address of the dynamic information record in a2.
package bootrom
