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

// Package memorymap is the fixed physical address map of the board. Every
// block the board decodes is listed once in Table(), with its base address,
// the size of its window and the interrupt line it is wired to on the shared
// platform interrupt controller.
//
// The map is disjoint by construction and checked again when the address
// space is built. The Summary() function produces a one line per region
// overview, which is useful for reference:
//
//	fmt.Print(memorymap.Summary())
package memorymap
