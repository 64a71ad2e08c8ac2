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

// Package cpu describes the cores of the board. Instruction execution is not
// part of the board model: a Core only carries what the rest of the board
// needs to know about it, its hart index, its role, where it starts executing
// and the ISA it implements.
//
// Cores are grouped in clusters. The board has a management cluster of one
// core and a compute cluster of between one and four cores. The role of a
// core is always carried as data and never inferred from its hart index.
package cpu
