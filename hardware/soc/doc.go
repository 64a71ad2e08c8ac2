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

// Package soc composes the board: the address space, the core clusters, the
// peripherals and the interrupt wiring. Composition happens once, in a fixed
// order:
//
//  1. the address space is built from the address map. every region is
//     checked against every other region and the physical address width
//  2. the management and compute clusters are created
//  3. every peripheral is created and mapped. blocks without a model are
//     mapped as unimplemented windows
//  4. interrupt outputs are wired to the platform interrupt controller
//  5. host backends are attached to the CAN, LVDS and NVMEM peripherals
//
// An error in steps one to three stops composition. A backend that cannot be
// attached is logged and the peripheral is replaced by an unimplemented window
// at the same address. The board carries on without it.
//
// After composition the address space is sealed and the wiring never changes.
package soc
