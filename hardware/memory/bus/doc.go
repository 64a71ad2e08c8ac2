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

// Package bus defines how the cores of the board see memory. Every RAM, ROM
// and peripheral register block implements the Device interface and is
// mapped at a fixed window of an AddressSpace.
//
// The AddressSpace is built once, during composition of the board. Regions
// must be pairwise disjoint and must fit the physical address width of the
// board; a region that breaks either rule is refused with a curated error.
// After Seal() the address space cannot change and can be read from any
// number of goroutines without locking.
//
// Accesses to an address that no region decodes are guest errors. They are
// logged and the access is ignored. The guest sees a read of zero.
//
// The DebuggerBus interface is for the exclusive use of the monitor. It
// allows register blocks to be inspected without the side effects of a normal
// access.
package bus
