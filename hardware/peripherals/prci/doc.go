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

// Package prci models the power, reset, clock and interrupt controller of the
// board. The oscillator is always ready and the PLLs are always locked: the
// ready, lock and internal feedback bits are sticky and forced on by every
// write. No PLL timing is modelled.
//
// The controller is the clock provider for several peripherals. Consumers of
// the hardware description refer to its outputs by the clock index constants
// of this package.
package prci
