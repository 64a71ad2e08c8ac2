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

// Package interrupts connects interrupt sources to the platform interrupt
// controller. The priority and claim logic of the controller is not part of
// the board model; the board only drives the level of each input line
// through the Controller interface.
//
// Lines is a reference Controller that records the level of every line. It is
// safe for concurrent use.
//
// A Line is the output pin of a single device. The zero value is a pin that is
// not connected to anything.
package interrupts
