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

// Package monitor is a line based command interface to a running machine. It
// is used to inspect and modify the address space, to look at the state of
// the peripherals and to reset the board.
//
// Commands are case insensitive. Numbers can be given in decimal, in hex with
// a 0x or $ prefix, or in octal with a leading zero. The HELP command lists
// every command.
package monitor
