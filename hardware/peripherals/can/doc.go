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

// Package can models the register file of the board's CAN controllers. The
// register layout follows the SJA1000 family. There is no bus: a transmit
// request completes immediately and unconditionally, setting the transmit
// buffer status and the transmit interrupt in the same access.
//
// Frames can be delivered to the controller with Receive(). The Listen()
// function does this for every frame arriving on a transport endpoint, which
// is how the board connects a controller to a host UDP port.
//
// The interrupt line of the controller follows the INTERRUPT register: it is
// asserted whenever the register is non-zero.
package can
