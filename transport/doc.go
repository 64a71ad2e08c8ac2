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

// Package transport provides the host side of the byte-stream and datagram
// links used by peripheral backends. An Endpoint is returned by each of the
// Open functions:
//
//	ListenUDP()	datagrams arriving at a local UDP port
//	DialTCP()	a stream connection to a local TCP port
//	OpenTTY()	a host terminal device in raw mode
//	Pipe()		a pair of connected in-memory endpoints
//
// Peripherals should only depend on the Endpoint interface.
package transport
