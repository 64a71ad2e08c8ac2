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

// Package config holds the platform configuration of a machine: the number of
// compute cores, the word width, the boot-mode pins, the amount of RAM, the
// host backends of the CAN, LVDS and NVMEM peripherals and the images to boot.
//
// A Platform is normally created with Default() or Load() and then adjusted
// with SetProperties(), which accepts the same "key=value,key=value" machine
// property string as the command line --prop flag:
//
//	p := config.Default()
//	err := p.SetProperties("msel=11,can0-udp-port=15100,nvmem1-file=/tmp/x.img")
//
// The configuration should be checked with Validate() before it is used to
// compose a machine.
package config
