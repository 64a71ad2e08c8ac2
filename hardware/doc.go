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

// Package hardware is the base package of the board model. It and its
// sub-packages contain everything required to compose the MDPP system-on-chip
// and prepare it for the first instruction.
//
// The Machine type is the root of the board. It composes the SoC from a
// platform configuration, builds the hardware description, places the boot
// images in RAM and installs the reset vector. The sub-packages are
// independent of each other except where the SoC wires them together:
//
//	soc          composition of cores, memory and peripherals
//	hwdesc       the hardware description tree and its blob encoding
//	bootrom      the reset vector and the firmware dynamic info
//	loader       firmware, kernel and blob images
//	cpu          core clusters
//	interrupts   the platform interrupt controller and the core-local interrupts
//	memory       RAM, ROM, the address map and the address space
//	peripherals  register models of the on-chip devices
package hardware
