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

// Package loader places firmware and kernel images in the address space of
// the board.
//
// An image is either an ELF executable, in which case every loadable segment
// is placed at its physical address, or a raw binary, in which case the whole
// file is placed at the address given by the caller. Images can be read from
// a local file or fetched over HTTP.
//
// The simplest use of the package is the Load() function:
//
//	entry, end, err := loader.Load("fw_dynamic.elf", soc.Bus, memorymap.DRAMBase)
//
// The Loader type gives access to the image data and its hash before the
// image is placed.
package loader
