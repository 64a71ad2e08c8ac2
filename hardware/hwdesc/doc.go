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

// Package hwdesc builds the hardware description of a composed board. The
// description is a tree of nodes, each with a list of properties, that the
// firmware and the kernel read to discover the devices of the board.
//
// The tree is built in two phases. The first phase creates every node with
// its static properties and assigns a phandle to every node that is the
// target of a reference. The second phase attaches the properties that refer
// to other nodes, by looking the target up by path. A reference that cannot
// be resolved fails the build.
//
// The finished tree can be encoded as a flattened device tree blob with
// Encode(), or rendered as source with WriteDTS(). Both outputs depend only on
// the composition of the board, so the same board always produces the same
// bytes.
//
// Validate() checks a tree for phandle consistency and for reference cycles.
// The references of the tree also form a graph that InterruptRoute() walks to
// find the harts an interrupt can reach.
package hwdesc
