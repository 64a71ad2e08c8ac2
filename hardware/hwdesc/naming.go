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

package hwdesc

import (
	"fmt"

	"github.com/mdpp/socemu/hardware/memory/memorymap"
)

// node names that differ from the kind of the block
var nodeNames = map[string]string{
	memorymap.KindUART: "serial",
	memorymap.KindPRCI: "clock-controller",
	memorymap.KindPLIC: "interrupt-controller",
}

// compatible kinds that differ from the kind of the block
var compatibleKinds = map[string]string{
	memorymap.KindUART: "apbuart",
}

// Naming returns the path and the compatible string of the node describing
// an on-chip block. For example, the first serial port at 0xfc001100 is
// "/soc/serial@fc001100" and is compatible with "mdpp,apbuart0".
func Naming(kind string, index int, base uint64) (string, string) {
	name, ok := nodeNames[kind]
	if !ok {
		name = kind
	}

	compat, ok := compatibleKinds[kind]
	if !ok {
		compat = kind
	}

	return fmt.Sprintf("/soc/%s@%x", name, base), fmt.Sprintf("mdpp,%s%d", compat, index)
}

// EntryNaming is Naming() for an address map entry.
func EntryNaming(e memorymap.Entry) (string, string) {
	return Naming(e.Kind, e.Index, e.Base)
}
