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

package memorymap

import (
	"fmt"
	"sort"
	"strings"
)

// Summary returns a single multiline string detailing all the blocks in the
// address map, in address order. Useful for reference.
func Summary() string {
	t := Table()
	sort.Slice(t, func(i, j int) bool {
		return t[i].Base < t[j].Base
	})

	s := strings.Builder{}
	for _, e := range t {
		s.WriteString(fmt.Sprintf("%09x -> %09x\t%s", e.Base, e.End()-1, e.Name()))
		if e.IRQ != 0 {
			s.WriteString(fmt.Sprintf("\tirq %d", e.IRQ))
		}
		s.WriteString("\n")
	}
	return s.String()
}
