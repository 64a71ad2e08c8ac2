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
	"io"
	"strings"
)

func (p Property) String() string {
	switch p.Kind {
	case Cells:
		s := make([]string, len(p.Cells))
		for i, c := range p.Cells {
			s[i] = fmt.Sprintf("%#x", c)
		}
		return fmt.Sprintf("%s = <%s>;", p.Name, strings.Join(s, " "))
	case Strings:
		s := make([]string, len(p.Strings))
		for i, v := range p.Strings {
			s[i] = fmt.Sprintf("\"%s\"", v)
		}
		return fmt.Sprintf("%s = %s;", p.Name, strings.Join(s, ", "))
	}
	return fmt.Sprintf("%s;", p.Name)
}

func writeNode(w io.Writer, n *Node, depth int) error {
	indent := strings.Repeat("\t", depth)

	if _, err := fmt.Fprintf(w, "%s%s {\n", indent, n.Name); err != nil {
		return err
	}

	for _, p := range n.Props {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", indent, p); err != nil {
			return err
		}
	}

	for _, c := range n.Children {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		if err := writeNode(w, c, depth+1); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%s};\n", indent)
	return err
}

// WriteDTS renders the tree as device tree source. References are written as
// the phandle value they resolved to.
func (t *Tree) WriteDTS(w io.Writer) error {
	if _, err := io.WriteString(w, "/dts-v1/;\n\n"); err != nil {
		return err
	}
	return writeNode(w, t.root, 0)
}
