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
	"strings"

	"github.com/mdpp/socemu/curated"
)

// Sentinal error patterns.
const (
	BuildError          = "hwdesc: %v"
	DuplicatePath       = "hwdesc: duplicate node %s"
	NoParent            = "hwdesc: no parent for node %s"
	BadPath             = "hwdesc: invalid node path %q"
	UnresolvedReference = "hwdesc: %s: %s refers to %s: %v"
	NoNode              = "no such node"
	NoPhandle           = "node has no phandle"
)

// Kind of property value.
type Kind int

// List of valid Kind values.
const (
	Empty Kind = iota
	Cells
	Strings
)

// Ref records that a cell of a property holds the phandle of another node.
type Ref struct {
	Cell int
	Path string
}

// Property of a node. Only the field for the property's Kind is used.
type Property struct {
	Name    string
	Kind    Kind
	Cells   []uint32
	Strings []string

	// cells that are phandles of other nodes
	Refs []Ref
}

// Node of the tree.
type Node struct {
	Name     string
	Props    []Property
	Children []*Node

	// zero if the node has no phandle
	Phandle uint32

	path string
}

// Path of the node from the root of the tree.
func (n *Node) Path() string {
	return n.path
}

func (n *Node) set(p Property) {
	for i := range n.Props {
		if n.Props[i].Name == p.Name {
			n.Props[i] = p
			return
		}
	}
	n.Props = append(n.Props, p)
}

// Cells sets a property to a list of 32 bit cells.
func (n *Node) Cells(name string, v ...uint32) {
	n.set(Property{Name: name, Kind: Cells, Cells: v})
}

// Strings sets a property to a list of strings.
func (n *Node) Strings(name string, v ...string) {
	n.set(Property{Name: name, Kind: Strings, Strings: v})
}

// Flag sets a property with no value.
func (n *Node) Flag(name string) {
	n.set(Property{Name: name, Kind: Empty})
}

// Property returns the named property of the node.
func (n *Node) Property(name string) (Property, bool) {
	for _, p := range n.Props {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Cell is one cell of a reference property. If Ref is not empty the value of
// the cell is the phandle of the node at that path.
type Cell struct {
	Value uint32
	Ref   string
}

// Phandle of the node at the path.
func Phandle(path string) Cell {
	return Cell{Ref: path}
}

// Value is a literal cell.
func Value(v uint32) Cell {
	return Cell{Value: v}
}

// Tree is a hardware description.
type Tree struct {
	root  *Node
	paths map[string]*Node

	// every node in creation order
	order []*Node

	// the most recently assigned phandle
	phandle uint32
}

// NewTree returns a tree with an empty root node.
func NewTree() *Tree {
	root := &Node{Name: "/", path: "/"}
	return &Tree{
		root:  root,
		paths: map[string]*Node{"/": root},
		order: []*Node{root},
	}
}

// Root node of the tree.
func (t *Tree) Root() *Node {
	return t.root
}

// Lookup returns the node at the path.
func (t *Tree) Lookup(path string) (*Node, bool) {
	n, ok := t.paths[path]
	return n, ok
}

// Nodes returns every node of the tree in creation order.
func (t *Tree) Nodes() []*Node {
	n := make([]*Node, len(t.order))
	copy(n, t.order)
	return n
}

// Add creates a node at the path. The parent of the node must already exist.
func (t *Tree) Add(path string) (*Node, error) {
	if !strings.HasPrefix(path, "/") || path == "/" || strings.HasSuffix(path, "/") {
		return nil, curated.Errorf(BadPath, path)
	}
	if _, ok := t.paths[path]; ok {
		return nil, curated.Errorf(DuplicatePath, path)
	}

	i := strings.LastIndex(path, "/")
	parentPath := path[:i]
	if parentPath == "" {
		parentPath = "/"
	}
	parent, ok := t.paths[parentPath]
	if !ok {
		return nil, curated.Errorf(NoParent, path)
	}

	n := &Node{Name: path[i+1:], path: path}
	parent.Children = append(parent.Children, n)
	t.paths[path] = n
	t.order = append(t.order, n)

	return n, nil
}

// AssignPhandle gives the node the next phandle and adds the phandle
// property. A node that already has a phandle keeps it.
func (t *Tree) AssignPhandle(n *Node) uint32 {
	if n.Phandle != 0 {
		return n.Phandle
	}
	t.phandle++
	n.Phandle = t.phandle
	n.Cells("phandle", n.Phandle)
	return n.Phandle
}

// Reference sets a property of the node to a list of cells, resolving the
// cells that refer to other nodes. The referenced nodes must exist and must
// have a phandle.
func (t *Tree) Reference(n *Node, name string, cells ...Cell) error {
	p := Property{Name: name, Kind: Cells, Cells: make([]uint32, len(cells))}

	for i, c := range cells {
		if c.Ref == "" {
			p.Cells[i] = c.Value
			continue
		}

		target, ok := t.paths[c.Ref]
		if !ok {
			return curated.Errorf(UnresolvedReference, n.path, name, c.Ref, NoNode)
		}
		if target.Phandle == 0 {
			return curated.Errorf(UnresolvedReference, n.path, name, c.Ref, NoPhandle)
		}

		p.Cells[i] = target.Phandle
		p.Refs = append(p.Refs, Ref{Cell: i, Path: c.Ref})
	}

	n.set(p)
	return nil
}

// PathString sets a property of the node to the path of another node. The
// other node must exist.
func (t *Tree) PathString(n *Node, name string, path string) error {
	if _, ok := t.paths[path]; !ok {
		return curated.Errorf(UnresolvedReference, n.path, name, path, NoNode)
	}
	n.Strings(name, path)
	return nil
}
