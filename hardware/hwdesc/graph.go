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
	"sort"
	"strings"

	"github.com/mdpp/socemu/curated"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/multi"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"
)

// Sentinal error patterns.
const (
	BadReference     = "hwdesc: %s: %s cell %d is %#x but %s has phandle %#x"
	DuplicatePhandle = "hwdesc: phandle %#x used by %s and %s"
	PhandleMismatch  = "hwdesc: %s: phandle property does not match %#x"
	ReferenceCycle   = "hwdesc: reference cycle: %v"
	RouteError       = "hwdesc: interrupt route from %s: %v"
)

// properties that carry an interrupt towards its controller
var interruptProperties = map[string]bool{
	"interrupt-parent":    true,
	"interrupts-extended": true,
}

type vertex struct {
	id   int64
	node *Node
}

func (v vertex) ID() int64 {
	return v.id
}

// references builds the graph of references between nodes. An edge runs from
// the node holding the reference to the referenced node. Only properties
// accepted by the filter contribute edges.
func (t *Tree) references(filter func(Property) bool) (*multi.DirectedGraph, map[*Node]int64) {
	g := multi.NewDirectedGraph()

	ids := make(map[*Node]int64, len(t.order))
	for i, n := range t.order {
		ids[n] = int64(i)
		g.AddNode(vertex{id: int64(i), node: n})
	}

	for _, n := range t.order {
		for _, p := range n.Props {
			if !filter(p) {
				continue
			}
			for _, r := range p.Refs {
				target, ok := t.paths[r.Path]
				if !ok {
					continue
				}
				g.SetLine(g.NewLine(g.Node(ids[n]), g.Node(ids[target])))
			}
		}
	}

	return g, ids
}

// Validate checks that every phandle is unique, that every reference holds the
// phandle of the node it names and that no node depends on itself through its
// references.
func (t *Tree) Validate() error {
	owners := make(map[uint32]*Node)

	for _, n := range t.order {
		if n.Phandle == 0 {
			continue
		}
		if o, ok := owners[n.Phandle]; ok {
			return curated.Errorf(DuplicatePhandle, n.Phandle, o.path, n.path)
		}
		owners[n.Phandle] = n

		p, ok := n.Property("phandle")
		if !ok || p.Kind != Cells || len(p.Cells) != 1 || p.Cells[0] != n.Phandle {
			return curated.Errorf(PhandleMismatch, n.path, n.Phandle)
		}
	}

	for _, n := range t.order {
		for _, p := range n.Props {
			for _, r := range p.Refs {
				target, ok := t.paths[r.Path]
				if !ok {
					return curated.Errorf(UnresolvedReference, n.path, p.Name, r.Path, NoNode)
				}
				if r.Cell >= len(p.Cells) || p.Cells[r.Cell] != target.Phandle || target.Phandle == 0 {
					var v uint32
					if r.Cell < len(p.Cells) {
						v = p.Cells[r.Cell]
					}
					return curated.Errorf(BadReference, n.path, p.Name, r.Cell, v, r.Path, target.Phandle)
				}
				if target == n {
					return curated.Errorf(ReferenceCycle, n.path)
				}
			}
		}
	}

	g, _ := t.references(func(Property) bool { return true })
	if _, err := topo.Sort(g); err != nil {
		return curated.Errorf(ReferenceCycle, err)
	}

	return nil
}

// InterruptRoute returns the harts that an interrupt raised by the node at the
// path can reach, following interrupt-parent and interrupts-extended
// references. The list is in hart order and is empty if the node is not
// connected to any hart.
func (t *Tree) InterruptRoute(path string) ([]int, error) {
	n, ok := t.paths[path]
	if !ok {
		return nil, curated.Errorf(RouteError, path, NoNode)
	}

	g, ids := t.references(func(p Property) bool {
		return interruptProperties[p.Name]
	})

	seen := make(map[int]bool)
	bf := traverse.BreadthFirst{
		Visit: func(v graph.Node) {
			if hart, ok := t.hartOf(v.(vertex).node); ok {
				seen[hart] = true
			}
		},
	}
	bf.Walk(g, g.Node(ids[n]), nil)

	harts := make([]int, 0, len(seen))
	for h := range seen {
		harts = append(harts, h)
	}
	sort.Ints(harts)

	return harts, nil
}

// hartOf returns the hart number of a per-hart interrupt controller.
func (t *Tree) hartOf(n *Node) (int, bool) {
	if n.Name != "interrupt-controller" || !strings.HasPrefix(n.path, "/cpus/") {
		return 0, false
	}
	cpu, ok := t.paths[strings.TrimSuffix(n.path, "/"+n.Name)]
	if !ok {
		return 0, false
	}
	reg, ok := cpu.Property("reg")
	if !ok || len(reg.Cells) != 1 {
		return 0, false
	}
	return int(reg.Cells[0]), true
}
