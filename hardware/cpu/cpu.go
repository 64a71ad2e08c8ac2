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

package cpu

import (
	"fmt"

	"github.com/mdpp/socemu/curated"
)

// Sentinal error patterns.
const (
	InvalidCoreCount = "cpu: %s cluster cannot have %d cores"
	InvalidWidth     = "cpu: unsupported word width (%d)"
)

// Role of a core.
type Role int

// List of valid Roles.
const (
	Management Role = iota
	Compute
)

func (r Role) String() string {
	switch r {
	case Management:
		return "management"
	case Compute:
		return "compute"
	}
	return "undefined"
}

// Limits on the number of cores in a cluster of each role.
func (r Role) limits() (int, int) {
	if r == Management {
		return 1, 1
	}
	return 1, 4
}

// Width is the word width of the platform in bits.
type Width int

// List of valid Widths.
const (
	Width32 Width = 32
	Width64 Width = 64
)

// ISA returns the ISA string for a core of the specified role.
func (w Width) ISA(r Role) string {
	if r == Management {
		return fmt.Sprintf("rv%dimac", w)
	}
	return fmt.Sprintf("rv%dimafdc", w)
}

// MMU returns the MMU type for a core of the specified role. Management cores
// have no MMU and the empty string is returned.
func (w Width) MMU(r Role) string {
	if r == Management {
		return ""
	}
	if w == Width32 {
		return "riscv,sv32"
	}
	return "riscv,sv48"
}

// Core describes one hart.
type Core struct {
	Hart        int
	Role        Role
	ResetVector uint64
	ISA         string
	MMU         string
}

func (c Core) String() string {
	return fmt.Sprintf("hart %d: %s %s reset %#x", c.Hart, c.Role, c.ISA, c.ResetVector)
}

// Cluster is a named, ordered set of cores of the same role.
type Cluster struct {
	Name  string
	Role  Role
	Cores []Core
}

// NewCluster is the preferred method of initialisation for the Cluster type.
// Harts are numbered consecutively from firstHart.
func NewCluster(name string, role Role, width Width, firstHart int, count int, resetVector uint64) (*Cluster, error) {
	if width != Width32 && width != Width64 {
		return nil, curated.Errorf(InvalidWidth, width)
	}

	lo, hi := role.limits()
	if count < lo || count > hi {
		return nil, curated.Errorf(InvalidCoreCount, role, count)
	}

	cl := &Cluster{
		Name:  name,
		Role:  role,
		Cores: make([]Core, count),
	}

	for i := range cl.Cores {
		cl.Cores[i] = Core{
			Hart:        firstHart + i,
			Role:        role,
			ResetVector: resetVector,
			ISA:         width.ISA(role),
			MMU:         width.MMU(role),
		}
	}

	return cl, nil
}

// FirstHart returns the hart index of the first core in the cluster.
func (cl *Cluster) FirstHart() int {
	return cl.Cores[0].Hart
}

// Len returns the number of cores in the cluster.
func (cl *Cluster) Len() int {
	return len(cl.Cores)
}
