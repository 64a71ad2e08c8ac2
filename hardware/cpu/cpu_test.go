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

package cpu_test

import (
	"testing"

	"github.com/mdpp/socemu/curated"
	"github.com/mdpp/socemu/hardware/cpu"
	"github.com/mdpp/socemu/test"
)

func TestClusters(t *testing.T) {
	mgmt, err := cpu.NewCluster("management", cpu.Management, cpu.Width64, 0, 1, 0x1004)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, mgmt.Len(), 1)
	test.ExpectEquality(t, mgmt.FirstHart(), 0)
	test.ExpectEquality(t, mgmt.Cores[0].ISA, "rv64imac")
	test.ExpectEquality(t, mgmt.Cores[0].MMU, "")
	test.ExpectEquality(t, mgmt.Cores[0].String(), "hart 0: management rv64imac reset 0x1004")

	comp, err := cpu.NewCluster("compute", cpu.Compute, cpu.Width64, 1, 4, 0x1004)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, comp.Len(), 4)
	for i, c := range comp.Cores {
		test.ExpectEquality(t, c.Hart, i+1)
		test.ExpectEquality(t, c.Role, cpu.Compute)
		test.ExpectEquality(t, c.ISA, "rv64imafdc")
		test.ExpectEquality(t, c.MMU, "riscv,sv48")
	}

	comp, err = cpu.NewCluster("compute", cpu.Compute, cpu.Width32, 1, 2, 0x1004)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, comp.Cores[1].ISA, "rv32imafdc")
	test.ExpectEquality(t, comp.Cores[1].MMU, "riscv,sv32")
}

func TestInvalidClusters(t *testing.T) {
	_, err := cpu.NewCluster("management", cpu.Management, cpu.Width64, 0, 2, 0x1004)
	test.ExpectSuccess(t, curated.Is(err, cpu.InvalidCoreCount))

	_, err = cpu.NewCluster("compute", cpu.Compute, cpu.Width64, 1, 0, 0x1004)
	test.ExpectSuccess(t, curated.Is(err, cpu.InvalidCoreCount))

	_, err = cpu.NewCluster("compute", cpu.Compute, cpu.Width64, 1, 5, 0x1004)
	test.ExpectSuccess(t, curated.Is(err, cpu.InvalidCoreCount))
	test.ExpectEquality(t, err.Error(), "cpu: compute cluster cannot have 5 cores")

	_, err = cpu.NewCluster("compute", cpu.Compute, cpu.Width(16), 1, 1, 0x1004)
	test.ExpectSuccess(t, curated.Is(err, cpu.InvalidWidth))
}
