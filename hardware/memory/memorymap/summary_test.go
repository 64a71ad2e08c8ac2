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

package memorymap_test

import (
	"testing"

	"github.com/mdpp/socemu/hardware/memory/memorymap"
	"github.com/mdpp/socemu/test"
)

const validMemMap = `000000000 -> 0000000ff	debug
000001000 -> 00000ffff	mrom
00e000000 -> 00e00ffff	clint
010000000 -> 010000fff	prci
040000000 -> 07fffffff	dram
080500100 -> 08050010f	gpio0	irq 21
080500110 -> 08050011f	gpio1	irq 22
080500160 -> 08050017f	obt	irq 25
080500200 -> 08050027f	can0	irq 23
080500280 -> 0805002ff	can1	irq 24
080601a00 -> 080601aff	nvmem0	irq 17
080601b00 -> 080601bff	nvmem1	irq 18
080601c00 -> 080601cff	srf	irq 26
080602000 -> 080602fff	lvds0	irq 19
080603000 -> 080603fff	lvds1	irq 20
0f8000000 -> 0fbffffff	plic
0fc001000 -> 0fc0010ff	uart5	irq 12
0fc001100 -> 0fc0011ff	uart0	irq 1
0fc001200 -> 0fc0012ff	uart1	irq 8
0fc001300 -> 0fc0013ff	uart2	irq 9
0fc001400 -> 0fc0014ff	uart3	irq 10
0fc001500 -> 0fc0015ff	uart4	irq 11
`

func TestSummary(t *testing.T) {
	test.ExpectEquality(t, memorymap.Summary(), validMemMap)
}

func TestDisjoint(t *testing.T) {
	tab := memorymap.Table()
	for i := range tab {
		test.ExpectInequality(t, tab[i].Size, 0, tab[i].Name())
		test.ExpectSuccess(t, tab[i].End() <= 1<<memorymap.PhysicalAddressBits, tab[i].Name())
		for j := i + 1; j < len(tab); j++ {
			overlap := tab[i].Base < tab[j].End() && tab[j].Base < tab[i].End()
			test.ExpectFailure(t, overlap, tab[i].Name(), tab[j].Name())
		}
	}
}

func TestInterruptLines(t *testing.T) {
	seen := make(map[int]bool)
	for _, e := range memorymap.Table() {
		if e.IRQ == 0 {
			continue
		}
		test.ExpectFailure(t, seen[e.IRQ], e.Name())
		test.ExpectSuccess(t, e.IRQ < memorymap.InterruptSources, e.Name())
		seen[e.IRQ] = true
	}
}

func TestNames(t *testing.T) {
	test.ExpectEquality(t, memorymap.CAN1.String(), "can1")
	test.ExpectEquality(t, memorymap.PRCI.String(), "prci")
	test.ExpectEquality(t, memorymap.ID(-1).String(), "undefined")

	uarts := memorymap.Indexed(memorymap.KindUART)
	test.DemandEquality(t, len(uarts), 6)
	test.ExpectEquality(t, uarts[5].Base, uint64(0xfc001000))
	test.ExpectEquality(t, memorymap.Lookup(memorymap.UART3).IRQ, 10)
}
