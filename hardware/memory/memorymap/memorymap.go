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

import "fmt"

// ID identifies a block in the address map.
type ID int

// List of valid IDs. The order is the order of Table().
const (
	Debug ID = iota
	MROM
	CLINT
	PRCI
	DRAM
	GPIO0
	GPIO1
	OBT
	CAN0
	CAN1
	NVMEM0
	NVMEM1
	SRF
	LVDS0
	LVDS1
	PLIC
	UART0
	UART1
	UART2
	UART3
	UART4
	UART5
	numIDs
)

// Kinds of block. A block's kind and index together name its peripheral.
const (
	KindDebug = "debug"
	KindMROM  = "mrom"
	KindCLINT = "clint"
	KindPRCI  = "prci"
	KindDRAM  = "dram"
	KindGPIO  = "gpio"
	KindOBT   = "obt"
	KindCAN   = "can"
	KindNVMEM = "nvmem"
	KindSRF   = "srf"
	KindLVDS  = "lvds"
	KindPLIC  = "plic"
	KindUART  = "uart"
)

// Entry describes one block in the address map.
type Entry struct {
	ID    ID
	Kind  string
	Index int
	Base  uint64
	Size  uint64

	// interrupt line on the platform interrupt controller. zero if the
	// block is not wired
	IRQ int
}

// Name of the block. For example, "can1" or "uart0". Blocks of which there is
// only one kind do not have an index in their name.
func (e Entry) Name() string {
	switch e.Kind {
	case KindGPIO, KindCAN, KindNVMEM, KindLVDS, KindUART:
		return fmt.Sprintf("%s%d", e.Kind, e.Index)
	}
	return e.Kind
}

// End returns the first address after the block.
func (e Entry) End() uint64 {
	return e.Base + e.Size
}

func (id ID) String() string {
	if id < 0 || id >= numIDs {
		return "undefined"
	}
	return table[id].Name()
}

// PhysicalAddressBits is the width of the physical address bus of the board.
const PhysicalAddressBits = 34

// Interrupt controller dimensions. Source zero is reserved so the number of
// usable sources is one less than the number of lines.
const (
	InterruptSources = 54
	InterruptDevices = InterruptSources - 1
)

// The window reserved for DRAM. The amount of RAM actually mapped depends on
// the platform configuration and is never larger than the window.
const (
	DRAMBase       = 0x40000000
	DRAMWindowSize = 0x40000000
)

var table = [numIDs]Entry{
	{ID: Debug, Kind: KindDebug, Base: 0x00000000, Size: 0x100},
	{ID: MROM, Kind: KindMROM, Base: 0x00001000, Size: 0xf000},
	{ID: CLINT, Kind: KindCLINT, Base: 0x0e000000, Size: 0x10000},
	{ID: PRCI, Kind: KindPRCI, Base: 0x10000000, Size: 0x1000},
	{ID: DRAM, Kind: KindDRAM, Base: DRAMBase, Size: DRAMWindowSize},
	{ID: GPIO0, Kind: KindGPIO, Index: 0, Base: 0x80500100, Size: 0x10, IRQ: 21},
	{ID: GPIO1, Kind: KindGPIO, Index: 1, Base: 0x80500110, Size: 0x10, IRQ: 22},
	{ID: OBT, Kind: KindOBT, Base: 0x80500160, Size: 0x20, IRQ: 25},
	{ID: CAN0, Kind: KindCAN, Index: 0, Base: 0x80500200, Size: 0x80, IRQ: 23},
	{ID: CAN1, Kind: KindCAN, Index: 1, Base: 0x80500280, Size: 0x80, IRQ: 24},
	{ID: NVMEM0, Kind: KindNVMEM, Index: 0, Base: 0x80601a00, Size: 0x100, IRQ: 17},
	{ID: NVMEM1, Kind: KindNVMEM, Index: 1, Base: 0x80601b00, Size: 0x100, IRQ: 18},
	{ID: SRF, Kind: KindSRF, Base: 0x80601c00, Size: 0x100, IRQ: 26},
	{ID: LVDS0, Kind: KindLVDS, Index: 0, Base: 0x80602000, Size: 0x1000, IRQ: 19},
	{ID: LVDS1, Kind: KindLVDS, Index: 1, Base: 0x80603000, Size: 0x1000, IRQ: 20},
	{ID: PLIC, Kind: KindPLIC, Base: 0xf8000000, Size: 0x4000000},
	{ID: UART0, Kind: KindUART, Index: 0, Base: 0xfc001100, Size: 0x100, IRQ: 1},
	{ID: UART1, Kind: KindUART, Index: 1, Base: 0xfc001200, Size: 0x100, IRQ: 8},
	{ID: UART2, Kind: KindUART, Index: 2, Base: 0xfc001300, Size: 0x100, IRQ: 9},
	{ID: UART3, Kind: KindUART, Index: 3, Base: 0xfc001400, Size: 0x100, IRQ: 10},
	{ID: UART4, Kind: KindUART, Index: 4, Base: 0xfc001500, Size: 0x100, IRQ: 11},
	{ID: UART5, Kind: KindUART, Index: 5, Base: 0xfc001000, Size: 0x100, IRQ: 12},
}

// Table returns a copy of the address map in ID order.
func Table() []Entry {
	t := make([]Entry, len(table))
	copy(t, table[:])
	return t
}

// Lookup returns the entry for an ID. Panics if the ID is not valid.
func Lookup(id ID) Entry {
	return table[id]
}

// Indexed returns the entries of the specified kind in index order.
func Indexed(kind string) []Entry {
	var e []Entry
	for _, t := range table {
		if t.Kind == kind {
			e = append(e, t)
		}
	}
	return e
}
