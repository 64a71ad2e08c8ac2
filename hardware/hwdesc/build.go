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
	"sort"

	"github.com/mdpp/socemu/curated"
	"github.com/mdpp/socemu/hardware/cpu"
	"github.com/mdpp/socemu/hardware/memory/memorymap"
	"github.com/mdpp/socemu/hardware/peripherals/prci"
	"github.com/mdpp/socemu/hardware/soc"
)

// Options for Build().
type Options struct {
	// kernel command line. omitted from the description if empty
	Bootargs string
}

// Model and compatible string of the board.
const (
	Model      = "MDPP HiFive Unleashed A00"
	Compatible = "mdpp,hifive-unleashed-a00"
)

// local interrupt numbers of the per-hart interrupt controller
const (
	irqSupervisorExternal = 9
	irqMachineSoftware    = 3
	irqMachineTimer       = 7
	irqMachineExternal    = 11
)

// the gpio line that resets the board
const restartLine = 10

// paths of fixed nodes
const (
	pathHFClock  = "/hfclk"
	pathRTCClock = "/rtcclk"
	pathCPUs     = "/cpus"
	pathSoC      = "/soc"
	pathRestart  = "/gpio-restart"
	pathAliases  = "/aliases"
	pathChosen   = "/chosen"
)

// peripherals with a node of their own, in the order the nodes are created
var peripheralKinds = []string{
	memorymap.KindGPIO,
	memorymap.KindUART,
	memorymap.KindCAN,
	memorymap.KindNVMEM,
	memorymap.KindLVDS,
	memorymap.KindOBT,
	memorymap.KindSRF,
}

// link is a reference property waiting for the second phase
type link struct {
	node  *Node
	name  string
	cells []Cell

	// if not empty the property is the path of this node, not a list of cells
	path string
}

type builder struct {
	tree  *Tree
	soc   *soc.SoC
	opts  Options
	links []link
}

// Build the description of the board.
func Build(s *soc.SoC, opts Options) (*Tree, error) {
	b := &builder{
		tree: NewTree(),
		soc:  s,
		opts: opts,
	}

	if err := b.nodes(); err != nil {
		return nil, curated.Errorf(BuildError, err)
	}
	if err := b.resolve(); err != nil {
		return nil, curated.Errorf(BuildError, err)
	}
	if err := b.tree.Validate(); err != nil {
		return nil, curated.Errorf(BuildError, err)
	}

	return b.tree, nil
}

func (b *builder) reference(n *Node, name string, cells ...Cell) {
	b.links = append(b.links, link{node: n, name: name, cells: cells})
}

func (b *builder) pathString(n *Node, name string, path string) {
	b.links = append(b.links, link{node: n, name: name, path: path})
}

// resolve is the second phase of the build.
func (b *builder) resolve() error {
	for _, l := range b.links {
		var err error
		if l.path != "" {
			err = b.tree.PathString(l.node, l.name, l.path)
		} else {
			err = b.tree.Reference(l.node, l.name, l.cells...)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// reg returns the cells of a reg property with two address and two size
// cells.
func reg(base uint64, size uint64) []uint32 {
	return []uint32{uint32(base >> 32), uint32(base), uint32(size >> 32), uint32(size)}
}

func intcPath(hart int) string {
	return fmt.Sprintf("%s/cpu@%d/interrupt-controller", pathCPUs, hart)
}

// entryPath is the path of the node for a fixed block with a fixed node name.
func entryPath(e memorymap.Entry, name string) string {
	return fmt.Sprintf("%s/%s@%x", pathSoC, name, e.Base)
}

// nodes is the first phase of the build.
func (b *builder) nodes() error {
	t := b.tree

	root := t.Root()
	root.Cells("#address-cells", 2)
	root.Cells("#size-cells", 2)
	root.Strings("compatible", Compatible)
	root.Strings("model", Model)

	for _, clk := range []struct {
		path string
		name string
		freq uint32
	}{
		{path: pathHFClock, name: "hfclk", freq: soc.HFClockFrequency},
		{path: pathRTCClock, name: "rtcclk", freq: soc.RTCClockFrequency},
	} {
		n, err := t.Add(clk.path)
		if err != nil {
			return err
		}
		n.Cells("#clock-cells", 0)
		n.Strings("compatible", "fixed-clock")
		n.Cells("clock-frequency", clk.freq)
		n.Strings("clock-output-names", clk.name)
		t.AssignPhandle(n)
	}

	if err := b.memory(); err != nil {
		return err
	}
	if err := b.cpus(); err != nil {
		return err
	}
	if err := b.onChip(); err != nil {
		return err
	}

	gpio, ok := b.soc.Entry(memorymap.GPIO0)
	if !ok {
		return curated.Errorf(soc.DeviceMissing, memorymap.GPIO0)
	}
	gpioPath, _ := EntryNaming(gpio)

	n, err := t.Add(pathRestart)
	if err != nil {
		return err
	}
	n.Strings("compatible", "gpio-restart")
	b.reference(n, "gpios", Phandle(gpioPath), Value(restartLine), Value(1))

	aliases, err := t.Add(pathAliases)
	if err != nil {
		return err
	}
	for _, e := range b.entries(memorymap.KindUART) {
		path, _ := EntryNaming(e)
		b.pathString(aliases, fmt.Sprintf("serial%d", e.Index), path)
	}

	chosen, err := t.Add(pathChosen)
	if err != nil {
		return err
	}
	if b.opts.Bootargs != "" {
		chosen.Strings("bootargs", b.opts.Bootargs)
	}
	if uart, ok := b.soc.Entry(memorymap.UART0); ok {
		path, _ := EntryNaming(uart)
		b.pathString(chosen, "stdout-path", path)
	}

	return nil
}

func (b *builder) memory() error {
	dram, ok := b.soc.Entry(memorymap.DRAM)
	if !ok {
		return curated.Errorf(soc.DeviceMissing, memorymap.DRAM)
	}

	n, err := b.tree.Add(fmt.Sprintf("/memory@%x", dram.Base))
	if err != nil {
		return err
	}
	n.Strings("device_type", "memory")
	n.Cells("reg", reg(dram.Base, b.soc.DRAMEnd()-dram.Base)...)

	return nil
}

func (b *builder) cpus() error {
	t := b.tree

	cpus, err := t.Add(pathCPUs)
	if err != nil {
		return err
	}
	cpus.Cells("#address-cells", 1)
	cpus.Cells("#size-cells", 0)
	cpus.Cells("timebase-frequency", soc.RTCClockFrequency)

	for _, c := range b.soc.Cores() {
		n, err := t.Add(fmt.Sprintf("%s/cpu@%d", pathCPUs, c.Hart))
		if err != nil {
			return err
		}
		if c.MMU != "" {
			n.Strings("mmu-type", c.MMU)
		}
		n.Strings("riscv,isa", c.ISA)
		n.Strings("compatible", "riscv")
		n.Strings("status", "okay")
		n.Cells("reg", uint32(c.Hart))
		n.Strings("device_type", "cpu")

		intc, err := t.Add(intcPath(c.Hart))
		if err != nil {
			return err
		}
		intc.Cells("#interrupt-cells", 1)
		intc.Flag("interrupt-controller")
		intc.Strings("compatible", "riscv,cpu-intc")
		t.AssignPhandle(intc)
	}

	return nil
}

// entries returns the blocks of the kind in index order.
func (b *builder) entries(kind string) []memorymap.Entry {
	var e []memorymap.Entry
	for _, c := range b.soc.Entries() {
		if c.Kind == kind {
			e = append(e, c)
		}
	}
	sort.SliceStable(e, func(i, j int) bool {
		return e[i].Index < e[j].Index
	})
	return e
}

func (b *builder) onChip() error {
	t := b.tree

	bus, err := t.Add(pathSoC)
	if err != nil {
		return err
	}
	bus.Cells("#address-cells", 2)
	bus.Cells("#size-cells", 2)
	bus.Strings("compatible", "simple-bus")
	bus.Flag("ranges")

	cores := b.soc.Cores()

	clint, ok := b.soc.Entry(memorymap.CLINT)
	if !ok {
		return curated.Errorf(soc.DeviceMissing, memorymap.CLINT)
	}
	n, err := t.Add(entryPath(clint, "clint"))
	if err != nil {
		return err
	}
	n.Strings("compatible", "mdpp,clint0", "riscv,clint0")
	n.Cells("reg", reg(clint.Base, clint.Size)...)

	var cells []Cell
	for _, c := range cores {
		intc := intcPath(c.Hart)
		cells = append(cells, Phandle(intc), Value(irqMachineSoftware), Phandle(intc), Value(irqMachineTimer))
	}
	b.reference(n, "interrupts-extended", cells...)

	pe, ok := b.soc.Entry(memorymap.PRCI)
	if !ok {
		return curated.Errorf(soc.DeviceMissing, memorymap.PRCI)
	}
	prciPath, _ := EntryNaming(pe)
	n, err = t.Add(prciPath)
	if err != nil {
		return err
	}
	n.Strings("compatible", "mdpp,fu540-c000-prci")
	n.Cells("reg", reg(pe.Base, pe.Size)...)
	n.Cells("#clock-cells", 1)
	t.AssignPhandle(n)
	b.reference(n, "clocks", Phandle(pathHFClock), Phandle(pathRTCClock))

	plic, ok := b.soc.Entry(memorymap.PLIC)
	if !ok {
		return curated.Errorf(soc.DeviceMissing, memorymap.PLIC)
	}
	plicPath, _ := EntryNaming(plic)
	n, err = t.Add(plicPath)
	if err != nil {
		return err
	}
	n.Strings("compatible", "mdpp,plic-1.0.0", "riscv,plic0")
	n.Cells("reg", reg(plic.Base, plic.Size)...)
	n.Cells("#interrupt-cells", 1)
	n.Flag("interrupt-controller")
	n.Cells("riscv,ndev", memorymap.InterruptDevices)
	t.AssignPhandle(n)

	// the management hart has no supervisor mode
	cells = nil
	for _, c := range cores {
		intc := intcPath(c.Hart)
		cells = append(cells, Phandle(intc), Value(irqMachineExternal))
		if c.Role != cpu.Management {
			cells = append(cells, Phandle(intc), Value(irqSupervisorExternal))
		}
	}
	b.reference(n, "interrupts-extended", cells...)

	for _, kind := range peripheralKinds {
		for _, e := range b.entries(kind) {
			if err := b.peripheral(e, prciPath, plicPath); err != nil {
				return err
			}
		}
	}

	return nil
}

func (b *builder) peripheral(e memorymap.Entry, prciPath string, plicPath string) error {
	path, compat := EntryNaming(e)

	n, err := b.tree.Add(path)
	if err != nil {
		return err
	}
	n.Strings("compatible", compat)
	n.Cells("reg", reg(e.Base, e.Size)...)
	if irq, ok := b.soc.IRQLine(e.ID); ok {
		n.Cells("interrupts", uint32(irq))
	}

	if e.Kind == memorymap.KindGPIO {
		n.Cells("#interrupt-cells", 2)
		n.Flag("interrupt-controller")
		n.Cells("#gpio-cells", 2)
		n.Flag("gpio-controller")
		b.tree.AssignPhandle(n)
	}

	b.reference(n, "interrupt-parent", Phandle(plicPath))

	switch e.Kind {
	case memorymap.KindGPIO, memorymap.KindUART:
		b.reference(n, "clocks", Phandle(prciPath), Value(prci.ClockTL))
	}

	return nil
}
