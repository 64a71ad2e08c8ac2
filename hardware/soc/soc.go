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

package soc

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/mdpp/socemu/config"
	"github.com/mdpp/socemu/curated"
	"github.com/mdpp/socemu/environment"
	"github.com/mdpp/socemu/hardware/cpu"
	"github.com/mdpp/socemu/hardware/interrupts"
	"github.com/mdpp/socemu/hardware/memory"
	"github.com/mdpp/socemu/hardware/memory/bus"
	"github.com/mdpp/socemu/hardware/memory/memorymap"
	"github.com/mdpp/socemu/hardware/peripherals/can"
	"github.com/mdpp/socemu/hardware/peripherals/lvds"
	"github.com/mdpp/socemu/hardware/peripherals/nvmem"
	"github.com/mdpp/socemu/hardware/peripherals/prci"
	"github.com/mdpp/socemu/hardware/peripherals/unimplemented"
	"github.com/mdpp/socemu/logger"
	"github.com/mdpp/socemu/transport"
	"golang.org/x/exp/maps"
)

// Sentinal error patterns.
const (
	ComposeError    = "soc: %v"
	InvalidPlatform = "soc: cannot compose: %v"
	DeviceMissing   = "soc: no device for %s"
	DuplicateEntry  = "soc: %s appears more than once in the address map"
	RAMTooLarge     = "soc: %s of %s does not fit the %#x byte window"
	BadIndex        = "soc: %s has no instance slot %d"
)

// ResetVector is the address at which every core starts executing. It is the
// second word of the boot ROM, the first word being the boot-mode pins.
const ResetVector = 0x1004

// Frequencies of the fixed clocks.
const (
	HFClockFrequency  = 33333333
	RTCClockFrequency = 1000000
)

// Tag used for logging.
const Tag = "soc"

// SoC is the composed board.
type SoC struct {
	env *environment.Environment

	Width cpu.Width

	Bus *bus.AddressSpace
	IRQ *interrupts.Lines

	Management *cpu.Cluster
	Compute    *cpu.Cluster

	RAM   *memory.RAM
	ROM   *memory.ROM
	PRCI  *prci.PRCI
	CAN   [2]*can.CAN
	NVMEM [2]*nvmem.NVMEM
	LVDS  [2]*lvds.LVDS

	// the address map used to compose the board
	entries []memorymap.Entry

	// device to interrupt controller line. read-only after composition
	wiring map[memorymap.ID]int

	// CAN endpoints waiting for Start()
	canEndpoints [2]transport.Endpoint

	// the background goroutines started by Start()
	listeners sync.WaitGroup
	cancel    context.CancelFunc

	closers []io.Closer
}

// Compose the board using the standard address map.
func Compose(env *environment.Environment, cfg config.Platform) (*SoC, error) {
	return ComposeMap(env, cfg, memorymap.Table())
}

// ComposeMap composes the board using the specified address map. The map must
// contain every block of the standard map. Used to check that a modified map
// is rejected.
func ComposeMap(env *environment.Environment, cfg config.Platform, table []memorymap.Entry) (*SoC, error) {
	if err := cfg.Validate(); err != nil {
		return nil, curated.Errorf(InvalidPlatform, err)
	}

	s := &SoC{
		env:     env,
		Width:   cpu.Width(cfg.Width),
		Bus:     bus.NewAddressSpace(memorymap.PhysicalAddressBits, env),
		IRQ:     interrupts.NewLines(memorymap.InterruptSources),
		entries: table,
		wiring:  make(map[memorymap.ID]int),
	}

	var err error

	s.Management, err = cpu.NewCluster("management", cpu.Management, s.Width, 0, 1, ResetVector)
	if err != nil {
		return nil, curated.Errorf(ComposeError, err)
	}

	s.Compute, err = cpu.NewCluster("compute", cpu.Compute, s.Width, s.Management.Len(), cfg.ComputeCores, ResetVector)
	if err != nil {
		return nil, curated.Errorf(ComposeError, err)
	}

	err = s.mapDevices(cfg)
	if err != nil {
		return nil, curated.Errorf(ComposeError, err)
	}

	s.attachBackends(cfg)
	s.Bus.Seal()

	return s, nil
}

// line returns the interrupt output for the entry and records it in the
// wiring table.
func (s *SoC) line(e memorymap.Entry) interrupts.Line {
	if e.IRQ == 0 {
		return interrupts.Line{}
	}
	s.wiring[e.ID] = e.IRQ
	return interrupts.NewLine(s.IRQ, e.IRQ)
}

// mapDevices creates every device named in the address map and maps it. The
// interrupt output of every wired device is connected to the controller.
func (s *SoC) mapDevices(cfg config.Platform) error {
	seen := make(map[memorymap.ID]bool)

	for _, e := range s.entries {
		if seen[e.ID] {
			return curated.Errorf(DuplicateEntry, e.ID)
		}
		seen[e.ID] = true

		var dev bus.Device
		size := e.Size

		if err := s.checkIndex(e); err != nil {
			return err
		}

		switch e.Kind {
		case memorymap.KindDRAM:
			if uint64(cfg.RAMSize) > e.Size {
				return curated.Errorf(RAMTooLarge, e.Name(), cfg.RAMSize, e.Size)
			}
			size = uint64(cfg.RAMSize)
			s.RAM = memory.NewRAM(e.Name(), size, s.env)
			dev = s.RAM

		case memorymap.KindMROM:
			s.ROM = memory.NewROM(e.Name(), e.Size, s.env)
			dev = s.ROM

		case memorymap.KindPRCI:
			s.PRCI = prci.NewPRCI(e.Name(), s.env)
			dev = s.PRCI

		case memorymap.KindCAN:
			s.CAN[e.Index] = can.NewCAN(e.Name(), s.line(e), s.env)
			dev = s.CAN[e.Index]

		case memorymap.KindNVMEM:
			s.line(e)
			s.NVMEM[e.Index] = nvmem.New(e.Name(), e.Size, s.env)
			dev = s.NVMEM[e.Index]

		case memorymap.KindLVDS:
			s.line(e)
			s.LVDS[e.Index] = lvds.NewLVDS(e.Name(), nil, s.env)
			dev = s.LVDS[e.Index]

		default:
			s.line(e)
			dev = unimplemented.New(e.Name(), e.Size, s.env)
		}

		if err := s.Bus.Map(e.Name(), e.Base, size, dev); err != nil {
			return err
		}
	}

	for _, id := range []memorymap.ID{memorymap.DRAM, memorymap.MROM, memorymap.PRCI,
		memorymap.CAN0, memorymap.CAN1, memorymap.NVMEM0, memorymap.NVMEM1,
		memorymap.LVDS0, memorymap.LVDS1} {
		if !seen[id] {
			return curated.Errorf(DeviceMissing, id)
		}
	}

	return nil
}

// checkIndex fails if the entry names an instance the board has no slot for.
func (s *SoC) checkIndex(e memorymap.Entry) error {
	var slots int
	switch e.Kind {
	case memorymap.KindCAN:
		slots = len(s.CAN)
	case memorymap.KindNVMEM:
		slots = len(s.NVMEM)
	case memorymap.KindLVDS:
		slots = len(s.LVDS)
	default:
		return nil
	}
	if e.Index < 0 || e.Index >= slots {
		return curated.Errorf(BadIndex, e.Kind, e.Index)
	}
	return nil
}

// degrade replaces a peripheral whose backend could not be attached with an
// unimplemented window.
func (s *SoC) degrade(name string, err error) {
	logger.Logf(s.env, Tag, "%s: backend failed, using unimplemented device: %v", name, err)
	r, ok := s.Bus.Find(name)
	if !ok {
		return
	}
	_ = s.Bus.Remap(name, unimplemented.New(name, r.Size, s.env))
}

func (s *SoC) attachBackends(cfg config.Platform) {
	for n := range s.CAN {
		port := cfg.CANPort(n)
		if port == 0 {
			continue
		}
		name := s.CAN[n].Registers().Name()
		ep, err := transport.ListenUDP(port)
		if err != nil {
			s.degrade(name, err)
			s.CAN[n] = nil
			continue
		}
		s.canEndpoints[n] = ep
		logger.Logf(s.env, Tag, "%s: receiving frames on %s", name, ep)
	}

	for n := range s.LVDS {
		var ep transport.Endpoint
		var err error

		port, tty := cfg.LVDSBackend(n)
		switch {
		case tty != "":
			ep, err = transport.OpenTTY(tty)
		case port != 0:
			ep, err = transport.DialTCP(port)
		default:
			continue
		}

		name := s.LVDS[n].Registers().Name()
		if err != nil {
			s.degrade(name, err)
			s.LVDS[n] = nil
			continue
		}

		s.LVDS[n] = lvds.NewLVDS(name, ep, s.env)
		_ = s.Bus.Remap(name, s.LVDS[n])
		s.closers = append(s.closers, s.LVDS[n])
		logger.Logf(s.env, Tag, "%s: linked to %s", name, ep)
	}

	for n := range s.NVMEM {
		path := cfg.NVMEMFile(n)
		if path == "" {
			continue
		}

		name := s.NVMEM[n].Name()
		r, _ := s.Bus.Find(name)
		nv, err := nvmem.Open(name, r.Size, path, s.env)
		if err != nil {
			s.degrade(name, err)
			s.NVMEM[n] = nil
			continue
		}

		s.NVMEM[n] = nv
		_ = s.Bus.Remap(name, nv)
		s.closers = append(s.closers, nv)
		logger.Logf(s.env, Tag, "%s: backed by %s", name, path)
	}
}

// Start the receive loops of the attached backends. The loops stop when the
// context is cancelled or when Close() is called.
func (s *SoC) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	for n, ep := range s.canEndpoints {
		if ep == nil || s.CAN[n] == nil {
			continue
		}
		s.canEndpoints[n] = nil

		s.listeners.Add(1)
		go func(c *can.CAN, ep transport.Endpoint) {
			defer s.listeners.Done()
			if err := can.Listen(ctx, c, ep, s.env); err != nil {
				logger.Logf(s.env, Tag, "%s: %v", c.Registers().Name(), err)
			}
		}(s.CAN[n], ep)
	}
}

// Close releases every backend.
func (s *SoC) Close() error {
	if s.cancel != nil {
		s.cancel()
	}

	// endpoints that were never started
	for n, ep := range s.canEndpoints {
		if ep != nil {
			ep.Close()
			s.canEndpoints[n] = nil
		}
	}

	s.listeners.Wait()

	var err error
	for _, c := range s.closers {
		if e := c.Close(); e != nil && err == nil {
			err = e
		}
	}
	s.closers = nil

	return err
}

// Reset every device to its power-on state and deassert every interrupt
// line. The contents of the boot ROM are preserved.
func (s *SoC) Reset() {
	s.IRQ.Reset()
	s.Bus.Reset()
}

// Cores returns every core of the board in hart order.
func (s *SoC) Cores() []cpu.Core {
	c := make([]cpu.Core, 0, s.Management.Len()+s.Compute.Len())
	c = append(c, s.Management.Cores...)
	c = append(c, s.Compute.Cores...)
	return c
}

// Entries returns the address map used to compose the board, in the order it
// was given.
func (s *SoC) Entries() []memorymap.Entry {
	e := make([]memorymap.Entry, len(s.entries))
	copy(e, s.entries)
	return e
}

// Entry returns the address map entry for the ID.
func (s *SoC) Entry(id memorymap.ID) (memorymap.Entry, bool) {
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return memorymap.Entry{}, false
}

// Wiring returns a copy of the interrupt wiring.
func (s *SoC) Wiring() map[memorymap.ID]int {
	return maps.Clone(s.wiring)
}

// IRQLine returns the interrupt controller line the device is wired to.
func (s *SoC) IRQLine(id memorymap.ID) (int, bool) {
	n, ok := s.wiring[id]
	return n, ok
}

// WiringSummary returns the interrupt wiring as a multiline string, in line
// order.
func (s *SoC) WiringSummary() string {
	ids := maps.Keys(s.wiring)
	sort.Slice(ids, func(i, j int) bool {
		return s.wiring[ids[i]] < s.wiring[ids[j]]
	})

	var w string
	for _, id := range ids {
		w += fmt.Sprintf("%2d\t%s\n", s.wiring[id], id)
	}
	return w
}

// DRAMEnd returns the first address after the mapped RAM.
func (s *SoC) DRAMEnd() uint64 {
	r, _ := s.Bus.Find(memorymap.Lookup(memorymap.DRAM).Name())
	return r.End()
}
