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

package soc_test

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/mdpp/socemu/config"
	"github.com/mdpp/socemu/curated"
	"github.com/mdpp/socemu/environment"
	"github.com/mdpp/socemu/hardware/cpu"
	"github.com/mdpp/socemu/hardware/memory/bus"
	"github.com/mdpp/socemu/hardware/memory/memorymap"
	"github.com/mdpp/socemu/hardware/peripherals/can"
	"github.com/mdpp/socemu/hardware/peripherals/prci"
	"github.com/mdpp/socemu/hardware/peripherals/unimplemented"
	"github.com/mdpp/socemu/hardware/soc"
	"github.com/mdpp/socemu/test"
)

var probe = environment.NewEnvironment(environment.ProbeEmulation)

func platform() config.Platform {
	cfg := config.Default()
	cfg.NoBackends()
	return cfg
}

func TestCompose(t *testing.T) {
	s, err := soc.Compose(probe, platform())
	test.DemandSuccess(t, err)
	defer s.Close()

	test.ExpectSuccess(t, s.Bus.IsSealed())
	test.ExpectEquality(t, len(s.Bus.Regions()), len(memorymap.Table()))

	// every region decodes to a device
	for _, r := range s.Bus.Regions() {
		test.ExpectInequality(t, r.Device, bus.Device(nil), r.Name)
	}

	dram, ok := s.Bus.Find("dram")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, dram.Size, uint64(128*config.MiB))
	test.ExpectEquality(t, s.DRAMEnd(), uint64(0x48000000))

	// the PRCI is reachable through the address space at its power-on state
	v, ok := s.Bus.Read(0x10000004, 4)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, uint64(prci.ResetPLLCFG0))

	// unmodelled blocks are unimplemented windows
	uart, ok := s.Bus.Lookup(0xfc001100)
	test.DemandSuccess(t, ok)
	_, ok = uart.Device.(*unimplemented.Device)
	test.ExpectSuccess(t, ok)
}

func TestClusters(t *testing.T) {
	cfg := platform()
	cfg.ComputeCores = 2
	cfg.Width = 32

	s, err := soc.Compose(probe, cfg)
	test.DemandSuccess(t, err)
	defer s.Close()

	cores := s.Cores()
	test.DemandEquality(t, len(cores), 3)
	test.ExpectEquality(t, cores[0].Role, cpu.Management)
	test.ExpectEquality(t, cores[0].Hart, 0)
	test.ExpectEquality(t, cores[1].Role, cpu.Compute)
	test.ExpectEquality(t, cores[2].Hart, 2)
	test.ExpectEquality(t, cores[2].ISA, "rv32imafdc")
	for _, c := range cores {
		test.ExpectEquality(t, c.ResetVector, uint64(soc.ResetVector))
	}
}

func TestInvalidPlatform(t *testing.T) {
	cfg := platform()
	cfg.ComputeCores = 5
	_, err := soc.Compose(probe, cfg)
	test.ExpectSuccess(t, curated.Is(err, soc.InvalidPlatform))
	test.ExpectSuccess(t, curated.Has(err, config.InvalidPlatform))
}

func TestWiring(t *testing.T) {
	s, err := soc.Compose(probe, platform())
	test.DemandSuccess(t, err)
	defer s.Close()

	expected := map[memorymap.ID]int{
		memorymap.UART0: 1, memorymap.UART1: 8, memorymap.UART2: 9,
		memorymap.UART3: 10, memorymap.UART4: 11, memorymap.UART5: 12,
		memorymap.NVMEM0: 17, memorymap.NVMEM1: 18,
		memorymap.LVDS0: 19, memorymap.LVDS1: 20,
		memorymap.GPIO0: 21, memorymap.GPIO1: 22,
		memorymap.CAN0: 23, memorymap.CAN1: 24,
		memorymap.OBT: 25, memorymap.SRF: 26,
	}

	w := s.Wiring()
	test.ExpectEquality(t, len(w), len(expected))
	for id, n := range expected {
		test.ExpectEquality(t, w[id], n, id)
	}

	// the copy cannot change the board
	w[memorymap.CAN0] = 2
	n, ok := s.IRQLine(memorymap.CAN0)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, n, 23)

	_, ok = s.IRQLine(memorymap.PRCI)
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, s.IRQ.Sources(), 54)

	// a transmit request on CAN1 raises line 24
	s.Bus.Write(0x80500280+can.Command, 4, can.CommandTransmitRequest)
	test.ExpectSuccess(t, s.IRQ.Level(24))
	test.ExpectFailure(t, s.IRQ.Level(23))
}

func TestOverlap(t *testing.T) {
	table := memorymap.Table()
	for i := range table {
		if table[i].ID == memorymap.CAN1 {
			// pre-redesign spacing of the CAN controllers
			table[i].Base = 0x80500220
		}
	}

	_, err := soc.ComposeMap(probe, platform(), table)
	test.ExpectSuccess(t, curated.Is(err, soc.ComposeError))
	test.ExpectSuccess(t, curated.Has(err, bus.RegionOverlap))
}

func TestOutOfRange(t *testing.T) {
	table := memorymap.Table()
	table[0].Base = 1 << memorymap.PhysicalAddressBits

	_, err := soc.ComposeMap(probe, platform(), table)
	test.ExpectSuccess(t, curated.Has(err, bus.RegionOutOfRange))
}

func TestMissingDevice(t *testing.T) {
	var table []memorymap.Entry
	for _, e := range memorymap.Table() {
		if e.ID != memorymap.PRCI {
			table = append(table, e)
		}
	}

	_, err := soc.ComposeMap(probe, platform(), table)
	test.ExpectSuccess(t, curated.Has(err, soc.DeviceMissing))

	// instances outside the fixed slots
	for _, kind := range []string{memorymap.KindCAN, memorymap.KindNVMEM, memorymap.KindLVDS} {
		for _, index := range []int{2, -1} {
			table = append(memorymap.Table(), memorymap.Entry{
				ID: 100, Kind: kind, Index: index, Base: 0x80700000, Size: 0x80, IRQ: 30,
			})
			_, err = soc.ComposeMap(probe, platform(), table)
			test.ExpectSuccess(t, curated.Has(err, soc.BadIndex), kind, index)
		}
	}
}

func TestReset(t *testing.T) {
	s, err := soc.Compose(probe, platform())
	test.DemandSuccess(t, err)
	defer s.Close()

	s.Bus.Write(0x10000024, 4, 0)
	s.Bus.Write(0x80500200+can.Command, 4, can.CommandTransmitRequest)
	test.ExpectSuccess(t, s.IRQ.Level(23))

	s.Reset()
	test.ExpectEquality(t, s.PRCI.State().CORECLKSEL, uint32(prci.ResetCORECLKSEL))
	test.ExpectFailure(t, s.IRQ.Level(23))
	test.ExpectEquality(t, s.CAN[0].State().Status, uint32(0))
}

func freeUDPPort(t *testing.T) int {
	c, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	test.DemandSuccess(t, err)
	defer c.Close()
	return c.LocalAddr().(*net.UDPAddr).Port
}

func TestDegradedBackends(t *testing.T) {
	// occupy a UDP port so that CAN0 cannot bind it
	busy, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	test.DemandSuccess(t, err)
	defer busy.Close()

	// a TCP port with nothing listening
	l, err := net.Listen("tcp", "localhost:0")
	test.DemandSuccess(t, err)
	closedPort := l.Addr().(*net.TCPAddr).Port
	l.Close()

	cfg := platform()
	cfg.CAN0UDPPort = busy.LocalAddr().(*net.UDPAddr).Port
	cfg.LVDS1TCPPort = closedPort
	cfg.NVMEM0File = filepath.Join(t.TempDir(), "missing", "nvmem0.img")

	s, err := soc.Compose(probe, cfg)
	test.DemandSuccess(t, err)
	defer s.Close()

	test.ExpectSuccess(t, s.CAN[0] == nil)
	test.ExpectSuccess(t, s.CAN[1] != nil)
	test.ExpectSuccess(t, s.LVDS[1] == nil)
	test.ExpectSuccess(t, s.NVMEM[0] == nil)

	for _, addr := range []uint64{0x80500200, 0x80603000, 0x80601a00} {
		r, ok := s.Bus.Lookup(addr)
		test.DemandSuccess(t, ok)
		_, ok = r.Device.(*unimplemented.Device)
		test.ExpectSuccess(t, ok, r.Name)
	}
}

func TestBackends(t *testing.T) {
	cfg := platform()
	cfg.CAN1UDPPort = freeUDPPort(t)
	cfg.NVMEM1File = filepath.Join(t.TempDir(), "nvmem1.img")

	s, err := soc.Compose(probe, cfg)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, s.NVMEM[1].Path(), cfg.NVMEM1File)
	s.Start(context.Background())

	conn, err := net.DialUDP("udp", nil, &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: cfg.CAN1UDPPort})
	test.DemandSuccess(t, err)
	defer conn.Close()

	_, err = conn.Write(can.NewFrame(0x100, []byte{0x77}).Encode())
	test.DemandSuccess(t, err)

	deadline := time.Now().Add(time.Second)
	for !s.IRQ.Level(24) && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	test.ExpectSuccess(t, s.IRQ.Level(24))

	v, _ := s.Bus.Read(0x80500280+can.RxData, 4)
	test.ExpectEquality(t, v, uint64(0x77))

	test.ExpectSuccess(t, s.Close())
}

func TestWiringSummary(t *testing.T) {
	s, err := soc.Compose(probe, platform())
	test.DemandSuccess(t, err)
	defer s.Close()

	test.ExpectEquality(t, s.WiringSummary()[:9], " 1\tuart0\n")
}
