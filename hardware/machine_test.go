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

package hardware_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mdpp/socemu/config"
	"github.com/mdpp/socemu/curated"
	"github.com/mdpp/socemu/environment"
	"github.com/mdpp/socemu/hardware"
	"github.com/mdpp/socemu/hardware/bootrom"
	"github.com/mdpp/socemu/hardware/hwdesc"
	"github.com/mdpp/socemu/hardware/loader"
	"github.com/mdpp/socemu/hardware/peripherals/prci"
	"github.com/mdpp/socemu/test"
)

var probe = environment.NewEnvironment(environment.ProbeEmulation)

func platform() config.Platform {
	cfg := config.Default()
	cfg.NoBackends()
	return cfg
}

func image(t *testing.T, name string, size int) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i) | 1
	}
	test.DemandSuccess(t, os.WriteFile(fn, data, 0o644))
	return fn
}

func newMachine(t *testing.T, cfg config.Platform) *hardware.Machine {
	t.Helper()
	m, err := hardware.NewMachine(probe, cfg)
	test.DemandSuccess(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestDefaultMachine(t *testing.T) {
	m := newMachine(t, platform())

	test.ExpectInequality(t, m.Description, (*hwdesc.Tree)(nil))
	test.ExpectEquality(t, m.BlobAddress, uint64(0x47e00000))
	test.ExpectEquality(t, m.StartAddress, uint64(0x40000000))

	// the blob is in RAM
	v, ok := m.SoC.Bus.Read(m.BlobAddress, 4)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, uint64(0xedfe0dd0))

	// the boot rom holds the vector
	v, _ = m.SoC.Bus.Read(0x1000+9*4, 4)
	test.ExpectEquality(t, v, uint64(0x47e00000))
	v, _ = m.SoC.Bus.Read(0x1000+4*4, 4)
	test.ExpectEquality(t, v, uint64(0x0202b583))

	// no kernel so the firmware is told to go nowhere
	v, _ = m.SoC.Bus.Read(0x1000+bootrom.Size+16, 8)
	test.ExpectEquality(t, v, uint64(0))
}

func TestImages(t *testing.T) {
	cfg := platform()
	cfg.Firmware = image(t, "fw.bin", 0x100)
	cfg.Kernel = image(t, "Image", 0x40)
	cfg.MSEL = 0xb

	m := newMachine(t, cfg)
	test.ExpectEquality(t, m.Firmware.Format, loader.Raw)
	test.ExpectEquality(t, m.Firmware.End, uint64(0x40000100))
	test.ExpectEquality(t, m.Kernel.Start, uint64(0x40200000))

	v, _ := m.SoC.Bus.Read(0x1000, 4)
	test.ExpectEquality(t, v, uint64(0xb))
	v, _ = m.SoC.Bus.Read(0x1000+bootrom.Size+16, 8)
	test.ExpectEquality(t, v, uint64(0x40200000))

	v, _ = m.SoC.Bus.Read(0x40200000, 1)
	test.ExpectEquality(t, v, uint64(1))

	// a 32 bit platform aligns the kernel to a larger boundary
	cfg.Width = 32
	m = newMachine(t, cfg)
	test.ExpectEquality(t, m.Kernel.Start, uint64(0x40400000))
	v, _ = m.SoC.Bus.Read(0x1000+bootrom.Size+8, 4)
	test.ExpectEquality(t, v, uint64(0x40400000))
	v, _ = m.SoC.Bus.Read(0x1000+4*4, 4)
	test.ExpectEquality(t, v, uint64(0x0202a583))
}

func TestStartInFlash(t *testing.T) {
	cfg := platform()
	cfg.StartInFlash = true
	m := newMachine(t, cfg)

	test.ExpectEquality(t, m.StartAddress, uint64(0x80601a00))
	v, _ := m.SoC.Bus.Read(0x1000+7*4, 4)
	test.ExpectEquality(t, v, uint64(0x80601a00))
}

func TestMissingImage(t *testing.T) {
	cfg := platform()
	cfg.Kernel = filepath.Join(t.TempDir(), "missing")
	_, err := hardware.NewMachine(probe, cfg)
	test.ExpectSuccess(t, curated.Has(err, loader.LoadError))
}

func TestOverlap(t *testing.T) {
	cfg := platform()
	cfg.RAMSize = 2 * config.MiB
	cfg.Firmware = image(t, "fw.bin", 0x1000)
	_, err := hardware.NewMachine(probe, cfg)
	test.ExpectSuccess(t, curated.Has(err, hardware.ImageOverlap))
}

func TestExternalDescription(t *testing.T) {
	tree := hwdesc.NewTree()
	tree.Root().Strings("model", "external")
	fn := filepath.Join(t.TempDir(), "board.dtb")
	test.DemandSuccess(t, os.WriteFile(fn, tree.Encode(), 0o644))

	cfg := platform()
	cfg.DTB = fn
	m := newMachine(t, cfg)
	test.ExpectEquality(t, m.Description, (*hwdesc.Tree)(nil))
	test.ExpectEquality(t, len(m.Blob), len(tree.Encode()))

	cfg.DTB = image(t, "bad.dtb", 64)
	_, err := hardware.NewMachine(probe, cfg)
	test.ExpectSuccess(t, curated.Has(err, hwdesc.BlobError))
}

func TestReset(t *testing.T) {
	cfg := platform()
	cfg.Kernel = image(t, "Image", 0x40)
	m := newMachine(t, cfg)

	m.SoC.Bus.Write(m.BlobAddress, 4, 0)
	m.SoC.Bus.Write(0x40200000, 4, 0)
	m.SoC.Bus.Write(0x10000024, 4, 0)

	test.DemandSuccess(t, m.Reset())

	v, _ := m.SoC.Bus.Read(m.BlobAddress, 4)
	test.ExpectEquality(t, v, uint64(0xedfe0dd0))
	v, _ = m.SoC.Bus.Read(0x40200000, 1)
	test.ExpectEquality(t, v, uint64(1))
	test.ExpectEquality(t, m.SoC.PRCI.State().CORECLKSEL, uint32(prci.ResetCORECLKSEL))
}
