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

package hardware

import (
	"context"
	"fmt"
	"strings"

	"github.com/mdpp/socemu/config"
	"github.com/mdpp/socemu/curated"
	"github.com/mdpp/socemu/environment"
	"github.com/mdpp/socemu/hardware/bootrom"
	"github.com/mdpp/socemu/hardware/cpu"
	"github.com/mdpp/socemu/hardware/hwdesc"
	"github.com/mdpp/socemu/hardware/loader"
	"github.com/mdpp/socemu/hardware/memory/memorymap"
	"github.com/mdpp/socemu/hardware/soc"
	"github.com/mdpp/socemu/logger"
)

// Sentinal error patterns.
const (
	MachineError   = "machine: %v"
	NoRoomForBlob  = "machine: description of %d bytes does not fit in RAM"
	ImageOverlap   = "machine: %s overlaps the description at %#x"
	DescriptionErr = "machine: description: %v"
)

// Tag used for logging.
const Tag = "machine"

// Placement constraints of the boot images.
const (
	// the description is placed below this address even if RAM extends
	// further, so that a 32 bit kernel can reach it
	blobCeiling   = uint64(3 * config.GiB)
	blobAlignment = uint64(2 * config.MiB)

	kernelAlignment32 = uint64(4 * config.MiB)
	kernelAlignment64 = uint64(2 * config.MiB)
)

// Machine is a board ready to run: composed, described and with the boot
// images in place.
type Machine struct {
	env *environment.Environment

	Config config.Platform
	SoC    *soc.SoC

	// the generated description. nil if an external blob is used
	Description *hwdesc.Tree

	// the blob placed in RAM and its address
	Blob        []byte
	BlobAddress uint64

	// address the boot vector jumps to
	StartAddress uint64

	Vector   bootrom.Vector
	Firmware loader.Image
	Kernel   loader.Image

	// cached images for reset
	firmware *loader.Loader
	kernel   *loader.Loader
}

// NewMachine composes the board described by the configuration and prepares
// it for the first instruction. Any error is fatal and the returned machine
// is nil.
func NewMachine(env *environment.Environment, cfg config.Platform) (*Machine, error) {
	s, err := soc.Compose(env, cfg)
	if err != nil {
		return nil, curated.Errorf(MachineError, err)
	}

	m := &Machine{
		env:    env,
		Config: cfg,
		SoC:    s,
	}

	if cfg.HasFirmware() {
		l := loader.NewLoader(cfg.Firmware)
		m.firmware = &l
	}
	if cfg.Kernel != "" {
		l := loader.NewLoader(cfg.Kernel)
		m.kernel = &l
	}

	if err := m.describe(); err != nil {
		s.Close()
		return nil, curated.Errorf(MachineError, err)
	}

	if err := m.boot(); err != nil {
		s.Close()
		return nil, curated.Errorf(MachineError, err)
	}

	return m, nil
}

// describe builds the description, or reads the external one, and decides
// where it is to be placed.
func (m *Machine) describe() error {
	if m.Config.DTB != "" {
		l := loader.NewLoader(m.Config.DTB)
		if err := l.Fetch(); err != nil {
			return curated.Errorf(DescriptionErr, err)
		}
		if err := hwdesc.CheckBlob(l.Data); err != nil {
			return curated.Errorf(DescriptionErr, err)
		}
		m.Blob = l.Data
		logger.Logf(m.env, Tag, "using external description %s", l.Filename)
	} else {
		tree, err := hwdesc.Build(m.SoC, hwdesc.Options{Bootargs: m.Config.Append})
		if err != nil {
			return err
		}
		m.Description = tree
		m.Blob = tree.Encode()
	}

	dram := memorymap.Lookup(memorymap.DRAM)
	end := m.SoC.DRAMEnd()
	if end > blobCeiling {
		end = blobCeiling
	}

	size := uint64(len(m.Blob))
	if size > end-dram.Base {
		return curated.Errorf(NoRoomForBlob, size)
	}
	m.BlobAddress = (end - size) &^ (blobAlignment - 1)
	if m.BlobAddress < dram.Base {
		return curated.Errorf(NoRoomForBlob, size)
	}

	return nil
}

// boot places the description and the images in memory and installs the
// boot ROM. Called on creation and on every reset.
func (m *Machine) boot() error {
	if err := m.SoC.Bus.LoadAt(m.BlobAddress, m.Blob); err != nil {
		return err
	}
	logger.Logf(m.env, Tag, "description: %d bytes at %#x", len(m.Blob), m.BlobAddress)

	dram := memorymap.Lookup(memorymap.DRAM)

	firmwareEnd := dram.Base
	if m.firmware != nil {
		img, err := m.firmware.Place(m.SoC.Bus, dram.Base)
		if err != nil {
			return err
		}
		if err := m.checkOverlap(img); err != nil {
			return err
		}
		m.Firmware = img
		firmwareEnd = img.End
		logger.Logf(m.env, Tag, "firmware: %s", img)
	}

	var kernelEntry uint64
	if m.kernel != nil {
		align := kernelAlignment64
		if m.SoC.Width == cpu.Width32 {
			align = kernelAlignment32
		}
		addr := (firmwareEnd + align - 1) &^ (align - 1)

		img, err := m.kernel.Place(m.SoC.Bus, addr)
		if err != nil {
			return err
		}
		if err := m.checkOverlap(img); err != nil {
			return err
		}
		m.Kernel = img
		kernelEntry = img.Entry
		logger.Logf(m.env, Tag, "kernel: %s", img)
	}

	start := dram.Base
	if m.Config.StartInFlash {
		start = memorymap.Lookup(memorymap.NVMEM0).Base
	}

	m.StartAddress = start
	m.Vector = bootrom.NewVector(bootrom.Params{
		Width: m.SoC.Width,
		MSEL:  m.Config.MSEL,
		Start: start,
		FDT:   m.BlobAddress,
	})

	return bootrom.Install(m.SoC.ROM, m.Vector, bootrom.FirmwareInfo(m.SoC.Width, kernelEntry))
}

// checkOverlap checks that an image does not overlap the description.
func (m *Machine) checkOverlap(img loader.Image) error {
	blobEnd := m.BlobAddress + uint64(len(m.Blob))
	if img.Start < blobEnd && img.End > m.BlobAddress {
		return curated.Errorf(ImageOverlap, img.Filename, m.BlobAddress)
	}
	return nil
}

// Reset the machine to the state it was in when it was created. Every device
// is reset and the images are placed again. Images are not read again from
// their source.
func (m *Machine) Reset() error {
	m.SoC.Reset()
	if err := m.boot(); err != nil {
		return curated.Errorf(MachineError, err)
	}
	return nil
}

// Start the backends of the board. They stop when the context is cancelled or
// the machine is closed.
func (m *Machine) Start(ctx context.Context) {
	m.SoC.Start(ctx)
}

// Close the machine and release every backend.
func (m *Machine) Close() error {
	return m.SoC.Close()
}

// Summary returns a multiline description of the machine's boot state.
func (m *Machine) Summary() string {
	s := strings.Builder{}
	for _, c := range m.SoC.Cores() {
		fmt.Fprintf(&s, "%s\n", c)
	}
	fmt.Fprintf(&s, "ram: %s at %#x\n", m.Config.RAMSize, memorymap.DRAMBase)
	if m.Description == nil {
		fmt.Fprintf(&s, "description: %s (%d bytes) at %#x\n", m.Config.DTB, len(m.Blob), m.BlobAddress)
	} else {
		fmt.Fprintf(&s, "description: %d bytes at %#x\n", len(m.Blob), m.BlobAddress)
	}
	if m.firmware != nil {
		fmt.Fprintf(&s, "firmware: %s\n", m.Firmware)
	}
	if m.kernel != nil {
		fmt.Fprintf(&s, "kernel: %s\n", m.Kernel)
	}
	fmt.Fprintf(&s, "start: %#x\n", m.StartAddress)
	return s.String()
}
