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

package config

import (
	"fmt"
	"io"
	"os"

	"github.com/mdpp/socemu/curated"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Sentinal error patterns.
const (
	LoadError       = "config: %v"
	UnknownProperty = "config: unknown property: %s"
	InvalidProperty = "config: property %s: %v"
	InvalidPlatform = "config: invalid platform: %s"
)

// NoFirmware is the firmware path that means no firmware is to be loaded.
const NoFirmware = "none"

// Limits of the board.
const (
	MinComputeCores = 1
	MaxComputeCores = 4
	MaxRAMSize      = GiB
)

// Platform describes one machine.
type Platform struct {
	// number of cores in the compute cluster. the management cluster always
	// has exactly one core
	ComputeCores int `yaml:"compute-cores"`

	// the word width of the platform: 32 or 64
	Width int `yaml:"width"`

	// value of the boot-mode pins
	MSEL uint32 `yaml:"msel"`

	// boot directly from the first NVMEM window
	StartInFlash bool `yaml:"start-in-flash"`

	RAMSize Size `yaml:"ram-size"`

	// host backends. a zero port or an empty path means no backend
	CAN0UDPPort  int    `yaml:"can0-udp-port"`
	CAN1UDPPort  int    `yaml:"can1-udp-port"`
	LVDS0TCPPort int    `yaml:"lvds0-tcp-port"`
	LVDS1TCPPort int    `yaml:"lvds1-tcp-port"`
	LVDS0TTY     string `yaml:"lvds0-tty"`
	LVDS1TTY     string `yaml:"lvds1-tty"`
	NVMEM0File   string `yaml:"nvmem0-file"`
	NVMEM1File   string `yaml:"nvmem1-file"`

	// images to boot. Firmware may be NoFirmware
	Firmware string `yaml:"firmware"`
	Kernel   string `yaml:"kernel"`
	Append   string `yaml:"append"`

	// an external description blob used instead of the generated one
	DTB string `yaml:"dtb"`
}

// Default returns the default configuration of the board.
func Default() Platform {
	return Platform{
		ComputeCores: MaxComputeCores,
		Width:        64,
		RAMSize:      128 * MiB,
		CAN0UDPPort:  15000,
		CAN1UDPPort:  15001,
		LVDS0TCPPort: 16000,
		LVDS1TCPPort: 16001,
		NVMEM0File:   "/tmp/nvmem0.img",
		NVMEM1File:   "/tmp/nvmem1.img",
		Firmware:     NoFirmware,
	}
}

// Load a platform from a YAML file. Fields missing from the file keep their
// default value. Unknown fields are an error.
func Load(path string) (Platform, error) {
	f, err := os.Open(path)
	if err != nil {
		return Platform{}, curated.Errorf(LoadError, errors.Wrap(err, "opening platform file"))
	}
	defer f.Close()

	return Read(f)
}

// Read a platform in YAML form from an io.Reader. See Load().
func Read(r io.Reader) (Platform, error) {
	p := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(&p)
	if err != nil && err != io.EOF {
		return Platform{}, curated.Errorf(LoadError, err)
	}

	return p, nil
}

// Write the platform in YAML form.
func (p Platform) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return curated.Errorf(LoadError, err)
	}
	return enc.Close()
}

// NoBackends removes every host backend from the platform. Used for machines
// that are composed only to be inspected.
func (p *Platform) NoBackends() {
	p.CAN0UDPPort = 0
	p.CAN1UDPPort = 0
	p.LVDS0TCPPort = 0
	p.LVDS1TCPPort = 0
	p.LVDS0TTY = ""
	p.LVDS1TTY = ""
	p.NVMEM0File = ""
	p.NVMEM1File = ""
}

// CANPort returns the UDP port of CAN controller n.
func (p Platform) CANPort(n int) int {
	if n == 0 {
		return p.CAN0UDPPort
	}
	return p.CAN1UDPPort
}

// LVDSBackend returns the TCP port and tty path of LVDS link n.
func (p Platform) LVDSBackend(n int) (int, string) {
	if n == 0 {
		return p.LVDS0TCPPort, p.LVDS0TTY
	}
	return p.LVDS1TCPPort, p.LVDS1TTY
}

// NVMEMFile returns the backing file of NVMEM window n.
func (p Platform) NVMEMFile(n int) string {
	if n == 0 {
		return p.NVMEM0File
	}
	return p.NVMEM1File
}

// HasFirmware returns true if a firmware image is to be loaded.
func (p Platform) HasFirmware() bool {
	return p.Firmware != "" && p.Firmware != NoFirmware
}

// Validate checks the platform for values that the board cannot support.
func (p Platform) Validate() error {
	if p.ComputeCores < MinComputeCores || p.ComputeCores > MaxComputeCores {
		return curated.Errorf(InvalidPlatform,
			fmt.Sprintf("compute cores must be between %d and %d (%d)", MinComputeCores, MaxComputeCores, p.ComputeCores))
	}

	if p.Width != 32 && p.Width != 64 {
		return curated.Errorf(InvalidPlatform, fmt.Sprintf("width must be 32 or 64 (%d)", p.Width))
	}

	if p.RAMSize == 0 || p.RAMSize > MaxRAMSize {
		return curated.Errorf(InvalidPlatform, fmt.Sprintf("ram size must be between 1 and %s (%s)", MaxRAMSize, p.RAMSize))
	}
	if p.RAMSize%(4*KiB) != 0 {
		return curated.Errorf(InvalidPlatform, fmt.Sprintf("ram size must be a multiple of 4K (%s)", p.RAMSize))
	}

	for _, port := range []int{p.CAN0UDPPort, p.CAN1UDPPort, p.LVDS0TCPPort, p.LVDS1TCPPort} {
		if port < 0 || port > 65535 {
			return curated.Errorf(InvalidPlatform, fmt.Sprintf("port out of range (%d)", port))
		}
	}

	if p.LVDS0TCPPort != 0 && p.LVDS0TTY != "" {
		return curated.Errorf(InvalidPlatform, "lvds0 has both a tcp port and a tty")
	}
	if p.LVDS1TCPPort != 0 && p.LVDS1TTY != "" {
		return curated.Errorf(InvalidPlatform, "lvds1 has both a tcp port and a tty")
	}

	return nil
}
