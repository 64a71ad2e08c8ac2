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

package bootrom

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/mdpp/socemu/curated"
	"github.com/mdpp/socemu/hardware/cpu"
)

// Sentinal error patterns.
const (
	InstallError = "bootrom: %v"
	TooLarge     = "bootrom: %d bytes do not fit the %d byte boot ROM"
)

// Words is the number of 32 bit words in the vector.
const Words = 12

// Size of the vector in bytes. The dynamic information record is installed
// at this offset.
const Size = Words * 4

// Params of the vector.
type Params struct {
	Width cpu.Width

	// value of the boot-mode pins
	MSEL uint32

	// address jumped to by the vector
	Start uint64

	// address of the hardware description
	FDT uint64
}

// Vector is the reset vector.
type Vector [Words]uint32

// instructions common to both widths
const (
	auipcT0   = 0x00000297 // auipc t0, 0x0
	addiA2    = 0x02c28613 // addi a2, t0, 44
	csrrA0    = 0xf1402573 // csrr a0, mhartid
	jrT0      = 0x00028067 // jr t0
	lwA1Desc  = 0x0202a583 // lw a1, 32(t0)
	lwT0Start = 0x0182a283 // lw t0, 24(t0)
	ldA1Desc  = 0x0202b583 // ld a1, 32(t0)
	ldT0Start = 0x0182b283 // ld t0, 24(t0)
)

// NewVector is the preferred method of initialisation for the Vector type.
func NewVector(p Params) Vector {
	v := Vector{
		p.MSEL,
		auipcT0,
		addiA2,
		csrrA0,
		lwA1Desc,
		lwT0Start,
		jrT0,
		uint32(p.Start),
		0,
		uint32(p.FDT),
		0,
		0,
	}

	if p.Width == cpu.Width64 {
		v[4] = ldA1Desc
		v[5] = ldT0Start
		v[8] = uint32(p.Start >> 32)
		v[10] = uint32(p.FDT >> 32)
	}

	return v
}

// Bytes returns the vector in little-endian order.
func (v Vector) Bytes() []byte {
	b := make([]byte, 0, Size)
	for _, w := range v {
		b = binary.LittleEndian.AppendUint32(b, w)
	}
	return b
}

var annotations = [Words]string{
	"boot-mode pins",
	"auipc t0, 0x0",
	"addi a2, t0, 44",
	"csrr a0, mhartid",
	"", "",
	"jr t0",
	"start address (lo)",
	"start address (hi)",
	"description address (lo)",
	"description address (hi)",
	"dynamic info follows",
}

var loads = map[uint32]string{
	lwA1Desc:  "lw a1, 32(t0)",
	lwT0Start: "lw t0, 24(t0)",
	ldA1Desc:  "ld a1, 32(t0)",
	ldT0Start: "ld t0, 24(t0)",
}

// Listing returns the vector as an annotated listing, with addresses relative
// to base.
func (v Vector) Listing(base uint64) string {
	s := strings.Builder{}
	for i, w := range v {
		a := annotations[i]
		if i == 4 || i == 5 {
			a = loads[w]
		}
		s.WriteString(fmt.Sprintf("%#08x  %08x  %s", base+uint64(i)*4, w, a))
		s.WriteString("\n")
	}
	return s.String()
}

// Dynamic information record constants.
const (
	InfoMagic          = 0x4942534f
	InfoVersion        = 2
	NextModeSupervisor = 1
)

// FirmwareInfo returns the dynamic information record telling the firmware to
// continue at the next address in supervisor mode on hart 0. Every field is
// the word width of the platform.
func FirmwareInfo(width cpu.Width, next uint64) []byte {
	fields := []uint64{InfoMagic, InfoVersion, next, NextModeSupervisor, 0, 0}

	var b []byte
	for _, f := range fields {
		if width == cpu.Width64 {
			b = binary.LittleEndian.AppendUint64(b, f)
		} else {
			b = binary.LittleEndian.AppendUint32(b, uint32(f))
		}
	}
	return b
}

// Loader is the boot ROM device as seen by Install().
type Loader interface {
	Load(offset uint64, data []byte) error
	Size() uint64
}

// Install the vector at the start of the ROM. If info is not nil it is
// installed immediately after the vector.
func Install(rom Loader, v Vector, info []byte) error {
	b := append(v.Bytes(), info...)
	if uint64(len(b)) > rom.Size() {
		return curated.Errorf(InstallError, curated.Errorf(TooLarge, len(b), rom.Size()))
	}
	if err := rom.Load(0, b); err != nil {
		return curated.Errorf(InstallError, err)
	}
	return nil
}
