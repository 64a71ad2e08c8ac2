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

package prci

import (
	"github.com/mdpp/socemu/hardware/memory/regfile"
	"github.com/mdpp/socemu/logger"
)

// BlockSize is the size of the register block in bytes.
const BlockSize = 0x1000

// Register offsets.
const (
	HFXOSCCFG     = 0x00
	COREPLLCFG0   = 0x04
	DDRPLLCFG0    = 0x0c
	DDRPLLCFG1    = 0x10
	GEMGXLPLLCFG0 = 0x1c
	GEMGXLPLLCFG1 = 0x20
	CORECLKSEL    = 0x24
	DEVICESRESET  = 0x28
	CLKMUXSTATUS  = 0x2c
)

// Register bits.
const (
	HFXOSCCFGEnable = 1 << 30
	HFXOSCCFGReady  = 1 << 31

	PLLCFG0DIVR = 1 << 0
	PLLCFG0DIVF = 31 << 6
	PLLCFG0DIVQ = 3 << 15
	PLLCFG0FSE  = 1 << 25
	PLLCFG0Lock = 1 << 31

	PLLCFG1ClockEnable = 1 << 24

	CORECLKSELHFCLK = 1 << 0
)

// Power-on values.
const (
	ResetHFXOSCCFG  = HFXOSCCFGEnable | HFXOSCCFGReady
	ResetPLLCFG0    = PLLCFG0DIVR | PLLCFG0DIVF | PLLCFG0DIVQ | PLLCFG0FSE | PLLCFG0Lock
	ResetCORECLKSEL = CORECLKSELHFCLK
)

// Sticky bits.
const (
	stickyHFXOSCCFG = HFXOSCCFGReady
	stickyPLLCFG0   = PLLCFG0FSE | PLLCFG0Lock
)

// Clock indexes of the outputs of the controller.
const (
	ClockCorePLL = iota
	ClockDDRPLL
	ClockGEMGXLPLL
	ClockTL
)

// State of the controller registers.
type State struct {
	HFXOSCCFG     uint32
	COREPLLCFG0   uint32
	DDRPLLCFG0    uint32
	DDRPLLCFG1    uint32
	GEMGXLPLLCFG0 uint32
	GEMGXLPLLCFG1 uint32
	CORECLKSEL    uint32
	DEVICESRESET  uint32
	CLKMUXSTATUS  uint32
}

// PRCI is the clock controller.
type PRCI struct {
	regs  *regfile.File
	state State
}

// NewPRCI is the preferred method of initialisation for the PRCI type. The
// registers are at their power-on values.
func NewPRCI(name string, perm logger.Permission) *PRCI {
	p := &PRCI{
		regs: regfile.New(name, BlockSize, perm),
	}

	s := &p.state
	p.regs.MustDefine(
		regfile.Register{Name: "HFXOSCCFG", Offset: HFXOSCCFG, Access: regfile.RW, Field: &s.HFXOSCCFG,
			Sticky: stickyHFXOSCCFG, Reset: ResetHFXOSCCFG},
		regfile.Register{Name: "COREPLLCFG0", Offset: COREPLLCFG0, Access: regfile.RW, Field: &s.COREPLLCFG0,
			Sticky: stickyPLLCFG0, Reset: ResetPLLCFG0},
		regfile.Register{Name: "DDRPLLCFG0", Offset: DDRPLLCFG0, Access: regfile.RW, Field: &s.DDRPLLCFG0,
			Sticky: stickyPLLCFG0, Reset: ResetPLLCFG0},
		regfile.Register{Name: "DDRPLLCFG1", Offset: DDRPLLCFG1, Access: regfile.RW, Field: &s.DDRPLLCFG1},
		regfile.Register{Name: "GEMGXLPLLCFG0", Offset: GEMGXLPLLCFG0, Access: regfile.RW, Field: &s.GEMGXLPLLCFG0,
			Sticky: stickyPLLCFG0, Reset: ResetPLLCFG0},
		regfile.Register{Name: "GEMGXLPLLCFG1", Offset: GEMGXLPLLCFG1, Access: regfile.RW, Field: &s.GEMGXLPLLCFG1},
		regfile.Register{Name: "CORECLKSEL", Offset: CORECLKSEL, Access: regfile.RW, Field: &s.CORECLKSEL,
			Reset: ResetCORECLKSEL},
		regfile.Register{Name: "DEVICESRESET", Offset: DEVICESRESET, Access: regfile.RW, Field: &s.DEVICESRESET},
		regfile.Register{Name: "CLKMUXSTATUS", Offset: CLKMUXSTATUS, Access: regfile.RW, Field: &s.CLKMUXSTATUS},
	)

	p.regs.Reset()

	return p
}

// Read implements the bus.Device interface.
func (p *PRCI) Read(offset uint64, size int) uint64 {
	return p.regs.Read(offset, size)
}

// Write implements the bus.Device interface.
func (p *PRCI) Write(offset uint64, size int, value uint64) {
	p.regs.Write(offset, size, value)
}

// Peek implements the bus.DebuggerBus interface.
func (p *PRCI) Peek(offset uint64) (uint32, bool) {
	return p.regs.Peek(offset)
}

// Poke implements the bus.DebuggerBus interface.
func (p *PRCI) Poke(offset uint64, value uint32) bool {
	return p.regs.Poke(offset, value)
}

// Reset the registers to their power-on values.
func (p *PRCI) Reset() {
	p.regs.Reset()
}

// Registers returns the register file of the controller.
func (p *PRCI) Registers() *regfile.File {
	return p.regs
}

// State returns a copy of the controller registers.
func (p *PRCI) State() State {
	var s State
	p.regs.Update(func() {
		s = p.state
	})
	return s
}

func (p *PRCI) String() string {
	return p.regs.String()
}
