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

package can

import (
	"fmt"

	"github.com/mdpp/socemu/hardware/interrupts"
	"github.com/mdpp/socemu/hardware/memory/regfile"
	"github.com/mdpp/socemu/logger"
)

// BlockSize is the size of the register block in bytes.
const BlockSize = 0x80

// Register offsets.
const (
	Control        = 0x00
	Command        = 0x04
	Status         = 0x08
	Interrupt      = 0x0c
	AcceptanceCode = 0x10
	AcceptanceMask = 0x14
	BusTiming0     = 0x18
	BusTiming1     = 0x1c
	TxID1          = 0x28
	TxID2RTRDLC    = 0x2c
	TxData         = 0x30
	RxID1          = 0x50
	RxID2RTRDLC    = 0x54
	RxData         = 0x58
	ClockDivider   = 0x7c
)

// Number of data byte registers in each of the transmit and receive buffers.
const DataBytes = 8

// Bits of the COMMAND, STATUS and INTERRUPT registers.
const (
	CommandTransmitRequest = 0x01

	StatusReceiveBuffer  = 0x01
	StatusTransmitBuffer = 0x04

	InterruptReceive  = 0x01
	InterruptTransmit = 0x02
)

// State of the controller registers.
type State struct {
	Control        uint32
	Command        uint32
	Status         uint32
	Interrupt      uint32
	AcceptanceCode uint32
	AcceptanceMask uint32
	BusTiming0     uint32
	BusTiming1     uint32
	TxID1          uint32
	TxID2RTRDLC    uint32
	TxData         [DataBytes]uint32
	RxID1          uint32
	RxID2RTRDLC    uint32
	RxData         [DataBytes]uint32
	ClockDivider   uint32
}

// CAN is a single controller.
type CAN struct {
	regs  *regfile.File
	state State
	irq   interrupts.Line
}

// NewCAN is the preferred method of initialisation for the CAN type.
func NewCAN(name string, irq interrupts.Line, perm logger.Permission) *CAN {
	c := &CAN{
		regs: regfile.New(name, BlockSize, perm),
		irq:  irq,
	}

	s := &c.state
	c.regs.MustDefine(
		regfile.Register{Name: "CONTROL", Offset: Control, Access: regfile.RW, Field: &s.Control},
		regfile.Register{Name: "COMMAND", Offset: Command, Access: regfile.WO, Field: &s.Command, OnWrite: c.command},
		regfile.Register{Name: "STATUS", Offset: Status, Access: regfile.RO, Field: &s.Status},
		regfile.Register{Name: "INTERRUPT", Offset: Interrupt, Access: regfile.RO, Field: &s.Interrupt},
		regfile.Register{Name: "ACCEPTANCE_CODE", Offset: AcceptanceCode, Access: regfile.RW, Field: &s.AcceptanceCode},
		regfile.Register{Name: "ACCEPTANCE_MASK", Offset: AcceptanceMask, Access: regfile.RW, Field: &s.AcceptanceMask},
		regfile.Register{Name: "BUS_TIMING_0", Offset: BusTiming0, Access: regfile.RW, Field: &s.BusTiming0},
		regfile.Register{Name: "BUS_TIMING_1", Offset: BusTiming1, Access: regfile.RW, Field: &s.BusTiming1},
		regfile.Register{Name: "TX_ID1", Offset: TxID1, Access: regfile.RW, Field: &s.TxID1},
		regfile.Register{Name: "TX_ID2_RTR_DLC", Offset: TxID2RTRDLC, Access: regfile.RW, Field: &s.TxID2RTRDLC},
		regfile.Register{Name: "RX_ID1", Offset: RxID1, Access: regfile.RO, Field: &s.RxID1},
		regfile.Register{Name: "RX_ID2_RTR_DLC", Offset: RxID2RTRDLC, Access: regfile.RO, Field: &s.RxID2RTRDLC},
		regfile.Register{Name: "CLOCK_DIVIDER", Offset: ClockDivider, Access: regfile.RW, Field: &s.ClockDivider},
	)

	for i := 0; i < DataBytes; i++ {
		c.regs.MustDefine(
			regfile.Register{Name: fmt.Sprintf("TX_DATA_BYTE_%d", i+1), Offset: TxData + uint64(i)*regfile.Width,
				Access: regfile.RW, Field: &s.TxData[i]},
			regfile.Register{Name: fmt.Sprintf("RX_DATA_BYTE_%d", i+1), Offset: RxData + uint64(i)*regfile.Width,
				Access: regfile.RO, Field: &s.RxData[i]},
		)
	}

	c.regs.OnReset(c.updateIRQ)

	return c
}

// command is the side effect of a write to the COMMAND register. called with
// the register file lock held.
func (c *CAN) command(value uint32) {
	if value&CommandTransmitRequest == CommandTransmitRequest {
		c.state.Status |= StatusTransmitBuffer
		c.state.Interrupt |= InterruptTransmit
		c.updateIRQ()
	}
}

func (c *CAN) updateIRQ() {
	c.irq.Set(c.state.Interrupt != 0)
}

// Read implements the bus.Device interface.
func (c *CAN) Read(offset uint64, size int) uint64 {
	return c.regs.Read(offset, size)
}

// Write implements the bus.Device interface.
func (c *CAN) Write(offset uint64, size int, value uint64) {
	c.regs.Write(offset, size, value)
}

// Peek implements the bus.DebuggerBus interface.
func (c *CAN) Peek(offset uint64) (uint32, bool) {
	return c.regs.Peek(offset)
}

// Poke implements the bus.DebuggerBus interface.
func (c *CAN) Poke(offset uint64, value uint32) bool {
	return c.regs.Poke(offset, value)
}

// Reset all registers to zero and deassert the interrupt line.
func (c *CAN) Reset() {
	c.regs.Reset()
}

// Registers returns the register file of the controller.
func (c *CAN) Registers() *regfile.File {
	return c.regs
}

// State returns a copy of the controller registers.
func (c *CAN) State() State {
	var s State
	c.regs.Update(func() {
		s = c.state
	})
	return s
}

// Receive delivers a frame to the receive buffer of the controller. The
// receive buffer status and the receive interrupt are set.
func (c *CAN) Receive(f Frame) {
	c.regs.Update(func() {
		c.state.RxID1 = uint32(f.ID1)
		c.state.RxID2RTRDLC = uint32(f.ID2RTRDLC)
		for i := range c.state.RxData {
			c.state.RxData[i] = uint32(f.Data[i])
		}
		c.state.Status |= StatusReceiveBuffer
		c.state.Interrupt |= InterruptReceive
		c.updateIRQ()
	})
}

func (c *CAN) String() string {
	return c.regs.String()
}
