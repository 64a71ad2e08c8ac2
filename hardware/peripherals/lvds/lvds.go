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

// Package lvds models the display links of the board. The guest streams words
// to the link through the DATA register. Each word is sent, little-endian, to
// the transport endpoint attached to the link. Without an endpoint the words
// are counted and discarded.
package lvds

import (
	"encoding/binary"

	"github.com/mdpp/socemu/hardware/memory/regfile"
	"github.com/mdpp/socemu/logger"
	"github.com/mdpp/socemu/transport"
)

// BlockSize is the size of the register block in bytes.
const BlockSize = 0x1000

// Register offsets.
const (
	Data    = 0x00
	Status  = 0x04
	TxCount = 0x08
)

// Bits of the STATUS register.
const (
	StatusLinkUp = 0x01
	StatusError  = 0x02
)

// LVDS is a single display link.
type LVDS struct {
	regs *regfile.File
	perm logger.Permission

	data    uint32
	status  uint32
	txCount uint32

	ep transport.Endpoint
}

// NewLVDS is the preferred method of initialisation for the LVDS type. The
// endpoint can be nil.
func NewLVDS(name string, ep transport.Endpoint, perm logger.Permission) *LVDS {
	l := &LVDS{
		regs: regfile.New(name, BlockSize, perm),
		perm: perm,
		ep:   ep,
	}

	l.regs.MustDefine(
		regfile.Register{Name: "DATA", Offset: Data, Access: regfile.WO, Field: &l.data, OnWrite: l.send},
		regfile.Register{Name: "STATUS", Offset: Status, Access: regfile.RO, Field: &l.status},
		regfile.Register{Name: "TXCOUNT", Offset: TxCount, Access: regfile.RO, Field: &l.txCount},
	)

	l.regs.OnReset(l.linkStatus)
	l.linkStatus()

	return l
}

func (l *LVDS) linkStatus() {
	if l.ep != nil {
		l.status |= StatusLinkUp
	}
}

// send is the side effect of a write to the DATA register. called with the
// register file lock held.
func (l *LVDS) send(value uint32) {
	l.txCount++
	if l.ep == nil {
		return
	}

	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], value)
	if _, err := l.ep.Send(b[:]); err != nil {
		logger.Logf(l.perm, l.regs.Name(), "link %s: %v", l.ep, err)
		l.status |= StatusError
	}
}

// Read implements the bus.Device interface.
func (l *LVDS) Read(offset uint64, size int) uint64 {
	return l.regs.Read(offset, size)
}

// Write implements the bus.Device interface.
func (l *LVDS) Write(offset uint64, size int, value uint64) {
	l.regs.Write(offset, size, value)
}

// Peek implements the bus.DebuggerBus interface.
func (l *LVDS) Peek(offset uint64) (uint32, bool) {
	return l.regs.Peek(offset)
}

// Poke implements the bus.DebuggerBus interface.
func (l *LVDS) Poke(offset uint64, value uint32) bool {
	return l.regs.Poke(offset, value)
}

// Reset the link registers.
func (l *LVDS) Reset() {
	l.regs.Reset()
}

// Registers returns the register file of the link.
func (l *LVDS) Registers() *regfile.File {
	return l.regs
}

// Endpoint returns the attached endpoint. Nil if there is none.
func (l *LVDS) Endpoint() transport.Endpoint {
	return l.ep
}

// Close the attached endpoint.
func (l *LVDS) Close() error {
	if l.ep == nil {
		return nil
	}
	return l.ep.Close()
}
