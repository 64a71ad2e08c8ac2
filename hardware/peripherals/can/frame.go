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

	"github.com/mdpp/socemu/curated"
)

// Sentinal error patterns.
const (
	FrameShort  = "can: frame too short (%d bytes)"
	FrameLength = "can: frame has %d data bytes but length code is %d"
)

// Frame is the content of a receive or transmit buffer in the layout of the
// ID1 and ID2/RTR/DLC registers.
//
// On the wire a frame is the ID1 byte, the ID2/RTR/DLC byte and then as many
// data bytes as the data length code (the low four bits of ID2RTRDLC) says,
// up to eight.
type Frame struct {
	ID1       uint8
	ID2RTRDLC uint8
	Data      [DataBytes]uint8
}

// Bits of the ID2/RTR/DLC byte.
const (
	maskDLC = 0x0f
	maskRTR = 0x10
)

// NewFrame creates a data frame with an 11 bit identifier.
func NewFrame(id uint16, data []byte) Frame {
	if len(data) > DataBytes {
		data = data[:DataBytes]
	}
	f := Frame{
		ID1:       uint8(id >> 3),
		ID2RTRDLC: uint8(id&0x07)<<5 | uint8(len(data)),
	}
	copy(f.Data[:], data)
	return f
}

// ID returns the 11 bit identifier of the frame.
func (f Frame) ID() uint16 {
	return uint16(f.ID1)<<3 | uint16(f.ID2RTRDLC>>5)
}

// Len returns the number of data bytes in the frame.
func (f Frame) Len() int {
	n := int(f.ID2RTRDLC & maskDLC)
	if n > DataBytes {
		n = DataBytes
	}
	return n
}

// RTR returns true if the frame is a remote transmission request.
func (f Frame) RTR() bool {
	return f.ID2RTRDLC&maskRTR == maskRTR
}

// Encode the frame in its wire format.
func (f Frame) Encode() []byte {
	b := make([]byte, 2, 2+DataBytes)
	b[0] = f.ID1
	b[1] = f.ID2RTRDLC
	return append(b, f.Data[:f.Len()]...)
}

// DecodeFrame from its wire format.
func DecodeFrame(b []byte) (Frame, error) {
	var f Frame
	if len(b) < 2 {
		return f, curated.Errorf(FrameShort, len(b))
	}
	f.ID1 = b[0]
	f.ID2RTRDLC = b[1]
	if len(b)-2 < f.Len() {
		return f, curated.Errorf(FrameLength, len(b)-2, f.Len())
	}
	copy(f.Data[:], b[2:2+f.Len()])
	return f, nil
}

func (f Frame) String() string {
	if f.RTR() {
		return fmt.Sprintf("%03x RTR [%d]", f.ID(), f.Len())
	}
	return fmt.Sprintf("%03x [%d] % x", f.ID(), f.Len(), f.Data[:f.Len()])
}
