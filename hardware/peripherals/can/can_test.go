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

package can_test

import (
	"context"
	"testing"
	"time"

	"github.com/mdpp/socemu/curated"
	"github.com/mdpp/socemu/hardware/interrupts"
	"github.com/mdpp/socemu/hardware/peripherals/can"
	"github.com/mdpp/socemu/test"
	"github.com/mdpp/socemu/transport"
)

type quiet struct{}

func (quiet) AllowLogging() bool { return false }

const irqLine = 23

func newCAN() (*can.CAN, *interrupts.Lines) {
	lines := interrupts.NewLines(54)
	return can.NewCAN("can0", interrupts.NewLine(lines, irqLine), quiet{}), lines
}

func TestRoundTrip(t *testing.T) {
	c, _ := newCAN()

	rw := []uint64{
		can.Control, can.AcceptanceCode, can.AcceptanceMask, can.BusTiming0,
		can.BusTiming1, can.TxID1, can.TxID2RTRDLC, can.ClockDivider,
	}
	for i := 0; i < can.DataBytes; i++ {
		rw = append(rw, can.TxData+uint64(i)*4)
	}

	for i, off := range rw {
		v := uint64(0xa5a50000 + i)
		c.Write(off, 4, v)
		test.ExpectEquality(t, c.Read(off, 4), v, off)
	}

	s := c.State()
	test.ExpectEquality(t, s.Control, uint32(0xa5a50000))
	test.ExpectEquality(t, s.TxData[7], uint32(0xa5a50000+15))
}

func TestTransmitRequest(t *testing.T) {
	c, lines := newCAN()

	// command without the transmit request bit is stored only
	c.Write(can.Command, 4, 0x0)
	test.ExpectEquality(t, c.Read(can.Status, 4), uint64(0))
	test.ExpectEquality(t, c.Read(can.Interrupt, 4), uint64(0))
	test.ExpectFailure(t, lines.Level(irqLine))

	c.Write(can.Command, 4, 0x2)
	test.ExpectEquality(t, c.State().Command, uint32(0x2))
	test.ExpectEquality(t, c.Read(can.Status, 4), uint64(0))

	c.Write(can.Command, 4, can.CommandTransmitRequest)
	test.ExpectEquality(t, c.Read(can.Status, 4), uint64(can.StatusTransmitBuffer))
	test.ExpectEquality(t, c.Read(can.Interrupt, 4), uint64(can.InterruptTransmit))
	test.ExpectSuccess(t, lines.Level(irqLine))

	// a zero command leaves the completed transmission visible
	c.Write(can.Command, 4, 0x0)
	test.ExpectEquality(t, c.Read(can.Status, 4), uint64(0x04))
	test.ExpectEquality(t, c.Read(can.Interrupt, 4), uint64(0x02))
	test.ExpectSuccess(t, lines.Level(irqLine))

	// other status bits are preserved
	c.Write(can.Command, 4, 0x5)
	test.ExpectEquality(t, c.Read(can.Status, 4), uint64(0x04))
	test.ExpectEquality(t, c.State().Command, uint32(0x5))
}

func TestGuestErrors(t *testing.T) {
	c, _ := newCAN()

	// COMMAND is write-only
	c.Write(can.Command, 4, 0x1)
	test.ExpectEquality(t, c.Read(can.Command, 4), uint64(0))

	// STATUS, INTERRUPT and the receive buffer are read-only
	c.Write(can.Status, 4, 0xff)
	test.ExpectEquality(t, c.Read(can.Status, 4), uint64(0x04))
	c.Write(can.RxID1, 4, 0xff)
	test.ExpectEquality(t, c.Read(can.RxID1, 4), uint64(0))

	// the gap between BUS_TIMING_1 and TX_ID1
	c.Write(0x20, 4, 0xff)
	test.ExpectEquality(t, c.Read(0x20, 4), uint64(0))

	// only word access
	c.Write(can.Control, 1, 0xff)
	test.ExpectEquality(t, c.Read(can.Control, 4), uint64(0))
	test.ExpectEquality(t, c.Read(can.Status, 2), uint64(0))
}

func TestReset(t *testing.T) {
	c, lines := newCAN()
	c.Write(can.Control, 4, 0x1)
	c.Write(can.Command, 4, 0x1)
	test.ExpectSuccess(t, lines.Level(irqLine))

	c.Reset()
	test.ExpectEquality(t, c.State(), can.State{})
	test.ExpectFailure(t, lines.Level(irqLine))
}

func TestReceive(t *testing.T) {
	c, lines := newCAN()

	f := can.NewFrame(0x123, []byte{0xde, 0xad, 0xbe, 0xef})
	c.Receive(f)

	test.ExpectEquality(t, c.Read(can.RxID1, 4), uint64(0x24))
	test.ExpectEquality(t, c.Read(can.RxID2RTRDLC, 4), uint64(0x64))
	test.ExpectEquality(t, c.Read(can.RxData, 4), uint64(0xde))
	test.ExpectEquality(t, c.Read(can.RxData+12, 4), uint64(0xef))
	test.ExpectEquality(t, c.Read(can.RxData+16, 4), uint64(0))
	test.ExpectEquality(t, c.Read(can.Status, 4), uint64(can.StatusReceiveBuffer))
	test.ExpectEquality(t, c.Read(can.Interrupt, 4), uint64(can.InterruptReceive))
	test.ExpectSuccess(t, lines.Level(irqLine))
}

func TestFrame(t *testing.T) {
	f := can.NewFrame(0x7ff, []byte{1, 2, 3})
	test.ExpectEquality(t, f.ID(), uint16(0x7ff))
	test.ExpectEquality(t, f.Len(), 3)
	test.ExpectFailure(t, f.RTR())
	test.ExpectEquality(t, f.String(), "7ff [3] 01 02 03")

	b := f.Encode()
	test.ExpectEquality(t, len(b), 5)

	g, err := can.DecodeFrame(b)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, g, f)

	_, err = can.DecodeFrame([]byte{0x01})
	test.ExpectSuccess(t, curated.Is(err, can.FrameShort))

	// length code says four data bytes but there are only two
	_, err = can.DecodeFrame([]byte{0x01, 0x04, 0xaa, 0xbb})
	test.ExpectSuccess(t, curated.Is(err, can.FrameLength))

	r := can.Frame{ID1: 0x10, ID2RTRDLC: 0x10}
	test.ExpectSuccess(t, r.RTR())
	test.ExpectEquality(t, r.String(), "080 RTR [0]")
}

func TestListen(t *testing.T) {
	c, lines := newCAN()
	host, board := transport.Pipe()
	defer host.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- can.Listen(ctx, c, board, quiet{})
	}()

	// an invalid frame is discarded and the loop continues
	_, err := host.Send([]byte{0x01})
	test.DemandSuccess(t, err)

	_, err = host.Send(can.NewFrame(0x42, []byte{0x99}).Encode())
	test.DemandSuccess(t, err)

	deadline := time.Now().Add(time.Second)
	for !lines.Level(irqLine) && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	test.ExpectSuccess(t, lines.Level(irqLine))
	test.ExpectEquality(t, c.State().RxData[0], uint32(0x99))

	cancel()
	select {
	case err := <-done:
		test.ExpectSuccess(t, err)
	case <-time.After(time.Second):
		t.Fatalf("listener did not stop")
	}
}
