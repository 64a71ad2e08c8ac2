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
	"context"

	"github.com/mdpp/socemu/logger"
	"github.com/mdpp/socemu/transport"
)

// Listen receives frames from the endpoint and delivers them to the
// controller until the context is cancelled or the endpoint fails. The
// endpoint is closed when Listen returns.
//
// Datagrams that are not valid frames are logged and discarded. Returns nil
// if the context was cancelled.
func Listen(ctx context.Context, c *CAN, ep transport.Endpoint, perm logger.Permission) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			ep.Close()
		case <-done:
		}
	}()
	defer ep.Close()

	buf := make([]byte, 64)
	for {
		n, err := ep.Receive(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		f, err := DecodeFrame(buf[:n])
		if err != nil {
			logger.Logf(perm, c.regs.Name(), "discarding datagram from %s: %v", ep, err)
			continue
		}

		c.Receive(f)
	}
}
