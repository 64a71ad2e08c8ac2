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

package transport

import (
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/pkg/term"
)

// Endpoint is one end of a host link.
type Endpoint interface {
	// Send data to the other end of the link
	Send(p []byte) (int, error)

	// Receive blocks until data arrives or the endpoint is closed. For
	// datagram endpoints a single call receives a single datagram
	Receive(p []byte) (int, error)

	Close() error

	// String returns a description of the endpoint suitable for logging
	String() string
}

// DialTimeout is the time allowed for a TCP connection to be made.
const DialTimeout = 2 * time.Second

// stream is an Endpoint for anything that implements io.ReadWriteCloser.
type stream struct {
	rwc  io.ReadWriteCloser
	name string
}

func (s *stream) Send(p []byte) (int, error) {
	return s.rwc.Write(p)
}

func (s *stream) Receive(p []byte) (int, error) {
	return s.rwc.Read(p)
}

func (s *stream) Close() error {
	return s.rwc.Close()
}

func (s *stream) String() string {
	return s.name
}

// DialTCP connects to a TCP port on the local host.
func DialTCP(port int) (Endpoint, error) {
	addr := fmt.Sprintf("localhost:%d", port)
	conn, err := net.DialTimeout("tcp", addr, DialTimeout)
	if err != nil {
		return nil, errors.Wrapf(err, "tcp port %d", port)
	}
	return &stream{rwc: conn, name: fmt.Sprintf("tcp:%s", addr)}, nil
}

// OpenTTY opens a host terminal device in raw mode.
func OpenTTY(path string) (Endpoint, error) {
	t, err := term.Open(path, term.RawMode)
	if err != nil {
		return nil, errors.Wrapf(err, "tty %s", path)
	}
	return &stream{rwc: t, name: fmt.Sprintf("tty:%s", path)}, nil
}

// Pipe returns two endpoints connected to each other in memory. Useful for
// testing.
func Pipe() (Endpoint, Endpoint) {
	a, b := net.Pipe()
	return &stream{rwc: a, name: "pipe:a"}, &stream{rwc: b, name: "pipe:b"}
}

// datagram is an Endpoint for a UDP socket.
type datagram struct {
	conn *net.UDPConn

	crit sync.Mutex

	// the source of the most recent datagram. Send() replies to this address
	peer *net.UDPAddr
}

// ListenUDP binds a UDP port on the local host.
func ListenUDP(port int) (Endpoint, error) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: port})
	if err != nil {
		return nil, errors.Wrapf(err, "udp port %d", port)
	}
	return &datagram{conn: conn}, nil
}

func (d *datagram) Send(p []byte) (int, error) {
	d.crit.Lock()
	peer := d.peer
	d.crit.Unlock()

	if peer == nil {
		return 0, errors.Errorf("%s: no peer", d)
	}
	return d.conn.WriteToUDP(p, peer)
}

func (d *datagram) Receive(p []byte) (int, error) {
	n, addr, err := d.conn.ReadFromUDP(p)
	if err != nil {
		return n, err
	}
	d.crit.Lock()
	d.peer = addr
	d.crit.Unlock()
	return n, nil
}

func (d *datagram) Close() error {
	return d.conn.Close()
}

func (d *datagram) String() string {
	return fmt.Sprintf("udp:%s", d.conn.LocalAddr())
}

// Port returns the local port number of a UDP or TCP endpoint. Returns zero
// for other endpoint types.
func Port(ep Endpoint) int {
	switch ep := ep.(type) {
	case *datagram:
		if a, ok := ep.conn.LocalAddr().(*net.UDPAddr); ok {
			return a.Port
		}
	case *stream:
		if c, ok := ep.rwc.(net.Conn); ok {
			if a, ok := c.LocalAddr().(*net.TCPAddr); ok {
				return a.Port
			}
		}
	}
	return 0
}
