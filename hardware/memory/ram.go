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

package memory

import (
	"encoding/binary"
	"fmt"
	"strings"
	"sync"

	"github.com/mdpp/socemu/curated"
	"github.com/mdpp/socemu/hardware/memory/bus"
	"github.com/mdpp/socemu/logger"
)

// Sentinal error patterns.
const (
	LoadOutOfRange = "memory: %s: load of %d bytes at offset %#x does not fit"
)

// store is the byte storage shared by RAM and ROM.
type store struct {
	crit sync.RWMutex
	name string
	perm logger.Permission
	data []byte
}

func validSize(size int) bool {
	return size == 1 || size == 2 || size == 4 || size == 8
}

func (s *store) inRange(offset uint64, size int) bool {
	return offset < uint64(len(s.data)) && uint64(size) <= uint64(len(s.data))-offset
}

func (s *store) read(offset uint64, size int) uint64 {
	if !validSize(size) || !s.inRange(offset, size) {
		logger.Logf(s.perm, bus.GuestError, "%s: read of %d bytes at offset %#x", s.name, size, offset)
		return 0
	}

	s.crit.RLock()
	defer s.crit.RUnlock()

	b := s.data[offset:]
	switch size {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	}
	return binary.LittleEndian.Uint64(b)
}

func (s *store) write(offset uint64, size int, value uint64) {
	if !validSize(size) || !s.inRange(offset, size) {
		logger.Logf(s.perm, bus.GuestError, "%s: write of %d bytes at offset %#x", s.name, size, offset)
		return
	}

	s.crit.Lock()
	defer s.crit.Unlock()

	b := s.data[offset:]
	switch size {
	case 1:
		b[0] = uint8(value)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(value))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(value))
	default:
		binary.LittleEndian.PutUint64(b, value)
	}
}

// Load implements the bus.Loader interface.
func (s *store) Load(offset uint64, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if !s.inRange(offset, len(data)) {
		return curated.Errorf(LoadOutOfRange, s.name, len(data), offset)
	}

	s.crit.Lock()
	defer s.crit.Unlock()
	copy(s.data[offset:], data)
	return nil
}

// Size returns the number of bytes in the device.
func (s *store) Size() uint64 {
	return uint64(len(s.data))
}

// Slice returns a copy of part of the device.
func (s *store) Slice(offset uint64, length int) []byte {
	if !s.inRange(offset, length) {
		return nil
	}
	s.crit.RLock()
	defer s.crit.RUnlock()
	c := make([]byte, length)
	copy(c, s.data[offset:])
	return c
}

// Dump returns a hex dump of part of the device.
func (s *store) Dump(offset uint64, length int) string {
	b := s.Slice(offset, length)

	d := strings.Builder{}
	for i := 0; i < len(b); i += 16 {
		d.WriteString(fmt.Sprintf("%08x |", offset+uint64(i)))
		for j := i; j < i+16 && j < len(b); j++ {
			d.WriteString(fmt.Sprintf(" %02x", b[j]))
		}
		d.WriteString("\n")
	}
	return d.String()
}

// RAM is read/write memory.
type RAM struct {
	store
}

// NewRAM is the preferred method of initialisation for the RAM type.
func NewRAM(name string, size uint64, perm logger.Permission) *RAM {
	return &RAM{
		store: store{
			name: name,
			perm: perm,
			data: make([]byte, size),
		},
	}
}

// Read implements the bus.Device interface.
func (ram *RAM) Read(offset uint64, size int) uint64 {
	return ram.read(offset, size)
}

// Write implements the bus.Device interface.
func (ram *RAM) Write(offset uint64, size int, value uint64) {
	ram.write(offset, size, value)
}

// Reset clears the contents of RAM.
func (ram *RAM) Reset() {
	ram.crit.Lock()
	defer ram.crit.Unlock()
	for i := range ram.data {
		ram.data[i] = 0
	}
}
