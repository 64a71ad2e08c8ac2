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

// Package nvmem models the non-volatile memory windows of the board. A window
// is a small block of word addressable memory. When a backing file is
// attached the contents of the window are read from the file when it is
// opened and every write is stored to the file immediately, so that the
// contents survive between sessions.
package nvmem

import (
	"encoding/binary"
	"io"
	"os"
	"sync"

	"github.com/mdpp/socemu/hardware/memory/bus"
	"github.com/mdpp/socemu/logger"
	"github.com/pkg/errors"
)

// WindowSize is the size of each NVMEM window in bytes.
const WindowSize = 0x100

// WordSize is the only access width supported.
const WordSize = 4

// NVMEM is a single window.
type NVMEM struct {
	crit sync.Mutex

	name string
	perm logger.Permission
	data []byte

	// backing file. nil if the window is volatile
	file *os.File
}

// New creates a volatile window.
func New(name string, size uint64, perm logger.Permission) *NVMEM {
	return &NVMEM{
		name: name,
		perm: perm,
		data: make([]byte, size),
	}
}

// Open creates a window backed by a file. The file is created if it does not
// exist and is extended to the size of the window if it is too short.
func Open(name string, size uint64, path string, perm logger.Permission) (*NVMEM, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "nvmem file %s", path)
	}

	n := New(name, size, perm)
	n.file = f

	_, err = io.ReadFull(f, n.data)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		f.Close()
		return nil, errors.Wrapf(err, "reading nvmem file %s", path)
	}

	// make sure the file covers the whole window
	if err := f.Truncate(int64(size)); err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "sizing nvmem file %s", path)
	}

	return n, nil
}

// Name of the window.
func (n *NVMEM) Name() string {
	return n.name
}

// Path returns the name of the backing file. Empty if the window is volatile.
func (n *NVMEM) Path() string {
	if n.file == nil {
		return ""
	}
	return n.file.Name()
}

// Close the backing file.
func (n *NVMEM) Close() error {
	n.crit.Lock()
	defer n.crit.Unlock()

	if n.file == nil {
		return nil
	}
	err := n.file.Close()
	n.file = nil
	return err
}

func (n *NVMEM) valid(offset uint64, size int) bool {
	return size == WordSize && offset%WordSize == 0 && offset+WordSize <= uint64(len(n.data))
}

// Read implements the bus.Device interface.
func (n *NVMEM) Read(offset uint64, size int) uint64 {
	if !n.valid(offset, size) {
		logger.Logf(n.perm, bus.GuestError, "%s: read of %d bytes at offset %#x", n.name, size, offset)
		return 0
	}

	n.crit.Lock()
	defer n.crit.Unlock()
	return uint64(binary.LittleEndian.Uint32(n.data[offset:]))
}

// Write implements the bus.Device interface.
func (n *NVMEM) Write(offset uint64, size int, value uint64) {
	if !n.valid(offset, size) {
		logger.Logf(n.perm, bus.GuestError, "%s: write of %d bytes at offset %#x", n.name, size, offset)
		return
	}

	n.crit.Lock()
	defer n.crit.Unlock()

	binary.LittleEndian.PutUint32(n.data[offset:], uint32(value))

	if n.file != nil {
		if _, err := n.file.WriteAt(n.data[offset:offset+WordSize], int64(offset)); err != nil {
			logger.Logf(n.perm, n.name, "%v", errors.Wrap(err, "storing to backing file"))
		}
	}
}

// Load implements the bus.Loader interface. Loading does not change the
// backing file.
func (n *NVMEM) Load(offset uint64, data []byte) error {
	n.crit.Lock()
	defer n.crit.Unlock()

	if offset > uint64(len(n.data)) || uint64(len(data)) > uint64(len(n.data))-offset {
		return errors.Errorf("%s: load of %d bytes at offset %#x does not fit", n.name, len(data), offset)
	}
	copy(n.data[offset:], data)
	return nil
}
