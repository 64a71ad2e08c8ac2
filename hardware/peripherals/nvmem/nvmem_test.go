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

package nvmem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mdpp/socemu/hardware/peripherals/nvmem"
	"github.com/mdpp/socemu/test"
)

type quiet struct{}

func (quiet) AllowLogging() bool { return false }

func TestVolatile(t *testing.T) {
	n := nvmem.New("nvmem0", nvmem.WindowSize, quiet{})
	test.ExpectEquality(t, n.Path(), "")

	n.Write(0x10, 4, 0xcafef00d)
	test.ExpectEquality(t, n.Read(0x10, 4), uint64(0xcafef00d))

	// only aligned word access
	n.Write(0x11, 4, 0)
	n.Write(0x10, 2, 0)
	test.ExpectEquality(t, n.Read(0x10, 4), uint64(0xcafef00d))
	test.ExpectEquality(t, n.Read(0x100, 4), uint64(0))

	test.ExpectSuccess(t, n.Close())
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nvmem1.img")

	n, err := nvmem.Open("nvmem1", nvmem.WindowSize, path, quiet{})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, n.Path(), path)

	// a new file is sized to the window
	fi, err := os.Stat(path)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, fi.Size(), int64(nvmem.WindowSize))

	n.Write(0xfc, 4, 0x01020304)
	test.DemandSuccess(t, n.Close())

	b, err := os.ReadFile(path)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, b[0xfc], byte(0x04))
	test.ExpectEquality(t, b[0xff], byte(0x01))

	// contents are restored when the file is opened again
	n, err = nvmem.Open("nvmem1", nvmem.WindowSize, path, quiet{})
	test.DemandSuccess(t, err)
	defer n.Close()
	test.ExpectEquality(t, n.Read(0xfc, 4), uint64(0x01020304))
}

func TestOpenFailure(t *testing.T) {
	_, err := nvmem.Open("nvmem0", nvmem.WindowSize, filepath.Join(t.TempDir(), "missing", "x.img"), quiet{})
	test.ExpectFailure(t, err)
}

func TestLoad(t *testing.T) {
	n := nvmem.New("nvmem0", nvmem.WindowSize, quiet{})
	test.ExpectSuccess(t, n.Load(0, []byte{0x13, 0, 0, 0}))
	test.ExpectEquality(t, n.Read(0, 4), uint64(0x13))
	test.ExpectFailure(t, n.Load(0xff, []byte{1, 2}))
}
