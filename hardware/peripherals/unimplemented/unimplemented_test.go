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

package unimplemented_test

import (
	"strings"
	"testing"

	"github.com/mdpp/socemu/hardware/peripherals/unimplemented"
	"github.com/mdpp/socemu/logger"
	"github.com/mdpp/socemu/test"
)

func TestDevice(t *testing.T) {
	logger.Clear()
	defer logger.Clear()

	d := unimplemented.New("uart0", 0x100, logger.Allow)
	test.ExpectEquality(t, d.Name(), "uart0")
	test.ExpectEquality(t, d.Size(), uint64(0x100))

	d.Write(0x4, 4, 0x41)
	test.ExpectEquality(t, d.Read(0x4, 4), uint64(0))

	w := &strings.Builder{}
	logger.Write(w)
	test.ExpectEquality(t, w.String(), "UNIMPLEMENTED: uart0: write of 0x41 (4 bytes) at offset 0x4\n"+
		"UNIMPLEMENTED: uart0: read of 4 bytes at offset 0x4\n")
}
