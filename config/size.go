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

package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Size is a quantity of bytes. In configuration files and property strings it
// can be written as a plain number or with one of the suffixes K, M or G
// (binary multiples).
type Size uint64

// Common sizes.
const (
	KiB Size = 1 << 10
	MiB Size = 1 << 20
	GiB Size = 1 << 30
)

// ParseSize converts a string such as "128M" or "0x8000000" to a Size.
func ParseSize(s string) (Size, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size")
	}

	mult := Size(1)
	switch strings.ToUpper(s[len(s)-1:]) {
	case "K":
		mult = KiB
	case "M":
		mult = MiB
	case "G":
		mult = GiB
	}
	if mult != 1 {
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size (%s)", s)
	}

	return Size(v) * mult, nil
}

// String implements the fmt.Stringer interface. The largest suffix that
// represents the value exactly is used.
func (sz Size) String() string {
	switch {
	case sz == 0:
		return "0"
	case sz%GiB == 0:
		return fmt.Sprintf("%dG", sz/GiB)
	case sz%MiB == 0:
		return fmt.Sprintf("%dM", sz/MiB)
	case sz%KiB == 0:
		return fmt.Sprintf("%dK", sz/KiB)
	}
	return fmt.Sprintf("%d", uint64(sz))
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (sz *Size) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: size must be a scalar", value.Line)
	}
	v, err := ParseSize(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %v", value.Line, err)
	}
	*sz = v
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface.
func (sz Size) MarshalYAML() (any, error) {
	return sz.String(), nil
}
