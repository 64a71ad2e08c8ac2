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

	"github.com/mdpp/socemu/curated"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type property struct {
	get func(p *Platform) string
	set func(p *Platform, v string) error
}

func intProperty(f func(p *Platform) *int) property {
	return property{
		get: func(p *Platform) string { return strconv.Itoa(*f(p)) },
		set: func(p *Platform, v string) error {
			n, err := strconv.ParseInt(v, 0, 32)
			if err != nil {
				return fmt.Errorf("not a number (%s)", v)
			}
			*f(p) = int(n)
			return nil
		},
	}
}

func stringProperty(f func(p *Platform) *string) property {
	return property{
		get: func(p *Platform) string { return *f(p) },
		set: func(p *Platform, v string) error {
			*f(p) = v
			return nil
		},
	}
}

// properties is the dispatch table for SetProperties() and Properties(). the
// names match the YAML field names.
var properties = map[string]property{
	"compute-cores": intProperty(func(p *Platform) *int { return &p.ComputeCores }),
	"width":         intProperty(func(p *Platform) *int { return &p.Width }),
	"msel": {
		get: func(p *Platform) string { return strconv.FormatUint(uint64(p.MSEL), 10) },
		set: func(p *Platform, v string) error {
			n, err := strconv.ParseUint(v, 0, 32)
			if err != nil {
				return fmt.Errorf("not a number (%s)", v)
			}
			p.MSEL = uint32(n)
			return nil
		},
	},
	"start-in-flash": {
		get: func(p *Platform) string { return strconv.FormatBool(p.StartInFlash) },
		set: func(p *Platform, v string) error {
			switch strings.ToLower(v) {
			case "on", "yes":
				v = "true"
			case "off", "no":
				v = "false"
			}
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("not a boolean (%s)", v)
			}
			p.StartInFlash = b
			return nil
		},
	},
	"ram-size": {
		get: func(p *Platform) string { return p.RAMSize.String() },
		set: func(p *Platform, v string) error {
			sz, err := ParseSize(v)
			if err != nil {
				return err
			}
			p.RAMSize = sz
			return nil
		},
	},
	"can0-udp-port":  intProperty(func(p *Platform) *int { return &p.CAN0UDPPort }),
	"can1-udp-port":  intProperty(func(p *Platform) *int { return &p.CAN1UDPPort }),
	"lvds0-tcp-port": intProperty(func(p *Platform) *int { return &p.LVDS0TCPPort }),
	"lvds1-tcp-port": intProperty(func(p *Platform) *int { return &p.LVDS1TCPPort }),
	"lvds0-tty":      stringProperty(func(p *Platform) *string { return &p.LVDS0TTY }),
	"lvds1-tty":      stringProperty(func(p *Platform) *string { return &p.LVDS1TTY }),
	"nvmem0-file":    stringProperty(func(p *Platform) *string { return &p.NVMEM0File }),
	"nvmem1-file":    stringProperty(func(p *Platform) *string { return &p.NVMEM1File }),
	"firmware":       stringProperty(func(p *Platform) *string { return &p.Firmware }),
	"kernel":         stringProperty(func(p *Platform) *string { return &p.Kernel }),
	"append":         stringProperty(func(p *Platform) *string { return &p.Append }),
	"dtb":            stringProperty(func(p *Platform) *string { return &p.DTB }),
}

// SetProperties parses a string of comma separated key=value pairs and
// applies them to the platform. Empty items are ignored. On error the
// platform may have been partially updated.
func (p *Platform) SetProperties(s string) error {
	for _, kv := range strings.Split(s, ",") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}

		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return curated.Errorf(InvalidProperty, kv, "missing value")
		}
		k = strings.TrimSpace(k)

		prop, ok := properties[k]
		if !ok {
			return curated.Errorf(UnknownProperty, k)
		}

		if err := prop.set(p, strings.TrimSpace(v)); err != nil {
			return curated.Errorf(InvalidProperty, k, err)
		}
	}
	return nil
}

// Property returns the value of the named property.
func (p *Platform) Property(key string) (string, error) {
	prop, ok := properties[key]
	if !ok {
		return "", curated.Errorf(UnknownProperty, key)
	}
	return prop.get(p), nil
}

// Properties returns every property of the platform in a form accepted by
// SetProperties(). Keys are sorted.
func (p *Platform) Properties() string {
	keys := maps.Keys(properties)
	slices.Sort(keys)

	s := strings.Builder{}
	for i, k := range keys {
		if i > 0 {
			s.WriteString(",")
		}
		s.WriteString(fmt.Sprintf("%s=%s", k, properties[k].get(p)))
	}
	return s.String()
}

// PropertyNames returns the sorted list of property names.
func PropertyNames() []string {
	keys := maps.Keys(properties)
	slices.Sort(keys)
	return keys
}
