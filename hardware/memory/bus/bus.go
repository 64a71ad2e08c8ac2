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

package bus

import (
	"fmt"
	"sort"

	"github.com/mdpp/socemu/curated"
	"github.com/mdpp/socemu/logger"
)

// Sentinal error patterns.
const (
	RegionOverlap    = "bus: region %s overlaps %s"
	RegionEmpty      = "bus: region %s has no size"
	RegionOutOfRange = "bus: region %s is outside the %d bit address space"
	RegionUnknown    = "bus: no region named %s"
	RegionDuplicate  = "bus: region %s already mapped"
	NotLoadable      = "bus: region %s cannot be loaded"
	LoadOutOfRange   = "bus: load of %d bytes at %#x is not inside one region"
	Sealed           = "bus: address space is sealed"
)

// GuestError is the tag used for all logging of errors caused by the guest
// software. Guest errors never stop the emulation.
const GuestError = "GUEST ERROR"

// Device is implemented by everything that can be mapped into the address
// space. The offset is relative to the base of the region. The size is in
// bytes.
type Device interface {
	Read(offset uint64, size int) uint64
	Write(offset uint64, size int, value uint64)
}

// Resetter is implemented by devices that have a power-on state.
type Resetter interface {
	Reset()
}

// Loader is implemented by devices that can be filled with an image by the
// machine builder, whether or not the guest can write to them.
type Loader interface {
	Load(offset uint64, data []byte) error
}

// Region is a window of the address space decoded by a single device.
type Region struct {
	Name   string
	Base   uint64
	Size   uint64
	Device Device
}

// End returns the first address after the region.
func (r Region) End() uint64 {
	return r.Base + r.Size
}

// Contains returns true if the address is decoded by the region.
func (r Region) Contains(address uint64) bool {
	return address >= r.Base && address-r.Base < r.Size
}

func (r Region) String() string {
	return fmt.Sprintf("%09x -> %09x\t%s", r.Base, r.End()-1, r.Name)
}

// AddressSpace is the ordered set of regions seen by the cores.
type AddressSpace struct {
	perm logger.Permission
	bits int

	// sorted by base address
	regions []Region

	sealed bool
}

// NewAddressSpace is the preferred method of initialisation for the
// AddressSpace type. The bits argument is the width of the physical address.
func NewAddressSpace(bits int, perm logger.Permission) *AddressSpace {
	return &AddressSpace{
		perm: perm,
		bits: bits,
	}
}

// Map a device into the address space.
func (as *AddressSpace) Map(name string, base uint64, size uint64, dev Device) error {
	if as.sealed {
		return curated.Errorf(Sealed)
	}

	if size == 0 {
		return curated.Errorf(RegionEmpty, name)
	}

	limit := uint64(1) << as.bits
	if base >= limit || size > limit-base {
		return curated.Errorf(RegionOutOfRange, name, as.bits)
	}

	for _, r := range as.regions {
		if r.Name == name {
			return curated.Errorf(RegionDuplicate, name)
		}
		if base < r.End() && r.Base < base+size {
			return curated.Errorf(RegionOverlap, name, r.Name)
		}
	}

	as.regions = append(as.regions, Region{Name: name, Base: base, Size: size, Device: dev})
	sort.Slice(as.regions, func(i, j int) bool {
		return as.regions[i].Base < as.regions[j].Base
	})

	return nil
}

// Remap replaces the device of an existing region. The window of the region
// is unchanged.
func (as *AddressSpace) Remap(name string, dev Device) error {
	if as.sealed {
		return curated.Errorf(Sealed)
	}
	for i := range as.regions {
		if as.regions[i].Name == name {
			as.regions[i].Device = dev
			return nil
		}
	}
	return curated.Errorf(RegionUnknown, name)
}

// Seal the address space. No more calls to Map() or Remap() are allowed.
func (as *AddressSpace) Seal() {
	as.sealed = true
}

// IsSealed returns true if Seal() has been called.
func (as *AddressSpace) IsSealed() bool {
	return as.sealed
}

// Bits returns the width of the physical address.
func (as *AddressSpace) Bits() int {
	return as.bits
}

// Regions returns a copy of the regions in address order.
func (as *AddressSpace) Regions() []Region {
	r := make([]Region, len(as.regions))
	copy(r, as.regions)
	return r
}

// Find the region with the specified name.
func (as *AddressSpace) Find(name string) (Region, bool) {
	for _, r := range as.regions {
		if r.Name == name {
			return r, true
		}
	}
	return Region{}, false
}

// Lookup the region that decodes the address.
func (as *AddressSpace) Lookup(address uint64) (Region, bool) {
	i := sort.Search(len(as.regions), func(i int) bool {
		return as.regions[i].End() > address
	})
	if i < len(as.regions) && as.regions[i].Contains(address) {
		return as.regions[i], true
	}
	return Region{}, false
}

func (as *AddressSpace) decode(address uint64, size int) (Region, bool) {
	r, ok := as.Lookup(address)
	if !ok {
		return Region{}, false
	}
	if size < 1 || address-r.Base+uint64(size) > r.Size {
		return Region{}, false
	}
	return r, true
}

// Read from the address space. Returns false if the access could not be
// decoded, in which case the value is zero.
func (as *AddressSpace) Read(address uint64, size int) (uint64, bool) {
	r, ok := as.decode(address, size)
	if !ok {
		logger.Logf(as.perm, GuestError, "read of %d bytes at unmapped address %#x", size, address)
		return 0, false
	}
	return r.Device.Read(address-r.Base, size), true
}

// Write to the address space. Returns false if the access could not be
// decoded, in which case the write has been dropped.
func (as *AddressSpace) Write(address uint64, size int, value uint64) bool {
	r, ok := as.decode(address, size)
	if !ok {
		logger.Logf(as.perm, GuestError, "write of %d bytes at unmapped address %#x", size, address)
		return false
	}
	r.Device.Write(address-r.Base, size, value)
	return true
}

// LoadAt copies data into the device decoding the address. The data must be
// entirely inside one region and the device must implement the Loader
// interface.
func (as *AddressSpace) LoadAt(address uint64, data []byte) error {
	r, ok := as.Lookup(address)
	if !ok || uint64(len(data)) > r.End()-address {
		return curated.Errorf(LoadOutOfRange, len(data), address)
	}
	l, ok := r.Device.(Loader)
	if !ok {
		return curated.Errorf(NotLoadable, r.Name)
	}
	return l.Load(address-r.Base, data)
}

// Reset every device that implements the Resetter interface.
func (as *AddressSpace) Reset() {
	for _, r := range as.regions {
		if d, ok := r.Device.(Resetter); ok {
			d.Reset()
		}
	}
}
