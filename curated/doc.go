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

// Package curated is a helper package for the plain Go language error type.
// Every package of the board model reports errors through it.
//
// A curated error is created with Errorf(), which takes a pattern and the
// values for the pattern in the same way as fmt.Errorf(). The pattern is kept
// with the error and identifies it. Patterns are declared as constants by
// the package that creates the error:
//
//	const RegionOverlap = "bus: region %s overlaps %s"
//
//	return curated.Errorf(RegionOverlap, name, r.Name)
//
// Is() checks the pattern of the outermost error. Has() checks every error in
// the chain, so a caller two packages removed can still find the cause:
//
//	_, err := hardware.NewMachine(env, cfg)
//	if curated.Has(err, bus.RegionOverlap) {
//		...
//	}
//
// IsAny() answers whether an error is curated at all. An uncurated error is
// one that the board model did not expect, typically from the host.
//
// Messages are normalised when Error() is called: adjacent duplicate parts of
// the chain are removed. A part is the text between two ": " separators. This
// means that a package can wrap an error with its own prefix without caring
// whether the error already carries it:
//
//	curated.Errorf("soc: %v", curated.Errorf("soc: no device for %s", "can0"))
//
// prints as
//
//	soc: no device for can0
//
// Curated errors implement Unwrap() and so errors.Is() and errors.As() work
// through them. This is how a wrapped os or net error is found.
package curated
