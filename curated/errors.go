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

package curated

import (
	"errors"
	"fmt"
	"strings"
)

// curated is an implementation of the go language error interface. The
// pattern is kept so that the error can be identified without comparing
// message text.
type curated struct {
	pattern string
	values  []any
}

// Errorf creates a new curated error. The first argument is called pattern
// rather than format because it is also the value that Is() and Has() match
// against.
func Errorf(pattern string, values ...any) error {
	return curated{
		pattern: pattern,
		values:  values,
	}
}

// separator between the parts of an error chain.
const separator = ": "

// normalise removes duplicate adjacent parts from an error message.
func normalise(s string) string {
	parts := strings.Split(s, separator)

	b := strings.Builder{}
	for i, p := range parts {
		if i > 0 {
			if p == parts[i-1] {
				continue
			}
			b.WriteString(separator)
		}
		b.WriteString(p)
	}

	return b.String()
}

// Error implements the go language error interface. The message is
// normalised. See the package documentation.
func (er curated) Error() string {
	return normalise(fmt.Errorf(er.pattern, er.values...).Error())
}

// Unwrap returns the first error in the values of a curated error. Allows
// errors.Is() and errors.As() from the standard library to see through a
// curated error.
func (er curated) Unwrap() error {
	for _, v := range er.values {
		if e, ok := v.(error); ok {
			return e
		}
	}
	return nil
}

// IsAny returns true if the error was created by Errorf().
func IsAny(err error) bool {
	_, ok := err.(curated)
	return ok
}

// Is returns true if the error was created by Errorf() with the pattern. Only
// the outermost error is checked.
func Is(err error, pattern string) bool {
	er, ok := err.(curated)
	return ok && er.pattern == pattern
}

// Has returns true if an error created by Errorf() with the pattern is
// anywhere in the chain. The chain includes every error value of a curated
// error and the errors wrapped by non-curated errors, such as those from
// github.com/pkg/errors.
func Has(err error, pattern string) bool {
	for err != nil {
		er, ok := err.(curated)
		if !ok {
			err = errors.Unwrap(err)
			continue
		}

		if er.pattern == pattern {
			return true
		}

		for _, v := range er.values {
			if e, ok := v.(error); ok && Has(e, pattern) {
				return true
			}
		}
		return false
	}
	return false
}
