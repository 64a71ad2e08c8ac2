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

package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "socemu"

// set by the linker for release builds:
//
//	go build -ldflags "-X github.com/mdpp/socemu/version.number=v1.0.0"
var number string

var (
	version   string
	revision  string
	goVersion string
)

// Version returns the version string, the revision string and whether this is a
// numbered "release" version.
//
// If the version string is "unreleased" the binary was built from a VCS
// checkout without a version number. If it is "local" there is no VCS
// information either, which happens with "go run .".
func Version() (string, string, bool) {
	return version, revision, number != "" && version == number
}

// String returns a single line summary suitable for the "version" command.
func String() string {
	v, r, release := Version()
	if release {
		return fmt.Sprintf("%s %s (%s)", ApplicationName, v, goVersion)
	}
	return fmt.Sprintf("%s %s %s (%s)", ApplicationName, v, r, goVersion)
}

func init() {
	var vcs bool
	var vcsRevision string
	var vcsModified bool

	goVersion = "unknown go version"

	info, ok := debug.ReadBuildInfo()
	if ok {
		goVersion = info.GoVersion
		for _, v := range info.Settings {
			switch v.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				vcsRevision = v.Value
			case "vcs.modified":
				vcsModified = v.Value == "true"
			}
		}
	}

	if vcsRevision == "" {
		revision = "no revision information"
	} else {
		revision = vcsRevision
		if vcsModified {
			revision = fmt.Sprintf("%s+dirty", revision)
		}
	}

	switch {
	case number != "":
		version = number
	case vcs:
		version = "unreleased"
	default:
		version = "local"
	}
}
