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

package environment

// Label is used to name the environment.
type Label string

// List of valid emulation labels.
const (
	// MainEmulation is the machine being run by the user. Guest errors and
	// device diagnostics are logged.
	MainEmulation = Label("")

	// ProbeEmulation is a machine composed only to inspect it, for example
	// to emit the description blob or the boot vector. Probe machines do not
	// log.
	ProbeEmulation = Label("probe")
)

// Environment is used to provide context for a machine. Particularly useful
// when more than one machine is composed in the same process.
type Environment struct {
	Label Label
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type.
func NewEnvironment(label Label) *Environment {
	return &Environment{Label: label}
}

// String implements the fmt.Stringer interface.
func (env *Environment) String() string {
	if env.Label == MainEmulation {
		return "main"
	}
	return string(env.Label)
}

// IsMainEmulation returns true if the environment is intended for the main
// emulation in the system.
func (env *Environment) IsMainEmulation() bool {
	return env.Label == MainEmulation
}

// IsEmulation checks the emulation label and returns true if it matches.
func (env *Environment) IsEmulation(label Label) bool {
	return env.Label == label
}

// AllowLogging implements the logger.Permission interface. Only the main
// emulation is allowed to log. A nil environment is treated as the main
// emulation.
func (env *Environment) AllowLogging() bool {
	if env == nil {
		return true
	}
	return env.IsMainEmulation()
}
