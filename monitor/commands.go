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

package monitor

// monitor keywords
const (
	cmdPeek    = "PEEK"
	cmdPoke    = "POKE"
	cmdRegions = "REGIONS"
	cmdRegs    = "REGS"
	cmdCores   = "CORES"
	cmdIRQ     = "IRQ"
	cmdRoute   = "ROUTE"
	cmdClocks  = "CLOCKS"
	cmdDTS     = "DTS"
	cmdLog     = "LOG"
	cmdReset   = "RESET"
	cmdHelp    = "HELP"
	cmdQuit    = "QUIT"
)

// the order commands are listed by HELP
var commandList = []string{
	cmdPeek, cmdPoke, cmdRegions, cmdRegs, cmdCores, cmdIRQ, cmdRoute,
	cmdClocks, cmdDTS, cmdLog, cmdReset, cmdHelp, cmdQuit,
}

var usage = map[string]string{
	cmdPeek:  "PEEK <address> [count]",
	cmdPoke:  "POKE <address> <value>",
	cmdRegs:  "REGS <device>",
	cmdRoute: "ROUTE <node path>",
	cmdLog:   "LOG [number of entries]",
	cmdHelp:  "HELP [command]",
}

var help = map[string]string{
	cmdPeek:    "Read 32 bit words from the address space without side effects",
	cmdPoke:    "Write a 32 bit word to the address space without side effects",
	cmdRegions: "List the regions of the address space",
	cmdRegs:    "Display the registers of a peripheral",
	cmdCores:   "List the cores of the board",
	cmdIRQ:     "Display pending interrupts and the interrupt wiring",
	cmdRoute:   "List the harts an interrupt from a description node can reach",
	cmdClocks:  "Display the clock frequencies derived from the PRCI",
	cmdDTS:     "Print the hardware description as source",
	cmdLog:     "Print the most recent log entries",
	cmdReset:   "Reset the board and place the boot images again",
	cmdHelp:    "List commands or display help for a command",
	cmdQuit:    "Leave the monitor",
}
