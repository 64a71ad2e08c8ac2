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

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mdpp/socemu/curated"
	"github.com/mdpp/socemu/hardware"
	"github.com/mdpp/socemu/hardware/memory/regfile"
	"github.com/mdpp/socemu/hardware/soc"
	"github.com/mdpp/socemu/logger"
)

// Sentinal error patterns.
const (
	UnknownCommand = "monitor: unknown command (%s)"
	NumberExpected = "monitor: number expected"
	NotANumber     = "monitor: not a number (%s)"
	TooManyArgs    = "monitor: too many arguments for %s"
	ArgExpected    = "monitor: %s expected"
	NoDevice       = "monitor: no device at %#x"
	NoSuchRegion   = "monitor: no region named %s"
	NoRegisters    = "monitor: %s has no registers"
	NoDescription  = "monitor: the description was not generated"
)

// Prompt printed before every command is read.
const Prompt = "> "

// default number of log entries printed by LOG
const defaultLogEntries = 10

// the most words printed by a single PEEK
const maxPeek = 256

// registered is implemented by peripherals built on a register file.
type registered interface {
	Registers() *regfile.File
}

// Monitor executes commands against a machine.
type Monitor struct {
	machine *hardware.Machine
	output  io.Writer

	// print a prompt before reading a command
	Prompt bool
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
func NewMonitor(m *hardware.Machine, output io.Writer) *Monitor {
	return &Monitor{
		machine: m,
		output:  output,
	}
}

func (mon *Monitor) printLine(s string, a ...any) {
	fmt.Fprintf(mon.output, s, a...)
	io.WriteString(mon.output, "\n")
}

func (mon *Monitor) printError(err error) {
	mon.printLine("* %v", err)
}

// Run reads and executes commands until QUIT, the end of the input or the
// cancellation of the context. Errors from commands are printed and do not
// stop the monitor. The error from the input is returned, if any.
func (mon *Monitor) Run(ctx context.Context, input io.Reader) error {
	lines := make(chan string)
	errs := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(input)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		errs <- scanner.Err()
	}()

	for {
		if mon.Prompt {
			io.WriteString(mon.output, Prompt)
		}

		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-errs
			}
			quit, err := mon.Command(line)
			if err != nil {
				mon.printError(err)
			}
			if quit {
				return nil
			}
		}
	}
}

// Command executes a single command. Returns true if the command was QUIT.
func (mon *Monitor) Command(input string) (bool, error) {
	tokens := TokeniseInput(input)

	cmd, ok := tokens.Get()
	if !ok {
		return false, nil
	}
	cmd = strings.ToUpper(cmd)

	if cmd == cmdQuit {
		return true, nil
	}

	f, ok := dispatch[cmd]
	if !ok {
		return false, curated.Errorf(UnknownCommand, cmd)
	}

	return false, f(mon, tokens)
}

var dispatch map[string]func(*Monitor, *Tokens) error

func init() {
	dispatch = map[string]func(*Monitor, *Tokens) error{
		cmdPeek:    (*Monitor).peek,
		cmdPoke:    (*Monitor).poke,
		cmdRegions: (*Monitor).regions,
		cmdRegs:    (*Monitor).regs,
		cmdCores:   (*Monitor).cores,
		cmdIRQ:     (*Monitor).irq,
		cmdRoute:   (*Monitor).route,
		cmdClocks:  (*Monitor).clocks,
		cmdDTS:     (*Monitor).dts,
		cmdLog:     (*Monitor).log,
		cmdReset:   (*Monitor).reset,
		cmdHelp:    (*Monitor).help,
	}
}

func noMore(tokens *Tokens, cmd string) error {
	if !tokens.IsEnd() {
		return curated.Errorf(TooManyArgs, cmd)
	}
	return nil
}

func (mon *Monitor) peek(tokens *Tokens) error {
	addr, err := tokens.Number()
	if err != nil {
		return err
	}

	count := uint64(1)
	if !tokens.IsEnd() {
		count, err = tokens.Number()
		if err != nil {
			return err
		}
		if count > maxPeek {
			count = maxPeek
		}
	}
	if err := noMore(tokens, cmdPeek); err != nil {
		return err
	}

	for i := uint64(0); i < count; i++ {
		a := addr + i*4
		v, ok := mon.machine.SoC.Bus.Peek(a)
		if !ok {
			return curated.Errorf(NoDevice, a)
		}
		mon.printLine("%09x: %08x", a, v)
	}

	return nil
}

func (mon *Monitor) poke(tokens *Tokens) error {
	addr, err := tokens.Number()
	if err != nil {
		return err
	}
	v, err := tokens.Number()
	if err != nil {
		return err
	}
	if err := noMore(tokens, cmdPoke); err != nil {
		return err
	}

	if !mon.machine.SoC.Bus.Poke(addr, uint32(v)) {
		return curated.Errorf(NoDevice, addr)
	}
	return nil
}

func (mon *Monitor) regions(tokens *Tokens) error {
	if err := noMore(tokens, cmdRegions); err != nil {
		return err
	}
	for _, r := range mon.machine.SoC.Bus.Regions() {
		mon.printLine("%s", r)
	}
	return nil
}

func (mon *Monitor) regs(tokens *Tokens) error {
	name, ok := tokens.Get()
	if !ok {
		return curated.Errorf(ArgExpected, "device name")
	}
	if err := noMore(tokens, cmdRegs); err != nil {
		return err
	}

	r, ok := mon.machine.SoC.Bus.Find(strings.ToLower(name))
	if !ok {
		return curated.Errorf(NoSuchRegion, name)
	}
	dev, ok := r.Device.(registered)
	if !ok {
		return curated.Errorf(NoRegisters, r.Name)
	}

	mon.printLine("%s", strings.TrimRight(dev.Registers().String(), "\n"))
	return nil
}

func (mon *Monitor) cores(tokens *Tokens) error {
	if err := noMore(tokens, cmdCores); err != nil {
		return err
	}
	for _, c := range mon.machine.SoC.Cores() {
		mon.printLine("%s", c)
	}
	return nil
}

func (mon *Monitor) irq(tokens *Tokens) error {
	if err := noMore(tokens, cmdIRQ); err != nil {
		return err
	}
	mon.printLine("%s", mon.machine.SoC.IRQ)
	io.WriteString(mon.output, mon.machine.SoC.WiringSummary())
	return nil
}

func (mon *Monitor) route(tokens *Tokens) error {
	path, ok := tokens.Get()
	if !ok {
		return curated.Errorf(ArgExpected, "node path")
	}
	if err := noMore(tokens, cmdRoute); err != nil {
		return err
	}
	if mon.machine.Description == nil {
		return curated.Errorf(NoDescription)
	}

	harts, err := mon.machine.Description.InterruptRoute(path)
	if err != nil {
		return err
	}
	if len(harts) == 0 {
		mon.printLine("%s reaches no harts", path)
		return nil
	}

	s := make([]string, len(harts))
	for i, h := range harts {
		s[i] = fmt.Sprintf("%d", h)
	}
	mon.printLine("%s reaches harts %s", path, strings.Join(s, " "))
	return nil
}

func (mon *Monitor) clocks(tokens *Tokens) error {
	if err := noMore(tokens, cmdClocks); err != nil {
		return err
	}
	p := mon.machine.SoC.PRCI
	mon.printLine("hfclk: %d Hz", soc.HFClockFrequency)
	mon.printLine("rtcclk: %d Hz", soc.RTCClockFrequency)
	mon.printLine("core: %d Hz", p.CoreFrequency(soc.HFClockFrequency))
	mon.printLine("tl: %d Hz", p.TLFrequency(soc.HFClockFrequency))
	return nil
}

func (mon *Monitor) dts(tokens *Tokens) error {
	if err := noMore(tokens, cmdDTS); err != nil {
		return err
	}
	if mon.machine.Description == nil {
		return curated.Errorf(NoDescription)
	}
	return mon.machine.Description.WriteDTS(mon.output)
}

func (mon *Monitor) log(tokens *Tokens) error {
	n := uint64(defaultLogEntries)
	if !tokens.IsEnd() {
		var err error
		n, err = tokens.Number()
		if err != nil {
			return err
		}
	}
	if err := noMore(tokens, cmdLog); err != nil {
		return err
	}
	logger.Tail(mon.output, int(n))
	return nil
}

func (mon *Monitor) reset(tokens *Tokens) error {
	if err := noMore(tokens, cmdReset); err != nil {
		return err
	}
	if err := mon.machine.Reset(); err != nil {
		return err
	}
	mon.printLine("machine reset")
	return nil
}

func (mon *Monitor) help(tokens *Tokens) error {
	cmd, ok := tokens.Get()
	if !ok {
		for _, c := range commandList {
			mon.printLine("%-8s %s", c, help[c])
		}
		return nil
	}
	if err := noMore(tokens, cmdHelp); err != nil {
		return err
	}

	cmd = strings.ToUpper(cmd)
	h, ok := help[cmd]
	if !ok {
		return curated.Errorf(UnknownCommand, cmd)
	}
	mon.printLine("%s", h)
	if u, ok := usage[cmd]; ok {
		mon.printLine("usage: %s", u)
	}
	return nil
}
