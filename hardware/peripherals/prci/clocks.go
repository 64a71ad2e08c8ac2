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

package prci

// PLLFrequency returns the output frequency of a PLL configured with the
// value of one of the PLLCFG0 registers, given the reference frequency.
//
//	vco = ref * 2 * (DIVF + 1) / (DIVR + 1)
//	out = vco / 2^DIVQ
func PLLFrequency(cfg0 uint32, ref uint64) uint64 {
	divr := uint64(cfg0 & 0x3f)
	divf := uint64((cfg0 >> 6) & 0x1ff)
	divq := (cfg0 >> 15) & 0x7
	vco := ref * 2 * (divf + 1) / (divr + 1)
	return vco >> divq
}

// CoreFrequency returns the frequency of the core clock given the frequency
// of the high frequency reference clock. The core clock is either the
// reference clock itself or the output of the core PLL, depending on
// CORECLKSEL.
func (p *PRCI) CoreFrequency(hfclk uint64) uint64 {
	s := p.State()
	if s.CORECLKSEL&CORECLKSELHFCLK == CORECLKSELHFCLK {
		return hfclk
	}
	return PLLFrequency(s.COREPLLCFG0, hfclk)
}

// TLFrequency returns the frequency of the peripheral (TileLink) clock,
// which is half of the core clock.
func (p *PRCI) TLFrequency(hfclk uint64) uint64 {
	return p.CoreFrequency(hfclk) / 2
}
