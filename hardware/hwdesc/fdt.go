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

package hwdesc

import (
	"encoding/binary"

	"github.com/mdpp/socemu/curated"
)

// Sentinal error patterns.
const (
	BlobError = "hwdesc: blob: %v"
	BlobShort = "too short"
	BlobMagic = "bad magic %#08x"
	BlobSize  = "total size %d is larger than the %d bytes available"
)

// Flattened device tree format constants.
const (
	Magic            = 0xd00dfeed
	Version          = 17
	LastCompatible   = 16
	headerSize       = 40
	reservationEntry = 16
)

// structure block tokens
const (
	tokenBeginNode = 0x1
	tokenEndNode   = 0x2
	tokenProp      = 0x3
	tokenEnd       = 0x9
)

type encoder struct {
	structure []byte
	strings   []byte

	// offsets into the strings block
	offsets map[string]uint32
}

func (e *encoder) word(v uint32) {
	e.structure = binary.BigEndian.AppendUint32(e.structure, v)
}

// pad the structure block to a four byte boundary
func (e *encoder) pad() {
	for len(e.structure)%4 != 0 {
		e.structure = append(e.structure, 0)
	}
}

func (e *encoder) nameOffset(name string) uint32 {
	if o, ok := e.offsets[name]; ok {
		return o
	}
	o := uint32(len(e.strings))
	e.strings = append(e.strings, name...)
	e.strings = append(e.strings, 0)
	e.offsets[name] = o
	return o
}

func (p Property) value() []byte {
	var b []byte
	switch p.Kind {
	case Cells:
		for _, c := range p.Cells {
			b = binary.BigEndian.AppendUint32(b, c)
		}
	case Strings:
		for _, s := range p.Strings {
			b = append(b, s...)
			b = append(b, 0)
		}
	}
	return b
}

func (e *encoder) node(n *Node) {
	e.word(tokenBeginNode)
	if n.path != "/" {
		e.structure = append(e.structure, n.Name...)
	}
	e.structure = append(e.structure, 0)
	e.pad()

	for _, p := range n.Props {
		v := p.value()
		e.word(tokenProp)
		e.word(uint32(len(v)))
		e.word(e.nameOffset(p.Name))
		e.structure = append(e.structure, v...)
		e.pad()
	}

	for _, c := range n.Children {
		e.node(c)
	}

	e.word(tokenEndNode)
}

// Encode the tree as a flattened device tree blob. The memory reservation
// block is empty and the strings block lists property names in the order they
// are first used.
func (t *Tree) Encode() []byte {
	e := encoder{offsets: make(map[string]uint32)}
	e.node(t.root)
	e.word(tokenEnd)

	offStruct := uint32(headerSize + reservationEntry)
	offStrings := offStruct + uint32(len(e.structure))
	total := offStrings + uint32(len(e.strings))

	b := make([]byte, 0, total)
	for _, v := range []uint32{
		Magic,
		total,
		offStruct,
		offStrings,
		headerSize,
		Version,
		LastCompatible,
		0, // boot cpu
		uint32(len(e.strings)),
		uint32(len(e.structure)),
	} {
		b = binary.BigEndian.AppendUint32(b, v)
	}

	// terminating entry of the reservation block
	b = append(b, make([]byte, reservationEntry)...)

	b = append(b, e.structure...)
	b = append(b, e.strings...)

	return b
}

// CheckBlob performs a sanity check on a blob that was not produced by
// Encode(), such as one supplied by the user in place of the generated
// description.
func CheckBlob(b []byte) error {
	if len(b) < headerSize {
		return curated.Errorf(BlobError, BlobShort)
	}
	if m := binary.BigEndian.Uint32(b); m != Magic {
		return curated.Errorf(BlobError, curated.Errorf(BlobMagic, m))
	}
	if sz := binary.BigEndian.Uint32(b[4:]); int(sz) > len(b) {
		return curated.Errorf(BlobError, curated.Errorf(BlobSize, sz, len(b)))
	}
	return nil
}
