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

package loader

import (
	"bytes"
	"crypto/sha1"
	"debug/elf"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/mdpp/socemu/config"
	"github.com/mdpp/socemu/curated"
	"github.com/pkg/errors"
)

// Sentinal error patterns.
const (
	LoadError     = "loader: %v"
	EmptyImage    = "loader: %s: image is empty"
	NoSegments    = "loader: %s: no loadable segments"
	BadSegment    = "loader: %s: segment at %#x is larger in the file than in memory"
	SegmentSize   = "loader: %s: segment at %#x needs %#x bytes, more than the largest RAM"
	HashMismatch  = "loader: %s: unexpected hash value"
	UnknownScheme = "loader: unsupported URL scheme (%s)"
)

// Memory is the address space an image is placed in.
type Memory interface {
	LoadAt(address uint64, data []byte) error
}

// Format of an image.
type Format int

// List of valid Format values.
const (
	Raw Format = iota
	ELF
)

func (f Format) String() string {
	if f == ELF {
		return "elf"
	}
	return "raw"
}

// Image describes a placed image.
type Image struct {
	Filename string
	Format   Format

	// lowest address of the image
	Start uint64

	// address execution of the image should start at
	Entry uint64

	// first address after the highest byte of the image
	End uint64
}

func (img Image) String() string {
	return fmt.Sprintf("%s (%s) %#x -> %#x entry %#x", path.Base(img.Filename), img.Format, img.Start, img.End, img.Entry)
}

// Loader is used to specify the image to place.
type Loader struct {
	// filename or URL of the image
	Filename string

	// expected hash of the image. empty string indicates that the hash is
	// unknown and need not be validated. after a fetch the value will be the
	// hash of the fetched data
	Hash string

	// the fetched data
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{
		Filename: strings.TrimSpace(filename),
	}
}

// ShortName returns the filename without any path or extension.
func (l Loader) ShortName() string {
	n := path.Base(l.Filename)
	return strings.TrimSuffix(n, path.Ext(n))
}

// HasFetched returns true if Fetch() has been successfully called.
func (l Loader) HasFetched() bool {
	return len(l.Data) > 0
}

// Fetch the image data. Filenames with an http or https scheme are fetched
// over the network, everything else is read from the local file system.
func (l *Loader) Fetch() error {
	if l.HasFetched() {
		return nil
	}

	scheme := "file"
	if u, err := url.Parse(l.Filename); err == nil && u.Scheme != "" {
		scheme = u.Scheme
	}

	var err error

	switch scheme {
	case "http", "https":
		var resp *http.Response
		resp, err = http.Get(l.Filename)
		if err != nil {
			return curated.Errorf(LoadError, errors.Wrapf(err, "fetching %s", l.Filename))
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return curated.Errorf(LoadError, errors.Errorf("fetching %s: %s", l.Filename, resp.Status))
		}
		l.Data, err = io.ReadAll(resp.Body)
		if err != nil {
			return curated.Errorf(LoadError, errors.Wrapf(err, "reading %s", l.Filename))
		}

	case "file":
		l.Data, err = os.ReadFile(l.Filename)
		if err != nil {
			return curated.Errorf(LoadError, errors.Wrapf(err, "reading image"))
		}

	default:
		return curated.Errorf(UnknownScheme, scheme)
	}

	if len(l.Data) == 0 {
		return curated.Errorf(EmptyImage, l.Filename)
	}

	hash := fmt.Sprintf("%x", sha1.Sum(l.Data))
	if l.Hash != "" && l.Hash != hash {
		l.Data = nil
		return curated.Errorf(HashMismatch, l.Filename)
	}
	l.Hash = hash

	return nil
}

// Place the image in memory. Raw images are placed at the address. ELF images
// are placed at the physical addresses of their segments and the address is
// ignored.
func (l *Loader) Place(mem Memory, address uint64) (Image, error) {
	if err := l.Fetch(); err != nil {
		return Image{}, err
	}

	if bytes.HasPrefix(l.Data, []byte(elf.ELFMAG)) {
		return l.placeELF(mem)
	}

	if err := mem.LoadAt(address, l.Data); err != nil {
		return Image{}, curated.Errorf(LoadError, err)
	}

	return Image{
		Filename: l.Filename,
		Format:   Raw,
		Start:    address,
		Entry:    address,
		End:      address + uint64(len(l.Data)),
	}, nil
}

func (l *Loader) placeELF(mem Memory) (Image, error) {
	f, err := elf.NewFile(bytes.NewReader(l.Data))
	if err != nil {
		return Image{}, curated.Errorf(LoadError, errors.Wrapf(err, "%s", l.Filename))
	}
	defer f.Close()

	img := Image{
		Filename: l.Filename,
		Format:   ELF,
		Entry:    f.Entry,
	}

	var loaded bool
	for _, p := range f.Progs {
		if p.Type != elf.PT_LOAD || p.Memsz == 0 {
			continue
		}

		if p.Filesz > p.Memsz {
			return Image{}, curated.Errorf(BadSegment, l.Filename, p.Paddr)
		}

		if p.Memsz > uint64(config.MaxRAMSize) {
			return Image{}, curated.Errorf(SegmentSize, l.Filename, p.Paddr, p.Memsz)
		}

		// the part of the segment not in the file is zero filled
		seg := make([]byte, p.Memsz)
		if _, err := io.ReadFull(p.Open(), seg[:p.Filesz]); err != nil {
			return Image{}, curated.Errorf(LoadError, errors.Wrapf(err, "%s: segment at %#x", l.Filename, p.Paddr))
		}

		if err := mem.LoadAt(p.Paddr, seg); err != nil {
			return Image{}, curated.Errorf(LoadError, err)
		}

		if !loaded || p.Paddr < img.Start {
			img.Start = p.Paddr
		}
		if end := p.Paddr + p.Memsz; end > img.End {
			img.End = end
		}
		loaded = true
	}

	if !loaded {
		return Image{}, curated.Errorf(NoSegments, l.Filename)
	}

	return img, nil
}

// Load the image at the path into memory. Returns the entry address and the
// first address after the image.
func Load(filename string, mem Memory, address uint64) (uint64, uint64, error) {
	l := NewLoader(filename)
	img, err := l.Place(mem, address)
	if err != nil {
		return 0, 0, err
	}
	return img.Entry, img.End, nil
}
