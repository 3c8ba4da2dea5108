// Package diskimage reads CPCEMU/Extended-DSK formatted floppy images and
// exposes their sectors through a callback compatible with cpm.SectorFunc.
//
// This package is the "disk-image file handling" external collaborator
// that cpm's specification explicitly keeps out of the core (spec.md §1):
// cpm never touches a file or decides how sectors are laid out inside one;
// diskimage is one concrete way to supply the callback it needs.
//
// Reference: http://www.seasip.info/Cpm/amsform.html, the CPCEMU/Extended
// DSK format documentation.
package diskimage

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Image is a parsed DSK-format disk image: a header followed by one
// Track Information Block (and its sector data) per track, read
// sequentially, in the same spirit as the teacher's DSK.Read - but
// adapted to support the Extended DSK per-track size table and to hand
// sectors back through a callback instead of an in-memory tree.
type Image struct {
	header Header
	tracks []Track
}

// Open parses an Image from r. The whole image is read into Track
// structures up front since the cpm package may request any sector at
// any time and offers no notion of "current position" to optimize
// around.
func Open(r io.Reader) (*Image, error) {
	img := &Image{}

	if err := img.header.read(r); err != nil {
		return nil, errors.Wrap(err, "reading disk information block")
	}

	count := int(img.header.Tracks) * int(img.header.Sides)
	img.tracks = make([]Track, 0, count)
	for i := 0; i < count; i++ {
		size := img.header.trackSize(i)
		track, err := readTrack(r, size)
		if err != nil {
			return nil, errors.Wrapf(err, "reading track #%d", i)
		}
		img.tracks = append(img.tracks, track)
	}

	return img, nil
}

// Geometry reports how many physical tracks (cylinders) and sides the
// image declares.
func (img *Image) Geometry() (cylinders, sides int) {
	return int(img.header.Tracks), int(img.header.Sides)
}

// trackIndex returns the index into img.tracks for a given cylinder and
// head, matching the DSK format's storage order: all sides of cylinder 0,
// then all sides of cylinder 1, and so on (spec.md §4.2's "head
// interleaved" layout is a property of cpm's CHS arithmetic, not of this
// on-disk format, so the two must be bridged here).
func (img *Image) trackIndex(cylinder, head int) int {
	return cylinder*int(img.header.Sides) + head
}

// ReadSector implements a function compatible with cpm.SectorFunc: it
// locates the physical sector addressed by (cylinder, head, sector) and
// copies its bytes into buf. userdata is ignored; it exists only to match
// the callback signature cpm.New expects.
func (img *Image) ReadSector(_ interface{}, cylinder, head, sector int, buf []byte) error {
	idx := img.trackIndex(cylinder, head)
	if idx < 0 || idx >= len(img.tracks) {
		return errors.Errorf("diskimage: cylinder %d head %d is outside the image", cylinder, head)
	}

	track := img.tracks[idx]
	data, err := track.sectorByID(byte(sector))
	if err != nil {
		return errors.Wrapf(err, "cylinder %d head %d sector %d", cylinder, head, sector)
	}

	n := copy(buf, data)
	if n < len(buf) {
		return errors.Errorf("diskimage: sector c=%d h=%d s=%d is shorter than requested", cylinder, head, sector)
	}
	return nil
}

// le16 reads a little-endian uint16, the byte order the DSK format (and
// CP/M itself) stores multi-byte fields in.
func le16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }
