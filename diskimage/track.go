package diskimage

import (
	"io"

	"github.com/pkg/errors"
)

// trackHeaderSize is the fixed size of a Track Information Block, sector
// descriptors included; sector data follows immediately after.
const trackHeaderSize = 0x100

// sectorDescriptor is one 8-byte entry from a Track Information Block's
// sector list: physical C/H/R/N plus status bytes and an actual data
// length, which the Extended DSK format allows to differ from 128<<N.
type sectorDescriptor struct {
	cylinder byte
	head     byte
	id       byte
	sizeCode byte
	status1  byte
	status2  byte
	dataLen  int
}

// Track holds one physical track's sector data, keyed by sector ID so
// lookups don't depend on the order sectors were laid out on disk (CP/M
// skew/interleave is assumed already resolved by the caller's own sector
// callback in cpm; this package only ever serves whatever order the image
// declares).
type Track struct {
	cylinder byte
	head     byte
	sectors  []sectorDescriptor
	data     [][]byte
}

// readTrack parses one Track Information Block plus its sector data. A
// zero-sized track (blank, per the Extended DSK format) yields an empty
// Track and consumes nothing.
func readTrack(r io.Reader, size int) (Track, error) {
	var t Track
	if size == 0 {
		return t, nil
	}

	header := make([]byte, trackHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return t, errors.Wrap(err, "reading track information block")
	}

	t.cylinder = header[0x10]
	t.head = header[0x11]
	sectorCount := int(header[0x15])

	t.sectors = make([]sectorDescriptor, sectorCount)
	for i := 0; i < sectorCount; i++ {
		base := 0x18 + i*8
		d := sectorDescriptor{
			cylinder: header[base+0],
			head:     header[base+1],
			id:       header[base+2],
			sizeCode: header[base+3],
			status1:  header[base+4],
			status2:  header[base+5],
			dataLen:  int(le16(header[base+6 : base+8])),
		}
		if d.dataLen == 0 {
			d.dataLen = 128 << d.sizeCode
		}
		t.sectors[i] = d
	}

	remaining := size - trackHeaderSize
	body := make([]byte, remaining)
	if _, err := io.ReadFull(r, body); err != nil {
		return t, errors.Wrap(err, "reading track sector data")
	}

	t.data = make([][]byte, sectorCount)
	off := 0
	for i, d := range t.sectors {
		if off+d.dataLen > len(body) {
			return t, errors.Errorf("track declares more sector data than it carries")
		}
		t.data[i] = body[off : off+d.dataLen]
		off += d.dataLen
	}

	return t, nil
}

// sectorByID returns the data of the sector whose Sector ID (R, 1-based)
// matches id.
func (t Track) sectorByID(id byte) ([]byte, error) {
	for i, d := range t.sectors {
		if d.id == id {
			return t.data[i], nil
		}
	}
	return nil, errors.Errorf("sector id %d not found on track", id)
}
