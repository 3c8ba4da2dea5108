package diskimage

import (
	"encoding/binary"
	"io"
	"strings"
)

// headerSize is the fixed size of the Disc Information Block, always at
// offset 0 of a DSK image.
const headerSize = 256

// Header is the Disc Information Block. Standard CPCEMU images carry one
// fixed TrackSize for every track; Extended DSK images instead carry a
// per-track size table (each byte is the track size divided by 256,
// letting a track be blank/zero-length), identified by the "EXTENDED"
// prefix in Identifier.
type Header struct {
	Identifier     [34]byte
	Creator        [14]byte
	Tracks         uint8
	Sides          uint8
	TrackSize      uint16
	TrackSizeTable [204]byte
}

func (h *Header) read(r io.Reader) error {
	return binary.Read(r, binary.LittleEndian, h)
}

// extended reports whether this image uses the Extended DSK format's
// per-track size table instead of one fixed TrackSize.
func (h Header) extended() bool {
	return strings.HasPrefix(string(h.Identifier[:]), "EXTENDED")
}

// trackSize returns the byte size, including the 0x100-byte Track
// Information Block header, of the track at the given sequential index.
func (h Header) trackSize(index int) int {
	if h.extended() {
		if index < 0 || index >= len(h.TrackSizeTable) {
			return 0
		}
		return int(h.TrackSizeTable[index]) * 256
	}
	return int(h.TrackSize)
}
