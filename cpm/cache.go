package cpm

import "github.com/pkg/errors"

// chs is a physical sector address: cylinder and head are 0-based, sector
// is 1-based. (0,0,0) is the cache's sentinel "empty" state since sector
// numbers never start at 0.
type chs struct {
	cylinder int
	head     int
	sector   int
}

var emptyCHS = chs{}

// sectorCache is a single-entry, direct-mapped memoization of the last
// successfully read sector. It is not safe for concurrent use, and isn't
// required to be (spec §5).
type sectorCache struct {
	addr chs
	buf  []byte
}

func newSectorCache(sectorSize int) *sectorCache {
	return &sectorCache{buf: make([]byte, sectorSize)}
}

// read returns the bytes of the sector at (cylinder, head, sector),
// serving from cache on a hit and invoking fn on a miss. On failure the
// cache is invalidated so a later retry doesn't serve stale data for a
// different address.
func (c *sectorCache) read(fs *FileSystem, cylinder, head, sector int) ([]byte, error) {
	want := chs{cylinder, head, sector}
	if c.addr == want {
		return c.buf, nil
	}

	c.addr = emptyCHS
	if err := fs.sector(fs.userdata, cylinder, head, sector, c.buf); err != nil {
		return nil, errors.Wrapf(err, "reading sector c=%d h=%d s=%d", cylinder, head, sector)
	}
	c.addr = want
	return c.buf, nil
}
