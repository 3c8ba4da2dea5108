package cpm

// testDisk is a flat in-memory stand-in for a raw floppy image, addressed
// with the same linear (head-major, then cylinder, then sector) ordering
// that blockToCHS assumes. It lets tests place directory entries and file
// content at exact byte offsets and then serve them back through a
// SectorFunc, exercising the real CHS translation in both directions.
type testDisk struct {
	attrs Attributes
	buf   []byte
}

func newTestDisk(a Attributes) *testDisk {
	size := a.Cylinders * a.Heads * a.SectorCount * a.SectorSize
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = freeStatus
	}
	return &testDisk{attrs: a, buf: buf}
}

// writeAt copies data into the disk at absolute linear byte offset off.
func (d *testDisk) writeAt(off int, data []byte) {
	copy(d.buf[off:], data)
}

// dirAreaOffset is the absolute linear byte offset of the directory's
// real location, (skip_first_cylinders|boot_cylinders, head=0, sector=1),
// matching loadDirectory's walk and sectorFunc's linear addressing below.
func (d *testDisk) dirAreaOffset() int {
	c := d.attrs.SkipFirstCylinders | d.attrs.BootCylinders
	return c * d.attrs.SectorCount * d.attrs.SectorSize
}

// writeEntry places a raw 32-byte directory record at slot idx, within
// the directory area.
func (d *testDisk) writeEntry(idx int, raw []byte) {
	d.writeAt(d.dirAreaOffset()+idx*EntrySize, raw)
}

// writeBlock places data at the given allocation block, offset 0.
func (d *testDisk) writeBlock(block int, data []byte) {
	off := reservedPrefixBytes(d.attrs) + block*d.attrs.BlockSize
	d.writeAt(off, data)
}

// sectorFunc implements SectorFunc against the in-memory buffer by
// reversing the exact arithmetic blockToCHS uses to go the other way.
func (d *testDisk) sectorFunc(_ interface{}, cylinder, head, sector int, out []byte) error {
	trackIndex := head*d.attrs.Cylinders + cylinder
	sectorLinear := trackIndex*d.attrs.SectorCount + (sector - 1)
	off := sectorLinear * d.attrs.SectorSize
	n := copy(out, d.buf[off:off+d.attrs.SectorSize])
	if n != d.attrs.SectorSize {
		panic("short read in test fixture")
	}
	return nil
}

// makeEntry builds one packed 32-byte directory record. blocks gives the
// raw allocation-field bytes (16 for Addr8, or pairs of little-endian
// bytes for Addr16) and is zero-padded to 16 bytes.
func makeEntry(status byte, name, ext string, extentL, extentH, rc byte, blocks []byte) []byte {
	raw := make([]byte, EntrySize)
	raw[0] = status
	copy(raw[1:9], padRight(name, 8))
	copy(raw[9:12], padRight(ext, 3))
	raw[12] = extentL
	raw[13] = 0
	raw[14] = extentH
	raw[15] = rc
	copy(raw[16:32], blocks)
	return raw
}

func padRight(s string, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	copy(b, s)
	return b
}
