package cpm

import "github.com/pkg/errors"

// loadDirectory reads the directory area sequentially from the start of
// the data area, (skip_first_cylinders|boot_cylinders, head=0, sector=1),
// until max_dir_entries*32 bytes have been captured (spec §4.4). The
// bitwise-or in the spec is safe because the two reserved-area fields are
// mutually exclusive; ordinary addition has the same effect here.
//
// This walks (c,h,s) directly, exactly as the original read_superblock
// does (c = skip_first|boot; h = 0; s = 1; incrementing s and wrapping
// into the next cylinder), rather than going through blockToCHS: the
// directory area starts at the first data cylinder on head 0, not at
// "block 0" under the reserved-prefix-plus-head-major addressing that
// blockToCHS computes for file data, and the two only coincide when
// boot_cylinders*heads == boot_cylinders (i.e. heads == 1).
func loadDirectory(fs *FileSystem) ([]Entry, error) {
	a := fs.attrs
	need := a.MaxDirEntries * EntrySize
	sectors := (need + a.SectorSize - 1) / a.SectorSize

	c := a.SkipFirstCylinders | a.BootCylinders
	h := 0
	s := 1

	data := make([]byte, 0, sectors*a.SectorSize)
	for i := 0; i < sectors; i++ {
		buf, err := fs.cache.read(fs, c, h, s)
		if err != nil {
			return nil, errors.Wrap(err, "loading directory area")
		}
		data = append(data, buf...)

		s++
		if s > a.SectorCount {
			s = 1
			c++
		}
	}

	entries := make([]Entry, 0, a.MaxDirEntries)
	for i := 0; i < a.MaxDirEntries; i++ {
		raw := data[i*EntrySize : (i+1)*EntrySize]
		e, err := readEntry(raw)
		if err != nil {
			return nil, errors.Wrap(err, "parsing directory entry")
		}
		entries = append(entries, e)
	}
	return entries, nil
}
