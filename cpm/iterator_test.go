package cpm

import (
	"io"
	"strings"
	"testing"
)

func TestIteratorSkipsNonFirstExtentsAndInvalidEntries(t *testing.T) {
	a := otronaAttrs()
	disk := newTestDisk(a)

	disk.writeEntry(0, makeEntry(0, "MULTI", "DAT", 1, 0, 1, []byte{3})) // not the first extent
	disk.writeEntry(1, makeEntry(0, "MULTI", "DAT", 0, 0, 1, []byte{2})) // first extent
	disk.writeBlock(2, make([]byte, a.BlockSize))
	disk.writeBlock(3, make([]byte, a.BlockSize))

	fs, err := New(a, disk.sectorFunc, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	it := fs.Iterator()
	rec, err := it.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if rec.Inode != 1 {
		t.Fatalf("expected iterator to report the first-extent entry (index 1), got inode %d", rec.Inode)
	}
	if _, err := it.Next(); err != io.EOF {
		t.Fatalf("expected exactly one record for the multi-extent file")
	}
}

// TestP3NameSanity checks spec §8 P3 across a handful of entries.
func TestP3NameSanity(t *testing.T) {
	a := otronaAttrs()
	disk := newTestDisk(a)
	disk.writeEntry(0, makeEntry(0, "ALPHA", "TXT", 0, 0, 1, []byte{2}))
	disk.writeEntry(1, makeEntry(1, "BETA", "", 0, 0, 1, []byte{3}))
	disk.writeBlock(2, make([]byte, a.BlockSize))
	disk.writeBlock(3, make([]byte, a.BlockSize))

	fs, err := New(a, disk.sectorFunc, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	it := fs.Iterator()
	for {
		rec, err := it.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}

		if strings.Count(rec.Name, ".") > 1 {
			t.Fatalf("name %q has more than one dot", rec.Name)
		}
		parts := strings.SplitN(rec.Name, ".", 2)
		if len(parts[0]) > 8 {
			t.Fatalf("name %q has more than 8 characters before the dot", rec.Name)
		}
		if len(parts) == 2 && len(parts[1]) > 3 {
			t.Fatalf("name %q has more than 3 characters after the dot", rec.Name)
		}
		for _, c := range rec.Name {
			if c == '.' {
				continue
			}
			if c < 0x20 || c > 0x7E || strings.ContainsRune("<>,;:=?*[]", c) {
				t.Fatalf("name %q contains illegal character %q", rec.Name, c)
			}
		}
	}
}
