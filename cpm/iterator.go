package cpm

import (
	"io"
	"strings"
)

// DirEntry is a POSIX-like directory record synthesized from one logical
// file's first extent (spec §4.9).
type DirEntry struct {
	Name     string
	User     uint8
	ReadOnly bool
	System   bool
	Archived bool
	Size     int
	Inode    int
}

// DirIterator walks a FileSystem's directory, presenting exactly one
// record per logical file.
type DirIterator struct {
	fs     *FileSystem
	cursor int
}

func newDirIterator(fs *FileSystem) *DirIterator {
	return &DirIterator{fs: fs}
}

// Next advances the iterator and returns the next qualifying record, or
// io.EOF once the entry array is exhausted.
func (it *DirIterator) Next() (DirEntry, error) {
	for ; it.cursor < len(it.fs.entries); it.cursor++ {
		e := it.fs.entries[it.cursor]
		if !e.IsValid() {
			continue
		}
		if firstExtentIndex(it.fs.entries, it.cursor) != it.cursor {
			continue
		}

		rec := DirEntry{
			Name:     entryName(e),
			User:     e.Status & 0x0F,
			ReadOnly: e.ReadOnly(),
			System:   e.System(),
			Archived: e.Archived(),
			Size:     fileSize(it.fs.entries, it.cursor, it.fs.mode, it.fs.attrs.BlockSize),
			Inode:    it.cursor,
		}
		it.cursor++
		return rec, nil
	}
	return DirEntry{}, io.EOF
}

// entryName renders the printable "NAME.EXT" form of an entry's filename
// and extension fields, masking off the flag high bits and stopping at
// the first space in each field (spec §4.9).
func entryName(e Entry) string {
	var b strings.Builder
	for _, c := range e.File {
		m := c & 0x7F
		if m == ' ' {
			break
		}
		b.WriteByte(m)
	}
	if e.Extension[0]&0x7F != ' ' {
		b.WriteByte('.')
		for _, c := range e.Extension {
			m := c & 0x7F
			if m == ' ' {
				break
			}
			b.WriteByte(m)
		}
	}
	return b.String()
}
