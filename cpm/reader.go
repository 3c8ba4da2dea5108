package cpm

import (
	"io"

	"github.com/pkg/errors"
)

// File is a sequential read cursor over one logical file's extents and
// blocks (spec §4.8). It implements io.Reader; Read returns io.EOF once
// the file's true length (from the last extent's record count) has been
// delivered.
//
// A FileSystem's sector cache is shared by every File and DirIterator
// opened from it; reads from two File handles on the same FileSystem must
// not be interleaved (spec §5).
type File struct {
	fs *FileSystem

	entryIndex    int
	blockIndex    int // index within the current extent's pointer array
	byteInBlock   int // offset within the current block
	lastExtentNum int

	size int
	read int
}

// openFile initializes a cursor at the first extent of the logical file
// whose first extent is at firstIdx.
func openFile(fs *FileSystem, firstIdx int) *File {
	return &File{
		fs:            fs,
		entryIndex:    firstIdx,
		lastExtentNum: lastExtentNumber(fs.entries, firstIdx),
		size:          fileSize(fs.entries, firstIdx, fs.mode, fs.attrs.BlockSize),
	}
}

// Size returns the file's total length in bytes, per spec §4.6.
func (f *File) Size() int { return f.size }

// currentBlockSize returns how many bytes of the current block belong to
// the file: the full block size, unless this is the last block of the
// file's last extent, in which case it is truncated to the tail implied
// by the extent's record count (spec §4.8 step 2).
func (f *File) currentBlockSize() int {
	entry := f.fs.entries[f.entryIndex]
	if entry.ExtentNumber() != f.lastExtentNum {
		return f.fs.attrs.BlockSize
	}

	pointers := f.fs.mode.PointersPerExtent()
	isFinalSlot := f.blockIndex == pointers-1
	nextIsZero := isFinalSlot || entry.BlockPointer(f.blockIndex+1, f.fs.mode) == 0
	if !nextIsZero {
		return f.fs.attrs.BlockSize
	}

	return RecordSize*int(entry.RC) - f.fs.attrs.BlockSize*f.blockIndex
}

// Read implements io.Reader.
func (f *File) Read(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		entry := f.fs.entries[f.entryIndex]

		block := entry.BlockPointer(f.blockIndex, f.fs.mode)
		if block == 0 {
			// A zero pointer before the per-extent capacity is reached
			// normally marks true EOF (spec §4.8 step 1), but if a
			// further extent exists we chain to it exactly as step 5
			// does for an extent that filled all its pointers.
			if next, ok := nextExtentIndex(f.fs.entries, f.entryIndex); ok {
				f.entryIndex = next
				f.blockIndex = 0
				f.byteInBlock = 0
				continue
			}
			if total == 0 {
				return 0, io.EOF
			}
			return total, nil
		}

		blockLimit := f.currentBlockSize()
		if f.byteInBlock >= blockLimit {
			if total == 0 {
				return 0, io.EOF
			}
			return total, nil
		}

		c, h, s := blockToCHS(f.fs.attrs, block, f.byteInBlock)
		sectorData, err := f.fs.cache.read(f.fs, c, h, s)
		if err != nil {
			return total, errors.Wrap(err, "reading file data")
		}

		sectorSize := f.fs.attrs.SectorSize
		offInSector := f.byteInBlock % sectorSize
		n := sectorSize - offInSector
		if rem := blockLimit - f.byteInBlock; rem < n {
			n = rem
		}
		if rem := len(p) - total; rem < n {
			n = rem
		}
		if n <= 0 {
			if total == 0 {
				return 0, io.EOF
			}
			return total, nil
		}

		copy(p[total:total+n], sectorData[offInSector:offInSector+n])
		total += n
		f.byteInBlock += n
		f.read += n

		if f.byteInBlock >= f.fs.attrs.BlockSize {
			f.byteInBlock = 0
			f.blockIndex++
		}

		if f.blockIndex >= f.fs.mode.PointersPerExtent() {
			next, ok := nextExtentIndex(f.fs.entries, f.entryIndex)
			if !ok {
				if total == 0 {
					return 0, io.EOF
				}
				return total, nil
			}
			f.entryIndex = next
			f.blockIndex = 0
		}
	}
	return total, nil
}

// Close is a no-op; File owns no resources beyond the shared FileSystem.
// It is idempotent, per spec §7.
func (f *File) Close() error { return nil }
