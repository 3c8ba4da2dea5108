package cpm

// logicalFileHelpers group directory entries that describe one file (spec
// §4.6). A "logical file" is the set of entries sharing identity(): status
// plus filename plus extension-with-flags, compared byte-for-byte.

// firstExtentIndex returns the index, among entries sharing i's logical
// file, with the smallest ExtentL. Per spec §9 this compares extent_l
// only, not the full 11-bit extent number, which is a known limitation
// for files whose extents cross the 32-extent boundary.
//
// Ties are not broken: only an entry with a strictly smaller ExtentL
// replaces i, so each of two extents of the same file tied on the smallest
// ExtentL (e.g. extents 0 and 32) returns its own index and both read as
// "first", as in the original is_first_extent. A directory iteration then
// reports such a file once per tied extent.
func firstExtentIndex(entries []Entry, i int) int {
	best := i
	for j, e := range entries {
		if !e.IsValid() || !sameLogicalFile(e, entries[i]) {
			continue
		}
		if e.ExtentL < entries[best].ExtentL {
			best = j
		}
	}
	return best
}

// lastExtentNumber returns the maximum extent number across i's logical
// file.
func lastExtentNumber(entries []Entry, i int) int {
	max := entries[i].ExtentNumber()
	for _, e := range entries {
		if !e.IsValid() || !sameLogicalFile(e, entries[i]) {
			continue
		}
		if n := e.ExtentNumber(); n > max {
			max = n
		}
	}
	return max
}

// nextExtentIndex returns the index of the entry with the smallest extent
// number greater than entries[i]'s, among entries sharing i's logical
// file. ok is false if i's extent is the last one.
func nextExtentIndex(entries []Entry, i int) (next int, ok bool) {
	cur := entries[i].ExtentNumber()
	found := -1
	for j, e := range entries {
		if !e.IsValid() || !sameLogicalFile(e, entries[i]) {
			continue
		}
		n := e.ExtentNumber()
		if n <= cur {
			continue
		}
		if found == -1 || n < entries[found].ExtentNumber() {
			found = j
		}
	}
	if found == -1 {
		return 0, false
	}
	return found, true
}

// fileSize computes the logical file's total byte length (spec §4.6): the
// record count gives the true tail length for the last extent, and full
// blocks otherwise.
func fileSize(entries []Entry, i int, mode AddrMode, blockSize int) int {
	last := lastExtentNumber(entries, i)

	size := 0
	for _, e := range entries {
		if !e.IsValid() || !sameLogicalFile(e, entries[i]) {
			continue
		}
		if e.ExtentNumber() == last {
			size += RecordSize * int(e.RC)
		} else {
			size += e.usedBlocks(mode) * blockSize
		}
	}
	return size
}
