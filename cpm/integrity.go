package cpm

import "sort"

// checkIntegrity runs the bounds and overlap checks described in spec
// §4.5 once, at construction time. It returns the first violation found;
// the caller never receives a partial FileSystem.
func checkIntegrity(entries []Entry, mode AddrMode, capacity int, a Attributes) error {
	maxB := maxBlocks(a, capacity)
	dirB := dirBlocks(a)

	var allPointers []int
	for _, e := range entries {
		if !e.IsValid() {
			continue
		}
		for i := 0; i < mode.PointersPerExtent(); i++ {
			p := e.BlockPointer(i, mode)
			allPointers = append(allPointers, p)

			if p > maxB {
				return ErrBlockOverflow
			}
			if p != 0 && p <= dirB-1 {
				return ErrFileDirOverlap
			}
		}
	}

	sort.Ints(allPointers)
	for i := 1; i < len(allPointers); i++ {
		if allPointers[i] == 0 {
			continue
		}
		if allPointers[i] == allPointers[i-1] {
			return ErrFileOverlap
		}
	}
	return nil
}
