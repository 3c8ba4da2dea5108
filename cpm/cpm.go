// Package cpm implements a read-only view of a CP/M 2.2 floppy-disk
// filesystem.
//
// The package performs no I/O of its own: callers supply a SectorFunc that
// resolves a (cylinder, head, sector) address to 512-or-so raw bytes, and
// New reconstructs the directory, validates its block-pointer layout, and
// hands back a FileSystem that can iterate the directory or open files by
// name.
//
// Reference: http://www.seasip.info/Cpm/format22.html
package cpm

import (
	"fmt"

	"github.com/pkg/errors"
)

// EntrySize is the width of one packed directory entry (FCB) on disk.
const EntrySize = 32

// RecordSize is CP/M's logical record unit; the rc field of the last
// extent of a file counts these.
const RecordSize = 128

// AddrMode selects how block pointers are packed into a directory entry's
// 16-byte allocation field: 16 one-byte pointers, or 8 little-endian
// two-byte pointers. The mode is a property of the whole filesystem, never
// of an individual entry (see spec §9, "Union field").
type AddrMode int

const (
	// Addr8 addresses blocks with a single byte each, 16 per extent.
	// Selected when the disk's data capacity fits in 256 blocks.
	Addr8 AddrMode = iota
	// Addr16 addresses blocks with a little-endian uint16 each, 8 per
	// extent.
	Addr16
)

// PointersPerExtent returns how many block pointers one directory entry
// carries under this addressing mode.
func (m AddrMode) PointersPerExtent() int {
	if m == Addr8 {
		return 16
	}
	return 8
}

// Sentinel errors returned by New and Open. A non-zero error returned by the
// caller's SectorFunc is wrapped and propagated, never one of these.
var (
	// ErrInvalidArg is returned for a nil SectorFunc or attributes that
	// set both reserved-area fields.
	ErrInvalidArg = errors.New("cpm: invalid argument")
	// ErrBlockOverflow is returned when a directory entry references a
	// block beyond the disk's data capacity.
	ErrBlockOverflow = errors.New("cpm: block pointer overflows disk capacity")
	// ErrFileOverlap is returned when two valid directory entries share a
	// non-zero block pointer.
	ErrFileOverlap = errors.New("cpm: two files reference the same block")
	// ErrFileDirOverlap is returned when a directory entry references a
	// block that lies inside the reserved directory area.
	ErrFileDirOverlap = errors.New("cpm: file block overlaps the directory area")
	// ErrNotFound is returned by Open when no directory entry matches the
	// requested path and user number.
	ErrNotFound = errors.New("cpm: file not found")
)

// Attributes describes the physical geometry and filesystem parameters of
// a CP/M disk. It is immutable over the lifetime of a FileSystem.
type Attributes struct {
	// Physical geometry.
	Cylinders   int
	Heads       int
	SectorCount int
	SectorSize  int

	// Filesystem parameters.
	BlockSize     int
	MaxDirEntries int

	// Reserved-area policy. At most one of these may be non-zero.

	// BootCylinders reserves whole cylinders, on every head, at the start
	// of the disk.
	BootCylinders int
	// SkipFirstCylinders reserves cylinders on head 0 only.
	SkipFirstCylinders int
}

// validate checks the mutual-exclusion invariant on the reserved-area
// policy fields. Geometry fields are not checked: they are trusted to be
// positive, and a zero SectorSize, SectorCount, Cylinders or BlockSize
// makes the arithmetic in addressing.go and superblock.go divide by zero.
// The returned error matches ErrInvalidArg under errors.Is.
func (a Attributes) validate() error {
	if a.BootCylinders != 0 && a.SkipFirstCylinders != 0 {
		return fmt.Errorf("boot_cylinders and skip_first_cylinders are mutually exclusive: %w", ErrInvalidArg)
	}
	return nil
}

// SectorFunc reads one physical sector into buf, which has capacity
// attrs.SectorSize. cylinder and head are 0-based; sector is 1-based.
// Implementations must be idempotent and deterministic for a given
// (cylinder, head, sector) over the lifetime of the FileSystem that calls
// it.
type SectorFunc func(userdata interface{}, cylinder, head, sector int, buf []byte) error
