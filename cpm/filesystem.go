package cpm

// FileSystem is a handle onto one CP/M 2.2 disk. Construct one with New;
// it eagerly loads and validates the directory area. Multiple independent
// FileSystem handles over disjoint callbacks are independent (spec §5).
type FileSystem struct {
	attrs    Attributes
	sector   SectorFunc
	userdata interface{}

	entries  []Entry
	cache    *sectorCache
	mode     AddrMode
	capacity int
}

// New constructs a FileSystem from disk attributes and a sector callback,
// loading the directory area and validating its block-pointer layout
// before returning. A non-nil error means no handle was produced and no
// resources survive the call (spec §7).
func New(attrs Attributes, sector SectorFunc, userdata interface{}) (*FileSystem, error) {
	if sector == nil {
		return nil, ErrInvalidArg
	}
	if err := attrs.validate(); err != nil {
		return nil, err
	}

	fs := &FileSystem{
		attrs:    attrs,
		sector:   sector,
		userdata: userdata,
		cache:    newSectorCache(attrs.SectorSize),
	}

	entries, err := loadDirectory(fs)
	if err != nil {
		return nil, err
	}
	fs.entries = entries

	fs.capacity = dataCapacity(attrs)
	fs.mode = addrModeFor(attrs, fs.capacity)

	if err := checkIntegrity(fs.entries, fs.mode, fs.capacity, attrs); err != nil {
		return nil, err
	}

	return fs, nil
}

// Iterator returns a fresh directory iterator positioned before the first
// entry.
func (fs *FileSystem) Iterator() *DirIterator {
	return newDirIterator(fs)
}

// Open resolves path (optionally prefixed with "/") for the given user
// number (0-15) and returns a readable File cursor, or ErrNotFound.
func (fs *FileSystem) Open(path string, user uint8) (*File, error) {
	idx, ok := lookup(fs.entries, user, path)
	if !ok {
		return nil, ErrNotFound
	}
	first := firstExtentIndex(fs.entries, idx)
	return openFile(fs, first), nil
}

// Close releases the FileSystem. It is idempotent and safe to call on a
// nil receiver (spec §7); the handle owns no resources beyond in-process
// memory, so there is nothing to release beyond letting it be collected.
func (fs *FileSystem) Close() error {
	return nil
}

// AddrMode reports which block-addressing width this disk uses.
func (fs *FileSystem) AddrMode() AddrMode { return fs.mode }

// Capacity reports the disk's total data-area capacity in bytes.
func (fs *FileSystem) Capacity() int { return fs.capacity }
