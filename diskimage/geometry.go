package diskimage

import "cpmfs/cpm"

// Standard Amstrad CPC data-format disc parameters (spec.md §C.5),
// grounded on amsdos.go's amstradBLS/amstradDSM/amstradDRM constants: 40
// tracks, 9 sectors/track, 512-byte sectors, 1K blocks, 64 directory
// entries, no reserved tracks (a "Data" format disc; a bootable "System"
// disc reserves 2 cylinders instead, see AmstradCPCSystemAttributes).
const (
	amstradSectorsPerTrack = 9
	amstradSectorSize      = 512
	amstradBlockSize       = 1024
	amstradDirEntries      = 64
	amstradCylinders       = 40
)

// AmstradCPCAttributes returns the cpm.Attributes for a standard,
// non-bootable ("Data" format) single-sided Amstrad CPC disc, so callers
// don't have to hand-compute geometry for the common case.
func AmstradCPCAttributes() cpm.Attributes {
	return cpm.Attributes{
		Cylinders:     amstradCylinders,
		Heads:         1,
		SectorCount:   amstradSectorsPerTrack,
		SectorSize:    amstradSectorSize,
		BlockSize:     amstradBlockSize,
		MaxDirEntries: amstradDirEntries,
	}
}

// AmstradCPCSystemAttributes is the bootable ("System" format) variant,
// which reserves the first 2 cylinders for the bootstrap loader.
func AmstradCPCSystemAttributes() cpm.Attributes {
	a := AmstradCPCAttributes()
	a.BootCylinders = 2
	return a
}
