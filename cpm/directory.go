package cpm

import (
	"bytes"
	"encoding/binary"
)

// freeStatus marks a directory slot as unused.
const freeStatus = 0xE5

// illegalNameBytes holds the characters CP/M forbids in a filename or
// extension, beyond requiring the byte (masked to 7 bits) be printable.
var illegalNameBytes = []byte("<>.,;:=?*[]")

// Entry is the packed, on-disk 32-byte directory record (the "FCB"),
// parsed field-by-field the way the teacher's Directory/DiskInformation
// types are: no native struct layout is relied on for the block-pointer
// region, since its width depends on the filesystem's addressing mode
// (spec §9, "Union field").
type Entry struct {
	Status    uint8
	File      [8]uint8
	Extension [3]uint8
	ExtentL   uint8
	bc        uint8
	ExtentH   uint8
	RC        uint8
	rawBlocks [16]byte
}

// readEntry parses one 32-byte packed record.
func readEntry(raw []byte) (Entry, error) {
	var e Entry
	r := bytes.NewReader(raw[:EntrySize])
	if err := binary.Read(r, binary.LittleEndian, &e.Status); err != nil {
		return e, err
	}
	if err := binary.Read(r, binary.LittleEndian, &e.File); err != nil {
		return e, err
	}
	if err := binary.Read(r, binary.LittleEndian, &e.Extension); err != nil {
		return e, err
	}
	if err := binary.Read(r, binary.LittleEndian, &e.ExtentL); err != nil {
		return e, err
	}
	if err := binary.Read(r, binary.LittleEndian, &e.bc); err != nil {
		return e, err
	}
	if err := binary.Read(r, binary.LittleEndian, &e.ExtentH); err != nil {
		return e, err
	}
	if err := binary.Read(r, binary.LittleEndian, &e.RC); err != nil {
		return e, err
	}
	if err := binary.Read(r, binary.LittleEndian, &e.rawBlocks); err != nil {
		return e, err
	}
	return e, nil
}

// IsFree reports whether this slot carries no file (status byte 0xE5).
func (e Entry) IsFree() bool {
	return e.Status == freeStatus
}

// legalNameByte reports whether a single masked filename/extension byte is
// allowed (spec §4.3).
func legalNameByte(b byte) bool {
	m := b & 0x7F
	if m < 0x20 {
		return false
	}
	return !bytes.ContainsRune(illegalNameBytes, rune(m))
}

// hasLegalName reports whether every byte of File and Extension, masked to
// 7 bits, is a legal filename character.
func (e Entry) hasLegalName() bool {
	for _, b := range e.File {
		if !legalNameByte(b) {
			return false
		}
	}
	for _, b := range e.Extension {
		if !legalNameByte(b) {
			return false
		}
	}
	return true
}

// IsValid reports whether this slot is occupied and carries a legal name
// (spec §4.3).
func (e Entry) IsValid() bool {
	return !e.IsFree() && e.hasLegalName()
}

// ExtentNumber returns the 11-bit extent index formed from extent_h and
// extent_l (spec §3).
func (e Entry) ExtentNumber() int {
	return (int(e.ExtentH&0x3F) << 5) | int(e.ExtentL&0x1F)
}

// ReadOnly reports the read-only flag carried in bit 7 of Extension[0].
func (e Entry) ReadOnly() bool { return e.Extension[0]&0x80 != 0 }

// System reports the system flag carried in bit 7 of Extension[1].
func (e Entry) System() bool { return e.Extension[1]&0x80 != 0 }

// Archived reports the archive flag carried in bit 7 of Extension[2].
func (e Entry) Archived() bool { return e.Extension[2]&0x80 != 0 }

// identityKey is the 12-byte (status, filename, extension-with-flags)
// tuple that groups entries into one logical file (spec §3, §4.6). The
// comparison intentionally includes the extension's flag high bits,
// matching the source's literal byte comparison (spec §9).
type identityKey [12]byte

func (e Entry) identity() identityKey {
	var k identityKey
	k[0] = e.Status
	copy(k[1:9], e.File[:])
	copy(k[9:12], e.Extension[:])
	return k
}

// sameLogicalFile reports whether a and b belong to the same file.
func sameLogicalFile(a, b Entry) bool {
	return a.identity() == b.identity()
}

// BlockPointer returns the block number stored at index idx of this
// entry's allocation field, decoded under the given addressing mode.
// idx must be less than mode.PointersPerExtent().
func (e Entry) BlockPointer(idx int, mode AddrMode) int {
	if mode == Addr8 {
		return int(e.rawBlocks[idx])
	}
	return int(binary.LittleEndian.Uint16(e.rawBlocks[idx*2 : idx*2+2]))
}

// usedBlocks counts the non-zero block pointers in this entry under mode.
func (e Entry) usedBlocks(mode AddrMode) int {
	n := 0
	for i := 0; i < mode.PointersPerExtent(); i++ {
		if e.BlockPointer(i, mode) != 0 {
			n++
		}
	}
	return n
}
