package cpm

import "testing"

func TestDataCapacityOtrona(t *testing.T) {
	a := otronaAttrs()
	got := dataCapacity(a)
	want := (40*2 - 3*2) * 10 * 512
	if got != want {
		t.Fatalf("dataCapacity = %d, want %d", got, want)
	}
}

func TestAddrModeSelection(t *testing.T) {
	a := Attributes{Cylinders: 1, Heads: 1, SectorCount: 1, SectorSize: 1, BlockSize: 1, MaxDirEntries: 1}
	if mode := addrModeFor(a, 256); mode != Addr8 {
		t.Fatalf("expected Addr8 at the 256-block boundary, got %v", mode)
	}
	if mode := addrModeFor(a, 257); mode != Addr16 {
		t.Fatalf("expected Addr16 just above the boundary, got %v", mode)
	}
}

func TestBlockToCHSSequentialOrdering(t *testing.T) {
	a := Attributes{
		Cylinders:   40,
		Heads:       2,
		SectorCount: 10,
		SectorSize:  512,
		BlockSize:   512,
	}

	// Block 0 of an unreserved disk starts at cylinder 0, head 0, sector 1.
	c, h, s := blockToCHS(a, 0, 0)
	if c != 0 || h != 0 || s != 1 {
		t.Fatalf("block 0 = (%d,%d,%d), want (0,0,1)", c, h, s)
	}

	// Block 10 (the 11th sector-sized block) rolls over into cylinder 1.
	c, h, s = blockToCHS(a, 10, 0)
	if c != 1 || h != 0 || s != 1 {
		t.Fatalf("block 10 = (%d,%d,%d), want (1,0,1)", c, h, s)
	}

	// Head 0's 40 cylinders hold 400 blocks; block 400 rolls into head 1.
	c, h, s = blockToCHS(a, 400, 0)
	if c != 0 || h != 1 || s != 1 {
		t.Fatalf("block 400 = (%d,%d,%d), want (0,1,1)", c, h, s)
	}
}

func TestBlockToCHSRespectsReservedPrefix(t *testing.T) {
	a := otronaAttrs() // BootCylinders: 3

	c, h, s := blockToCHS(a, 0, 0)
	// 3 boot cylinders * 2 heads * 10 sectors/track = 60 sectors skipped,
	// which is 6 whole tracks (60/10): cylinders 0-5 of head 0.
	if c != 6 || h != 0 || s != 1 {
		t.Fatalf("reserved-prefix block 0 = (%d,%d,%d), want (6,0,1)", c, h, s)
	}
}

func TestDirBlocksRoundsUp(t *testing.T) {
	a := otronaAttrs()
	if got := dirBlocks(a); got != 2 {
		t.Fatalf("dirBlocks = %d, want 2", got)
	}

	// 129 entries * 32 bytes = 4128 bytes, just over two 2048-byte blocks.
	a.MaxDirEntries = 129
	if got := dirBlocks(a); got != 3 {
		t.Fatalf("dirBlocks(129 entries) = %d, want 3", got)
	}
}
