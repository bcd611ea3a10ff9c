package bcn

import "testing"

func TestColourSetDedup(t *testing.T) {
	var tile Tile
	for i := 0; i < 16; i++ {
		tile[i] = [4]uint8{10, 20, 30, 255}
	}
	cs := NewColourSet(&tile, 0xFFFF, false, false)
	if cs.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", cs.Count())
	}
	if cs.Weight(0) != 16 {
		t.Fatalf("Weight(0) = %v, want 16", cs.Weight(0))
	}
}

func TestColourSetMaskExcludesPixels(t *testing.T) {
	var tile Tile
	for i := 0; i < 16; i++ {
		tile[i] = [4]uint8{byte(i), byte(i), byte(i), 255}
	}
	// Only the first 4 pixels participate.
	cs := NewColourSet(&tile, 0x000F, false, false)
	if cs.Count() != 4 {
		t.Fatalf("Count() = %d, want 4", cs.Count())
	}
	for i := 4; i < 16; i++ {
		if cs.RemapIndex(i) != -1 {
			t.Fatalf("RemapIndex(%d) = %d, want -1 (excluded by mask)", i, cs.RemapIndex(i))
		}
	}
}

func TestColourSetBC1Transparency(t *testing.T) {
	var tile Tile
	for i := 0; i < 16; i++ {
		a := uint8(255)
		if i < 8 {
			a = 0
		}
		tile[i] = [4]uint8{100, 100, 100, a}
	}
	cs := NewColourSet(&tile, 0xFFFF, true, false)
	if !cs.IsTransparent() {
		t.Fatalf("IsTransparent() = false, want true")
	}
	if cs.Count() != 1 {
		t.Fatalf("Count() = %d, want 1 (only the opaque pixels)", cs.Count())
	}
	for i := 0; i < 8; i++ {
		if cs.RemapIndex(i) != -1 {
			t.Fatalf("RemapIndex(%d) = %d, want -1 (transparent)", i, cs.RemapIndex(i))
		}
	}
}

func TestColourSetWeighByAlpha(t *testing.T) {
	var tile Tile
	tile[0] = [4]uint8{50, 50, 50, 0}
	cs := NewColourSet(&tile, 0x0001, false, true)
	if cs.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", cs.Count())
	}
	if got := cs.Weight(0); got != float32(1.0/256.0) {
		t.Fatalf("Weight(0) = %v, want %v (the alpha=0 floor)", got, 1.0/256.0)
	}
}
