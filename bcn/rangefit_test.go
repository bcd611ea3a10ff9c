package bcn

import "testing"

func TestPrincipalAxisDegenerateFallback(t *testing.T) {
	var tile Tile
	for i := 0; i < 16; i++ {
		tile[i] = [4]uint8{77, 77, 77, 255}
	}
	cs := NewColourSet(&tile, 0xFFFF, false, false)
	axis := principalAxis(cs)
	if axis != [3]float32{1, 1, 1} {
		t.Fatalf("principalAxis(single-colour set) = %v, want (1,1,1) fallback", axis)
	}
}

func TestRangeFitEmptySetProducesZeroBlock(t *testing.T) {
	var tile Tile
	cs := NewColourSet(&tile, 0, true, false)
	if cs.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", cs.Count())
	}
	result := rangeFit(cs, true, WeightsUniform)
	if result.a != 0 || result.b != 0 {
		t.Fatalf("rangeFit(empty) endpoints = (%d,%d), want (0,0)", result.a, result.b)
	}
	if result.entryIndex != nil {
		t.Fatalf("rangeFit(empty) entryIndex = %v, want nil", result.entryIndex)
	}
}

func TestRangeFitPicksExtremalEndpoints(t *testing.T) {
	var tile Tile
	for i := 0; i < 16; i++ {
		v := byte(i * 17)
		tile[i] = [4]uint8{v, v, v, 255}
	}
	cs := NewColourSet(&tile, 0xFFFF, false, false)
	result := rangeFit(cs, false, WeightsUniform)

	ar, ag, ab := unpack565(result.a)
	br, bg, bb := unpack565(result.b)
	// One endpoint should land near black, the other near white.
	lo, hi := ar, br
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo > 16 || hi < 239 {
		t.Fatalf("endpoints (%d,%d,%d)/(%d,%d,%d) do not bracket the grayscale ramp", ar, ag, ab, br, bg, bb)
	}
}
