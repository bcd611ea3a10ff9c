package bcn_test

import (
	"testing"

	"github.com/jansol/bcn/bcn"
)

// TestGradientAlphaSentinelSelection checks the §8 "alpha palette selection"
// property: a channel whose values include both 0 and 255 with few
// intermediates must pick the 6-interp-with-sentinels ordering (a0 <= a1).
func TestGradientAlphaSentinelSelection(t *testing.T) {
	pix := make([]byte, 16*4)
	for i := 0; i < 16; i++ {
		pix[i*4+0] = 128
		pix[i*4+1] = 128
		pix[i*4+2] = 128
		switch {
		case i == 0:
			pix[i*4+3] = 0
		case i == 1:
			pix[i*4+3] = 255
		default:
			pix[i*4+3] = 200
		}
	}

	blocks, err := bcn.EncodeImage(bcn.BC3, pix, 4, 4, bcn.DefaultParams())
	if err != nil {
		t.Fatalf("EncodeImage: %v", err)
	}
	a0, a1 := blocks[0], blocks[1]
	if a0 > a1 {
		t.Fatalf("expected sentinel ordering (a0 <= a1), got a0=%d a1=%d", a0, a1)
	}
}

// TestGradientAlphaSentinelSelectionNoIntermediates pins the degenerate case
// of the same §8 MUST: a channel containing only the literal sentinels (0
// and 255, no intermediate values at all) must still pick the
// 6-interp-with-sentinels ordering, not the plain 6-interp ordering a
// global-min/max fitter would tie-break into.
func TestGradientAlphaSentinelSelectionNoIntermediates(t *testing.T) {
	pix := make([]byte, 16*4)
	for i := 0; i < 16; i++ {
		pix[i*4+0], pix[i*4+1], pix[i*4+2] = 128, 128, 128
		if i%2 == 0 {
			pix[i*4+3] = 0
		} else {
			pix[i*4+3] = 255
		}
	}

	blocks, err := bcn.EncodeImage(bcn.BC3, pix, 4, 4, bcn.DefaultParams())
	if err != nil {
		t.Fatalf("EncodeImage: %v", err)
	}
	a0, a1 := blocks[0], blocks[1]
	if a0 > a1 {
		t.Fatalf("expected sentinel ordering (a0 <= a1), got a0=%d a1=%d", a0, a1)
	}

	out, err := bcn.DecodeImage(bcn.BC3, blocks, 4, 4)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	for i := 0; i < 16; i++ {
		want := pix[i*4+3]
		if got := out[i*4+3]; got != want {
			t.Errorf("pixel %d alpha = %d, want %d (exact, since only 0/255 are present)", i, got, want)
		}
	}
}

// TestGradientAlphaSentinelSelectionMidRangeIntermediate exercises the
// min5/max5 computation directly: a channel holding 0, 255, and a single
// interior value far from either end must still reconstruct that interior
// value exactly, because min5/max5 are computed excluding the sentinels
// rather than spanning the full 0..255 range.
func TestGradientAlphaSentinelSelectionMidRangeIntermediate(t *testing.T) {
	pix := make([]byte, 16*4)
	for i := 0; i < 16; i++ {
		pix[i*4+0], pix[i*4+1], pix[i*4+2] = 64, 64, 64
		switch i {
		case 0:
			pix[i*4+3] = 0
		case 1:
			pix[i*4+3] = 255
		default:
			pix[i*4+3] = 128
		}
	}

	blocks, err := bcn.EncodeImage(bcn.BC3, pix, 4, 4, bcn.DefaultParams())
	if err != nil {
		t.Fatalf("EncodeImage: %v", err)
	}
	a0, a1 := blocks[0], blocks[1]
	if a0 > a1 {
		t.Fatalf("expected sentinel ordering (a0 <= a1), got a0=%d a1=%d", a0, a1)
	}

	out, err := bcn.DecodeImage(bcn.BC3, blocks, 4, 4)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	for i := 2; i < 16; i++ {
		if got := out[i*4+3]; got != 128 {
			t.Errorf("pixel %d alpha = %d, want 128 (exact reconstruction of the interior value)", i, got)
		}
	}
}

func TestBC2ExplicitAlphaRoundTrip(t *testing.T) {
	pix := make([]byte, 16*4)
	for i := 0; i < 16; i++ {
		pix[i*4+0], pix[i*4+1], pix[i*4+2] = 10, 20, 30
		pix[i*4+3] = byte(i * 17)
	}

	blocks, err := bcn.EncodeImage(bcn.BC2, pix, 4, 4, bcn.DefaultParams())
	if err != nil {
		t.Fatalf("EncodeImage: %v", err)
	}
	out, err := bcn.DecodeImage(bcn.BC2, blocks, 4, 4)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	for i := 0; i < 16; i++ {
		want := byte(i * 17)
		if got := out[i*4+3]; got != want {
			t.Errorf("pixel %d alpha = %d, want %d", i, got, want)
		}
	}
}
