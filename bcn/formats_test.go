package bcn_test

import (
	"testing"

	"github.com/jansol/bcn/bcn"
)

func TestCompressedSize(t *testing.T) {
	cases := []struct {
		f    bcn.Format
		w, h int
		want int
	}{
		{bcn.BC1, 16, 32, 256},
		{bcn.BC1, 15, 32, 256},
		{bcn.BC2, 15, 32, 512},
		{bcn.BC3, 4, 4, 16},
		{bcn.BC4, 4, 4, 8},
		{bcn.BC5, 4, 4, 16},
		{bcn.BC1, 1, 1, 8},
		{bcn.BC1, 5, 5, 32},
	}
	for _, c := range cases {
		if got := c.f.CompressedSize(c.w, c.h); got != c.want {
			t.Errorf("%s.CompressedSize(%d,%d) = %d, want %d", c.f, c.w, c.h, got, c.want)
		}
	}
}

func TestBlockSize(t *testing.T) {
	cases := []struct {
		f    bcn.Format
		want int
	}{
		{bcn.BC1, 8}, {bcn.BC2, 16}, {bcn.BC3, 16}, {bcn.BC4, 8}, {bcn.BC5, 16},
	}
	for _, c := range cases {
		if got := c.f.BlockSize(); got != c.want {
			t.Errorf("%s.BlockSize() = %d, want %d", c.f, got, c.want)
		}
	}
}

func TestBC4ChannelReplication(t *testing.T) {
	pix := make([]byte, 4*4*4)
	for i := 0; i < 16; i++ {
		pix[i*4+0] = byte(i * 16)
	}
	blocks, err := bcn.EncodeImage(bcn.BC4, pix, 4, 4, bcn.DefaultParams())
	if err != nil {
		t.Fatalf("EncodeImage: %v", err)
	}
	out, err := bcn.DecodeImage(bcn.BC4, blocks, 4, 4)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	for i := 0; i < 16; i++ {
		r, g, b, a := out[i*4], out[i*4+1], out[i*4+2], out[i*4+3]
		if g != r || b != r {
			t.Fatalf("pixel %d: R=%d G=%d B=%d, want G=B=R", i, r, g, b)
		}
		if a != 255 {
			t.Fatalf("pixel %d: A=%d, want 255", i, a)
		}
	}
}

func TestBC5ChannelZeroing(t *testing.T) {
	pix := make([]byte, 4*4*4)
	for i := 0; i < 16; i++ {
		pix[i*4+0] = byte(i * 16)
		pix[i*4+1] = byte(255 - i*16)
	}
	blocks, err := bcn.EncodeImage(bcn.BC5, pix, 4, 4, bcn.DefaultParams())
	if err != nil {
		t.Fatalf("EncodeImage: %v", err)
	}
	out, err := bcn.DecodeImage(bcn.BC5, blocks, 4, 4)
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	for i := 0; i < 16; i++ {
		b, a := out[i*4+2], out[i*4+3]
		if b != 0 {
			t.Fatalf("pixel %d: B=%d, want 0", i, b)
		}
		if a != 255 {
			t.Fatalf("pixel %d: A=%d, want 255", i, a)
		}
		r, g := int(out[i*4]), int(out[i*4+1])
		wantR, wantG := i*16, 255-i*16
		if abs(r-wantR) > 4 {
			t.Fatalf("pixel %d: R=%d, want within 4 of %d", i, r, wantR)
		}
		if abs(g-wantG) > 4 {
			t.Fatalf("pixel %d: G=%d, want within 4 of %d", i, g, wantG)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestSolidColourRoundTrip(t *testing.T) {
	formats := []bcn.Format{bcn.BC1, bcn.BC2, bcn.BC3}
	for _, f := range formats {
		pix := make([]byte, 4*4*4)
		for i := 0; i < 16; i++ {
			pix[i*4+0] = 200
			pix[i*4+1] = 90
			pix[i*4+2] = 30
			pix[i*4+3] = 255
		}
		blocks, err := bcn.EncodeImage(f, pix, 4, 4, bcn.DefaultParams())
		if err != nil {
			t.Fatalf("%s: EncodeImage: %v", f, err)
		}
		out, err := bcn.DecodeImage(f, blocks, 4, 4)
		if err != nil {
			t.Fatalf("%s: DecodeImage: %v", f, err)
		}
		for i := 0; i < 16; i++ {
			for ch, want := range []byte{200, 90, 30} {
				if got := int(out[i*4+ch]); abs(got-int(want)) > 8 {
					t.Fatalf("%s pixel %d channel %d: got %d, want within 8 of %d", f, i, ch, got, want)
				}
			}
		}
	}
}

func TestAlgorithmAgnosticForSolidBlock(t *testing.T) {
	pix := make([]byte, 4*4*4)
	for i := 0; i < 16; i++ {
		pix[i*4+0] = 10
		pix[i*4+1] = 128
		pix[i*4+2] = 250
		pix[i*4+3] = 255
	}

	algos := []bcn.Algorithm{bcn.RangeFit, bcn.ClusterFit, bcn.IterativeClusterFit}
	var results [][]byte
	for _, a := range algos {
		p := bcn.DefaultParams()
		p.Algorithm = a
		blocks, err := bcn.EncodeImage(bcn.BC1, pix, 4, 4, p)
		if err != nil {
			t.Fatalf("%s: EncodeImage: %v", a, err)
		}
		results = append(results, blocks)
	}
	for i := 1; i < len(results); i++ {
		if string(results[i]) != string(results[0]) {
			t.Fatalf("algorithm %s produced different output than %s for a solid block", algos[i], algos[0])
		}
	}
}

func TestPaddingInvariance(t *testing.T) {
	// A 4x4 image has exactly one tile, fully in-bounds.
	small := make([]byte, 4*4*4)
	for i := range small {
		small[i] = byte(i * 7)
	}
	smallBlocks, err := bcn.EncodeImage(bcn.BC1, small, 4, 4, bcn.DefaultParams())
	if err != nil {
		t.Fatalf("EncodeImage(4x4): %v", err)
	}

	// An 8x4 image sharing the first 4 columns with `small`, followed by
	// arbitrary content, must encode that first tile identically: the
	// tile lies entirely within the first 4 columns, so it never sees the
	// padding.
	wide := make([]byte, 8*4*4)
	for i := range wide {
		wide[i] = byte(255 - i)
	}
	for y := 0; y < 4; y++ {
		copy(wide[y*8*4:y*8*4+4*4], small[y*4*4:(y+1)*4*4])
	}
	wideBlocks, err := bcn.EncodeImage(bcn.BC1, wide, 8, 4, bcn.DefaultParams())
	if err != nil {
		t.Fatalf("EncodeImage(8x4): %v", err)
	}

	blockSize := bcn.BC1.BlockSize()
	if string(wideBlocks[:blockSize]) != string(smallBlocks[:blockSize]) {
		t.Fatalf("first tile's block changed when unrelated columns were appended")
	}
}
