package bcn

// Format identifies one of the five supported block-compression formats.
type Format int

const (
	// BC1 packs a 4x4 tile into 8 bytes: one colour block, with optional
	// three-colour+punch-through-alpha mode.
	BC1 Format = iota
	// BC2 packs a 4x4 tile into 16 bytes: explicit 4-bit alpha followed by
	// a four-colour-only colour block.
	BC2
	// BC3 packs a 4x4 tile into 16 bytes: gradient (interpolated) alpha
	// followed by a four-colour-only colour block.
	BC3
	// BC4 packs a single 4x4 channel into 8 bytes of gradient data. Used
	// for single-channel (e.g. greyscale, height map) data.
	BC4
	// BC5 packs two 4x4 channels into 16 bytes of gradient data. Used for
	// two-channel data, most commonly tangent-space normal maps.
	BC5
)

func (f Format) String() string {
	switch f {
	case BC1:
		return "BC1"
	case BC2:
		return "BC2"
	case BC3:
		return "BC3"
	case BC4:
		return "BC4"
	case BC5:
		return "BC5"
	default:
		return "Format(?)"
	}
}

// BlockSize returns the number of bytes one compressed 4x4 tile occupies.
func (f Format) BlockSize() int {
	switch f {
	case BC1, BC4:
		return 8
	case BC2, BC3, BC5:
		return 16
	default:
		panic("bcn: unknown format")
	}
}

// blocksAcross returns ceil(n/4).
func blocksAcross(n int) int {
	return (n + 3) / 4
}

// CompressedSize returns the total byte size of a w x h image compressed in
// this format, per spec.md §5's size law: ceil(w/4) * ceil(h/4) * BlockSize().
func (f Format) CompressedSize(w, h int) int {
	if w < 0 || h < 0 {
		panic("bcn: negative image dimension")
	}
	return blocksAcross(w) * blocksAcross(h) * f.BlockSize()
}

// compressTile dispatches one already-extracted 4x4 tile to its format's
// compressor, writing exactly f.BlockSize() bytes to output.
func compressTile(f Format, tile *Tile, mask Mask, params Params, output []byte) {
	requireLen(f.String()+" block", len(output), f.BlockSize())

	switch f {
	case BC1:
		cs := NewColourSet(tile, mask, true, params.WeighColourByAlpha)
		compressColourBlock(cs, true, params, output)

	case BC2:
		packAlphaExplicit(tile, mask, output[0:8])
		cs := NewColourSet(tile, mask, false, params.WeighColourByAlpha)
		compressColourBlock(cs, false, params, output[8:16])

	case BC3:
		packGradientAlpha(tile, 3, mask, output[0:8])
		cs := NewColourSet(tile, mask, false, params.WeighColourByAlpha)
		compressColourBlock(cs, false, params, output[8:16])

	case BC4:
		packGradientAlpha(tile, 0, mask, output[0:8])

	case BC5:
		packGradientAlpha(tile, 0, mask, output[0:8])
		packGradientAlpha(tile, 1, mask, output[8:16])

	default:
		panic("bcn: unknown format")
	}
}

// decompressTile dispatches one format's compressed block into a 4x4 RGBA
// tile. BC4 only fills channel 0 (replicated into G/B per spec.md §4.8); BC5
// fills channels 0 and 1 and zeroes B.
func decompressTile(f Format, block []byte, tile *Tile) {
	requireLen(f.String()+" block", len(block), f.BlockSize())

	switch f {
	case BC1:
		rgba := unpackColourBlock(block, true)
		*tile = rgba

	case BC2:
		alpha := unpackAlphaExplicit(block[0:8])
		rgba := unpackColourBlock(block[8:16], false)
		for i := range rgba {
			rgba[i][3] = alpha[i]
		}
		*tile = rgba

	case BC3:
		var rgba Tile
		unpackGradientAlpha(&rgba, 3, block[0:8])
		colour := unpackColourBlock(block[8:16], false)
		for i := range rgba {
			rgba[i][0], rgba[i][1], rgba[i][2] = colour[i][0], colour[i][1], colour[i][2]
		}
		*tile = rgba

	case BC4:
		var out Tile
		unpackGradientAlpha(&out, 0, block)
		for i := range out {
			out[i][1] = out[i][0]
			out[i][2] = out[i][0]
			out[i][3] = 255
		}
		*tile = out

	case BC5:
		var out Tile
		unpackGradientAlpha(&out, 0, block[0:8])
		unpackGradientAlpha(&out, 1, block[8:16])
		for i := range out {
			out[i][2] = 0
			out[i][3] = 255
		}
		*tile = out

	default:
		panic("bcn: unknown format")
	}
}
