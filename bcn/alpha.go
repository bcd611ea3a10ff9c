package bcn

// AlphaBlockBytes is the size in bytes of a packed BC2/BC3/BC4/BC5 alpha
// sub-block.
const AlphaBlockBytes = 8

// packAlphaExplicit packs BC2's explicit 4-bit-per-pixel alpha. Masked-out
// pixels pack as 0. Grounded on spec.md §4.6.
func packAlphaExplicit(tile *Tile, mask Mask, output []byte) {
	requireLen("alpha block", len(output), AlphaBlockBytes)

	var nibbles [16]uint8
	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		a := int(tile[i][3])
		nibbles[i] = uint8((a*15 + 127) / 255)
	}

	for i := 0; i < 8; i++ {
		output[i] = nibbles[2*i] | (nibbles[2*i+1] << 4)
	}
}

// unpackAlphaExplicit unpacks a BC2 explicit alpha block into 16 alpha
// values.
func unpackAlphaExplicit(block []byte) [16]uint8 {
	requireLen("alpha block", len(block), AlphaBlockBytes)

	var out [16]uint8
	for i := 0; i < 8; i++ {
		lo := block[i] & 0x0F
		hi := (block[i] >> 4) & 0x0F
		out[2*i] = lo*17
		out[2*i+1] = hi * 17
	}
	return out
}

// gradientPalette returns the 8-value alpha palette for endpoints a0, a1,
// per spec.md §3/§4.6: if a0>a1 the six interior values are an even
// 6-interpolation; otherwise the palette reserves slots 6 and 7 for the
// literal sentinels 0 and 255 ("6-interp with sentinels").
func gradientPalette(a0, a1 uint8) [8]uint8 {
	var p [8]uint8
	p[0], p[1] = a0, a1
	if a0 > a1 {
		for i := 2; i < 8; i++ {
			num := (8-i)*int(a0) + (i-1)*int(a1)
			p[i] = uint8(num / 7)
		}
	} else {
		for i := 2; i < 6; i++ {
			num := (6-i)*int(a0) + (i-1)*int(a1)
			p[i] = uint8(num / 5)
		}
		p[6] = 0
		p[7] = 255
	}
	return p
}

// fixAlphaRange widens [min, max] so it spans at least steps, per libsquish's
// FixRange: grow max upward first, then min downward if that still wasn't
// enough (both clamped to the 0..255 byte range).
func fixAlphaRange(min, max uint8, steps int) (uint8, uint8) {
	if int(max)-int(min) < steps {
		widened := int(min) + steps
		if widened > 255 {
			widened = 255
		}
		max = uint8(widened)
	}
	if int(max)-int(min) < steps {
		widened := int(max) - steps
		if widened < 0 {
			widened = 0
		}
		min = uint8(widened)
	}
	return min, max
}

// packGradientAlpha packs one BC3/BC4/BC5 channel (ch in 0..3) of the tile
// into 8 bytes: two endpoint bytes followed by 16 3-bit indices.
//
// Grounded on spec.md §4.6 and libsquish's CompressAlphaDxt5 (ported by
// squish-rs's alpha.rs): the 7-code book's endpoints are the plain min/max
// over all values, but the 5-code (sentinel) book's endpoints are the min/max
// over values that aren't themselves 0/255 ("min5"/"max5"), so the two
// sentinel slots carry the extremes and the 4 interior steps cover the
// intermediate values. Cross-checked against
// other_examples/ff8056d0_HugeSpaceship-dds__dxt5.go.go's independent DXT5
// decoder, which reconstructs the same two interpolation formulas.
func packGradientAlpha(tile *Tile, ch int, mask Mask, output []byte) {
	requireLen("alpha block", len(output), AlphaBlockBytes)

	min7, max7 := uint8(255), uint8(0)
	min5, max5 := uint8(255), uint8(0)
	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		v := tile[i][ch]
		if v < min7 {
			min7 = v
		}
		if v > max7 {
			max7 = v
		}
		if v != 0 && v < min5 {
			min5 = v
		}
		if v != 255 && v > max5 {
			max5 = v
		}
	}
	// No valid (non-sentinel) value found for one side of a book: collapse
	// it to the other side rather than leaving the 255/0 scan defaults.
	if min5 > max5 {
		min5 = max5
	}
	if min7 > max7 {
		min7 = max7
	}
	min5, max5 = fixAlphaRange(min5, max5, 5)
	min7, max7 = fixAlphaRange(min7, max7, 7)

	// Candidate 1: 6-interp, endpoints ordered (max7, min7).
	pal7 := gradientPalette(max7, min7)
	idx7, err7 := nearestAlphaAssignment(tile, ch, mask, pal7)

	// Candidate 2: 6-interp with sentinels, endpoints ordered (min5, max5).
	pal5 := gradientPalette(min5, max5)
	idx5, err5 := nearestAlphaAssignment(tile, ch, mask, pal5)

	var a0, a1 uint8
	var idx [16]uint8
	if err5 <= err7 {
		a0, a1, idx = min5, max5, idx5
	} else {
		a0, a1, idx = max7, min7, idx7
	}

	output[0] = a0
	output[1] = a1
	packIndices3Bit(idx, output[2:8])
}

// nearestAlphaAssignment assigns each masked tile pixel's channel value to
// its nearest palette entry and returns the per-pixel index plus total
// squared error.
func nearestAlphaAssignment(tile *Tile, ch int, mask Mask, palette [8]uint8) ([16]uint8, float64) {
	var idx [16]uint8
	var total float64
	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		v := int(tile[i][ch])
		best := 0
		bestErr := (v - int(palette[0])) * (v - int(palette[0]))
		for p := 1; p < 8; p++ {
			d := v - int(palette[p])
			e := d * d
			if e < bestErr {
				bestErr = e
				best = p
			}
		}
		idx[i] = uint8(best)
		total += float64(bestErr)
	}
	return idx, total
}

// packIndices3Bit packs 16 3-bit indices little-endian into 6 bytes.
func packIndices3Bit(idx [16]uint8, dst []byte) {
	var bits uint64
	for i, v := range idx {
		bits |= uint64(v&0x7) << uint(3*i)
	}
	dst[0] = byte(bits)
	dst[1] = byte(bits >> 8)
	dst[2] = byte(bits >> 16)
	dst[3] = byte(bits >> 24)
	dst[4] = byte(bits >> 32)
	dst[5] = byte(bits >> 40)
}

// unpackIndices3Bit unpacks 16 3-bit indices from 6 little-endian bytes.
func unpackIndices3Bit(src []byte) [16]uint8 {
	var bits uint64
	for i := 0; i < 6; i++ {
		bits |= uint64(src[i]) << uint(8*i)
	}
	var idx [16]uint8
	for i := range idx {
		idx[i] = uint8((bits >> uint(3*i)) & 0x7)
	}
	return idx
}

// unpackGradientAlpha decodes an 8-byte BC3/BC4/BC5 alpha sub-block into
// channel ch of the given RGBA scratch tile.
func unpackGradientAlpha(rgba *Tile, ch int, block []byte) {
	requireLen("alpha block", len(block), AlphaBlockBytes)

	a0, a1 := block[0], block[1]
	palette := gradientPalette(a0, a1)
	idx := unpackIndices3Bit(block[2:8])
	for i := 0; i < 16; i++ {
		rgba[i][ch] = palette[idx[i]]
	}
}
