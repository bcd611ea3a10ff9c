package bcn

// Precomputed per-channel single-colour lookup tables.
//
// libsquish ships these as literal generated tables (lookup_5_3, lookup_6_3,
// lookup_5_4, lookup_6_4 in the upstream C++). The generator itself is a
// small brute-force search; this module runs that search once at package
// init time instead of embedding 256-entry literal tables, following the
// teacher's convention of building lookup tables in an init() function
// (astc/encode_block_rgba8.go's colorQuantize init, astc/weight_quant_tables.go)
// rather than hand-transcribing generated data.
//
// For each target 8-bit channel value and each N-bit (5 or 6) endpoint
// depth, the table records, per usable four-colour palette slot (0, 2, 3 —
// slot 1 is redundant with slot 0 under full (min,max) enumeration, since
// swapping min/max and using slot 0 covers it), the (min, max) N-bit codes
// and resulting squared error that best approximate the target when that
// slot is the one replicated across all 16 pixels. Three-colour mode uses
// only slots 0 and 2 (2 being the (p0+p1)/2 midpoint).

type singleColourCandidate struct {
	min, max uint8
	err      int
}

// singleColourTable4[bits-5][targetByte][slotIdx] where slotIdx 0,1,2 map to
// four-colour palette slots 0, 2, 3 respectively.
var singleColourTable4 [2][256][3]singleColourCandidate

// singleColourTable3[bits-5][targetByte][slotIdx] where slotIdx 0,1 map to
// three-colour palette slots 0, 2 (midpoint) respectively.
var singleColourTable3 [2][256][2]singleColourCandidate

func init() {
	for bi, bits := range [2]int{5, 6} {
		count := 1 << uint(bits)
		expand := expand5to8
		if bits == 6 {
			expand = expand6to8
		}

		for target := 0; target < 256; target++ {
			var best4 [3]singleColourCandidate
			var best3 [2]singleColourCandidate
			for s := range best4 {
				best4[s].err = 1 << 30
			}
			for s := range best3 {
				best3[s].err = 1 << 30
			}

			for minC := 0; minC < count; minC++ {
				minExp := int(expand(uint8(minC)))
				for maxC := 0; maxC < count; maxC++ {
					maxExp := int(expand(uint8(maxC)))

					// four-colour slots: 0 (=min), 2 (=(2*min+max)/3), 3 (=(min+2*max)/3)
					evalFour := [3]int{minExp, (2*minExp + maxExp) / 3, (minExp + 2*maxExp) / 3}
					for s, v := range evalFour {
						d := v - target
						e := d * d
						if e < best4[s].err {
							best4[s] = singleColourCandidate{uint8(minC), uint8(maxC), e}
						}
					}

					// three-colour slots: 0 (=min), 2 (=(min+max)/2)
					evalThree := [2]int{minExp, (minExp + maxExp) / 2}
					for s, v := range evalThree {
						d := v - target
						e := d * d
						if e < best3[s].err {
							best3[s] = singleColourCandidate{uint8(minC), uint8(maxC), e}
						}
					}
				}
			}

			singleColourTable4[bi][target] = best4
			singleColourTable3[bi][target] = best3
		}
	}
}
