package bcn

import "encoding/binary"

// ColourBlockBytes is the size in bytes of a packed RGB endpoint+index block.
const ColourBlockBytes = 8

// packColourBlock packs two 565-quantised endpoints (as 16-bit codes) and 16
// indices in 0..3 into the 8-byte colour block layout described in spec.md
// §4.5.
//
// useThreeColourTable selects BC1's 3-colour+transparent ordering
// (endpoint0 <= endpoint1, index 3 == transparent black) instead of the
// default 4-colour ordering (endpoint0 > endpoint1).
func packColourBlock(a, b uint16, indices [16]uint8, useThreeColourTable bool, output []byte) {
	requireLen("colour block", len(output), ColourBlockBytes)

	if useThreeColourTable {
		if a > b {
			a, b = b, a
			for i := range indices {
				if indices[i] == 0 {
					indices[i] = 1
				} else if indices[i] == 1 {
					indices[i] = 0
				}
			}
		}
	} else {
		if a <= b {
			a, b = b, a
			for i := range indices {
				indices[i] ^= 1
			}
		}
	}

	binary.LittleEndian.PutUint16(output[0:2], a)
	binary.LittleEndian.PutUint16(output[2:4], b)

	var packed uint32
	for i, idx := range indices {
		packed |= uint32(idx&0x3) << uint(2*i)
	}
	binary.LittleEndian.PutUint32(output[4:8], packed)
}

// unpackColourBlock decodes an 8-byte colour block into 16 RGBA pixels.
//
// threeColourCapable enables BC1's 3-colour+transparent palette when the
// decoded endpoints satisfy a<=b (only meaningful for BC1; BC2/BC3 always
// pass threeColourCapable=false, forcing 4-colour interpretation per spec.md
// §4.7).
func unpackColourBlock(block []byte, threeColourCapable bool) [16][4]uint8 {
	requireLen("colour block", len(block), ColourBlockBytes)

	a := binary.LittleEndian.Uint16(block[0:2])
	b := binary.LittleEndian.Uint16(block[2:4])
	packed := binary.LittleEndian.Uint32(block[4:8])

	ar, ag, ab := unpack565(a)
	br, bg, bb := unpack565(b)

	threeColour := threeColourCapable && a <= b

	var palette [4][4]uint8
	palette[0] = [4]uint8{ar, ag, ab, 255}
	palette[1] = [4]uint8{br, bg, bb, 255}
	if threeColour {
		palette[2] = [4]uint8{
			uint8((int(ar) + int(br)) / 2),
			uint8((int(ag) + int(bg)) / 2),
			uint8((int(ab) + int(bb)) / 2),
			255,
		}
		palette[3] = [4]uint8{0, 0, 0, 0}
	} else {
		palette[2] = [4]uint8{
			clampByte((2*int(ar) + int(br)) / 3),
			clampByte((2*int(ag) + int(bg)) / 3),
			clampByte((2*int(ab) + int(bb)) / 3),
			255,
		}
		palette[3] = [4]uint8{
			clampByte((int(ar) + 2*int(br)) / 3),
			clampByte((int(ag) + 2*int(bg)) / 3),
			clampByte((int(ab) + 2*int(bb)) / 3),
			255,
		}
	}

	var out [16][4]uint8
	for i := 0; i < 16; i++ {
		idx := (packed >> uint(2*i)) & 0x3
		out[i] = palette[idx]
	}
	return out
}
