package bcn

// Tile is a 4x4 group of RGBA pixels, indexed row-major (py*4+px). Unused
// (padding) slots are zero-filled; Mask marks which indices actually
// participate.
type Tile [16][4]uint8

// Mask is a 16-bit bitmap; bit i set means tile pixel i is in-image and
// participates in fitting.
type Mask uint16

// colourSetEntry is one unique weighted colour in a ColourSet.
type colourSetEntry struct {
	r, g, b float32 // normalised to [0,1]
	weight  float32
}

// ColourSet reduces a Tile to at most 16 unique weighted RGB points, honouring
// the mask and (for BC1) transparency.
//
// Grounded on spec.md §4.1. The original squish-rs colourset.rs was not
// retrievable in this pack; dedup is keyed on the 8-bit integer RGB tuple
// rather than on float equality of x/255, per the Open Question resolution
// in spec.md §9 — identical behaviour in practice, since the dividends are
// small integers. BC1-transparent pixels never enter the set, so the key
// carries no transparency flag.
type ColourSet struct {
	entries     []colourSetEntry
	remap       [16]int8 // pixel index -> entry index, or -1 if excluded
	isTransparent bool    // true if any pixel was excluded for BC1 transparency
}

// NewColourSet builds a ColourSet from a 4x4 tile.
//
// isBC1 excludes pixels with alpha < 128 and records isTransparent.
// weighByAlpha scales each pixel's contribution to its entry's weight by
// max(alpha/255, 1/256).
func NewColourSet(tile *Tile, mask Mask, isBC1, weighByAlpha bool) *ColourSet {
	cs := &ColourSet{}
	for i := range cs.remap {
		cs.remap[i] = -1
	}

	// key identifies a unique quantized colour by its 8-bit RGB.
	type key struct {
		r, g, b uint8
	}
	index := make(map[key]int, 16)

	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		px := tile[i]
		if isBC1 && px[3] < 128 {
			cs.isTransparent = true
			continue
		}

		weight := float32(1.0)
		if weighByAlpha {
			w := float32(px[3]) / 255.0
			if w < 1.0/256.0 {
				w = 1.0 / 256.0
			}
			weight = w
		}

		k := key{px[0], px[1], px[2]}
		if ei, ok := index[k]; ok {
			cs.entries[ei].weight += weight
			cs.remap[i] = int8(ei)
			continue
		}

		ei := len(cs.entries)
		cs.entries = append(cs.entries, colourSetEntry{
			r:      float32(px[0]) / 255.0,
			g:      float32(px[1]) / 255.0,
			b:      float32(px[2]) / 255.0,
			weight: weight,
		})
		index[k] = ei
		cs.remap[i] = int8(ei)
	}

	return cs
}

// Count returns the number of unique colour entries, 0..16.
func (cs *ColourSet) Count() int { return len(cs.entries) }

// IsTransparent reports whether any pixel was excluded for BC1 transparency.
func (cs *ColourSet) IsTransparent() bool { return cs.isTransparent }

// Points returns the RGB points, normalised to [0,1].
func (cs *ColourSet) Points() []colourSetEntry { return cs.entries }

// Weight returns the weight of entry i.
func (cs *ColourSet) Weight(i int) float32 { return cs.entries[i].weight }

// RGB returns the normalised RGB point of entry i.
func (cs *ColourSet) RGB(i int) (r, g, b float32) {
	e := cs.entries[i]
	return e.r, e.g, e.b
}

// RemapIndex returns, for each of the 16 tile pixels, the index into the
// set's entries it maps to, or -1 if the pixel was excluded (mask or BC1
// transparency).
func (cs *ColourSet) RemapIndex(pixel int) int8 { return cs.remap[pixel] }

// RemapIndices maps a per-entry index assignment (e.g. from a fitter) back
// onto all 16 tile pixels, producing per-pixel palette indices. Excluded
// pixels (remap == -1) are assigned transparentIndex (used by BC1's
// three-colour mode; callers that don't need this pass a placeholder
// value, which is packed as-is).
func (cs *ColourSet) RemapIndices(entryIndices []uint8, transparentIndex uint8) [16]uint8 {
	var out [16]uint8
	for i := 0; i < 16; i++ {
		ei := cs.remap[i]
		if ei < 0 {
			out[i] = transparentIndex
			continue
		}
		out[i] = entryIndices[ei]
	}
	return out
}
