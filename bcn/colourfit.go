package bcn

// Shared helpers used by SingleColourFit, RangeFit and ClusterFit: palette
// construction from quantised endpoints, weighted squared-error evaluation,
// and the per-format "does this block get a three-colour (BC1 punch-through)
// or four-colour attempt" dispatch.

// colourFitResult is what every fitter produces for a colour block: two
// packed 565 endpoint codes, a palette-slot assignment for each ColourSet
// entry (0..3 for four-colour, 0..2 for three-colour; index 3 is reserved
// for BC1 transparent pixels and is never an entry's own assignment), and
// the resulting weighted sum of squared error over the set (used to compare
// candidate fits).
type colourFitResult struct {
	a, b       uint16
	entryIndex []uint8
	err        float64
}

// paletteEntry is one normalised-to-[0,1] RGB value in a fit's candidate
// palette, used only for error evaluation during fitting (the actual
// packed output is the two endpoint codes).
type paletteEntry struct{ r, g, b float32 }

// buildPalette returns the candidate palette for the given packed endpoint
// codes. fourColour selects {p0, p1, 2p0/3+p1/3, p0/3+2p1/3}; three-colour
// mode (used only for BC1) selects {p0, p1, (p0+p1)/2}.
func buildPalette(a, b uint16, fourColour bool) []paletteEntry {
	ar, ag, ab := unpack565(a)
	br, bg, bb := unpack565(b)

	p0 := paletteEntry{float32(ar) / 255, float32(ag) / 255, float32(ab) / 255}
	p1 := paletteEntry{float32(br) / 255, float32(bg) / 255, float32(bb) / 255}

	if fourColour {
		return []paletteEntry{
			p0,
			p1,
			{(2*p0.r + p1.r) / 3, (2*p0.g + p1.g) / 3, (2*p0.b + p1.b) / 3},
			{(p0.r + 2*p1.r) / 3, (p0.g + 2*p1.g) / 3, (p0.b + 2*p1.b) / 3},
		}
	}
	return []paletteEntry{
		p0,
		p1,
		{(p0.r + p1.r) / 2, (p0.g + p1.g) / 2, (p0.b + p1.b) / 2},
	}
}

// weightedSqDist returns the params.Weights-squared weighted squared
// distance between an entry's RGB and a palette colour.
func weightedSqDist(er, eg, eb float32, p paletteEntry, w ColourWeights) float64 {
	dr := float64(er-p.r) * float64(w[0])
	dg := float64(eg-p.g) * float64(w[1])
	db := float64(eb-p.b) * float64(w[2])
	return dr*dr + dg*dg + db*db
}

// nearestPaletteAssignment assigns every ColourSet entry to its nearest
// palette colour (channel-weighted squared distance, ties preferring the
// lower index) and returns the per-entry assignment and total weighted SSE.
func nearestPaletteAssignment(cs *ColourSet, palette []paletteEntry, w ColourWeights) ([]uint8, float64) {
	n := cs.Count()
	assign := make([]uint8, n)
	var total float64
	for i := 0; i < n; i++ {
		er, eg, eb := cs.RGB(i)
		weight := float64(cs.Weight(i))

		best := 0
		bestDist := weightedSqDist(er, eg, eb, palette[0], w)
		for s := 1; s < len(palette); s++ {
			d := weightedSqDist(er, eg, eb, palette[s], w)
			if d < bestDist {
				bestDist = d
				best = s
			}
		}
		assign[i] = uint8(best)
		total += weight * bestDist
	}
	return assign, total
}

// compressColourBlock runs the fitter selected by (params.Algorithm,
// colours.Count()) and, for BC1, tries both the three-colour and
// four-colour tables and keeps the lower-error result — unless the set has
// BC1-transparent (masked-out) pixels, in which case only three-colour mode
// can represent them and it is used unconditionally.
//
// Grounded on spec.md §4 dispatch rules and squish-rs lib.rs's
// compress_bc1_bc2_bc3_colour_block (count()==1 -> SingleColourFit;
// RangeFit algorithm or count()==0 -> RangeFit; else ClusterFit).
func compressColourBlock(colours *ColourSet, isBC1 bool, params Params, output []byte) {
	mustTransparent := isBC1 && colours.IsTransparent()

	fit := func(threeColour bool) colourFitResult {
		switch {
		case colours.Count() == 1:
			return singleColourFit(colours, threeColour)
		case params.Algorithm == RangeFit || colours.Count() == 0:
			return rangeFit(colours, threeColour, params.Weights)
		default:
			return clusterFit(colours, threeColour, params.Weights, params.Algorithm == IterativeClusterFit)
		}
	}

	var three colourFitResult
	if isBC1 {
		three = fit(true)
	}

	var best colourFitResult
	var useThree bool
	switch {
	case mustTransparent:
		best, useThree = three, true
	case !isBC1:
		best, useThree = fit(false), false
	default:
		four := fit(false)
		if three.err <= four.err {
			best, useThree = three, true
		} else {
			best, useThree = four, false
		}
	}

	// Pixels excluded from the set (out-of-image padding, or BC1
	// transparency) get index 3 only when three-colour mode is active,
	// where it means "transparent black"; in four-colour mode, or for
	// plain padding, any excluded pixel is discarded by the tiling driver
	// on decode, so index 0 is a harmless placeholder.
	transparentSlot := uint8(0)
	if useThree {
		transparentSlot = 3
	}
	indices := colours.RemapIndices(best.entryIndex, transparentSlot)
	packColourBlock(best.a, best.b, indices, useThree, output)
}
