package bcn

// singleColourFit computes optimal 565 endpoints for a ColourSet of exactly
// one colour, via the precomputed tables in singlecolourfit_tables.go.
//
// Per spec.md §4.2: each channel's table entry is chosen independently, then
// reconciled across channels by picking whichever shared palette slot
// (summed over R,G,B) gives the lowest total error — a channel can't use a
// different slot than its siblings since all three channels share one
// per-pixel index.
func singleColourFit(colours *ColourSet, threeColour bool) colourFitResult {
	r, g, b := colours.RGB(0)
	r8 := uint8(clampFloat01(r)*255 + 0.5)
	g8 := uint8(clampFloat01(g)*255 + 0.5)
	b8 := uint8(clampFloat01(b)*255 + 0.5)

	if threeColour {
		return singleColourFit3(r8, g8, b8)
	}
	return singleColourFit4(r8, g8, b8)
}

func singleColourFit4(r8, g8, b8 uint8) colourFitResult {
	rc := singleColourTable4[0][r8]
	gc := singleColourTable4[1][g8]
	bc := singleColourTable4[0][b8]

	bestSlot := 0
	bestErr := rc[0].err + gc[0].err + bc[0].err
	for s := 1; s < 3; s++ {
		e := rc[s].err + gc[s].err + bc[s].err
		if e < bestErr {
			bestErr = e
			bestSlot = s
		}
	}

	a := uint16(rc[bestSlot].min)<<11 | uint16(gc[bestSlot].min)<<5 | uint16(bc[bestSlot].min)
	bnd := uint16(rc[bestSlot].max)<<11 | uint16(gc[bestSlot].max)<<5 | uint16(bc[bestSlot].max)

	// the four-colour slots [0,2,3] correspond to the palette entry the
	// single-entry set maps to; palette slot 0 already matches the table's
	// "min" endpoint so there's nothing further to remap here.
	entrySlot := [3]uint8{0, 2, 3}[bestSlot]

	return colourFitResult{a: a, b: bnd, entryIndex: []uint8{entrySlot}, err: float64(bestErr)}
}

func singleColourFit3(r8, g8, b8 uint8) colourFitResult {
	rc := singleColourTable3[0][r8]
	gc := singleColourTable3[1][g8]
	bc := singleColourTable3[0][b8]

	bestSlot := 0
	bestErr := rc[0].err + gc[0].err + bc[0].err
	for s := 1; s < 2; s++ {
		e := rc[s].err + gc[s].err + bc[s].err
		if e < bestErr {
			bestErr = e
			bestSlot = s
		}
	}

	a := uint16(rc[bestSlot].min)<<11 | uint16(gc[bestSlot].min)<<5 | uint16(bc[bestSlot].min)
	bnd := uint16(rc[bestSlot].max)<<11 | uint16(gc[bestSlot].max)<<5 | uint16(bc[bestSlot].max)

	entrySlot := [2]uint8{0, 2}[bestSlot]

	return colourFitResult{a: a, b: bnd, entryIndex: []uint8{entrySlot}, err: float64(bestErr)}
}
