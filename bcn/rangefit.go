package bcn

import "math"

// principalAxis computes the weighted centroid and 3x3 covariance of a
// ColourSet's points, then finds the principal eigenvector via 8 fixed
// iterations of power iteration starting from (1,1,1).
//
// Per spec.md §9: the iteration count (8) is fixed deliberately to match the
// reference implementation; it must not be replaced with a convergence
// check.
func principalAxis(cs *ColourSet) (axis [3]float32) {
	n := cs.Count()
	if n == 0 {
		return [3]float32{1, 1, 1}
	}

	var totalWeight float64
	var cr, cg, cb float64
	for i := 0; i < n; i++ {
		r, g, b := cs.RGB(i)
		w := float64(cs.Weight(i))
		totalWeight += w
		cr += w * float64(r)
		cg += w * float64(g)
		cb += w * float64(b)
	}
	if totalWeight <= 0 {
		return [3]float32{1, 1, 1}
	}
	cr /= totalWeight
	cg /= totalWeight
	cb /= totalWeight

	var cxx, cxy, cxz, cyy, cyz, czz float64
	for i := 0; i < n; i++ {
		r, g, b := cs.RGB(i)
		w := float64(cs.Weight(i))
		dr := float64(r) - cr
		dg := float64(g) - cg
		db := float64(b) - cb
		cxx += w * dr * dr
		cxy += w * dr * dg
		cxz += w * dr * db
		cyy += w * dg * dg
		cyz += w * dg * db
		czz += w * db * db
	}

	v := [3]float64{1, 1, 1}
	for iter := 0; iter < 8; iter++ {
		nv := [3]float64{
			cxx*v[0] + cxy*v[1] + cxz*v[2],
			cxy*v[0] + cyy*v[1] + cyz*v[2],
			cxz*v[0] + cyz*v[1] + czz*v[2],
		}
		norm := math.Sqrt(nv[0]*nv[0] + nv[1]*nv[1] + nv[2]*nv[2])
		if norm < 1e-12 {
			return [3]float32{1, 1, 1}
		}
		v = [3]float64{nv[0] / norm, nv[1] / norm, nv[2] / norm}
	}

	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}

// rangeFit implements spec.md §4.3: project the ColourSet onto its
// principal axis, take the extremal points as raw endpoints, quantise to
// 565, and assign every point to its nearest palette entry.
//
// count()==0 (an empty set, e.g. an all-transparent BC1 tile) is handled
// here too: it degenerates to endpoints (0,0,0)/(0,0,0) and an empty
// assignment, a valid all-zero block.
func rangeFit(cs *ColourSet, threeColour bool, weights ColourWeights) colourFitResult {
	n := cs.Count()
	if n == 0 {
		return colourFitResult{a: 0, b: 0, entryIndex: nil, err: 0}
	}

	axis := principalAxis(cs)

	minProj := float32(math.Inf(1))
	maxProj := float32(math.Inf(-1))
	var p0r, p0g, p0b, p1r, p1g, p1b float32
	for i := 0; i < n; i++ {
		r, g, b := cs.RGB(i)
		proj := r*axis[0] + g*axis[1] + b*axis[2]
		if proj < minProj {
			minProj = proj
			p0r, p0g, p0b = r, g, b
		}
		if proj > maxProj {
			maxProj = proj
			p1r, p1g, p1b = r, g, b
		}
	}

	p0r, p0g, p0b = clampFloat01(p0r), clampFloat01(p0g), clampFloat01(p0b)
	p1r, p1g, p1b = clampFloat01(p1r), clampFloat01(p1g), clampFloat01(p1b)

	aCode, _, _, _ := pack565(p0r, p0g, p0b)
	bCode, _, _, _ := pack565(p1r, p1g, p1b)

	palette := buildPalette(aCode, bCode, !threeColour)
	assign, err := nearestPaletteAssignment(cs, palette, weights)

	return colourFitResult{a: aCode, b: bCode, entryIndex: assign, err: err}
}
