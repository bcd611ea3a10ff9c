package bcn

import "math"

// clusterFitS4/S3 give the four-colour and three-colour (BC1) interpolation
// parameter s for each bucket in ascending-projection order: the first
// bucket always holds s=0 (endpoint p0) and the last always holds s=1
// (endpoint p1); the bucket(s) in between hold the interior palette
// point(s). Bucket order is not buildPalette's slice order, so
// codeFromBucket4/codeFromBucket3 map each bucket to its 2-bit code.
var clusterFitS4 = [4]float64{0, 1.0 / 3, 2.0 / 3, 1}
var clusterFitS3 = [3]float64{0, 0.5, 1}

// sortedPoint is one ColourSet entry annotated with its original entry
// index, used to build the ascending-principal-axis-projection ordering
// that bounds the partition enumeration.
type sortedPoint struct {
	r, g, b, weight float32
	entry           int
}

// clusterFit implements spec.md §4.4: sort the set along its principal
// axis, enumerate all ordered k-partitions (k=3 for BC1's three-colour
// mode, k=4 otherwise), solve the per-partition weighted least squares, and
// keep the lowest-error result. If iterate is set (IterativeClusterFit),
// the winning partition is then refined by repeated nearest-palette
// reassignment until it stabilises or 8 iterations pass.
func clusterFit(cs *ColourSet, threeColour bool, weights ColourWeights, iterate bool) colourFitResult {
	n := cs.Count()
	sValues := clusterFitS4[:]
	if threeColour {
		sValues = clusterFitS3[:]
	}
	k := len(sValues)
	fourColour := !threeColour

	axis := principalAxis(cs)
	points := make([]sortedPoint, n)
	proj := make([]float32, n)
	for i := 0; i < n; i++ {
		r, g, b := cs.RGB(i)
		points[i] = sortedPoint{r: r, g: g, b: b, weight: cs.Weight(i), entry: i}
		proj[i] = r*axis[0] + g*axis[1] + b*axis[2]
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	// stable ascending insertion sort by projection (n <= 16)
	for i := 1; i < n; i++ {
		j := i
		for j > 0 && proj[order[j-1]] > proj[order[j]] {
			order[j-1], order[j] = order[j], order[j-1]
			j--
		}
	}
	sorted := make([]sortedPoint, n)
	for i, oi := range order {
		sorted[i] = points[oi]
	}

	best := colourFitResult{err: math.Inf(1)}
	bestFound := false

	counts := make([]int, 0, k)
	var enumerate func(remainingSlots, remainingPoints int)
	enumerate = func(remainingSlots, remainingPoints int) {
		if remainingSlots == 1 {
			counts = append(counts, remainingPoints)
			evaluatePartition(sorted, counts, sValues, fourColour, weights, &best, &bestFound)
			counts = counts[:len(counts)-1]
			return
		}
		for c := 0; c <= remainingPoints; c++ {
			counts = append(counts, c)
			enumerate(remainingSlots-1, remainingPoints-c)
			counts = counts[:len(counts)-1]
		}
	}
	enumerate(k, n)

	if !bestFound {
		// Every partition was numerically singular (all weight
		// concentrated on one endpoint); fall back to RangeFit, which does
		// not need to solve a least-squares system. Per spec.md §7.
		return rangeFit(cs, threeColour, weights)
	}

	if iterate {
		best = refineClusterFit(points, best, fourColour, weights)
	}
	return best
}

// codeFromBucket4/3 map a partition bucket index (ascending-s order, the
// order clusterFitS4/clusterFitS3 and the enumeration's counts use) to the
// palette code buildPalette assigns that s value: buildPalette's slice order
// is [s=0, s=1, interior s-values...], not ascending-s order, so bucket
// position and final 2-bit code diverge for the two interior buckets.
var codeFromBucket4 = [4]uint8{0, 2, 3, 1}
var codeFromBucket3 = [3]uint8{0, 2, 1}

// evaluatePartition solves the weighted least squares for one candidate
// k-partition of the sorted points and updates *best if it strictly
// improves on the current lowest error, so ties keep the first-encountered
// partition in enumeration order.
func evaluatePartition(sorted []sortedPoint, counts []int, sValues []float64, fourColour bool, weights ColourWeights, best *colourFitResult, bestFound *bool) {
	n := len(sorted)
	sOf := make([]float64, n)
	codeOf := make([]uint8, n)
	codeFromBucket := codeFromBucket4[:]
	if !fourColour {
		codeFromBucket = codeFromBucket3[:]
	}
	pos := 0
	for b, c := range counts {
		for j := 0; j < c; j++ {
			sOf[pos] = sValues[b]
			codeOf[pos] = codeFromBucket[b]
			pos++
		}
	}

	aCode, bCode, ok := solveEndpoints(sorted, sOf)
	if !ok {
		return
	}

	entryIndex, total := scorePartition(sorted, codeOf, aCode, bCode, fourColour, weights)
	if *bestFound && total >= best.err {
		return
	}

	*best = colourFitResult{a: aCode, b: bCode, entryIndex: entryIndex, err: total}
	*bestFound = true
}

// scorePartition scores a candidate partition against the slot each sorted
// point was actually placed in (codeOf), per spec.md §4.4 step 5. This is
// deliberately not a fresh nearest-palette reassignment (that would score a
// lower bound independent of how the partition was formed, letting distinct
// partitions collapse to the same score).
func scorePartition(sorted []sortedPoint, codeOf []uint8, a, b uint16, fourColour bool, weights ColourWeights) ([]uint8, float64) {
	palette := buildPalette(a, b, fourColour)
	entryIndex := make([]uint8, len(sorted))
	var total float64
	for i, p := range sorted {
		code := codeOf[i]
		d := weightedSqDist(p.r, p.g, p.b, palette[code], weights)
		entryIndex[p.entry] = code
		total += float64(p.weight) * d
	}
	return entryIndex, total
}

// assignNearest builds the palette for (a, b), assigns every sorted point
// to its nearest entry (ties preferring the lower index), and returns the
// per-original-entry code assignment plus the total weighted SSE.
func assignNearest(sorted []sortedPoint, a, b uint16, fourColour bool, weights ColourWeights) ([]uint8, float64) {
	palette := buildPalette(a, b, fourColour)
	entryIndex := make([]uint8, len(sorted))
	var total float64
	for _, p := range sorted {
		best := 0
		bestDist := weightedSqDist(p.r, p.g, p.b, palette[0], weights)
		for s := 1; s < len(palette); s++ {
			d := weightedSqDist(p.r, p.g, p.b, palette[s], weights)
			if d < bestDist {
				bestDist = d
				best = s
			}
		}
		entryIndex[p.entry] = uint8(best)
		total += float64(p.weight) * bestDist
	}
	return entryIndex, total
}

// solveEndpoints solves the 2x2 weighted normal equations per channel for
// the given interpolation parameters sOf[i] and returns the quantised 565
// endpoints. ok is false if the system is singular (all effective weight on
// one side), per spec.md §7's "division by zero ... is detected and the
// partition is skipped" rule.
func solveEndpoints(points []sortedPoint, sOf []float64) (aCode, bCode uint16, ok bool) {
	var A, B, C float64
	var pxR, pxG, pxB, qxR, qxG, qxB float64
	for i, p := range points {
		w := float64(p.weight)
		s := sOf[i]
		u := 1 - s
		A += w * u * u
		B += w * u * s
		C += w * s * s
		pxR += w * u * float64(p.r)
		pxG += w * u * float64(p.g)
		pxB += w * u * float64(p.b)
		qxR += w * s * float64(p.r)
		qxG += w * s * float64(p.g)
		qxB += w * s * float64(p.b)
	}

	det := A*C - B*B
	if math.Abs(det) < 1e-12 {
		return 0, 0, false
	}

	solve := func(px, qx float64) (a, b float64) {
		a = (C*px - B*qx) / det
		b = (A*qx - B*px) / det
		return
	}

	ar, br := solve(pxR, qxR)
	ag, bg := solve(pxG, qxG)
	ab, bb := solve(pxB, qxB)

	aCode, _, _, _ = pack565(clampFloat01(float32(ar)), clampFloat01(float32(ag)), clampFloat01(float32(ab)))
	bCode, _, _, _ = pack565(clampFloat01(float32(br)), clampFloat01(float32(bg)), clampFloat01(float32(bb)))
	return aCode, bCode, true
}

// refineClusterFit implements the IterativeClusterFit refinement loop of
// spec.md §4.4 step 7: rebuild the palette from the current endpoints,
// reassign every point to its nearest palette entry, resolve, and repeat
// until the assignment is unchanged or 8 iterations have run.
func refineClusterFit(points []sortedPoint, current colourFitResult, fourColour bool, weights ColourWeights) colourFitResult {
	sValues := clusterFitS4[:]
	if !fourColour {
		sValues = clusterFitS3[:]
	}

	sOfFromCode := func(code uint8) float64 {
		switch {
		case code == 0:
			return 0
		case code == 1:
			return 1
		case fourColour && code == 2:
			return sValues[1]
		case fourColour && code == 3:
			return sValues[2]
		default: // three-colour midpoint
			return sValues[1]
		}
	}

	best := current
	prevAssign := append([]uint8(nil), current.entryIndex...)

	for iter := 0; iter < 8; iter++ {
		sOf := make([]float64, len(points))
		for i, p := range points {
			sOf[i] = sOfFromCode(best.entryIndex[p.entry])
		}

		newA, newB, ok := solveEndpoints(points, sOf)
		if !ok {
			break
		}
		newAssign, newErr := assignNearest(points, newA, newB, fourColour, weights)

		if newErr < best.err {
			best = colourFitResult{a: newA, b: newB, entryIndex: newAssign, err: newErr}
		}

		unchanged := true
		for _, p := range points {
			if newAssign[p.entry] != prevAssign[p.entry] {
				unchanged = false
				break
			}
		}
		if unchanged {
			break
		}
		prevAssign = newAssign
	}

	return best
}
