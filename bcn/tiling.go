package bcn

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// minParallelBlocks mirrors the teacher's codec2d.go threshold: below this
// many tiles, the per-goroutine dispatch overhead outweighs the benefit of
// running the fitters concurrently.
const minParallelBlocks = 32

// EncodeImage compresses a tightly packed RGBA8 image (len(pix) ==
// width*height*4) into format f, returning a buffer of f.CompressedSize(w,h)
// bytes. Rows/columns beyond width/height within the last tile of each axis
// are not read; the edge tiles' excluded pixels are masked out rather than
// clamp-extended, per spec.md §4.8.
func EncodeImage(f Format, pix []byte, width, height int, params Params) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, newError(ErrBadDimensions, "invalid image dimensions")
	}
	if len(pix) != width*height*4 {
		return nil, newError(ErrBadBufferSize, "RGBA8 buffer length does not match width*height*4")
	}

	blocksX := blocksAcross(width)
	blocksY := blocksAcross(height)
	blockSize := f.BlockSize()
	out := make([]byte, blocksX*blocksY*blockSize)

	totalBlocks := blocksX * blocksY
	procs := runtime.GOMAXPROCS(0)
	if procs < 1 {
		procs = 1
	}
	if procs > totalBlocks {
		procs = totalBlocks
	}

	encodeOne := func(bx, by int) {
		var tile Tile
		mask := extractTile(pix, width, height, bx*4, by*4, &tile)
		idx := by*blocksX + bx
		compressTile(f, &tile, mask, params, out[idx*blockSize:(idx+1)*blockSize])
	}

	if procs == 1 || totalBlocks < minParallelBlocks {
		for by := 0; by < blocksY; by++ {
			for bx := 0; bx < blocksX; bx++ {
				encodeOne(bx, by)
			}
		}
		return out, nil
	}

	var next uint32
	var wg sync.WaitGroup
	wg.Add(procs)
	for w := 0; w < procs; w++ {
		go func() {
			defer wg.Done()
			for {
				idx := int(atomic.AddUint32(&next, 1) - 1)
				if idx >= totalBlocks {
					return
				}
				bx := idx % blocksX
				by := idx / blocksX
				encodeOne(bx, by)
			}
		}()
	}
	wg.Wait()
	return out, nil
}

// DecodeImage decompresses a format-f buffer into a tightly packed RGBA8
// image of the given dimensions.
func DecodeImage(f Format, data []byte, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, newError(ErrBadDimensions, "invalid image dimensions")
	}
	blocksX := blocksAcross(width)
	blocksY := blocksAcross(height)
	blockSize := f.BlockSize()
	want := blocksX * blocksY * blockSize
	if len(data) != want {
		return nil, newError(ErrBadBufferSize, "compressed buffer length does not match compressed_size(width, height)")
	}

	pix := make([]byte, width*height*4)

	totalBlocks := blocksX * blocksY
	procs := runtime.GOMAXPROCS(0)
	if procs < 1 {
		procs = 1
	}
	if procs > totalBlocks {
		procs = totalBlocks
	}

	decodeOne := func(bx, by int) {
		idx := by*blocksX + bx
		var tile Tile
		decompressTile(f, data[idx*blockSize:(idx+1)*blockSize], &tile)
		insertTile(pix, width, height, bx*4, by*4, &tile)
	}

	if procs == 1 || totalBlocks < minParallelBlocks {
		for by := 0; by < blocksY; by++ {
			for bx := 0; bx < blocksX; bx++ {
				decodeOne(bx, by)
			}
		}
		return pix, nil
	}

	var next uint32
	var wg sync.WaitGroup
	wg.Add(procs)
	for w := 0; w < procs; w++ {
		go func() {
			defer wg.Done()
			for {
				idx := int(atomic.AddUint32(&next, 1) - 1)
				if idx >= totalBlocks {
					return
				}
				bx := idx % blocksX
				by := idx / blocksX
				decodeOne(bx, by)
			}
		}()
	}
	wg.Wait()
	return pix, nil
}

// extractTile copies the 4x4 tile at (x0, y0) out of a tightly packed RGBA8
// image into tile, zero-filling and masking out any position beyond
// width/height. Unlike the teacher's extractBlockRGBA8 (which clamp-extends
// the last row/column), partial edge tiles here are masked rather than
// repeated, so the fitters never see a duplicated pixel skewing the result.
func extractTile(pix []byte, width, height, x0, y0 int, tile *Tile) Mask {
	var mask Mask
	for ty := 0; ty < 4; ty++ {
		y := y0 + ty
		if y >= height {
			continue
		}
		row := y * width * 4
		for tx := 0; tx < 4; tx++ {
			x := x0 + tx
			if x >= width {
				continue
			}
			i := ty*4 + tx
			src := row + x*4
			tile[i] = [4]uint8{pix[src], pix[src+1], pix[src+2], pix[src+3]}
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// insertTile writes the in-bounds pixels of a decoded 4x4 tile back into a
// tightly packed RGBA8 image, discarding the padding pixels of edge tiles.
func insertTile(pix []byte, width, height, x0, y0 int, tile *Tile) {
	for ty := 0; ty < 4; ty++ {
		y := y0 + ty
		if y >= height {
			continue
		}
		row := y * width * 4
		for tx := 0; tx < 4; tx++ {
			x := x0 + tx
			if x >= width {
				continue
			}
			i := ty*4 + tx
			dst := row + x*4
			px := tile[i]
			pix[dst], pix[dst+1], pix[dst+2], pix[dst+3] = px[0], px[1], px[2], px[3]
		}
	}
}
