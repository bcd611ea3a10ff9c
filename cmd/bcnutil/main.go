// Command bcnutil encodes and decodes BC1-BC5 block-compressed images.
package main

import (
	"bytes"
	"encoding/hex"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/jansol/bcn/bcn"

	_ "image/jpeg"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

func main() {
	var (
		inPath    string
		outPath   string
		format    string
		algorithm string
		encode    bool
		decode    bool
		dumpInfo  bool
		dumpBlock bool
	)
	flag.StringVar(&inPath, "in", "", "input file")
	flag.StringVar(&outPath, "out", "", "output file")
	flag.StringVar(&format, "format", "bc1", "block format: bc1|bc2|bc3|bc4|bc5")
	flag.StringVar(&algorithm, "algorithm", "clusterfit", "fitting algorithm: rangefit|clusterfit|iterativeclusterfit")
	flag.BoolVar(&encode, "encode", false, "encode input image -> .bcn")
	flag.BoolVar(&decode, "decode", false, "decode input .bcn -> .png")
	flag.BoolVar(&dumpInfo, "info", false, "print .bcn header info and exit")
	flag.BoolVar(&dumpBlock, "dump-first-block", false, "dump the first block payload as hex and exit")
	flag.Parse()

	if inPath == "" {
		fmt.Fprintln(os.Stderr, "usage: bcnutil -in <input> [-out <output>] [-encode|-decode] [-format bc1]")
		os.Exit(2)
	}

	inData, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if dumpInfo || dumpBlock {
		h, blocks, err := bcn.ParseFile(inData)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(h.String())
		if dumpBlock {
			blockSize := h.Format.BlockSize()
			if len(blocks) < blockSize {
				fmt.Fprintln(os.Stderr, "bcn: missing first block")
				os.Exit(1)
			}
			fmt.Println(hex.EncodeToString(blocks[:blockSize]))
		}
		return
	}

	if encode == decode {
		fmt.Fprintln(os.Stderr, "specify exactly one of -encode or -decode")
		os.Exit(2)
	}
	if outPath == "" {
		fmt.Fprintln(os.Stderr, "missing -out")
		os.Exit(2)
	}

	formatVal, err := parseFormat(format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	params := bcn.DefaultParams()
	params.Algorithm, err = parseAlgorithm(algorithm)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if encode {
		img, _, err := image.Decode(bytes.NewReader(inData))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		rgba := image.NewRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)

		blocks, err := bcn.EncodeImage(formatVal, rgba.Pix, rgba.Rect.Dx(), rgba.Rect.Dy(), params)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		out, err := bcn.MarshalFile(bcn.Header{
			Format: formatVal,
			Width:  uint32(rgba.Rect.Dx()),
			Height: uint32(rgba.Rect.Dy()),
		}, blocks)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if err := os.WriteFile(outPath, out, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	// decode
	h, blocks, err := bcn.ParseFile(inData)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	pix, err := bcn.DecodeImage(h.Format, blocks, int(h.Width), int(h.Height))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	img := &image.RGBA{
		Pix:    pix,
		Stride: int(h.Width) * 4,
		Rect:   image.Rect(0, 0, int(h.Width), int(h.Height)),
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseFormat(s string) (bcn.Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bc1":
		return bcn.BC1, nil
	case "bc2":
		return bcn.BC2, nil
	case "bc3":
		return bcn.BC3, nil
	case "bc4":
		return bcn.BC4, nil
	case "bc5":
		return bcn.BC5, nil
	default:
		return 0, fmt.Errorf("invalid -format %q (want bc1|bc2|bc3|bc4|bc5)", s)
	}
}

func parseAlgorithm(s string) (bcn.Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rangefit":
		return bcn.RangeFit, nil
	case "clusterfit":
		return bcn.ClusterFit, nil
	case "iterativeclusterfit":
		return bcn.IterativeClusterFit, nil
	default:
		return 0, fmt.Errorf("invalid -algorithm %q (want rangefit|clusterfit|iterativeclusterfit)", s)
	}
}
