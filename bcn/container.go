package bcn

import (
	"encoding/binary"
	"fmt"
)

// bcnMagic identifies a raw bcn block stream. Deliberately distinct from any
// KTX/DDS magic: this is a thin ambient container, not a replacement for
// either (spec.md §1 Non-goals).
var bcnMagic = [4]byte{0x42, 0x43, 0x4E, 0x31} // "BCN1"

// HeaderSize is the size in bytes of a bcn raw-stream header.
const HeaderSize = 16

// Header is the 16-byte header prefixing a raw bcn block stream: magic,
// format tag, and image dimensions. Block size is implied by Format.
type Header struct {
	Format Format
	Width  uint32
	Height uint32
}

func (h Header) String() string {
	return fmt.Sprintf("bcn %s, %dx%d texels", h.Format, h.Width, h.Height)
}

func (h Header) validate() error {
	if h.Format < BC1 || h.Format > BC5 {
		return newError(ErrBadParam, "invalid header: unknown format tag")
	}
	if h.Width == 0 || h.Height == 0 {
		return newError(ErrBadDimensions, "invalid header: zero image dimension")
	}
	return nil
}

// ParseHeader parses the 16-byte bcn header.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, newError(ErrBadBufferSize, "bcn header: unexpected EOF")
	}
	if data[0] != bcnMagic[0] || data[1] != bcnMagic[1] || data[2] != bcnMagic[2] || data[3] != bcnMagic[3] {
		return Header{}, newError(ErrBadParam, "invalid magic")
	}

	h := Header{
		Format: Format(data[4]),
		Width:  binary.LittleEndian.Uint32(data[8:12]),
		Height: binary.LittleEndian.Uint32(data[12:16]),
	}
	if err := h.validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// MarshalHeader returns the 16-byte bcn header encoding for h.
func MarshalHeader(h Header) ([HeaderSize]byte, error) {
	if err := h.validate(); err != nil {
		return [HeaderSize]byte{}, err
	}

	var out [HeaderSize]byte
	copy(out[0:4], bcnMagic[:])
	out[4] = byte(h.Format)
	binary.LittleEndian.PutUint32(out[8:12], h.Width)
	binary.LittleEndian.PutUint32(out[12:16], h.Height)
	return out, nil
}

// ParseFile parses a full bcn file: header plus its compressed block stream.
// The returned block slice aliases data.
func ParseFile(data []byte) (Header, []byte, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return Header{}, nil, err
	}

	need := HeaderSize + h.Format.CompressedSize(int(h.Width), int(h.Height))
	if len(data) < need {
		return Header{}, nil, newError(ErrBadBufferSize, "bcn file: unexpected EOF")
	}
	return h, data[HeaderSize:need], nil
}

// MarshalFile builds a full bcn file from a header and its matching block
// stream. len(blocks) must equal header.Format.CompressedSize(w, h); this is
// a programmer contract (§7), so a mismatch panics rather than erroring.
func MarshalFile(h Header, blocks []byte) ([]byte, error) {
	want := h.Format.CompressedSize(int(h.Width), int(h.Height))
	requireLen("bcn block stream", len(blocks), want)

	headerBytes, err := MarshalHeader(h)
	if err != nil {
		return nil, err
	}
	out := make([]byte, HeaderSize+want)
	copy(out[:HeaderSize], headerBytes[:])
	copy(out[HeaderSize:], blocks)
	return out, nil
}
