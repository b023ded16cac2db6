// Package decoder turns a raster image into the three parallel code
// arrays a Machine executes. It never touches the VM itself: it is the
// leaf component in the dependency order, consumed by cmd/colorvm via
// an x/image-backed PixelSource.
package decoder

import (
	"errors"
	"fmt"
)

// Supported container version. A decoder built against these constants
// accepts any image whose header version compares lexicographically
// less than or equal to this pair, and rejects anything newer.
const (
	VMajor = 1
	VMinor = 0
)

var (
	// ErrUnsupportedVersion is returned when the image header declares a
	// version newer than VMajor.VMinor.
	ErrUnsupportedVersion = errors.New("decoder: unsupported image version")
	// ErrEmptyProgram is returned when the header declares a zero-length
	// program.
	ErrEmptyProgram = errors.New("decoder: program size is zero")
	// ErrImageTooSmall is returned when the cell walk runs off the image
	// before size cells have been read.
	ErrImageTooSmall = errors.New("decoder: image is too small for the declared program size")
)

// PixelSource is the minimal surface a decoder needs from a decoded
// raster image: its dimensions and a point query returning an 8-bit RGB
// triple. cmd/colorvm implements this over the stdlib image package.
type PixelSource interface {
	Width() int
	Height() int
	At(x, y int) (r, g, b uint8)
}

// Program is the immutable result of decoding an image: three code
// arrays of identical length, plus the header metadata that produced
// them.
type Program struct {
	CodeR, CodeG, CodeB []byte
	Size                int
	CellSize            int
	Major, Minor        int
}

// Decode reads the program header and linearizes the program cells into
// three parallel code arrays, per the container format's cell layout.
func Decode(src PixelSource) (*Program, error) {
	w, h := src.Width(), src.Height()
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrImageTooSmall)
	}

	majorR, minorG, cellB := src.At(0, 0)
	major, minor, cellsize := int(majorR), int(minorG), int(cellB)
	if cellsize < 1 {
		return nil, fmt.Errorf("%w: cell size %d", ErrImageTooSmall, cellsize)
	}
	if (major > VMajor) || (major == VMajor && minor > VMinor) {
		return nil, fmt.Errorf("%w: image version %d.%d, supported up to %d.%d", ErrUnsupportedVersion, major, minor, VMajor, VMinor)
	}

	var sizeX, sizeY int
	if w == cellsize {
		if h <= cellsize {
			return nil, fmt.Errorf("%w: single-column image has no header row for cell 1", ErrImageTooSmall)
		}
		sizeX, sizeY = 0, cellsize
	} else {
		sizeX, sizeY = cellsize, 0
	}
	s2, s1, s0 := src.At(sizeX, sizeY)
	size := int(s2)*65536 + int(s1)*256 + int(s0)
	if size == 0 {
		return nil, ErrEmptyProgram
	}

	var x, y int
	switch {
	case size == 1:
		x, y = 0, 2*cellsize
	case size >= 2 && size <= 6:
		x, y = 0, cellsize
	default:
		x, y = 2*cellsize, 0
	}

	codeR := make([]byte, 0, size)
	codeG := make([]byte, 0, size)
	codeB := make([]byte, 0, size)
	for i := 0; i < size; i++ {
		if x < 0 || y < 0 || x >= w || y >= h {
			return nil, fmt.Errorf("%w: ran out of cells after %d/%d", ErrImageTooSmall, i, size)
		}
		r, g, b := src.At(x, y)
		codeR = append(codeR, r)
		codeG = append(codeG, g)
		codeB = append(codeB, b)
		x += cellsize
		if x > w-1 {
			x = 0
			y += cellsize
		}
	}

	return &Program{
		CodeR:    codeR,
		CodeG:    codeG,
		CodeB:    codeB,
		Size:     size,
		CellSize: cellsize,
		Major:    major,
		Minor:    minor,
	}, nil
}
