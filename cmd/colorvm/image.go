package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"

	"colorvm/decoder"
)

// imageSource adapts a decoded image.Image to decoder.PixelSource.
type imageSource struct {
	img image.Image
}

func (s imageSource) Width() int  { return s.img.Bounds().Dx() }
func (s imageSource) Height() int { return s.img.Bounds().Dy() }

func (s imageSource) At(x, y int) (r, g, b uint8) {
	b0 := s.img.Bounds().Min
	rr, gg, bb, _ := s.img.At(b0.X+x, b0.Y+y).RGBA()
	return uint8(rr >> 8), uint8(gg >> 8), uint8(bb >> 8)
}

func loadProgram(filename string) (*decoder.Program, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filename, err)
	}

	prog, err := decoder.Decode(imageSource{img: img})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return prog, nil
}
