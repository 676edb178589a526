package graphics

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"

	"nemo/internal/ppu"
)

// ToImage converts 0x00RRGGBB pixels in row-major order to an opaque image.
func ToImage(pixels []uint32, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fillImage(img, pixels)
	return img
}

// fillImage writes pixels into img, which must be large enough.
func fillImage(img *image.RGBA, pixels []uint32) {
	for i, px := range pixels {
		o := i * 4
		img.Pix[o] = uint8(px >> 16)
		img.Pix[o+1] = uint8(px >> 8)
		img.Pix[o+2] = uint8(px)
		img.Pix[o+3] = 0xFF
	}
}

// FrameImage converts a frame buffer to an image.
func FrameImage(frame *ppu.FrameBuffer) *image.RGBA {
	return ToImage(frame.Pixels[:], ppu.ScreenWidth, ppu.ScreenHeight)
}

// Scale enlarges img by an integer factor without smoothing.
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func rgb(px uint32) color.RGBA {
	return color.RGBA{R: uint8(px >> 16), G: uint8(px >> 8), B: uint8(px), A: 0xFF}
}
