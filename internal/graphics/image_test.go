package graphics

import (
	"image/color"
	"testing"

	"nemo/internal/ppu"
)

func TestFrameImage(t *testing.T) {
	frame := &ppu.FrameBuffer{}
	frame.DrawPixel(10, 20, 0x123456)
	img := FrameImage(frame)

	if got := img.RGBAAt(10, 20); got != (color.RGBA{0x12, 0x34, 0x56, 0xFF}) {
		t.Errorf("Expected 0x123456 opaque, got %v", got)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 0, 0xFF}) {
		t.Errorf("Expected opaque black, got %v", got)
	}
}

func TestScale(t *testing.T) {
	img := ToImage([]uint32{0xFFFFFF, 0x000000, 0x000000, 0xFFFFFF}, 2, 2)
	scaled := Scale(img, 3)
	if b := scaled.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
		t.Fatalf("Expected 6x6, got %dx%d", b.Dx(), b.Dy())
	}
	for _, p := range [][2]int{{0, 0}, {2, 2}, {3, 3}, {5, 5}} {
		if r, _, _, _ := scaled.At(p[0], p[1]).RGBA(); r != 0xFFFF {
			t.Errorf("Expected white at %v", p)
		}
	}
	if r, _, _, _ := scaled.At(3, 0).RGBA(); r != 0 {
		t.Error("Expected black at (3,0)")
	}
	if Scale(img, 1) != img {
		t.Error("Expected factor 1 to return the image unchanged")
	}
}
