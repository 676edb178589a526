package ppu

import "math/rand"

// Screen dimensions
const (
	ScreenWidth  = 256
	ScreenHeight = 240
)

// Screen receives pixels as 0x00RRGGBB.
type Screen interface {
	DrawPixel(x, y int, rgb uint32)
}

// FrameBuffer is a Screen backed by memory. Off-screen pixels are dropped.
type FrameBuffer struct {
	Pixels [ScreenWidth * ScreenHeight]uint32
}

// DrawPixel implements Screen.
func (f *FrameBuffer) DrawPixel(x, y int, rgb uint32) {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return
	}
	f.Pixels[y*ScreenWidth+x] = rgb
}

// At returns the pixel at (x, y).
func (f *FrameBuffer) At(x, y int) uint32 {
	return f.Pixels[y*ScreenWidth+x]
}

// Clear fills the buffer with rgb.
func (f *FrameBuffer) Clear(rgb uint32) {
	for i := range f.Pixels {
		f.Pixels[i] = rgb
	}
}

// RenderNoise fills screen with grey static, shown when no game is loaded.
func RenderNoise(screen Screen, rng *rand.Rand) {
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			v := uint32(rng.Intn(256))
			screen.DrawPixel(x, y, v<<16|v<<8|v)
		}
	}
}
