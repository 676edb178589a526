package ppu

// Sprite is one 4-byte OAM entry.
type Sprite struct {
	Y    uint8
	Tile uint8
	Attr uint8
	X    uint8
}

// Sprite attribute bits
const (
	spriteFlipH = 0x40
	spriteFlipV = 0x80
)

// OAM is object attribute memory: 64 sprites and a byte cursor.
type OAM struct {
	data   [256]uint8
	cursor uint8
}

// SetCursor positions the cursor ($2003).
func (o *OAM) SetCursor(address uint8) { o.cursor = address }

// Write stores one byte and advances the cursor ($2004).
func (o *OAM) Write(value uint8) {
	o.data[o.cursor] = value
	o.cursor++
}

// Read returns the byte under the cursor.
func (o *OAM) Read() uint8 { return o.data[o.cursor] }

// DMAWrite replaces the whole table in one step.
func (o *OAM) DMAWrite(page [256]uint8) { o.data = page }

// Sprite returns entry i (0..63).
func (o *OAM) Sprite(i int) Sprite {
	b := o.data[(i&63)*4:]
	return Sprite{Y: b[0], Tile: b[1], Attr: b[2], X: b[3]}
}
