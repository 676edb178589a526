// Package input implements the standard controller behind $4016/$4017.
package input

import "github.com/golang/glog"

// Button is one bit of the controller state byte. Bits are ordered the way
// the shift register reports them, A first.
type Button uint8

const (
	ButtonRight Button = 1 << iota
	ButtonLeft
	ButtonDown
	ButtonUp
	ButtonStart
	ButtonSelect
	ButtonB
	ButtonA
)

var buttonNames = [8]string{"Right", "Left", "Down", "Up", "Start", "Select", "B", "A"}

func (b Button) String() string {
	for i := 0; i < 8; i++ {
		if b == 1<<i {
			return buttonNames[i]
		}
	}
	return "Button(?)"
}

// Controller represents a NES controller
type Controller struct {
	// Live button state, A in bit 7.
	buttons uint8

	// Shift register for serial reading
	shiftRegister uint8
	strobe        bool
	bitPosition   uint8
}

// New creates a new Controller instance
func New() *Controller {
	return &Controller{}
}

// SetButton sets the state of a button
func (c *Controller) SetButton(button Button, pressed bool) {
	if pressed {
		c.buttons |= uint8(button)
	} else {
		c.buttons &^= uint8(button)
	}
}

// SetButtons replaces the whole state byte.
func (c *Controller) SetButtons(buttons uint8) {
	if glog.V(3) && buttons != c.buttons {
		glog.Infof("input: buttons 0x%02X -> 0x%02X", c.buttons, buttons)
	}
	c.buttons = buttons
}

// Buttons returns the live state byte.
func (c *Controller) Buttons() uint8 { return c.buttons }

// IsPressed returns true if the button is currently pressed
func (c *Controller) IsPressed(button Button) bool {
	return c.buttons&uint8(button) != 0
}

// Write handles writes to the controller register ($4016).
// The shift register reloads while strobe is high and on its falling edge.
func (c *Controller) Write(value uint8) {
	wasStrobe := c.strobe
	c.strobe = value&1 != 0
	if c.strobe || wasStrobe {
		c.shiftRegister = c.buttons
		c.bitPosition = 0
	}
}

// Read returns the next button bit in bit 0. With strobe high it keeps
// reporting A; after eight reads it reports 1.
func (c *Controller) Read() uint8 {
	if c.strobe {
		c.bitPosition = 0
		return c.buttons >> 7
	}
	if c.bitPosition >= 8 {
		return 1
	}
	bit := c.shiftRegister >> 7
	c.shiftRegister <<= 1
	c.bitPosition++
	return bit
}

// Reset resets the controller state
func (c *Controller) Reset() {
	*c = Controller{}
}

// InputState represents the state of all input devices
type InputState struct {
	Controller1 *Controller
	Controller2 *Controller
}

// NewInputState creates a new input state with two controllers
func NewInputState() *InputState {
	return &InputState{
		Controller1: New(),
		Controller2: New(),
	}
}

// Reset resets all input devices
func (is *InputState) Reset() {
	is.Controller1.Reset()
	is.Controller2.Reset()
}

// Controller returns the controller for player 1 or 2, nil otherwise.
func (is *InputState) Controller(player int) *Controller {
	switch player {
	case 1:
		return is.Controller1
	case 2:
		return is.Controller2
	}
	return nil
}

// Read reads from controller ports
func (is *InputState) Read(address uint16) uint8 {
	switch address {
	case 0x4016:
		return is.Controller1.Read()
	case 0x4017:
		// Bit 6 is open bus on hardware and reads back set.
		return is.Controller2.Read() | 0x40
	}
	return 0
}

// Write writes to controller ports; both controllers share the strobe line.
func (is *InputState) Write(address uint16, value uint8) {
	if address == 0x4016 {
		is.Controller1.Write(value)
		is.Controller2.Write(value)
	}
}
