//go:build !headless
// +build !headless

package graphics

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"nemo/internal/ppu"
)

// EbitengineBackend implements the Backend interface using Ebitengine
type EbitengineBackend struct {
	initialized bool
	config      Config
	game        *EbitengineGame
}

// EbitengineWindow implements the Window interface for Ebitengine
type EbitengineWindow struct {
	backend            *EbitengineBackend
	title              string
	width              int
	height             int
	game               *EbitengineGame
	running            bool
	events             []InputEvent
	emulatorUpdateFunc func() error
}

// EbitengineGame implements ebiten.Game for the emulator
type EbitengineGame struct {
	window       *EbitengineWindow
	frameImage   *ebiten.Image
	windowWidth  int
	windowHeight int

	bindings map[ebiten.Key]Binding

	// Reused for every frame upload.
	imageBuffer *image.RGBA
}

// NewEbitengineBackend creates a new Ebitengine graphics backend
func NewEbitengineBackend() Backend {
	return &EbitengineBackend{}
}

// Initialize initializes the Ebitengine backend
func (b *EbitengineBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("Ebitengine backend already initialized")
	}
	b.config = config
	b.initialized = true
	return nil
}

// CreateWindow creates an Ebitengine window
func (b *EbitengineBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}

	bindings, err := ebitenBindings(b.config.Bindings)
	if err != nil {
		return nil, err
	}

	game := &EbitengineGame{
		windowWidth:  width,
		windowHeight: height,
		frameImage:   ebiten.NewImage(ppu.ScreenWidth, ppu.ScreenHeight),
		bindings:     bindings,
		imageBuffer:  image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight)),
	}
	window := &EbitengineWindow{
		backend: b,
		title:   title,
		width:   width,
		height:  height,
		game:    game,
		running: true,
	}
	game.window = window
	b.game = game

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(b.config.VSync)
	ebiten.SetFullscreen(b.config.Fullscreen)
	ebiten.SetScreenFilterEnabled(b.config.Filter == "linear")

	return window, nil
}

// Cleanup releases all Ebitengine resources
func (b *EbitengineBackend) Cleanup() error {
	b.initialized = false
	return nil
}

// IsHeadless returns false; this backend always opens a window.
func (b *EbitengineBackend) IsHeadless() bool {
	return false
}

// GetName returns the backend name
func (b *EbitengineBackend) GetName() string {
	return "Ebitengine"
}

// SetTitle sets the window title
func (w *EbitengineWindow) SetTitle(title string) {
	w.title = title
	ebiten.SetWindowTitle(title)
}

// GetSize returns window dimensions
func (w *EbitengineWindow) GetSize() (width, height int) {
	return w.width, w.height
}

// ShouldClose returns true if window should close
func (w *EbitengineWindow) ShouldClose() bool {
	return !w.running
}

// PollEvents returns the events gathered during the last Update
func (w *EbitengineWindow) PollEvents() []InputEvent {
	events := w.events
	w.events = nil
	return events
}

// RenderFrame uploads a frame to the texture drawn by the game loop
func (w *EbitengineWindow) RenderFrame(frame *ppu.FrameBuffer) error {
	if w.game == nil {
		return fmt.Errorf("game not initialized")
	}
	fillImage(w.game.imageBuffer, frame.Pixels[:])
	w.game.frameImage.WritePixels(w.game.imageBuffer.Pix)
	return nil
}

// Cleanup releases window resources
func (w *EbitengineWindow) Cleanup() error {
	w.running = false
	return nil
}

// Run starts the Ebitengine game loop and blocks until the window closes
func (w *EbitengineWindow) Run() error {
	if w.game == nil {
		return fmt.Errorf("game not initialized")
	}
	if err := ebiten.RunGame(w.game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// SetEmulatorUpdateFunc sets the function run once per tick
func (w *EbitengineWindow) SetEmulatorUpdateFunc(updateFunc func() error) {
	w.emulatorUpdateFunc = updateFunc
}

// Update implements ebiten.Game.Update
func (g *EbitengineGame) Update() error {
	if g.window == nil {
		return nil
	}
	g.processInput()

	if g.window.emulatorUpdateFunc != nil {
		if err := g.window.emulatorUpdateFunc(); err != nil {
			glog.Errorf("ebitengine: emulator update: %v", err)
			return err
		}
	}
	if !g.window.running {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.Draw
func (g *EbitengineGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{A: 0xFF})

	scaleX := float64(g.windowWidth) / ppu.ScreenWidth
	scaleY := float64(g.windowHeight) / ppu.ScreenHeight
	scale := scaleX
	if scaleY < scaleX {
		scale = scaleY
	}
	offsetX := (float64(g.windowWidth) - ppu.ScreenWidth*scale) / 2
	offsetY := (float64(g.windowHeight) - ppu.ScreenHeight*scale) / 2

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)
	screen.DrawImage(g.frameImage, op)
}

// Layout implements ebiten.Game.Layout
func (g *EbitengineGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	g.windowWidth = outsideWidth
	g.windowHeight = outsideHeight
	return outsideWidth, outsideHeight
}

// processInput turns key transitions into controller events.
func (g *EbitengineGame) processInput() {
	var events []InputEvent

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		events = append(events, InputEvent{Type: InputEventTypeQuit, Pressed: true})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		events = append(events, InputEvent{Type: InputEventTypeReset, Pressed: true})
	}

	for key, binding := range g.bindings {
		var pressed bool
		switch {
		case inpututil.IsKeyJustPressed(key):
			pressed = true
		case inpututil.IsKeyJustReleased(key):
			pressed = false
		default:
			continue
		}
		events = append(events, InputEvent{
			Type:    InputEventTypeButton,
			Player:  binding.Player,
			Button:  binding.Button,
			Pressed: pressed,
		})
	}

	g.window.events = append(g.window.events, events...)
}

// ebitenBindings resolves configured key names.
func ebitenBindings(bindings map[string]Binding) (map[ebiten.Key]Binding, error) {
	out := make(map[ebiten.Key]Binding, len(bindings))
	for name, binding := range bindings {
		key, ok := ebitenKeys[name]
		if !ok {
			return nil, fmt.Errorf("unknown key %q", name)
		}
		out[key] = binding
	}
	return out, nil
}

var ebitenKeys = map[string]ebiten.Key{
	"A": ebiten.KeyA, "B": ebiten.KeyB, "C": ebiten.KeyC, "D": ebiten.KeyD,
	"E": ebiten.KeyE, "F": ebiten.KeyF, "G": ebiten.KeyG, "H": ebiten.KeyH,
	"I": ebiten.KeyI, "J": ebiten.KeyJ, "K": ebiten.KeyK, "L": ebiten.KeyL,
	"M": ebiten.KeyM, "N": ebiten.KeyN, "O": ebiten.KeyO, "P": ebiten.KeyP,
	"Q": ebiten.KeyQ, "R": ebiten.KeyR, "S": ebiten.KeyS, "T": ebiten.KeyT,
	"U": ebiten.KeyU, "V": ebiten.KeyV, "W": ebiten.KeyW, "X": ebiten.KeyX,
	"Y": ebiten.KeyY, "Z": ebiten.KeyZ,

	"1": ebiten.Key1, "2": ebiten.Key2, "3": ebiten.Key3, "4": ebiten.Key4,
	"5": ebiten.Key5, "6": ebiten.Key6, "7": ebiten.Key7, "8": ebiten.Key8,

	"Up":     ebiten.KeyArrowUp,
	"Down":   ebiten.KeyArrowDown,
	"Left":   ebiten.KeyArrowLeft,
	"Right":  ebiten.KeyArrowRight,
	"Return": ebiten.KeyEnter,
	"Space":  ebiten.KeySpace,
	"Tab":    ebiten.KeyTab,
	"LShift": ebiten.KeyShiftLeft,
	"RShift": ebiten.KeyShiftRight,
	"LCtrl":  ebiten.KeyControlLeft,
	"RCtrl":  ebiten.KeyControlRight,
}

// IsKnownKey reports whether name can be bound in this build.
func IsKnownKey(name string) bool {
	_, ok := ebitenKeys[name]
	return ok
}
