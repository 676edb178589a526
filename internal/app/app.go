package app

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/glog"

	"nemo/internal/bus"
	"nemo/internal/cartridge"
	"nemo/internal/graphics"
	"nemo/internal/input"
	"nemo/internal/ppu"
	"nemo/internal/statsview"
)

// Application represents the main emulator application
type Application struct {
	config *Config

	// Nil until a ROM is loaded; the screen shows noise meanwhile.
	console *bus.Console
	cart    *cartridge.Cartridge
	romPath string

	graphicsBackend graphics.Backend
	window          graphics.Window
	screen          *ppu.FrameBuffer
	pacer           *Pacer
	noise           *rand.Rand

	buttons [2]uint8
	running bool
}

// ApplicationError represents application-specific errors
type ApplicationError struct {
	Component string
	Operation string
	Err       error
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("application %s error during %s: %v", e.Component, e.Operation, e.Err)
}

func (e *ApplicationError) Unwrap() error { return e.Err }

// NewApplication creates the application and opens its display backend.
func NewApplication(config *Config) (*Application, error) {
	if config == nil {
		config = NewConfig()
	}
	if err := config.validate(); err != nil {
		return nil, err
	}

	app := &Application{
		config: config,
		screen: &ppu.FrameBuffer{},
		pacer:  NewPacer(config.Emulation.FrameRate),
		noise:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if err := app.initializeGraphicsBackend(); err != nil {
		return nil, &ApplicationError{Component: "graphics", Operation: "initialize", Err: err}
	}

	if config.Debug.StatsView {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			glog.Warning("stats view requested but not built in (use -tags statsview)")
		}
	}
	return app, nil
}

// initializeGraphicsBackend creates the configured backend, falling back to
// headless when no window can be opened.
func (app *Application) initializeGraphicsBackend() error {
	bindings, err := app.config.Bindings()
	if err != nil {
		return err
	}

	width, height := app.config.GetWindowResolution()
	graphicsConfig := graphics.Config{
		WindowTitle:   app.config.Window.Title,
		WindowWidth:   width,
		WindowHeight:  height,
		Fullscreen:    app.config.Window.Fullscreen,
		VSync:         app.config.Video.VSync,
		Filter:        app.config.Video.Filter,
		Bindings:      bindings,
		OutputDir:     app.config.Headless.OutputDir,
		SnapshotEvery: app.config.Headless.SnapshotEvery,
		SnapshotScale: app.config.Headless.Scale,
		MaxFrames:     app.config.Headless.Frames,
	}

	backendType := graphics.BackendType(app.config.Video.Backend)
	backend, err := graphics.CreateBackend(backendType)
	if err != nil {
		return err
	}
	if err := backend.Initialize(graphicsConfig); err != nil {
		if backendType != graphics.BackendEbitengine {
			return err
		}
		glog.Warningf("ebitengine backend failed (%v), falling back to headless mode", err)
		if backend, err = graphics.CreateBackend(graphics.BackendHeadless); err != nil {
			return err
		}
		if err := backend.Initialize(graphicsConfig); err != nil {
			return err
		}
	}

	window, err := backend.CreateWindow(graphicsConfig.WindowTitle, width, height)
	if err != nil {
		backend.Cleanup()
		return fmt.Errorf("failed to create window: %w", err)
	}

	app.graphicsBackend = backend
	app.window = window
	glog.Infof("using %s backend", backend.GetName())
	return nil
}

// LoadROM loads a ROM file and powers on a console around it.
func (app *Application) LoadROM(romPath string) error {
	cart, err := cartridge.LoadFromFile(romPath)
	if err != nil {
		return &ApplicationError{Component: "cartridge", Operation: "load ROM", Err: err}
	}
	app.LoadCartridge(cart)
	app.romPath = romPath
	app.window.SetTitle(fmt.Sprintf("%s - %s", app.config.Window.Title, filepath.Base(romPath)))
	return nil
}

// LoadCartridge swaps in a new console built around cart.
func (app *Application) LoadCartridge(cart *cartridge.Cartridge) {
	app.cart = cart
	app.console = bus.NewConsole(cart, bus.WithDotsPerCycle(app.config.Emulation.DotsPerCycle))
	app.buttons = [2]uint8{}
	app.screen.Clear(0)
}

// Console returns the running console, or nil before a ROM is loaded.
func (app *Application) Console() *bus.Console { return app.console }

// Screen returns the frame buffer shown by the backend.
func (app *Application) Screen() *ppu.FrameBuffer { return app.screen }

// Frames returns the number of frames presented since Run started.
func (app *Application) Frames() uint64 { return app.pacer.Frames() }

// Run drives frames until the window closes, a quit is requested, or the
// console faults.
func (app *Application) Run() error {
	app.running = true
	app.pacer.Start()
	glog.Infof("starting emulation with %s backend", app.graphicsBackend.GetName())

	if ebitengineWindow, ok := graphics.AsEbitengineWindow(app.window); ok {
		// Ebitengine owns the loop and its own 60 Hz tick.
		ebitengineWindow.SetEmulatorUpdateFunc(func() error {
			if err := app.frame(); err != nil {
				return err
			}
			if !app.running {
				app.window.Cleanup()
			}
			return nil
		})
		return ebitengineWindow.Run()
	}

	for app.running {
		if err := app.frame(); err != nil {
			return err
		}
		app.pacer.Wait()
	}
	glog.V(1).Infof("main loop ended after %d frames", app.pacer.Frames())
	return nil
}

// frame handles input, emulates one frame and presents it.
func (app *Application) frame() error {
	for _, event := range app.window.PollEvents() {
		app.handleEvent(event)
	}

	if app.console != nil {
		if err := app.console.RunFrame(app.screen); err != nil {
			app.running = false
			return &ApplicationError{Component: "console", Operation: "run frame", Err: err}
		}
	} else {
		ppu.RenderNoise(app.screen, app.noise)
	}

	if err := app.window.RenderFrame(app.screen); err != nil {
		app.running = false
		return &ApplicationError{Component: "graphics", Operation: "render frame", Err: err}
	}
	app.pacer.FrameDone()

	if app.window.ShouldClose() {
		app.running = false
	}
	return nil
}

func (app *Application) handleEvent(event graphics.InputEvent) {
	switch event.Type {
	case graphics.InputEventTypeQuit:
		app.Stop()
	case graphics.InputEventTypeReset:
		if app.console != nil {
			glog.Info("reset")
			app.console.Reset()
		}
	case graphics.InputEventTypeButton:
		app.setButton(event.Player, event.Button, event.Pressed)
	}
}

func (app *Application) setButton(player int, button input.Button, pressed bool) {
	if player < 1 || player > len(app.buttons) {
		return
	}
	state := &app.buttons[player-1]
	if pressed {
		*state |= uint8(button)
	} else {
		*state &^= uint8(button)
	}
	if app.console != nil {
		app.console.SetButtons(player, *state)
	}
}

// Stop asks the main loop to finish after the current frame.
func (app *Application) Stop() {
	app.running = false
}

// DumpPatternTables writes both pattern tables, drawn with palette, as PNGs
// into dir.
func (app *Application) DumpPatternTables(dir string, palette uint8) ([]string, error) {
	if app.console == nil {
		return nil, errors.New("no cartridge loaded")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	var paths []string
	for bank := 0; bank < 2; bank++ {
		pixels := app.console.PPU().PatternTableImage(bank, palette)
		path := filepath.Join(dir, fmt.Sprintf("pattern_%d.png", bank))
		if err := graphics.WritePNG(path, graphics.Scale(graphics.ToImage(pixels[:], 128, 128), 2)); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Cleanup releases the window and backend.
func (app *Application) Cleanup() error {
	var errs []error
	if app.window != nil {
		errs = append(errs, app.window.Cleanup())
	}
	if app.graphicsBackend != nil {
		errs = append(errs, app.graphicsBackend.Cleanup())
	}
	return errors.Join(errs...)
}
