// Package graphics provides the host display backends for the emulator.
package graphics

import (
	"fmt"

	"nemo/internal/input"
	"nemo/internal/ppu"
)

// Backend represents a display backend (window, headless, terminal)
type Backend interface {
	// Initialize initializes the graphics backend
	Initialize(config Config) error

	// CreateWindow creates a window for rendering
	CreateWindow(title string, width, height int) (Window, error)

	// Cleanup releases all resources
	Cleanup() error

	// IsHeadless returns true if nothing is shown to a user
	IsHeadless() bool

	// GetName returns the backend name for identification
	GetName() string
}

// Window represents a rendering target
type Window interface {
	SetTitle(title string)
	GetSize() (width, height int)

	// ShouldClose returns true if the window should close
	ShouldClose() bool

	// PollEvents returns input events gathered since the last call
	PollEvents() []InputEvent

	// RenderFrame presents a completed frame
	RenderFrame(frame *ppu.FrameBuffer) error

	Cleanup() error
}

// Binding ties a host key to a controller button.
type Binding struct {
	Player int
	Button input.Button
}

// Config contains configuration for graphics backends
type Config struct {
	WindowTitle  string
	WindowWidth  int
	WindowHeight int
	Fullscreen   bool
	VSync        bool
	Filter       string // "nearest", "linear"

	// Key name (see IsKnownKey) to controller button.
	Bindings map[string]Binding

	// Headless snapshots
	OutputDir     string
	SnapshotEvery int
	SnapshotScale int
	MaxFrames     int
}

// InputEvent represents an input event from the window
type InputEvent struct {
	Type    InputEventType
	Player  int
	Button  input.Button
	Pressed bool
}

// InputEventType represents the type of input event
type InputEventType int

const (
	InputEventTypeButton InputEventType = iota
	InputEventTypeReset
	InputEventTypeQuit
)

// BackendType represents different graphics backend types
type BackendType string

const (
	BackendEbitengine BackendType = "ebitengine"
	BackendHeadless   BackendType = "headless"
	BackendTerminal   BackendType = "terminal"
)

// CreateBackend creates a graphics backend of the specified type
func CreateBackend(backendType BackendType) (Backend, error) {
	switch backendType {
	case BackendEbitengine:
		return NewEbitengineBackend(), nil
	case BackendHeadless:
		return NewHeadlessBackend(), nil
	case BackendTerminal:
		return NewTerminalBackend(), nil
	}
	return nil, fmt.Errorf("unknown graphics backend %q", backendType)
}

// AsEbitengineWindow tries to cast a Window to EbitengineWindow
func AsEbitengineWindow(window Window) (*EbitengineWindow, bool) {
	w, ok := window.(*EbitengineWindow)
	return w, ok
}
