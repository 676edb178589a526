package graphics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/glog"

	"nemo/internal/ppu"
)

// HeadlessBackend runs without a display and writes periodic PNG snapshots.
type HeadlessBackend struct {
	initialized bool
	config      Config
}

// HeadlessWindow implements the Window interface for headless operation
type HeadlessWindow struct {
	title      string
	width      int
	height     int
	running    bool
	frameCount int

	outputDir     string
	snapshotEvery int
	scale         int
	maxFrames     int
	snapshots     []string
}

// NewHeadlessBackend creates a new headless graphics backend
func NewHeadlessBackend() Backend {
	return &HeadlessBackend{}
}

// Initialize initializes the headless backend
func (b *HeadlessBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("headless backend already initialized")
	}
	b.config = config
	b.initialized = true
	return nil
}

// CreateWindow creates a headless "window" and its output directory.
func (b *HeadlessBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}

	w := &HeadlessWindow{
		title:         title,
		width:         width,
		height:        height,
		running:       true,
		outputDir:     b.config.OutputDir,
		snapshotEvery: b.config.SnapshotEvery,
		scale:         b.config.SnapshotScale,
		maxFrames:     b.config.MaxFrames,
	}
	if w.snapshotEvery > 0 {
		if w.outputDir == "" {
			w.outputDir = "."
		}
		if err := os.MkdirAll(w.outputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	return w, nil
}

// Cleanup releases all headless resources
func (b *HeadlessBackend) Cleanup() error {
	b.initialized = false
	return nil
}

// IsHeadless returns true (this is a headless backend)
func (b *HeadlessBackend) IsHeadless() bool {
	return true
}

// GetName returns the backend name
func (b *HeadlessBackend) GetName() string {
	return "Headless"
}

// SetTitle sets the window title (for logging purposes)
func (w *HeadlessWindow) SetTitle(title string) {
	w.title = title
}

// GetSize returns window dimensions
func (w *HeadlessWindow) GetSize() (width, height int) {
	return w.width, w.height
}

// ShouldClose returns true once the frame limit is reached.
func (w *HeadlessWindow) ShouldClose() bool {
	return !w.running || (w.maxFrames > 0 && w.frameCount >= w.maxFrames)
}

// PollEvents returns no events; headless runs have no input.
func (w *HeadlessWindow) PollEvents() []InputEvent {
	return nil
}

// RenderFrame counts the frame and saves every Nth one as a PNG.
func (w *HeadlessWindow) RenderFrame(frame *ppu.FrameBuffer) error {
	w.frameCount++
	if w.snapshotEvery <= 0 || w.frameCount%w.snapshotEvery != 0 {
		return nil
	}

	path := filepath.Join(w.outputDir, fmt.Sprintf("frame_%05d.png", w.frameCount))
	if err := WritePNG(path, Scale(FrameImage(frame), w.scale)); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	w.snapshots = append(w.snapshots, path)
	glog.V(1).Infof("headless: wrote %s", path)
	return nil
}

// Cleanup releases window resources
func (w *HeadlessWindow) Cleanup() error {
	w.running = false
	return nil
}

// GetFrameCount returns the number of frames rendered
func (w *HeadlessWindow) GetFrameCount() int {
	return w.frameCount
}

// Snapshots returns the paths written so far.
func (w *HeadlessWindow) Snapshots() []string {
	return w.snapshots
}
