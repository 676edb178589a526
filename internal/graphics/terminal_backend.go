package graphics

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"nemo/internal/ppu"
)

const (
	defaultTerminalCols = 80
	defaultTerminalRows = 24
)

// TerminalBackend renders frames to an ANSI terminal with 24-bit colour,
// two pixel rows per character cell.
type TerminalBackend struct {
	initialized bool
	config      Config
}

// TerminalWindow implements the Window interface for terminal rendering
type TerminalWindow struct {
	title   string
	width   int
	height  int
	running bool

	out  io.Writer
	cols int
	rows int
}

// NewTerminalBackend creates a new terminal graphics backend
func NewTerminalBackend() Backend {
	return &TerminalBackend{}
}

// Initialize fails when stdout is not a terminal.
func (b *TerminalBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("terminal backend already initialized")
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("terminal backend needs stdout to be a terminal")
	}
	b.config = config
	b.initialized = true
	return nil
}

// CreateWindow sizes the output to the current terminal.
func (b *TerminalBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}

	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		cols, rows = defaultTerminalCols, defaultTerminalRows
	}
	w := NewTerminalWindow(os.Stdout, cols, rows)
	w.title = title
	w.width, w.height = width, height
	return w, nil
}

// Cleanup releases all terminal resources
func (b *TerminalBackend) Cleanup() error {
	b.initialized = false
	return nil
}

// IsHeadless returns false (terminal has basic output)
func (b *TerminalBackend) IsHeadless() bool {
	return false
}

// GetName returns the backend name
func (b *TerminalBackend) GetName() string {
	return "Terminal"
}

// NewTerminalWindow draws into out using a cols x rows character grid.
func NewTerminalWindow(out io.Writer, cols, rows int) *TerminalWindow {
	if cols <= 0 {
		cols = defaultTerminalCols
	}
	if rows <= 1 {
		rows = defaultTerminalRows
	}
	if cols > ppu.ScreenWidth {
		cols = ppu.ScreenWidth
	}
	// Last row is left for the cursor.
	if limit := ppu.ScreenHeight / 2; rows-1 > limit {
		rows = limit + 1
	}
	return &TerminalWindow{out: out, cols: cols, rows: rows, running: true}
}

// SetTitle sets the terminal title
func (w *TerminalWindow) SetTitle(title string) {
	w.title = title
	fmt.Fprintf(w.out, "\033]0;%s\007", title)
}

// GetSize returns window dimensions
func (w *TerminalWindow) GetSize() (width, height int) {
	return w.width, w.height
}

// ShouldClose returns true if window should close
func (w *TerminalWindow) ShouldClose() bool {
	return !w.running
}

// PollEvents returns no events; keyboard input is not read in this mode.
func (w *TerminalWindow) PollEvents() []InputEvent {
	return nil
}

// RenderFrame samples the frame down to the character grid. Each cell shows
// an upper pixel as foreground of '▀' and a lower pixel as background.
func (w *TerminalWindow) RenderFrame(frame *ppu.FrameBuffer) error {
	buf := bufio.NewWriter(w.out)
	buf.WriteString("\033[H")

	lines := w.rows - 1
	for row := 0; row < lines; row++ {
		top := (2 * row) * ppu.ScreenHeight / (2 * lines)
		bottom := (2*row + 1) * ppu.ScreenHeight / (2 * lines)
		for col := 0; col < w.cols; col++ {
			x := col * ppu.ScreenWidth / w.cols
			fg, bg := rgb(frame.At(x, top)), rgb(frame.At(x, bottom))
			fmt.Fprintf(buf, "\033[38;2;%d;%d;%dm\033[48;2;%d;%d;%dm▀",
				fg.R, fg.G, fg.B, bg.R, bg.G, bg.B)
		}
		buf.WriteString("\033[0m\n")
	}
	return buf.Flush()
}

// Cleanup resets terminal colours.
func (w *TerminalWindow) Cleanup() error {
	w.running = false
	_, err := io.WriteString(w.out, "\033[0m")
	return err
}
