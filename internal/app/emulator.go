package app

import (
	"time"

	"github.com/golang/glog"
)

// maxLag is how many frames the pacer may fall behind before it gives up
// catching up and restarts its schedule.
const maxLag = 4

// Pacer keeps the host loop at a fixed frame rate and tracks the achieved FPS.
type Pacer struct {
	targetFrameTime time.Duration
	nextFrame       time.Time

	frames       uint64
	windowStart  time.Time
	windowFrames uint64
	fps          float64

	now   func() time.Time
	sleep func(time.Duration)
}

// NewPacer creates a pacer for frameRate frames per second. A rate of zero
// never sleeps.
func NewPacer(frameRate float64) *Pacer {
	p := &Pacer{
		now:   time.Now,
		sleep: time.Sleep,
	}
	if frameRate > 0 {
		p.targetFrameTime = time.Duration(float64(time.Second) / frameRate)
	}
	return p
}

// Start resets the schedule and statistics.
func (p *Pacer) Start() {
	now := p.now()
	p.nextFrame = now.Add(p.targetFrameTime)
	p.windowStart = now
	p.windowFrames = 0
	p.frames = 0
	p.fps = 0
}

// Wait blocks until the next frame is due.
func (p *Pacer) Wait() {
	if p.targetFrameTime == 0 {
		return
	}
	now := p.now()
	if behind := now.Sub(p.nextFrame); behind > maxLag*p.targetFrameTime {
		glog.V(2).Infof("pacer: %v behind, resetting schedule", behind)
		p.nextFrame = now
	} else if d := p.nextFrame.Sub(now); d > 0 {
		p.sleep(d)
	}
	p.nextFrame = p.nextFrame.Add(p.targetFrameTime)
}

// FrameDone records a completed frame and refreshes the FPS once a second.
func (p *Pacer) FrameDone() {
	p.frames++
	p.windowFrames++

	now := p.now()
	elapsed := now.Sub(p.windowStart)
	if elapsed < time.Second {
		return
	}
	p.fps = float64(p.windowFrames) / elapsed.Seconds()
	p.windowStart = now
	p.windowFrames = 0
	if glog.V(2) {
		glog.Infof("pacer: %.1f fps, %d frames", p.fps, p.frames)
	}
}

// FPS returns the frame rate measured over the last full second.
func (p *Pacer) FPS() float64 { return p.fps }

// Frames returns the number of frames since Start.
func (p *Pacer) Frames() uint64 { return p.frames }
