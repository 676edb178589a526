package app

import (
	"testing"
	"time"
)

type fakeClock struct {
	now   time.Time
	slept []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
}

func newTestPacer(frameRate float64) (*Pacer, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	p := NewPacer(frameRate)
	p.now = clock.Now
	p.sleep = clock.Sleep
	p.Start()
	return p, clock
}

func TestPacerSleepsToSchedule(t *testing.T) {
	p, clock := newTestPacer(50)

	clock.now = clock.now.Add(5 * time.Millisecond)
	p.Wait()
	if len(clock.slept) != 1 || clock.slept[0] != 15*time.Millisecond {
		t.Fatalf("Expected one 15ms sleep, got %v", clock.slept)
	}
	p.Wait()
	if len(clock.slept) != 2 || clock.slept[1] != 20*time.Millisecond {
		t.Errorf("Expected a full 20ms sleep next, got %v", clock.slept)
	}
}

func TestPacerResetsWhenFarBehind(t *testing.T) {
	p, clock := newTestPacer(50)

	clock.now = clock.now.Add(time.Second)
	p.Wait()
	if len(clock.slept) != 0 {
		t.Fatalf("Expected no sleep when behind, got %v", clock.slept)
	}
	p.Wait()
	if len(clock.slept) != 1 || clock.slept[0] != 20*time.Millisecond {
		t.Errorf("Expected schedule restarted from now, got %v", clock.slept)
	}
}

func TestPacerUnthrottled(t *testing.T) {
	p, clock := newTestPacer(0)
	for i := 0; i < 10; i++ {
		p.Wait()
	}
	if len(clock.slept) != 0 {
		t.Errorf("Expected no sleeps, got %v", clock.slept)
	}
}

func TestPacerFPS(t *testing.T) {
	p, _ := newTestPacer(50)
	for i := 0; i < 49; i++ {
		p.Wait()
		p.FrameDone()
	}
	if p.FPS() != 0 {
		t.Fatalf("Expected no FPS before a full second, got %.2f", p.FPS())
	}
	p.Wait()
	p.FrameDone()
	if p.FPS() != 50 {
		t.Errorf("Expected 50 fps, got %.2f", p.FPS())
	}
	if p.Frames() != 50 {
		t.Errorf("Expected 50 frames, got %d", p.Frames())
	}
}
