package orion

import (
	"time"
)

type FrameTimes struct {
	FrameCount      uint64
	AverageDuration time.Duration
	MaxDuration     time.Duration

	// Number of frames that were skipped because no
	// surface texture could be acquired
	SkippedCount uint64

	// Delta time to previous frame
	Delta time.Duration

	lastTime time.Time
	now      func() time.Time
}

func (t *FrameTimes) update(d time.Duration) {
	const window = 64

	t.Delta = d
	t.MaxDuration = max(t.MaxDuration, d)

	if t.FrameCount < window/2 {
		t.AverageDuration = d
	} else {
		t.AverageDuration = ((window-1)*t.AverageDuration + d) / window
	}
}

func (t *FrameTimes) FPS() float64 {
	if t.AverageDuration <= 0 {
		return 0
	}

	return 1.0 / t.AverageDuration.Seconds()
}

// Tick records a presented frame. Returns true every 60 frames.
func (t *FrameTimes) Tick() bool {
	now := time.Now()
	if t.now != nil {
		now = t.now()
	}

	if t.FrameCount > 0 {
		dt := now.Sub(t.lastTime)
		t.update(dt)
	}

	t.lastTime = now
	t.FrameCount += 1

	return t.FrameCount%60 == 0
}

// Skip records a frame that was not rendered.
func (t *FrameTimes) Skip() {
	t.SkippedCount += 1
}
