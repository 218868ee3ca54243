// Package frametime keeps a sliding window of frame durations and
// derives smoothed timing and FPS statistics from it.
package frametime

import "time"

// Manager accumulates per-frame delta times over a bounded window.
type Manager struct {
	maxLen int
	frames []time.Duration
	total  time.Duration
}

func NewManager(maxLen int) *Manager {
	if maxLen < 1 {
		maxLen = 1
	}
	return &Manager{maxLen: maxLen}
}

func (m *Manager) Push(dt time.Duration) {
	m.frames = append(m.frames, dt)
	m.total += dt
	if len(m.frames) > m.maxLen {
		m.total -= m.frames[0]
		m.frames = m.frames[1:]
	}
}

func (m *Manager) Len() int { return len(m.frames) }

// SmoothDt is the average frame duration over the window.
func (m *Manager) SmoothDt() time.Duration {
	if len(m.frames) == 0 {
		return 0
	}
	return m.total / time.Duration(len(m.frames))
}

// FpsStats summarizes one measurement interval.
type FpsStats struct {
	FrameCount int
	Interval   time.Duration
}

func (s FpsStats) Fps() float64 {
	if s.Interval <= 0 {
		return 0
	}
	return float64(s.FrameCount) / s.Interval.Seconds()
}

// FpsCounter produces FpsStats once per interval.
type FpsCounter struct {
	interval time.Duration
	frames   int
	elapsed  time.Duration
}

func NewFpsCounter(interval time.Duration) *FpsCounter {
	return &FpsCounter{interval: interval}
}

// Frame records one frame; it returns stats exactly when an interval
// completes, else ok=false.
func (c *FpsCounter) Frame(dt time.Duration) (stats FpsStats, ok bool) {
	c.frames++
	c.elapsed += dt
	if c.elapsed < c.interval {
		return FpsStats{}, false
	}
	stats = FpsStats{FrameCount: c.frames, Interval: c.elapsed}
	c.frames = 0
	c.elapsed = 0
	return stats, true
}
