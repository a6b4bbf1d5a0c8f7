package typewriter

import "time"

// revealClock owns the periodic tick that advances a reveal count.
// Each start bumps the generation; ticks carrying an older generation are
// stale and must be ignored by the caller.
type revealClock struct {
	sched  Scheduler
	speed  time.Duration
	ticker Ticker
	gen    uint64
}

func (c *revealClock) start(tick func(gen uint64)) {
	c.stop()
	c.gen++
	gen := c.gen
	c.ticker = c.sched.Every(c.speed, func() { tick(gen) })
}

// stop cancels the current tick. It is safe on a stopped clock.
func (c *revealClock) stop() {
	if c.ticker == nil {
		return
	}
	c.ticker.Stop()
	c.ticker = nil
}

func (c *revealClock) armed() bool { return c.ticker != nil }

func (c *revealClock) current(gen uint64) bool {
	return c.ticker != nil && gen == c.gen
}
