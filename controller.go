package typewriter

import (
	"sort"
	"sync"
)

// Signal is a playback command broadcast by a Controller.
type Signal uint8

const (
	// SignalStart restarts the animation from the first character.
	SignalStart Signal = iota + 1
	// SignalFreeze pauses the animation, keeping what is revealed.
	SignalFreeze
	// SignalResume continues a frozen animation.
	SignalResume
)

func (s Signal) String() string {
	switch s {
	case SignalStart:
		return "start"
	case SignalFreeze:
		return "freeze"
	case SignalResume:
		return "resume"
	}
	return "unknown"
}

// Controller drives any number of typewriters. Commands are delivered
// synchronously, in subscription order, before the command returns. A
// controller without subscribers ignores commands, so it can be created
// before the typewriters it drives.
type Controller struct {
	mu        sync.Mutex
	listeners map[uint64]func(Signal)
	next      uint64
	closed    bool
}

// NewController returns a controller with no subscribers.
func NewController() *Controller {
	return &Controller{listeners: make(map[uint64]func(Signal))}
}

// Start restarts every subscribed animation.
func (c *Controller) Start() { c.broadcast(SignalStart) }

// Freeze pauses every subscribed animation.
func (c *Controller) Freeze() { c.broadcast(SignalFreeze) }

// Resume continues every subscribed animation.
func (c *Controller) Resume() { c.broadcast(SignalResume) }

// Subscribe registers fn and returns a function removing it again. The
// returned function is idempotent and safe after Close.
func (c *Controller) Subscribe(fn func(Signal)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || fn == nil {
		return func() {}
	}
	if c.listeners == nil {
		c.listeners = make(map[uint64]func(Signal))
	}
	c.next++
	id := c.next
	c.listeners[id] = fn
	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (c *Controller) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.listeners)
}

// Close drops all subscribers without notifying them. Later commands and
// subscriptions are no-ops.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.listeners = nil
}

func (c *Controller) broadcast(sig Signal) {
	c.mu.Lock()
	if c.closed || len(c.listeners) == 0 {
		c.mu.Unlock()
		return
	}
	ids := make([]uint64, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]func(Signal), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, c.listeners[id])
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(sig)
	}
}
