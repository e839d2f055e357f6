package carousel

import (
	"sync"
	"time"
)

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// AfterFunc arms a one-shot timer. time.AfterFunc satisfies it.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type Option func(*Controller)

// WithInterval overrides DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithAfterFunc replaces the timer source, used by tests.
func WithAfterFunc(f AfterFunc) Option {
	return func(c *Controller) {
		c.afterFunc = f
	}
}

// WithOnChange registers an observer called after every state change.
func WithOnChange(f func(State)) Option {
	return func(c *Controller) {
		c.onChange = f
	}
}

// Controller drives a State with a single owned timer slot.
type Controller struct {
	mu        sync.Mutex
	state     State
	interval  time.Duration
	afterFunc AfterFunc
	onChange  func(State)

	timer  Timer
	seq    uint64
	closed bool
}

// New mounts a carousel over count slides and starts auto-advance.
// An empty slide list yields nil: nothing is rendered and no state is held.
func New(count int, opts ...Option) *Controller {
	if count <= 0 {
		return nil
	}

	c := &Controller{
		state:     Initial(count),
		interval:  DefaultInterval,
		afterFunc: realAfterFunc,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.mu.Lock()
	c.rearmLocked()
	c.mu.Unlock()

	return c
}

// State returns a snapshot. A nil controller has the zero state.
func (c *Controller) State() State {
	if c == nil {
		return State{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Next() State { return c.dispatch(Advance(1)) }
func (c *Controller) Prev() State { return c.dispatch(Advance(-1)) }

// Show jumps to index and restarts the interval.
func (c *Controller) Show(index int) (State, error) {
	if c == nil {
		return State{}, ErrSlideOutOfRange
	}
	return c.dispatchErr(Select(index))
}

// Pause suspends auto-advance (pointer entered the slide area).
func (c *Controller) Pause() State { return c.dispatch(PointerEnter()) }

// Resume restarts auto-advance from a full interval (pointer left).
func (c *Controller) Resume() State { return c.dispatch(PointerLeave()) }

// SetSlides handles a new slide list: the timer is torn down and a fresh one
// armed. The index is kept, clamped into the new range. Zero slides stops
// the controller.
func (c *Controller) SetSlides(count int) State {
	if c == nil {
		return State{}
	}
	c.mu.Lock()
	if c.closed {
		st := c.state
		c.mu.Unlock()
		return st
	}
	c.state = Resize(c.state, count)
	c.cancelLocked()
	if c.state.Running {
		c.rearmLocked()
	}
	st := c.state
	c.mu.Unlock()
	c.notify(st)
	return st
}

// Close cancels the pending timer. No tick fires afterwards.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.cancelLocked()
}

func (c *Controller) dispatch(e Event) State {
	if c == nil {
		return State{}
	}
	st, _ := c.dispatchErr(e)
	return st
}

func (c *Controller) dispatchErr(e Event) (State, error) {
	c.mu.Lock()
	if c.closed {
		st := c.state
		c.mu.Unlock()
		return st, nil
	}
	next, effect, err := Reduce(c.state, e)
	if err != nil {
		st := c.state
		c.mu.Unlock()
		return st, err
	}
	st := c.applyLocked(next, effect)
	c.mu.Unlock()
	c.notify(st)
	return st, nil
}

func (c *Controller) applyLocked(next State, effect Effect) State {
	c.state = next
	switch effect {
	case EffectRearm:
		c.rearmLocked()
	case EffectCancel:
		c.cancelLocked()
	}
	return c.state
}

// rearmLocked always clears the slot before arming so ticks never overlap.
func (c *Controller) rearmLocked() {
	c.cancelLocked()
	if c.closed || c.state.Count == 0 {
		return
	}
	seq := c.seq
	c.timer = c.afterFunc(c.interval, func() { c.tick(seq) })
}

func (c *Controller) cancelLocked() {
	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) tick(seq uint64) {
	c.mu.Lock()
	if c.closed || seq != c.seq {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	next, effect, _ := Reduce(c.state, Tick())
	st := c.applyLocked(next, effect)
	c.mu.Unlock()
	c.notify(st)
}

func (c *Controller) notify(st State) {
	if c.onChange != nil {
		c.onChange(st)
	}
}
