// Package carousel implements the auto-advancing, pausable slide index.
package carousel

import (
	"errors"
	"time"
)

// DefaultInterval is the auto-advance period.
const DefaultInterval = 5 * time.Second

var ErrSlideOutOfRange = errors.New("slide index out of range")

// State is the carousel state. Index is always in [0, Count) for Count > 0.
type State struct {
	Count   int  `json:"count"`
	Index   int  `json:"index"`
	Running bool `json:"running"`
}

// Initial is the state for a freshly mounted slide list.
func Initial(count int) State {
	if count <= 0 {
		return State{}
	}
	return State{Count: count, Running: true}
}

// Paused reports whether auto-advance is suspended.
func (s State) Paused() bool {
	return s.Count > 0 && !s.Running
}

type EventType int

const (
	EventTick EventType = iota
	EventAdvance
	EventSelect
	EventPointerEnter
	EventPointerLeave
)

// Event is one input to Reduce. Delta is used by EventAdvance, Index by EventSelect.
type Event struct {
	Type  EventType
	Delta int
	Index int
}

func Tick() Event             { return Event{Type: EventTick} }
func Advance(delta int) Event { return Event{Type: EventAdvance, Delta: delta} }
func Select(index int) Event  { return Event{Type: EventSelect, Index: index} }
func PointerEnter() Event     { return Event{Type: EventPointerEnter} }
func PointerLeave() Event     { return Event{Type: EventPointerLeave} }

// Effect tells the owner what to do with its timer after a transition.
type Effect int

const (
	EffectNone Effect = iota
	// EffectRearm cancels any pending timer and arms a fresh full interval.
	EffectRearm
	// EffectCancel cancels any pending timer.
	EffectCancel
)

// Reduce applies e to s. It is pure; timer handling is left to the caller via Effect.
func Reduce(s State, e Event) (State, Effect, error) {
	if s.Count <= 0 {
		return s, EffectNone, nil
	}

	switch e.Type {
	case EventTick:
		if !s.Running {
			return s, EffectNone, nil
		}
		s.Index = wrap(s.Index+1, s.Count)
		return s, EffectRearm, nil

	case EventAdvance:
		s.Index = wrap(s.Index+e.Delta, s.Count)
		return s, rearmIfRunning(s), nil

	case EventSelect:
		if e.Index < 0 || e.Index >= s.Count {
			return s, EffectNone, ErrSlideOutOfRange
		}
		s.Index = e.Index
		return s, rearmIfRunning(s), nil

	case EventPointerEnter:
		if !s.Running {
			return s, EffectNone, nil
		}
		s.Running = false
		return s, EffectCancel, nil

	case EventPointerLeave:
		if s.Running {
			return s, EffectNone, nil
		}
		s.Running = true
		return s, EffectRearm, nil
	}

	return s, EffectNone, nil
}

// Resize keeps the index in range for a new slide count.
func Resize(s State, count int) State {
	if count <= 0 {
		return State{}
	}
	if s.Count <= 0 {
		return Initial(count)
	}
	s.Count = count
	if s.Index >= count {
		s.Index = wrap(s.Index, count)
	}
	return s
}

// A paused carousel keeps its timer slot empty; manual moves never start it.
func rearmIfRunning(s State) Effect {
	if s.Running {
		return EffectRearm
	}
	return EffectNone
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
