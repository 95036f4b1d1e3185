package ui

import "github.com/chewxy/math32"

// boxState is the part of a box that survives across frames, keyed by the
// box's identity. Boxes read it; EndFrame writes it.
type boxState struct {
	hotT, activeT, disabledT float32
	// rect is the last resolved rectangle, used for hit testing while the
	// next frame is being built.
	rect      Rect
	lastFrame uint64
}

// touch returns the persistent state for k, creating it on first use.
func (s *State) touch(k Key) *boxState {
	st, ok := s.persist[k]
	if !ok {
		st = &boxState{}
		s.persist[k] = st
	}
	st.lastFrame = s.frame
	return st
}

// smoothRate converts a frame delta into the exponential smoothing factor
// 1 - 2^(-10*dt).
func smoothRate(dt float32) float32 {
	if dt <= 0 {
		return 0
	}
	r := 1 - math32.Exp2(-10*dt)
	return math32.Max(0, math32.Min(1, r))
}

func approach(v, target, rate float32, smooth bool) float32 {
	if !smooth {
		return target
	}
	return v + (target-v)*rate
}

func boolTarget(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

func (s *State) animate(b *Box, rate float32) {
	st := b.state
	hot := b.key != 0 && b.key == s.hotKey
	active := b.key != 0 && b.key == s.activeKey
	st.hotT = approach(st.hotT, boolTarget(hot), rate, b.flags&FlagHotAnimation != 0)
	st.activeT = approach(st.activeT, boolTarget(active), rate, b.flags&FlagActiveAnimation != 0)
	st.disabledT = approach(st.disabledT, boolTarget(b.flags&FlagDisabled != 0), rate, true)
	for c := b.first; c != nil; c = c.next {
		s.animate(c, rate)
	}
}

// evict drops persistent state that no box has touched for EvictAfter frames.
func (s *State) evict() {
	n := 0
	for k, st := range s.persist {
		if s.frame-st.lastFrame > s.opts.EvictAfter {
			delete(s.persist, k)
			n++
		}
	}
	if n > 0 {
		s.log.Debug("ui: evicted box state", "count", n, "frame", s.frame, "live", len(s.persist))
	}
}
