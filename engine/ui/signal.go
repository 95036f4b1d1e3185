package ui

// Signal is the interaction result for one box in the current frame.
type Signal struct {
	Box       *Box
	Mouse     Vec2
	DragDelta Vec2

	MouseOver bool // mouse inside the box's last rect
	Hovering  bool // mouse over and the box claimed hot this frame
	Pressed   bool // became active this frame
	Released  bool // stopped being active this frame
	Clicked   bool // released while the mouse was still over the box
	Dragging  bool // active and not released
}

// Signal derives the interaction state of b. Call it right after building an
// interactive box. Hit testing uses the rect b had at the end of the previous
// frame, so the very first frame (and the frame after a resize) may miss.
//
// Only clickable, enabled boxes can become hot or active. The first such box
// queried under the mouse in a frame claims hot; querying it again in the same
// frame reports the same hover. A box stays active until a release arrives; no
// other box can take over in the meantime. A release followed by a press
// between two frames ends the old press and starts a new one.
func (s *State) Signal(b *Box) Signal {
	if s == nil || s.released || b == nil {
		return Signal{}
	}
	in := s.input
	sig := Signal{Box: b, Mouse: in.Mouse}
	sig.MouseOver = b.rect.Contains(in.Mouse)

	interactive := b.key != 0 && b.flags&FlagClickable != 0 && b.flags&FlagDisabled == 0
	if interactive && sig.MouseOver && (!s.hotClaimed || s.hotKey == b.key) &&
		(s.activeKey == 0 || s.activeKey == b.key) {
		s.hotKey = b.key
		s.hotClaimed = true
		sig.Hovering = true
	}

	if in.PressedAfterRelease {
		// The release ends a press from an earlier frame, then the new press
		// may start another one.
		if s.activeKey == b.key && s.activeFrame != s.frame {
			s.release(b, &sig)
		}
		s.press(b, &sig, in)
	} else {
		s.press(b, &sig, in)
		if in.Released && s.activeKey == b.key {
			s.release(b, &sig)
		}
	}

	if b.key != 0 && s.activeKey == b.key {
		sig.Dragging = true
		sig.DragDelta = in.Mouse.Sub(s.activeMouse)
	}
	return sig
}

func (s *State) press(b *Box, sig *Signal, in Input) {
	if sig.Hovering && in.Pressed && s.activeKey == 0 {
		s.activeKey = b.key
		s.activeMouse = in.Mouse
		s.activeFrame = s.frame
		sig.Pressed = true
	}
}

func (s *State) release(b *Box, sig *Signal) {
	if b.key == 0 {
		return
	}
	s.activeKey = 0
	sig.Released = true
	sig.Clicked = sig.MouseOver
}
