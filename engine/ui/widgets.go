package ui

import (
	"github.com/chewxy/math32"
	"github.com/hubastard/boxui/engine/colors"
)

// lineHeight is the default height of single-line widgets.
func (s *State) lineHeight() float32 {
	if !s.live() {
		return 0
	}
	return s.stk.fontSize.top()*1.2 + 2*s.stk.padding.top().Y + 8
}

// widget builds a box and applies w/h only on axes whose size stack is empty,
// so PushPrefWidth/PushPrefHeight still win.
func (s *State) widget(flags BoxFlags, label string, w, h Size) *Box {
	b := s.BuildBox(flags, label)
	if b == nil {
		return nil
	}
	if s.stk.prefWidth.empty() {
		b.pref[AxisX] = w
	}
	if s.stk.prefHeight.empty() {
		b.pref[AxisY] = h
	}
	return b
}

// Label builds a text-only box sized to its text.
func (s *State) Label(label string) *Box {
	return s.widget(FlagDrawText, label, TextContent(4), Px(s.lineHeight()))
}

// Labelf is Label with a formatted label.
func (s *State) Labelf(format string, args ...any) *Box {
	return s.Label(s.Sprintf(format, args...))
}

// Button builds a clickable box and returns its signal.
func (s *State) Button(label string) Signal {
	return s.Signal(s.widget(FlagsButton, label, TextContent(8), Px(s.lineHeight())))
}

// Buttonf is Button with a formatted label.
func (s *State) Buttonf(format string, args ...any) Signal {
	return s.Button(s.Sprintf(format, args...))
}

// Spacer inserts an anonymous gap of size along the parent's stacking axis.
func (s *State) Spacer(size Size) *Box {
	b := s.BuildBox(0, "")
	if b == nil {
		return nil
	}
	axis := AxisY
	if p := b.parent; p != nil {
		axis = p.Axis()
	}
	b.pref[axis] = size
	return b
}

// Row opens a box that stacks its children horizontally. Close it with the
// returned func:
//
//	defer s.Row("toolbar")()
func (s *State) Row(label string) func() {
	b := s.widget(FlagLayoutAxisX, label, Flex(0), Px(s.lineHeight()))
	if b == nil {
		return func() {}
	}
	return s.Parent(b)
}

// Column opens a box that stacks its children vertically.
func (s *State) Column(label string) func() {
	b := s.widget(0, label, Flex(0), Flex(0))
	if b == nil {
		return func() {}
	}
	return s.Parent(b)
}

// Panel opens a vertical container with background and border that clips
// its children.
func (s *State) Panel(label string) func() {
	b := s.widget(FlagDrawBackground|FlagDrawBorder|FlagClip, label, Flex(0), Flex(0))
	if b == nil {
		return func() {}
	}
	return s.Parent(b)
}

// Slider edits *value in [lo, hi] by dragging horizontally. The value moves
// with the drag delta relative to the value held when the drag started.
func (s *State) Slider(label string, value *float32, lo, hi float32) Signal {
	b := s.widget(FlagClickable|FlagDrawBackground|FlagDrawBorder|FlagDrawText|FlagsAnimate,
		label, Flex(0), Px(s.lineHeight()))
	sig := s.Signal(b)
	if b == nil || value == nil || hi <= lo {
		return sig
	}
	if sig.Pressed {
		s.dragValue = *value
	}
	if sig.Dragging && b.rect.W() > 0 {
		v := s.dragValue + sig.DragDelta.X/b.rect.W()*(hi-lo)
		*value = math32.Max(lo, math32.Min(hi, v))
	}
	b.SetCustomDraw(drawSliderFill, sliderFill{
		frac:  (*value - lo) / (hi - lo),
		color: s.theme.Accent,
	})
	return sig
}

type sliderFill struct {
	frac  float32
	color colors.Color
}

func drawSliderFill(b *Box, p Painter, data any) {
	f, ok := data.(sliderFill)
	if !ok || f.frac <= 0 {
		return
	}
	r := b.Rect()
	r.Max.X = r.Min.X + r.W()*math32.Min(1, f.frac)
	p.DrawRect(r, f.color, b.style.CornerRadius, 0, 1-b.DisabledT()/2)
}

// Checkbox toggles *checked when clicked. A checked box is drawn with the
// theme accent as background.
func (s *State) Checkbox(label string, checked *bool) Signal {
	restore := func() {}
	if checked != nil && *checked && s.live() {
		restore = s.WithBackground(s.theme.Accent)
	}
	b := s.widget(FlagsButton, label, TextContent(8), Px(s.lineHeight()))
	restore()
	sig := s.Signal(b)
	if sig.Clicked && checked != nil {
		*checked = !*checked
	}
	return sig
}
