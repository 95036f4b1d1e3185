package ui

import (
	"iter"

	"github.com/hubastard/boxui/engine/colors"
	"github.com/hubastard/boxui/engine/scratch"
)

// BoxFlags is the capability bitmask of a box.
type BoxFlags uint32

const (
	FlagClickable BoxFlags = 1 << iota
	FlagDrawBackground
	FlagDrawBorder
	FlagDrawText
	FlagClip
	FlagHotAnimation
	FlagActiveAnimation
	// FlagLayoutAxisX stacks children horizontally. Boxes stack vertically by default.
	FlagLayoutAxisX
	FlagDisabled
)

// Common flag sets.
const (
	FlagsAnimate = FlagHotAnimation | FlagActiveAnimation
	FlagsButton  = FlagClickable | FlagDrawBackground | FlagDrawBorder | FlagDrawText | FlagsAnimate
)

// Style is the visual style captured from the property stacks at build time.
type Style struct {
	Background      colors.Color
	Border          colors.Color
	Text            colors.Color
	CornerRadius    float32
	BorderThickness float32
}

// CustomDrawFunc paints extra primitives for a box after its built-in layers.
type CustomDrawFunc func(b *Box, p Painter, data any)

// Box is one rectangular UI node. Boxes live in the build arena of the frame
// that created them: a *Box must not be used after the second BeginFrame
// following its creation, when that arena is cleared and its slot reused.
type Box struct {
	parent, first, last, next, prev *Box
	hashNext, hashPrev              *Box

	key   Key
	flags BoxFlags
	pref  [axisCount]Size
	// padding is applied on both sides of each axis.
	padding Vec2
	rect    Rect

	style      Style
	font       FontHandle
	fontSize   float32
	customDraw CustomDrawFunc
	customData any

	label   string
	display string

	state *boxState
	frame uint64
}

func (b *Box) Key() Key                   { return b.key }
func (b *Box) Flags() BoxFlags            { return b.flags }
func (b *Box) Has(f BoxFlags) bool        { return b.flags&f == f }
func (b *Box) Rect() Rect                 { return b.rect }
func (b *Box) Parent() *Box               { return b.parent }
func (b *Box) FirstChild() *Box           { return b.first }
func (b *Box) LastChild() *Box            { return b.last }
func (b *Box) Next() *Box                 { return b.next }
func (b *Box) Prev() *Box                 { return b.prev }
func (b *Box) Label() string              { return b.label }
func (b *Box) Display() string            { return b.display }
func (b *Box) Style() Style               { return b.style }
func (b *Box) Font() FontHandle           { return b.font }
func (b *Box) FontSize() float32          { return b.fontSize }
func (b *Box) PrefSize(a Axis) Size       { return b.pref[a] }
func (b *Box) Padding() Vec2              { return b.padding }
func (b *Box) Frame() uint64              { return b.frame }
func (b *Box) SetPrefSize(a Axis, s Size) { b.pref[a] = s }
func (b *Box) SetPadding(p Vec2)          { b.padding = p }
func (b *Box) SetStyle(st Style)          { b.style = st }
func (b *Box) SetFont(f FontHandle)       { b.font = f }
func (b *Box) SetFlags(f BoxFlags)        { b.flags = f }

// SetDisplay replaces the drawn text without changing the box's key, for
// labels whose text changes every frame.
func (b *Box) SetDisplay(s string) { b.display = s }

// SetCustomDraw registers fn to be called with data when the box is painted.
func (b *Box) SetCustomDraw(fn CustomDrawFunc, data any) {
	b.customDraw = fn
	b.customData = data
}

// Axis returns the axis the box stacks its children on.
func (b *Box) Axis() Axis {
	if b.flags&FlagLayoutAxisX != 0 {
		return AxisX
	}
	return AxisY
}

// Children iterates the direct children in sibling order.
func (b *Box) Children() iter.Seq[*Box] {
	return func(yield func(*Box) bool) {
		for c := b.first; c != nil; c = c.next {
			if !yield(c) {
				return
			}
		}
	}
}

// NumChildren counts the direct children.
func (b *Box) NumChildren() int {
	n := 0
	for c := b.first; c != nil; c = c.next {
		n++
	}
	return n
}

// HotT is the smoothed hover intensity in [0,1].
func (b *Box) HotT() float32 { return b.state.hotT }

// ActiveT is the smoothed press intensity in [0,1].
func (b *Box) ActiveT() float32 { return b.state.activeT }

// DisabledT is the smoothed disabled intensity in [0,1].
func (b *Box) DisabledT() float32 { return b.state.disabledT }

func (b *Box) appendChild(c *Box) {
	c.parent = b
	c.prev = b.last
	c.next = nil
	if b.last != nil {
		b.last.next = c
	} else {
		b.first = c
	}
	b.last = c
}

// BuildBox creates a box for this frame, keyed by the bytes of label, styled
// from the property stacks and appended to the current parent. The displayed
// text is label up to the first "##". An empty label builds an anonymous box
// that has no identity and keeps no state across frames.
//
// BuildBox must be called between BeginFrame and EndFrame.
func (s *State) BuildBox(flags BoxFlags, label string) *Box {
	if s == nil || s.released {
		return nil
	}
	return s.buildBox(flags, label)
}

// BuildBoxf is BuildBox with a formatted label. The label is stored in the
// frame arena and shares the lifetime of the box.
func (s *State) BuildBoxf(flags BoxFlags, format string, args ...any) *Box {
	if s == nil || s.released {
		return nil
	}
	return s.buildBox(flags, s.Sprintf(format, args...))
}

// Sprintf formats into the current frame arena. The result is valid until the
// arena is cleared, two frames later.
func (s *State) Sprintf(format string, args ...any) string {
	if s == nil || s.released {
		return ""
	}
	sb := scratch.Begin()
	defer sb.End()
	return s.frameBuf().arena.PushString(sb.Sprintf(format, args...))
}

func (s *State) buildBox(flags BoxFlags, label string) *Box {
	fb := s.frameBuf()
	var key Key
	var st *boxState
	if label != "" {
		key = KeyFromString(label)
		st = s.touch(key)
	} else {
		st = fb.anon.Alloc()
		*st = boxState{lastFrame: s.frame}
	}

	b := fb.boxes.Alloc()
	*b = Box{
		key:   key,
		flags: flags,
		pref:  [axisCount]Size{s.stk.prefWidth.top(), s.stk.prefHeight.top()},
		// Interaction reads the rect before layout has run for this frame.
		rect:    st.rect,
		padding: s.stk.padding.top(),
		style: Style{
			Background:      s.stk.background.top(),
			Border:          s.stk.border.top(),
			Text:            s.stk.text.top(),
			CornerRadius:    s.stk.radius.top(),
			BorderThickness: s.stk.thickness.top(),
		},
		font:     s.stk.font.top(),
		fontSize: s.stk.fontSize.top(),
		label:    label,
		display:  displayText(label),
		state:    st,
		frame:    s.frame,
	}

	if key != 0 {
		s.table.insert(b)
	}
	if p := s.stk.parent.top(); p != nil {
		p.appendChild(b)
	}
	return b
}
