package ui

import (
	"github.com/hubastard/boxui/engine/arena"
	"github.com/hubastard/boxui/engine/colors"
)

type stackNode[T any] struct {
	v    T
	next *stackNode[T]
}

// stack is a singly linked stack whose nodes live in the frame's build
// buffer. Popping never frees; nodes are reclaimed with the buffer.
type stack[T any] struct {
	head  *stackNode[T]
	def   T
	pools [2]arena.Pool[stackNode[T]]
	buf   int
}

func (s *stack[T]) reset(buf int, def T) {
	s.buf = buf
	s.pools[buf].Clear()
	s.head = nil
	s.def = def
}

func (s *stack[T]) push(v T) {
	n := s.pools[s.buf].Alloc()
	n.v = v
	n.next = s.head
	s.head = n
}

func (s *stack[T]) pop() (T, bool) {
	if s.head == nil {
		return s.def, false
	}
	v := s.head.v
	s.head = s.head.next
	return v, true
}

func (s *stack[T]) top() T {
	if s.head == nil {
		return s.def
	}
	return s.head.v
}

func (s *stack[T]) empty() bool { return s.head == nil }

// scoped pushes v and returns a func restoring the head seen before the push.
func (s *stack[T]) scoped(v T) func() {
	saved := s.head
	s.push(v)
	return func() { s.head = saved }
}

type stacks struct {
	parent     stack[*Box]
	prefWidth  stack[Size]
	prefHeight stack[Size]
	background stack[colors.Color]
	border     stack[colors.Color]
	text       stack[colors.Color]
	radius     stack[float32]
	thickness  stack[float32]
	padding    stack[Vec2]
	font       stack[FontHandle]
	fontSize   stack[float32]
}

func (st *stacks) reset(buf int, t *Theme) {
	st.parent.reset(buf, nil)
	st.prefWidth.reset(buf, Px(0))
	st.prefHeight.reset(buf, Px(0))
	st.background.reset(buf, t.Background)
	st.border.reset(buf, t.Border)
	st.text.reset(buf, t.Text)
	st.radius.reset(buf, t.CornerRadius)
	st.thickness.reset(buf, t.BorderThickness)
	st.padding.reset(buf, Vec2{t.PaddingX, t.PaddingY})
	st.font.reset(buf, 0)
	st.fontSize.reset(buf, t.FontSize)
}

// live reports whether s can still build. Stack calls on a nil or released
// state are no-ops and pops return the zero value.
func (s *State) live() bool { return s != nil && !s.released }

func pushOn[T any](s *State, sel func(*stacks) *stack[T], v T) {
	if s.live() {
		sel(&s.stk).push(v)
	}
}

func popFrom[T any](s *State, sel func(*stacks) *stack[T]) T {
	if !s.live() {
		var zero T
		return zero
	}
	v, _ := sel(&s.stk).pop()
	return v
}

func scopedOn[T any](s *State, sel func(*stacks) *stack[T], v T) func() {
	if !s.live() {
		return func() {}
	}
	return sel(&s.stk).scoped(v)
}

func parentStack(st *stacks) *stack[*Box]             { return &st.parent }
func prefWidthStack(st *stacks) *stack[Size]          { return &st.prefWidth }
func prefHeightStack(st *stacks) *stack[Size]         { return &st.prefHeight }
func paddingStack(st *stacks) *stack[Vec2]            { return &st.padding }
func backgroundStack(st *stacks) *stack[colors.Color] { return &st.background }
func borderStack(st *stacks) *stack[colors.Color]     { return &st.border }
func textStack(st *stacks) *stack[colors.Color]       { return &st.text }
func radiusStack(st *stacks) *stack[float32]          { return &st.radius }
func thicknessStack(st *stacks) *stack[float32]       { return &st.thickness }
func fontStack(st *stacks) *stack[FontHandle]         { return &st.font }
func fontSizeStack(st *stacks) *stack[float32]        { return &st.fontSize }

// ----- Parent stack -----

// PushParent makes b the parent of every box built until the matching PopParent.
func (s *State) PushParent(b *Box) { pushOn(s, parentStack, b) }

// PopParent pops the current parent. It returns nil when the stack is empty.
func (s *State) PopParent() *Box { return popFrom(s, parentStack) }

// CurrentParent returns the box new boxes attach to.
func (s *State) CurrentParent() *Box {
	if !s.live() {
		return nil
	}
	return s.stk.parent.top()
}

// Parent pushes b and returns a func that restores the previous parent:
//
//	defer s.Parent(row)()
func (s *State) Parent(b *Box) func() { return scopedOn(s, parentStack, b) }

// ----- Size -----

func (s *State) PushPrefWidth(v Size)        { pushOn(s, prefWidthStack, v) }
func (s *State) PopPrefWidth() Size          { return popFrom(s, prefWidthStack) }
func (s *State) WithPrefWidth(v Size) func() { return scopedOn(s, prefWidthStack, v) }

func (s *State) PushPrefHeight(v Size)        { pushOn(s, prefHeightStack, v) }
func (s *State) PopPrefHeight() Size          { return popFrom(s, prefHeightStack) }
func (s *State) WithPrefHeight(v Size) func() { return scopedOn(s, prefHeightStack, v) }

// WithPrefSize scopes both axes at once.
func (s *State) WithPrefSize(w, h Size) func() {
	rw := s.WithPrefWidth(w)
	rh := s.WithPrefHeight(h)
	return func() { rh(); rw() }
}

func (s *State) PushPadding(v Vec2)        { pushOn(s, paddingStack, v) }
func (s *State) PopPadding() Vec2          { return popFrom(s, paddingStack) }
func (s *State) WithPadding(v Vec2) func() { return scopedOn(s, paddingStack, v) }

// ----- Style -----

func (s *State) PushBackground(c colors.Color)        { pushOn(s, backgroundStack, c) }
func (s *State) PopBackground() colors.Color          { return popFrom(s, backgroundStack) }
func (s *State) WithBackground(c colors.Color) func() { return scopedOn(s, backgroundStack, c) }

func (s *State) PushBorderColor(c colors.Color)        { pushOn(s, borderStack, c) }
func (s *State) PopBorderColor() colors.Color          { return popFrom(s, borderStack) }
func (s *State) WithBorderColor(c colors.Color) func() { return scopedOn(s, borderStack, c) }

func (s *State) PushTextColor(c colors.Color)        { pushOn(s, textStack, c) }
func (s *State) PopTextColor() colors.Color          { return popFrom(s, textStack) }
func (s *State) WithTextColor(c colors.Color) func() { return scopedOn(s, textStack, c) }

func (s *State) PushCornerRadius(r float32)        { pushOn(s, radiusStack, r) }
func (s *State) PopCornerRadius() float32          { return popFrom(s, radiusStack) }
func (s *State) WithCornerRadius(r float32) func() { return scopedOn(s, radiusStack, r) }

func (s *State) PushBorderThickness(t float32)        { pushOn(s, thicknessStack, t) }
func (s *State) PopBorderThickness() float32          { return popFrom(s, thicknessStack) }
func (s *State) WithBorderThickness(t float32) func() { return scopedOn(s, thicknessStack, t) }

// ----- Text -----

func (s *State) PushFont(f FontHandle)        { pushOn(s, fontStack, f) }
func (s *State) PopFont() FontHandle          { return popFrom(s, fontStack) }
func (s *State) WithFont(f FontHandle) func() { return scopedOn(s, fontStack, f) }

func (s *State) PushFontSize(v float32)        { pushOn(s, fontSizeStack, v) }
func (s *State) PopFontSize() float32          { return popFrom(s, fontSizeStack) }
func (s *State) WithFontSize(v float32) func() { return scopedOn(s, fontSizeStack, v) }
