// Package ui is an immediate-mode box UI core.
//
// Calling code rebuilds the whole box tree every frame:
//
//	s.FeedMouseMove(x, y)
//	s.BeginFrame(dt)
//	if s.Button("Save").Clicked { save() }
//	root, err := s.EndFrame()
//	s.Draw(painter, font)
//
// Boxes are ephemeral and owned by the frame that built them. Everything that
// must survive across frames (hot/active identity, animation values, last
// rectangles) is keyed by the hash of the box label.
//
// A State is not safe for concurrent use. Independent States may be driven
// from different goroutines.
package ui

import (
	"errors"
	"log/slog"

	"github.com/hubastard/boxui/engine/arena"
	"github.com/hubastard/boxui/engine/profiler"
)

var (
	// ErrUnbalancedParents is returned by EndFrame when the parent stack does
	// not unwind to the root.
	ErrUnbalancedParents = errors.New("ui: unbalanced parent stack")
	// ErrReleased is returned when a released State is used.
	ErrReleased = errors.New("ui: state released")
)

const rootLabel = "##root"

// Options configures a State. Zero fields take their documented default.
type Options struct {
	// Canvas is the root rectangle. Default 1280x720 at the origin.
	Canvas Rect
	// HashBuckets sizes the per-frame identity table. Default 4096.
	HashBuckets int
	// EvictAfter drops persistent box state untouched for this many frames.
	// Default 120.
	EvictAfter uint64
	// ArenaChunk is the build arena chunk size in bytes. Default 64 KiB.
	ArenaChunk int
	Theme      *Theme
	// Metrics measures TextContent sizes. Nil uses a fixed-width estimate.
	Metrics FontMetrics
	// DefaultFont is used for measuring boxes without a font override.
	DefaultFont FontHandle
	Logger      *slog.Logger
}

// Input is the latched input snapshot for one frame.
type Input struct {
	Mouse    Vec2
	Down     bool
	Pressed  bool // button went down since the previous frame
	Released bool // button went up since the previous frame
	// PressedAfterRelease is set when the last edge of the frame was a press
	// that followed a release, so the button was let go and grabbed again.
	PressedAfterRelease bool
}

type frameBuffer struct {
	arena *arena.Arena
	boxes arena.Pool[Box]
	anon  arena.Pool[boxState]
}

// State is one logical UI surface.
type State struct {
	opts    Options
	log     *slog.Logger
	theme   Theme
	metrics FontMetrics

	bufs   [2]frameBuffer
	bufIdx int
	frame  uint64
	dt     float32

	root    *Box
	canvas  Rect
	table   table
	stk     stacks
	persist map[Key]*boxState

	pending Input
	input   Input

	hotKey      Key
	activeKey   Key
	hotClaimed  bool
	activeMouse Vec2
	activeFrame uint64 // frame in which activeKey was last set
	dragValue   float32

	inFrame  bool
	released bool
}

// New allocates a State. Call Release when the surface is torn down.
func New(opts Options) *State {
	if opts.Canvas.Empty() {
		opts.Canvas = XYWH(0, 0, 1280, 720)
	}
	if opts.HashBuckets <= 0 {
		opts.HashBuckets = 4096
	}
	if opts.EvictAfter == 0 {
		opts.EvictAfter = 120
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	theme := DefaultTheme()
	if opts.Theme != nil {
		theme = *opts.Theme
	}
	s := &State{
		opts:    opts,
		log:     opts.Logger,
		theme:   theme,
		metrics: opts.Metrics,
		canvas:  opts.Canvas,
		table:   newTable(opts.HashBuckets),
		persist: make(map[Key]*boxState, 256),
	}
	for i := range s.bufs {
		s.bufs[i].arena = arena.New(opts.ArenaChunk)
	}
	return s
}

// Release drops every arena and table. The State must not be used afterwards;
// entry points on a released State return zero values.
func (s *State) Release() {
	if s == nil || s.released {
		return
	}
	s.released = true
	s.bufs = [2]frameBuffer{}
	s.persist = nil
	s.table = table{}
	s.root = nil
	s.stk = stacks{}
}

func (s *State) frameBuf() *frameBuffer { return &s.bufs[s.bufIdx] }

// ----- Input feed -----

// FeedMouseMove records the latest mouse position.
func (s *State) FeedMouseMove(x, y float32) {
	if s == nil {
		return
	}
	s.pending.Mouse = Vec2{x, y}
}

// FeedMouseButton records a primary button transition. Edges accumulate until
// the next BeginFrame, so a press and release inside one frame both register.
func (s *State) FeedMouseButton(down bool) {
	if s == nil {
		return
	}
	if down && !s.pending.Down {
		s.pending.Pressed = true
		s.pending.PressedAfterRelease = s.pending.Released
	}
	if !down && s.pending.Down {
		s.pending.Released = true
		s.pending.PressedAfterRelease = false
	}
	s.pending.Down = down
}

// SetCanvas sets the root rectangle used from the next BeginFrame on.
func (s *State) SetCanvas(r Rect) {
	if s == nil {
		return
	}
	s.canvas = r
}

// Input returns the snapshot latched by the current frame.
func (s *State) Input() Input { return s.input }

// Mouse returns the mouse position of the current frame.
func (s *State) Mouse() Vec2 { return s.input.Mouse }

// ----- Accessors -----

func (s *State) Root() *Box         { return s.root }
func (s *State) Frame() uint64      { return s.frame }
func (s *State) HotKey() Key        { return s.hotKey }
func (s *State) ActiveKey() Key     { return s.activeKey }
func (s *State) Theme() *Theme      { return &s.theme }
func (s *State) Canvas() Rect       { return s.canvas }
func (s *State) DeltaTime() float32 { return s.dt }

// BoxFromKey returns the box built this frame with key k, or nil.
func (s *State) BoxFromKey(k Key) *Box {
	if s == nil || s.released {
		return nil
	}
	return s.table.lookup(k)
}

// NumPersistent reports how many keys currently hold cross-frame state.
func (s *State) NumPersistent() int { return len(s.persist) }

// ----- Frame lifecycle -----

// BeginFrame starts a new frame. It clears the build buffer used two frames
// ago, so every box from that frame becomes invalid.
func (s *State) BeginFrame(dt float32) {
	if s == nil || s.released {
		return
	}
	if s.inFrame {
		s.log.Warn("ui: BeginFrame called twice without EndFrame", "frame", s.frame)
	}
	s.bufIdx ^= 1
	fb := s.frameBuf()
	fb.arena.Clear()
	fb.boxes.Clear()
	fb.anon.Clear()
	s.table.clear()
	s.stk.reset(s.bufIdx, &s.theme)

	s.input = s.pending
	s.pending.Pressed = false
	s.pending.Released = false
	s.pending.PressedAfterRelease = false

	s.frame++
	if dt < 0 {
		dt = 0
	}
	s.dt = dt
	s.hotClaimed = false

	s.root = s.buildBox(0, rootLabel)
	s.root.pref = [axisCount]Size{Px(s.canvas.W()), Px(s.canvas.H())}
	s.root.padding = Vec2{}
	s.root.rect = s.canvas
	s.stk.parent.push(s.root)
	s.inFrame = true
}

// EndFrame closes the tree, lays it out and advances animations. It returns
// the root, or ErrUnbalancedParents (and a nil root) when the parent stack did
// not unwind to the root. Layout and animation still run in that case.
func (s *State) EndFrame() (*Box, error) {
	if s == nil || s.released {
		return nil, ErrReleased
	}
	s.inFrame = false

	var err error
	if top := s.PopParent(); top != s.root || !s.stk.parent.empty() {
		err = ErrUnbalancedParents
		s.log.Warn("ui: parent stack not balanced at EndFrame", "frame", s.frame, "depth", s.parentDepth(top))
	}

	root := s.root
	root.rect = s.canvas

	end := profiler.Start("ui.layout")
	s.layout(root)
	recordRects(root)
	end()

	if !s.hotClaimed {
		s.hotKey = 0
	}
	// The release edge belongs to the active box even if it was not queried,
	// unless a press after the release re-activated it this frame.
	if s.input.Released && s.activeKey != 0 && s.activeFrame != s.frame {
		s.activeKey = 0
	}

	end = profiler.Start("ui.animate")
	s.animate(root, smoothRate(s.dt))
	end()

	s.evict()

	if err != nil {
		return nil, err
	}
	return root, nil
}

// parentDepth counts how many entries remained above the root.
func (s *State) parentDepth(top *Box) int {
	if top == nil {
		return -1
	}
	n := 1
	for p, ok := s.stk.parent.pop(); ok && p != s.root; p, ok = s.stk.parent.pop() {
		n++
	}
	return n
}

func recordRects(b *Box) {
	b.state.rect = b.rect
	for c := b.first; c != nil; c = c.next {
		recordRects(c)
	}
}
