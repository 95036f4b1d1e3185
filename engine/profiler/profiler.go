//go:build profile

package profiler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

const Enabled = true

// frameScope wraps everything recorded between two FrameMark calls in the
// speedscope output.
const frameScope = "frame"

// Init allocates the trace ring. capacity is the number of scope events kept;
// older events are overwritten. Without Init only phase totals are recorded.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 20
	}
	trace.init(capacity)
}

// Start begins a scope and returns the func that ends it:
//
//	defer profiler.Start("ui.layout")()
func Start(name string) func() {
	begin := time.Now()
	if !trace.ready.Load() {
		return func() { phases.add(name, time.Since(begin)) }
	}
	id := scopes.id(name)
	at := begin.UnixNano()
	trace.push(event{at: at, scope: id, kind: kindOpen})
	return func() {
		d := time.Since(begin)
		phases.add(name, d)
		trace.push(event{at: at + int64(d), scope: id, kind: kindClose})
	}
}

func markFrame() {
	if trace.ready.Load() {
		trace.push(event{at: time.Now().UnixNano(), scope: scopes.id(frameScope), kind: kindFrame})
	}
}

// Dump writes the captured trace into dir as a speedscope evented profile and
// returns the file path. Each marked frame becomes one "frame" scope.
func Dump(dir string) (string, error) {
	evs := trace.events()
	if len(evs) == 0 {
		return "", fmt.Errorf("profiler: no events to dump")
	}
	doc, err := toSpeedscope(evs, scopes.names())
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp(dir, "boxui-*.speedscope.json.tmp")
	if err != nil {
		return "", err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("boxui-%d.speedscope.json", time.Now().Unix()))
	return path, os.Rename(f.Name(), path)
}

// ----- Trace ring -----

type eventKind uint8

const (
	kindOpen eventKind = iota
	kindClose
	kindFrame
)

type event struct {
	at    int64 // unix nanoseconds
	scope int32
	kind  eventKind
}

type ring struct {
	ready atomic.Bool
	size  uint64
	next  atomic.Uint64
	buf   []event
}

var trace ring

func (r *ring) init(capacity int) {
	r.size = uint64(capacity)
	r.buf = make([]event, r.size)
	r.next.Store(0)
	r.ready.Store(true)
}

func (r *ring) push(e event) {
	i := r.next.Add(1) - 1
	r.buf[i%r.size] = e
}

// events copies the retained events in write order.
func (r *ring) events() []event {
	n := r.next.Load()
	first := uint64(0)
	if n > r.size {
		first = n - r.size
	}
	out := make([]event, 0, n-first)
	for i := first; i < n; i++ {
		out = append(out, r.buf[i%r.size])
	}
	return out
}

// ----- Scope names -----

type scopeTable struct {
	mu   sync.Mutex
	list []string
	ids  map[string]int32
}

var scopes = scopeTable{ids: map[string]int32{}}

func (t *scopeTable) id(name string) int32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.ids[name]; ok {
		return id
	}
	id := int32(len(t.list))
	t.ids[name] = id
	t.list = append(t.list, name)
	return id
}

func (t *scopeTable) names() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.list...)
}

// ----- Speedscope -----

type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Exporter string      `json:"exporter,omitempty"`
	Name     string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // "O" or "C"
	At    int64  `json:"at"`   // microseconds since the first event
	Frame int32  `json:"frame"`
}

// toSpeedscope converts trace events into one evented profile. Closes that
// do not match the innermost open scope are dropped, and scopes still open
// at a frame mark or at the end are closed there.
func toSpeedscope(evs []event, names []string) (*ssFile, error) {
	if len(evs) == 0 {
		return nil, fmt.Errorf("profiler: no events")
	}
	base := evs[0].at
	var (
		out    = make([]ssEvent, 0, len(evs)+16)
		open   = make([]int32, 0, 32)
		last   int64
		frames int
	)
	closeAll := func(at int64, keep int) {
		for len(open) > keep {
			out = append(out, ssEvent{Type: "C", At: at, Frame: open[len(open)-1]})
			open = open[:len(open)-1]
		}
	}

	for _, e := range evs {
		at := max((e.at-base)/1000, last)
		last = at
		switch e.kind {
		case kindOpen:
			out = append(out, ssEvent{Type: "O", At: at, Frame: e.scope})
			open = append(open, e.scope)
		case kindClose:
			if len(open) == 0 || open[len(open)-1] != e.scope {
				continue
			}
			out = append(out, ssEvent{Type: "C", At: at, Frame: e.scope})
			open = open[:len(open)-1]
		case kindFrame:
			closeAll(at, 0)
			out = append(out, ssEvent{Type: "O", At: at, Frame: e.scope})
			open = append(open, e.scope)
			frames++
		}
	}
	closeAll(last, 0)

	fs := make([]ssFrame, len(names))
	for i, n := range names {
		fs[i] = ssFrame{Name: n}
	}
	return &ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: fs},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     fmt.Sprintf("boxui (%d frames)", frames),
			Unit:     "microseconds",
			EndValue: last,
			Events:   out,
		}},
		Exporter: "boxui-profiler",
		Name:     "boxui capture",
	}, nil
}
