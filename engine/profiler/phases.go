package profiler

import (
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrDisabled is returned by Dump when the binary was built without the
// profile tag.
var ErrDisabled = errors.New("profiler: built without the profile tag")

// PhaseStat is the time spent in one named scope, aggregated per frame.
type PhaseStat struct {
	Name  string
	Last  time.Duration // total over the last completed frame
	Avg   time.Duration // moving average of Last
	Max   time.Duration // largest Last seen since Reset
	Calls int           // scope entries during the last completed frame
}

// avgWeight is the share of the newest frame in PhaseStat.Avg.
const avgWeight = 0.1

type phaseAcc struct {
	PhaseStat
	cur   time.Duration
	calls int
	seen  bool
}

type phaseTable struct {
	mu     sync.Mutex
	byName map[string]*phaseAcc
	frames uint64
}

var phases = phaseTable{byName: map[string]*phaseAcc{}}

func (t *phaseTable) add(name string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.byName[name]
	if !ok {
		p = &phaseAcc{PhaseStat: PhaseStat{Name: name}}
		t.byName[name] = p
	}
	p.cur += d
	p.calls++
}

func (t *phaseTable) mark() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, p := range t.byName {
		p.Last, p.Calls = p.cur, p.calls
		if p.seen {
			p.Avg += time.Duration(float64(p.Last-p.Avg) * avgWeight)
		} else {
			p.Avg, p.seen = p.Last, true
		}
		p.Max = max(p.Max, p.Last)
		p.cur, p.calls = 0, 0
	}
	t.frames++
}

func (t *phaseTable) appendTo(dst []PhaseStat) []PhaseStat {
	t.mu.Lock()
	start := len(dst)
	for _, p := range t.byName {
		if p.seen {
			dst = append(dst, p.PhaseStat)
		}
	}
	t.mu.Unlock()
	out := dst[start:]
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return dst
}

// FrameMark closes the current frame: scope time recorded since the previous
// mark becomes each phase's Last. Call it once per rendered frame.
func FrameMark() {
	phases.mark()
	markFrame()
}

// AppendPhases appends the stats of every phase seen in a completed frame,
// sorted by name, and returns the extended slice.
func AppendPhases(dst []PhaseStat) []PhaseStat { return phases.appendTo(dst) }

// Frames reports how many frames were marked since Reset.
func Frames() uint64 {
	phases.mu.Lock()
	defer phases.mu.Unlock()
	return phases.frames
}

// Reset drops all aggregated phase timings.
func Reset() {
	phases.mu.Lock()
	defer phases.mu.Unlock()
	clear(phases.byName)
	phases.frames = 0
}
