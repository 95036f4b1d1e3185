//go:build profile

package profiler

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingKeepsNewestInWriteOrder(t *testing.T) {
	var r ring
	r.init(3)
	for i := range 5 {
		r.push(event{at: int64(i)})
	}
	evs := r.events()
	require.Len(t, evs, 3)
	assert.Equal(t, []int64{2, 3, 4}, []int64{evs[0].at, evs[1].at, evs[2].at})
}

func TestScopeIDsAreStable(t *testing.T) {
	a := scopes.id("ui.layout")
	b := scopes.id("ui.draw")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, scopes.id("ui.layout"))
	assert.Equal(t, "ui.draw", scopes.names()[b])
}

func eventTypes(doc *ssFile) []string {
	var kinds []string
	for _, e := range doc.Profiles[0].Events {
		kinds = append(kinds, e.Type)
	}
	return kinds
}

func TestSpeedscopeBalancesScopes(t *testing.T) {
	evs := []event{
		{at: 0, scope: 0, kind: kindOpen},
		{at: 1000, scope: 1, kind: kindOpen},
		{at: 3000, scope: 1, kind: kindClose},
		{at: 4000, scope: 1, kind: kindClose}, // unmatched, dropped
	}
	doc, err := toSpeedscope(evs, []string{"outer", "inner"})
	require.NoError(t, err)
	assert.Equal(t, []string{"O", "O", "C", "C"}, eventTypes(doc), "the open outer scope is closed at the end")
	assert.Equal(t, int64(4), doc.Profiles[0].EndValue)
	assert.Len(t, doc.Shared.Frames, 2)
}

func TestSpeedscopeWrapsMarkedFrames(t *testing.T) {
	const layout, frame = 0, 1
	evs := []event{
		{at: 0, scope: frame, kind: kindFrame},
		{at: 1000, scope: layout, kind: kindOpen},
		{at: 2000, scope: layout, kind: kindClose},
		{at: 5000, scope: frame, kind: kindFrame},
		{at: 6000, scope: layout, kind: kindOpen},
	}
	doc, err := toSpeedscope(evs, []string{"ui.layout", frameScope})
	require.NoError(t, err)

	p := doc.Profiles[0]
	assert.Equal(t, "boxui (2 frames)", p.Name)
	assert.Equal(t, []string{"O", "O", "C", "C", "O", "O", "C", "C"}, eventTypes(doc))
	assert.Equal(t, ssEvent{Type: "C", At: 5, Frame: frame}, p.Events[3], "the first frame ends at the second mark")
	assert.Equal(t, int32(frame), p.Events[4].Frame)
}

func TestStartRecordsTraceAndPhase(t *testing.T) {
	Init(16)
	Reset()
	Start("scope")()
	FrameMark()

	evs := trace.events()
	require.GreaterOrEqual(t, len(evs), 3)
	tail := evs[len(evs)-3:]
	assert.Equal(t, kindOpen, tail[0].kind)
	assert.Equal(t, kindClose, tail[1].kind)
	assert.Equal(t, tail[0].scope, tail[1].scope)
	assert.Equal(t, kindFrame, tail[2].kind)

	stats := AppendPhases(nil)
	require.Len(t, stats, 1)
	assert.Equal(t, "scope", stats[0].Name)
	assert.Equal(t, 1, stats[0].Calls)
}

func TestDumpWritesSpeedscopeFile(t *testing.T) {
	Init(16)
	Start("dump")()
	FrameMark()

	path, err := Dump(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, ".json", filepath.Ext(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc ssFile
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Len(t, doc.Profiles, 1)
	assert.Equal(t, "evented", doc.Profiles[0].Type)
}
