package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmoothRate(t *testing.T) {
	assert.InDelta(t, 0.5, smoothRate(0.1), 1e-6)
	assert.InDelta(t, 0.75, smoothRate(0.2), 1e-6)
	assert.Equal(t, float32(0), smoothRate(0))
	assert.Equal(t, float32(0), smoothRate(-1))
	assert.InDelta(t, 1, smoothRate(10), 1e-6)
}

func TestHotAnimationConverges(t *testing.T) {
	s := newTestState(XYWH(0, 0, 200, 200))
	s.FeedMouseMove(10, 10)

	var b *Box
	prev := float32(0)
	for i := range 120 {
		_, err := frame(s, func() { b = button(s, FlagsButton, "ok").Box })
		require.NoError(t, err)
		v := b.HotT()
		assert.GreaterOrEqual(t, v, prev, "frame %d", i)
		assert.LessOrEqual(t, v, float32(1))
		prev = v
	}
	assert.Greater(t, prev, float32(0.99))

	// Moving away decays it again.
	s.FeedMouseMove(10, 190)
	_, err := frame(s, func() { b = button(s, FlagsButton, "ok").Box })
	require.NoError(t, err)
	assert.Less(t, b.HotT(), prev)
	assert.Greater(t, b.HotT(), float32(0))
}

func TestAnimationSnapsWithoutFlag(t *testing.T) {
	s := newTestState(XYWH(0, 0, 200, 200))
	s.FeedMouseMove(10, 10)
	var b *Box
	for range 2 {
		_, err := frame(s, func() { b = button(s, FlagClickable, "plain").Box })
		require.NoError(t, err)
	}
	assert.Equal(t, float32(1), b.HotT(), "first hovered frame jumps to the target")

	s.FeedMouseButton(true)
	_, err := frame(s, func() { b = button(s, FlagClickable, "plain").Box })
	require.NoError(t, err)
	assert.Equal(t, float32(1), b.ActiveT())
}

func TestDisabledAlwaysSmooths(t *testing.T) {
	s := newTestState(XYWH(0, 0, 200, 200))
	var b *Box
	_, err := frame(s, func() { b = s.BuildBox(FlagDisabled, "d") })
	require.NoError(t, err)

	assert.InDelta(t, smoothRate(testDT), b.DisabledT(), 1e-6)
	assert.Less(t, b.DisabledT(), float32(1))
}

func TestAnimationStateFollowsKeyAcrossFrames(t *testing.T) {
	s := newTestState(XYWH(0, 0, 200, 200))
	var b *Box
	for range 3 {
		_, err := frame(s, func() { b = s.BuildBox(FlagDisabled, "d") })
		require.NoError(t, err)
	}
	r := smoothRate(testDT)
	want := 1 - (1-r)*(1-r)*(1-r)
	assert.InDelta(t, want, b.DisabledT(), 1e-5)
}

func TestAnonymousBoxesDoNotPersist(t *testing.T) {
	s := newTestState(XYWH(0, 0, 200, 200))
	var b *Box
	for range 3 {
		_, err := frame(s, func() { b = s.BuildBox(FlagDisabled, "") })
		require.NoError(t, err)
	}
	assert.InDelta(t, smoothRate(testDT), b.DisabledT(), 1e-6, "state restarts every frame")
	assert.Equal(t, 1, s.NumPersistent(), "only the root is keyed")
}

func TestEvictUntouchedState(t *testing.T) {
	s := New(Options{Canvas: XYWH(0, 0, 100, 100), EvictAfter: 3, Logger: discardLogger()})

	_, err := frame(s, func() {
		s.BuildBox(0, "a")
		s.BuildBox(0, "b")
	})
	require.NoError(t, err)
	assert.Equal(t, 3, s.NumPersistent(), "root, a and b")

	for f := 2; f <= 4; f++ {
		_, err = frame(s, func() { s.BuildBox(0, "a") })
		require.NoError(t, err)
		assert.Equal(t, 3, s.NumPersistent(), "frame %d keeps b", f)
	}

	_, err = frame(s, func() { s.BuildBox(0, "a") })
	require.NoError(t, err)
	assert.Equal(t, 2, s.NumPersistent(), "b is dropped once untouched for more than 3 frames")
}
