package scratch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderChain(t *testing.T) {
	s := Begin()
	defer s.End()

	s.S("hp ").I(-3).C('/').U(10).S(" ").F64(3.14159, 2).S(" ").Bool(true).S(" ").Hex(255).Pad(2, '.').R('é')
	assert.Equal(t, "hp -3/10 3.14 true ff..é", s.String())
}

func TestMarkAndViews(t *testing.T) {
	s := Begin()
	defer s.End()

	s.S("prefix:")
	m := s.Mark()
	s.S("tail")
	assert.Equal(t, "tail", s.StringFrom(m))
	assert.Equal(t, "tail", s.StringViewFrom(m))
	assert.Equal(t, []byte("tail"), s.BytesFrom(m))
	assert.Equal(t, "", s.StringViewFrom(s.Mark()))
}

func TestSprintf(t *testing.T) {
	s := Begin()
	defer s.End()

	got := s.Sprintf("%s=%d (%.1f%%)", "fps", 60, 99.5)
	assert.Equal(t, "fps=60 (99.5%)", got)
	assert.Equal(t, len(got), s.Len())
}

func TestBeginReturnsEmptyBuffer(t *testing.T) {
	s := Begin()
	s.S("dirty")
	s.End()

	again := Begin()
	defer again.End()
	assert.Equal(t, 0, again.Len())
}

func TestEndNilIsSafe(t *testing.T) {
	var s *Buffer
	assert.NotPanics(t, func() { s.End() })
}
