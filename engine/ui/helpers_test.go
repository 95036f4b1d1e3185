package ui

import (
	"io"
	"log/slog"

	"github.com/hubastard/boxui/engine/colors"
)

const testDT = float32(1.0 / 60)

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newTestState(canvas Rect) *State {
	return New(Options{Canvas: canvas, Logger: discardLogger()})
}

// frame runs one full build/layout/animate cycle.
func frame(s *State, build func()) (*Box, error) {
	s.BeginFrame(testDT)
	if build != nil {
		build()
	}
	return s.EndFrame()
}

// fixedMetrics measures every rune as 10x20.
type fixedMetrics struct{}

func (fixedMetrics) MeasureText(_ FontHandle, _ float32, s string) Vec2 {
	n := 0
	for range s {
		n++
	}
	return Vec2{X: float32(n) * 10, Y: 20}
}

type paintOp struct {
	kind    string
	rect    Rect
	color   colors.Color
	radius  float32
	opacity float32
	text    string
	font    FontHandle
}

type recordingPainter struct {
	ops []paintOp
}

func (p *recordingPainter) DrawRect(r Rect, c colors.Color, radius, _ float32, opacity float32) {
	p.ops = append(p.ops, paintOp{kind: "rect", rect: r, color: c, radius: radius, opacity: opacity})
}

func (p *recordingPainter) DrawText(pos Vec2, s string, font FontHandle, _ float32, c colors.Color) {
	p.ops = append(p.ops, paintOp{kind: "text", rect: Rect{Min: pos, Max: pos}, text: s, font: font, color: c})
}

type clippingPainter struct {
	recordingPainter
}

func (p *clippingPainter) PushClip(r Rect) { p.ops = append(p.ops, paintOp{kind: "clip", rect: r}) }
func (p *clippingPainter) PopClip()        { p.ops = append(p.ops, paintOp{kind: "unclip"}) }

func (p *recordingPainter) kinds() []string {
	out := make([]string, len(p.ops))
	for i, op := range p.ops {
		out[i] = op.kind
	}
	return out
}
