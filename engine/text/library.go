package text

import "github.com/hubastard/boxui/engine/ui"

// Library owns the fonts available to the UI and measures text for layout.
// Handles are 1-based; the zero handle and unknown handles resolve to the
// first font added.
type Library struct {
	fonts []*Font
}

func NewLibrary() *Library { return &Library{} }

// Add registers f and returns its handle.
func (l *Library) Add(f *Font) ui.FontHandle {
	l.fonts = append(l.fonts, f)
	return ui.FontHandle(len(l.fonts))
}

// Get resolves h, falling back to the first font. It returns nil when the
// library is empty.
func (l *Library) Get(h ui.FontHandle) *Font {
	if l == nil || len(l.fonts) == 0 {
		return nil
	}
	if h == 0 || int(h) > len(l.fonts) {
		return l.fonts[0]
	}
	return l.fonts[h-1]
}

func (l *Library) Len() int { return len(l.fonts) }

// MeasureText implements ui.FontMetrics. Without any font it estimates half
// an em per rune.
func (l *Library) MeasureText(h ui.FontHandle, size float32, s string) ui.Vec2 {
	f := l.Get(h)
	if f == nil {
		return ui.Vec2{X: float32(len([]rune(s))) * size * 0.5, Y: size * 1.2}
	}
	w, ht := MeasureText(f, s, size)
	return ui.Vec2{X: w, Y: ht}
}

// Close releases every font's face.
func (l *Library) Close() {
	for _, f := range l.fonts {
		f.Close()
	}
	l.fonts = nil
}
