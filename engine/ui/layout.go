package ui

import "github.com/chewxy/math32"

// layout resolves declared sizes into rectangles, top down. Only rect fields
// are written; the tree shape is left untouched. b.rect must already be set.
func (s *State) layout(b *Box) {
	if b.first == nil {
		// Leaves are sized by their parent.
		return
	}
	axis := b.Axis()
	s.layoutMain(b, axis)
	layoutCross(b, axis.Other())
	for c := b.first; c != nil; c = c.next {
		s.layout(c)
	}
}

// layoutMain stacks the children of b along axis in two phases: measure the
// fixed contributions and flex weights, then place children contiguously.
func (s *State) layoutMain(b *Box, axis Axis) {
	pad := b.padding.On(axis)
	available := math32.Max(0, b.rect.Extent(axis)-2*pad)

	var fixed, weights float32
	for c := b.first; c != nil; c = c.next {
		size := c.pref[axis]
		var extent float32
		switch size.Kind {
		case SizePixels:
			extent = size.Value
		case SizePercentOfParent:
			extent = available * size.Value
		case SizeTextContent:
			extent = s.measure(c).On(axis) + 2*size.Value
		case SizeChildrenSum:
			extent = childrenPixelSum(c, axis) + 2*size.Value
		default:
			// Flex, and any kind this engine does not know about.
			weights += flexWeight(size)
			c.rect.span(axis, 0, 0)
			continue
		}
		extent = math32.Max(0, extent)
		fixed += extent
		c.rect.span(axis, 0, extent)
	}

	if weights > 0 {
		flexSpace := math32.Max(0, available-fixed)
		for c := b.first; c != nil; c = c.next {
			if !isFlex(c.pref[axis]) {
				continue
			}
			c.rect.span(axis, 0, flexSpace*flexWeight(c.pref[axis])/weights)
		}
	}

	cursor := b.rect.Min.On(axis) + pad
	for c := b.first; c != nil; c = c.next {
		extent := c.rect.Extent(axis)
		c.rect.span(axis, cursor, extent)
		cursor += extent
	}
}

// layoutCross stretches every child over the padded content of b on axis.
func layoutCross(b *Box, axis Axis) {
	pad := b.padding.On(axis)
	start := b.rect.Min.On(axis) + pad
	extent := math32.Max(0, b.rect.Extent(axis)-2*pad)
	for c := b.first; c != nil; c = c.next {
		c.rect.span(axis, start, extent)
	}
}

// childrenPixelSum sums the pixel sizes of c's direct children on axis. Other
// size kinds and deeper descendants are ignored.
func childrenPixelSum(c *Box, axis Axis) float32 {
	var sum float32
	for g := c.first; g != nil; g = g.next {
		if g.pref[axis].Kind == SizePixels {
			sum += g.pref[axis].Value
		}
	}
	return sum
}

func isFlex(sz Size) bool {
	switch sz.Kind {
	case SizePixels, SizePercentOfParent, SizeTextContent, SizeChildrenSum:
		return false
	}
	return true
}

func flexWeight(sz Size) float32 { return math32.Max(0, 1-sz.Strictness) }

// measure returns the display text size of b.
func (s *State) measure(b *Box) Vec2 {
	size := b.fontSize
	if size <= 0 {
		size = s.theme.FontSize
	}
	if s.metrics == nil {
		return estimateText(b.display, size)
	}
	font := b.font
	if font.IsZero() {
		font = s.opts.DefaultFont
	}
	return s.metrics.MeasureText(font, size, b.display)
}

// estimateText approximates a text extent when no font collaborator is set.
func estimateText(str string, size float32) Vec2 {
	n := 0
	for range str {
		n++
	}
	return Vec2{X: float32(n) * size * 0.5, Y: size * 1.2}
}
