package ui

import "fmt"

// SizeKind selects how a box's extent along one axis is decided by its parent.
type SizeKind uint8

const (
	// SizePixels is a fixed number of pixels.
	SizePixels SizeKind = iota
	// SizeTextContent is the measured display text plus padding on both sides.
	SizeTextContent
	// SizePercentOfParent is a fraction of the parent's available space.
	SizePercentOfParent
	// SizeChildrenSum is the sum of the direct pixel-sized children plus padding.
	SizeChildrenSum
	// SizeFlex shares the space left after fixed siblings, weighted by 1-strictness.
	SizeFlex
)

func (k SizeKind) String() string {
	switch k {
	case SizePixels:
		return "px"
	case SizeTextContent:
		return "text"
	case SizePercentOfParent:
		return "pct"
	case SizeChildrenSum:
		return "children"
	case SizeFlex:
		return "flex"
	default:
		return fmt.Sprintf("SizeKind(%d)", uint8(k))
	}
}

// Size is a declared size along one axis.
type Size struct {
	Kind       SizeKind
	Value      float32
	Strictness float32
}

// Px is a fixed pixel size.
func Px(v float32) Size { return Size{Kind: SizePixels, Value: v, Strictness: 1} }

// TextContent sizes to the measured display text plus pad on each side.
func TextContent(pad float32) Size { return Size{Kind: SizeTextContent, Value: pad, Strictness: 1} }

// Pct takes fraction p (0..1) of the parent's available space.
func Pct(p float32) Size { return Size{Kind: SizePercentOfParent, Value: p, Strictness: 1} }

// ChildrenSum sums the direct pixel-sized children plus pad on each side.
func ChildrenSum(pad float32) Size { return Size{Kind: SizeChildrenSum, Value: pad, Strictness: 1} }

// Flex shares leftover space. Strictness is clamped to [0,1); lower values
// claim a larger share.
func Flex(strictness float32) Size {
	if strictness < 0 {
		strictness = 0
	}
	if strictness >= 1 {
		strictness = 0.999
	}
	return Size{Kind: SizeFlex, Strictness: strictness}
}

func (s Size) String() string {
	if s.Kind == SizeFlex {
		return fmt.Sprintf("flex(%g)", s.Strictness)
	}
	return fmt.Sprintf("%s(%g)", s.Kind, s.Value)
}
