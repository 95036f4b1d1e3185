package ui

import "fmt"

// Axis selects one of the two layout axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	axisCount
)

// Other returns the cross axis.
func (a Axis) Other() Axis { return 1 - a }

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

type Vec2 struct{ X, Y float32 }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// On returns the component along axis a.
func (v Vec2) On(a Axis) float32 {
	if a == AxisX {
		return v.X
	}
	return v.Y
}

func (v *Vec2) set(a Axis, f float32) {
	if a == AxisX {
		v.X = f
	} else {
		v.Y = f
	}
}

// Rect is an axis aligned rectangle with inclusive Min and exclusive Max.
type Rect struct{ Min, Max Vec2 }

// XYWH builds a rect from origin and size.
func XYWH(x, y, w, h float32) Rect {
	return Rect{Min: Vec2{x, y}, Max: Vec2{x + w, y + h}}
}

func (r Rect) W() float32   { return r.Max.X - r.Min.X }
func (r Rect) H() float32   { return r.Max.Y - r.Min.Y }
func (r Rect) Size() Vec2   { return Vec2{r.W(), r.H()} }
func (r Rect) Empty() bool  { return r.W() <= 0 || r.H() <= 0 }
func (r Rect) Center() Vec2 { return Vec2{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2} }
func (r Rect) Origin() Vec2 { return r.Min }
func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %gx%g]", r.Min.X, r.Min.Y, r.W(), r.H())
}

// Extent returns the size of r along axis a.
func (r Rect) Extent(a Axis) float32 { return r.Max.On(a) - r.Min.On(a) }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// span sets the [start, start+extent) interval of r along axis a.
func (r *Rect) span(a Axis, start, extent float32) {
	r.Min.set(a, start)
	r.Max.set(a, start+extent)
}
