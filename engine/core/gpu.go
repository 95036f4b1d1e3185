package core

// Texture, Pipeline and Mesh are opaque backend handles. Handles compare by
// identity, so backends return pointers.
type (
	Texture  any
	Pipeline any
	Mesh     any
)

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
)

// TextureDesc describes a 2D texture upload. Pixels are tightly packed rows,
// top-left origin.
type TextureDesc struct {
	Width, Height int
	Format        TextureFormat
	Pixels        []byte

	MinFilter, MagFilter string // "nearest" | "linear"
	WrapU, WrapV         string // "clamp" | "repeat"
}

type PipelineDesc struct {
	VertexSource   string
	FragmentSource string
	DepthTest      bool
	Blend          bool
}

type AttribType int

const (
	AttribFloat32 AttribType = iota
)

type VertexAttrib struct {
	Location int
	Size     int // component count
	Type     AttribType
	Offset   int // bytes
}

type VertexLayout struct {
	Stride     int // bytes
	Attributes []VertexAttrib
}

type MeshDesc struct {
	Vertices []float32
	Indices  []uint32
	Layout   VertexLayout
}

// Scissor limits drawing to a rect in framebuffer pixels, origin top-left.
type Scissor struct {
	Enabled    bool
	X, Y, W, H int32
}

// DrawCmd issues one indexed draw. Uniform values may be float32, int32,
// [2]float32, [4]float32 or [16]float32; samplers bind in map order to
// consecutive texture units.
type DrawCmd struct {
	Pipe       Pipeline
	Mesh       Mesh
	IndexCount int // 0 draws every index last uploaded to Mesh
	Uniforms   map[string]any
	Samplers   map[string]Texture
	Scissor    Scissor
}
