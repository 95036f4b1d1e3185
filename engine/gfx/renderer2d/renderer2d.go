package renderer2d

import (
	"embed"
	"log/slog"
	"strconv"

	"github.com/chewxy/math32"
	"github.com/hubastard/boxui/engine/assets"
	"github.com/hubastard/boxui/engine/colors"
	"github.com/hubastard/boxui/engine/core"
)

//go:embed shaders/*.vert shaders/*.frag
var shaderFS embed.FS

// Max textures per batch (common GL limit is 16)
const maxTexSlots = 16

// Vertex: pos2 + color4 + uv2 + texIndex1 + local2 + half2 + radius1 + border1 => 15 floats
const vStride = 15
const vertsPerQuad = 4
const indsPerQuad = 6

var quadVertexLayout = core.VertexLayout{
	Stride: vStride * 4,
	Attributes: []core.VertexAttrib{
		{Location: 0, Size: 2, Type: core.AttribFloat32, Offset: 0},      // pos
		{Location: 1, Size: 4, Type: core.AttribFloat32, Offset: 2 * 4},  // color
		{Location: 2, Size: 2, Type: core.AttribFloat32, Offset: 6 * 4},  // uv
		{Location: 3, Size: 1, Type: core.AttribFloat32, Offset: 8 * 4},  // texIndex
		{Location: 4, Size: 2, Type: core.AttribFloat32, Offset: 9 * 4},  // local offset from center
		{Location: 5, Size: 2, Type: core.AttribFloat32, Offset: 11 * 4}, // half extent
		{Location: 6, Size: 1, Type: core.AttribFloat32, Offset: 13 * 4}, // corner radius
		{Location: 7, Size: 1, Type: core.AttribFloat32, Offset: 14 * 4}, // border thickness
	},
}

// Statistics captures the counts generated during a renderer frame.
type Statistics struct {
	DrawCalls    int
	QuadCount    int
	TextureCount int
}

// TotalVertexCount reports vertices submitted this frame.
func (s Statistics) TotalVertexCount() int { return s.QuadCount * vertsPerQuad }

// TotalIndexCount reports indices submitted this frame.
func (s Statistics) TotalIndexCount() int { return s.QuadCount * indsPerQuad }

type Renderer2D struct {
	r      core.Renderer
	pipe   core.Pipeline
	white  core.Texture // 1x1 white (slot 0)
	texArr [maxTexSlots]core.Texture
	texCnt int

	verts     []float32
	inds      []uint32
	quadCount int
	maxQuads  int

	mesh     core.Mesh
	samplers map[string]core.Texture
	uniforms map[string]any
	texNames [maxTexSlots]string

	clips []core.Scissor

	_vp           [16]float32
	stats         Statistics
	extraUniforms map[string]any
}

// New creates a renderer with the built-in rounded-quad shaders.
func New(r core.Renderer, maxQuads int) (*Renderer2D, error) {
	vs, err := assets.LoadShader(shaderFS, "shaders/quad.vert")
	if err != nil {
		return nil, err
	}
	fs, err := assets.LoadShader(shaderFS, "shaders/quad.frag")
	if err != nil {
		return nil, err
	}
	return NewWithShaders(r, vs, fs, maxQuads)
}

// NewWithShaders creates renderer and compiles the given shader pipeline. The
// shaders must accept the quad vertex layout.
func NewWithShaders(r core.Renderer, vertSrc, fragSrc string, maxQuads int) (*Renderer2D, error) {
	if maxQuads <= 0 {
		maxQuads = 10000
	}
	pipe, err := r.CreatePipeline(core.PipelineDesc{
		VertexSource:   vertSrc,
		FragmentSource: fragSrc,
		DepthTest:      false,
		Blend:          true,
	})
	if err != nil {
		return nil, err
	}

	// build 1x1 white texture
	whitePix := []byte{255, 255, 255, 255}
	white, err := r.CreateTexture(core.TextureDesc{
		Width: 1, Height: 1,
		Format:    core.TextureRGBA8,
		Pixels:    whitePix,
		MinFilter: "nearest", MagFilter: "nearest",
		WrapU: "clamp", WrapV: "clamp",
	})
	if err != nil {
		return nil, err
	}

	rd := &Renderer2D{
		r: r, pipe: pipe, white: white, maxQuads: maxQuads,
		verts: make([]float32, 0, maxQuads*vertsPerQuad*vStride),
		inds:  make([]uint32, 0, maxQuads*indsPerQuad),
	}

	// Create a reusable mesh large enough for the biggest batch.
	mesh, err := r.CreateMesh(core.MeshDesc{
		Vertices: make([]float32, maxQuads*vertsPerQuad*vStride),
		Indices:  make([]uint32, maxQuads*indsPerQuad),
		Layout:   quadVertexLayout,
	})
	if err != nil {
		return nil, err
	}
	rd.mesh = mesh

	rd.samplers = make(map[string]core.Texture, maxTexSlots)
	rd.uniforms = make(map[string]any, 4)
	for i := 0; i < maxTexSlots; i++ {
		rd.texNames[i] = "uTex[" + strconv.Itoa(i) + "]"
	}
	rd.resetBatch()

	return rd, nil
}

func (rd *Renderer2D) BeginScene(vp [16]float32) {
	rd._vp = vp
	rd.stats = Statistics{}
	rd.clips = rd.clips[:0]
	rd.resetBatch()
}

func (rd *Renderer2D) EndScene() { rd.flush() }

// Stats returns the current frame statistics snapshot.
func (rd *Renderer2D) Stats() Statistics { return rd.stats }

// SetUniform queues an additional uniform to be sent on every draw call.
// The uniform persists until overwritten; call with nil to remove.
func (rd *Renderer2D) SetUniform(name string, value any) {
	if rd.extraUniforms == nil {
		rd.extraUniforms = make(map[string]any)
	}
	if value == nil {
		delete(rd.extraUniforms, name)
		return
	}
	rd.extraUniforms[name] = value
}

// PushClip restricts subsequent drawing to the intersection of the current
// clip and the rect (x, y, w, h) in framebuffer pixels, origin top-left.
func (rd *Renderer2D) PushClip(x, y, w, h float32) {
	rd.flush()
	sc := core.Scissor{
		Enabled: true,
		X:       int32(math32.Floor(x)),
		Y:       int32(math32.Floor(y)),
		W:       int32(math32.Ceil(x+w) - math32.Floor(x)),
		H:       int32(math32.Ceil(y+h) - math32.Floor(y)),
	}
	if n := len(rd.clips); n > 0 {
		sc = intersect(rd.clips[n-1], sc)
	}
	rd.clips = append(rd.clips, sc)
}

// PopClip restores the clip that was active before the matching PushClip.
func (rd *Renderer2D) PopClip() {
	if len(rd.clips) == 0 {
		return
	}
	rd.flush()
	rd.clips = rd.clips[:len(rd.clips)-1]
}

func (rd *Renderer2D) scissor() core.Scissor {
	if n := len(rd.clips); n > 0 {
		return rd.clips[n-1]
	}
	return core.Scissor{}
}

func intersect(a, b core.Scissor) core.Scissor {
	x0, y0 := max(a.X, b.X), max(a.Y, b.Y)
	x1, y1 := min(a.X+a.W, b.X+b.W), min(a.Y+a.H, b.Y+b.H)
	return core.Scissor{Enabled: true, X: x0, Y: y0, W: max(0, x1-x0), H: max(0, y1-y0)}
}

// Draw solid color quad centered at (x, y) (uses white texture in slot 0)
func (rd *Renderer2D) DrawQuad(x, y, w, h float32, color colors.Color, rotationRad float32) {
	rd.ensureQuadCapacity()
	rd.drawQuadInternal(x, y, w, h, color, rotationRad, rd.texSlot(rd.white), 0, 0, 1, 1, 0, 0)
}

// DrawRect draws a solid axis-aligned rect from its top-left corner.
func (rd *Renderer2D) DrawRect(x, y, w, h float32, color colors.Color) {
	rd.DrawRoundedRect(x, y, w, h, color, 0, 0)
}

// DrawRoundedRect draws an axis-aligned rect from its top-left corner with
// anti-aliased corners of the given radius. A positive border draws only an
// outline of that thickness.
func (rd *Renderer2D) DrawRoundedRect(x, y, w, h float32, color colors.Color, radius, border float32) {
	if w <= 0 || h <= 0 || color[3] <= 0 {
		return
	}
	radius = math32.Max(0, math32.Min(radius, math32.Min(w, h)*0.5))
	rd.ensureQuadCapacity()
	rd.drawQuadInternal(x+w*0.5, y+h*0.5, w, h, color, 0, rd.texSlot(rd.white), 0, 0, 1, 1, radius, math32.Max(0, border))
}

// Draw textured quad with UVs (tint color)
func (rd *Renderer2D) DrawTexturedQuad(x, y, w, h float32, tex core.Texture, tint colors.Color, rotationRad float32) {
	rd.ensureQuadCapacity()
	slot := rd.texSlot(tex)
	rd.drawQuadInternal(x, y, w, h, tint, rotationRad, slot, 0, 0, 1, 1, 0, 0)
}

// Draw textured sub-rect (UV rect: u0,v0 -> u1,v1)
func (rd *Renderer2D) DrawTexturedQuadUV(x, y, w, h float32, tex core.Texture, tint colors.Color, rotationRad float32, u0, v0, u1, v1 float32) {
	rd.ensureQuadCapacity()
	slot := rd.texSlot(tex)
	rd.drawQuadInternal(x, y, w, h, tint, rotationRad, slot, u0, v0, u1, v1, 0, 0)
}

// DrawRegion draws reg into the rect (x, y, w, h) from its top-left corner,
// like DrawRect. Empty regions, degenerate rects and transparent tints are
// skipped.
func (rd *Renderer2D) DrawRegion(x, y, w, h float32, reg Region, tint colors.Color) {
	if reg.Empty() || w <= 0 || h <= 0 || tint[3] <= 0 {
		return
	}
	rd.DrawRegionQuad(x+w*0.5, y+h*0.5, w, h, reg, tint, 0)
}

// DrawRegionQuad draws reg on a quad centered at (x, y), like DrawQuad.
func (rd *Renderer2D) DrawRegionQuad(x, y, w, h float32, reg Region, tint colors.Color, rotationRad float32) {
	if reg.Texture == nil {
		return
	}
	rd.ensureQuadCapacity()
	slot := rd.texSlot(reg.Texture)
	rd.drawQuadInternal(x, y, w, h, tint, rotationRad, slot, reg.U0, reg.V0, reg.U1, reg.V1, 0, 0)
}

// --- internals ---

func (rd *Renderer2D) texSlot(t core.Texture) float32 {
	// already in array?
	for i := 0; i < rd.texCnt; i++ {
		if rd.texArr[i] == t {
			return float32(i)
		}
	}
	// need a new slot
	if rd.texCnt >= maxTexSlots {
		// flush and reset texture bindings
		rd.flush()
	}
	rd.texArr[rd.texCnt] = t
	rd.texCnt++
	rd.stats.TextureCount = max(rd.stats.TextureCount, rd.texCnt)
	return float32(rd.texCnt - 1)
}

func (rd *Renderer2D) drawQuadInternal(x, y, w, h float32, color colors.Color, rotationRad float32, texIndex float32, u0, v0, u1, v1, radius, border float32) {
	halfW := w * 0.5
	halfH := h * 0.5

	// corners (TL, TR, BL, BR) with UVs. Positive Y goes down so top is -halfH.
	corners := [4][4]float32{
		{-halfW, -halfH, u0, v0},
		{halfW, -halfH, u1, v0},
		{-halfW, halfH, u0, v1},
		{halfW, halfH, u1, v1},
	}
	s, c := math32.Sincos(rotationRad)

	startVertex := uint32(len(rd.verts) / vStride)

	for _, p := range corners {
		rx := p[0]*c - p[1]*s + x
		ry := p[0]*s + p[1]*c + y
		rd.verts = append(rd.verts,
			rx, ry,
			color[0], color[1], color[2], color[3],
			p[2], p[3],
			texIndex,
			p[0], p[1],
			halfW, halfH,
			radius, border,
		)
	}
	rd.inds = append(rd.inds,
		startVertex+0, startVertex+2, startVertex+1,
		startVertex+1, startVertex+2, startVertex+3,
	)
	rd.quadCount++
	rd.stats.QuadCount++
}

func (rd *Renderer2D) flush() {
	if rd.quadCount == 0 {
		return
	}

	if err := rd.r.UpdateMesh(rd.mesh, rd.verts, rd.inds); err != nil {
		slog.Error("renderer2d: dropping batch", "err", err, "quads", rd.quadCount)
		rd.resetBatch()
		return
	}

	clear(rd.samplers)
	for i := 0; i < rd.texCnt; i++ {
		rd.samplers[rd.texNames[i]] = rd.texArr[i]
	}

	clear(rd.uniforms)
	rd.uniforms["uVP"] = rd._vp
	for k, v := range rd.extraUniforms {
		rd.uniforms[k] = v
	}

	rd.r.Draw(core.DrawCmd{
		Pipe:       rd.pipe,
		Mesh:       rd.mesh,
		IndexCount: len(rd.inds),
		Uniforms:   rd.uniforms,
		Samplers:   rd.samplers,
		Scissor:    rd.scissor(),
	})
	rd.stats.DrawCalls++

	rd.resetBatch()
}

func (rd *Renderer2D) resetBatch() {
	rd.verts = rd.verts[:0]
	rd.inds = rd.inds[:0]
	rd.quadCount = 0
	for i := range rd.texArr {
		rd.texArr[i] = nil
	}
	rd.texArr[0] = rd.white
	rd.texCnt = 1
}

func (rd *Renderer2D) ensureQuadCapacity() {
	if rd.quadCount >= rd.maxQuads {
		rd.flush()
	}
}
