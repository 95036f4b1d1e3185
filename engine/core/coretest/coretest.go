// Package coretest provides in-memory core.Renderer and core.Window doubles
// for tests that exercise rendering code without a GPU.
package coretest

import (
	"errors"
	"maps"

	"github.com/hubastard/boxui/engine/core"
)

// Texture is the handle returned by Renderer.CreateTexture.
type Texture struct {
	ID   int
	Desc core.TextureDesc
}

// Mesh is the handle returned by Renderer.CreateMesh.
type Mesh struct {
	ID       int
	Layout   core.VertexLayout
	Vertices []float32
	Indices  []uint32
}

type Pipeline struct {
	ID   int
	Desc core.PipelineDesc
}

// Draw is a recorded draw call with the mesh contents at submission time.
type Draw struct {
	Cmd      core.DrawCmd
	Vertices []float32
	Indices  []uint32
}

// Renderer records every call. FailCreate makes the Create* methods fail.
type Renderer struct {
	Width, Height int
	ClearColor    [4]float32
	Textures      []*Texture
	Pipelines     []*Pipeline
	Meshes        []*Mesh
	Draws         []Draw
	FailCreate    bool
	ShutdownCount int
}

var ErrCreate = errors.New("coretest: create failed")

func (r *Renderer) Init() error     { return nil }
func (r *Renderer) Resize(w, h int) { r.Width, r.Height = w, h }
func (r *Renderer) Clear(red, g, b, a float32) {
	r.ClearColor = [4]float32{red, g, b, a}
}
func (r *Renderer) Shutdown() { r.ShutdownCount++ }

func (r *Renderer) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	if r.FailCreate {
		return nil, ErrCreate
	}
	t := &Texture{ID: len(r.Textures) + 1, Desc: desc}
	r.Textures = append(r.Textures, t)
	return t, nil
}

func (r *Renderer) CreatePipeline(desc core.PipelineDesc) (core.Pipeline, error) {
	if r.FailCreate {
		return nil, ErrCreate
	}
	p := &Pipeline{ID: len(r.Pipelines) + 1, Desc: desc}
	r.Pipelines = append(r.Pipelines, p)
	return p, nil
}

func (r *Renderer) CreateMesh(desc core.MeshDesc) (core.Mesh, error) {
	if r.FailCreate {
		return nil, ErrCreate
	}
	m := &Mesh{ID: len(r.Meshes) + 1, Layout: desc.Layout}
	m.Vertices = append(m.Vertices, desc.Vertices...)
	m.Indices = append(m.Indices, desc.Indices...)
	r.Meshes = append(r.Meshes, m)
	return m, nil
}

func (r *Renderer) UpdateMesh(mesh core.Mesh, vertices []float32, indices []uint32) error {
	m, ok := mesh.(*Mesh)
	if !ok {
		return errors.New("coretest: foreign mesh")
	}
	m.Vertices = append(m.Vertices[:0], vertices...)
	m.Indices = append(m.Indices[:0], indices...)
	return nil
}

// Draw snapshots the command, its maps and the mesh contents.
func (r *Renderer) Draw(cmd core.DrawCmd) {
	cmd.Uniforms = maps.Clone(cmd.Uniforms)
	cmd.Samplers = maps.Clone(cmd.Samplers)
	d := Draw{Cmd: cmd}
	if m, ok := cmd.Mesh.(*Mesh); ok {
		d.Vertices = append([]float32(nil), m.Vertices...)
		d.Indices = append([]uint32(nil), m.Indices...)
	}
	r.Draws = append(r.Draws, d)
}

func (r *Renderer) GPUVendor() string   { return "coretest" }
func (r *Renderer) GPURenderer() string { return "in-memory" }
func (r *Renderer) GPUVersion() string  { return "0" }

// Window closes itself after Frames calls to SwapBuffers. Events queued in
// Pending are delivered on the next PollEvents.
type Window struct {
	W, H    int
	Frames  int
	Pending []core.Event
	Swaps   int
	Title   string

	closed bool
	cb     func(core.Event)
}

func (w *Window) PollEvents() {
	evs := w.Pending
	w.Pending = nil
	for _, ev := range evs {
		w.Emit(ev)
	}
}

// Emit delivers ev to the registered callback immediately.
func (w *Window) Emit(ev core.Event) {
	if w.cb != nil {
		w.cb(ev)
	}
}

func (w *Window) SwapBuffers() {
	w.Swaps++
	if w.Swaps >= w.Frames {
		w.closed = true
	}
}

func (w *Window) ShouldClose() bool                    { return w.closed }
func (w *Window) RequestClose()                        { w.closed = true }
func (w *Window) FramebufferSize() (int, int)          { return w.W, w.H }
func (w *Window) SetTitle(t string)                    { w.Title = t }
func (w *Window) SetEventCallback(cb func(core.Event)) { w.cb = cb }
