package scene

import (
	"github.com/chewxy/math32"
	"github.com/hubastard/boxui/engine/core"
)

// OrthoController2D: WASD pan, scroll wheel zoom.
type OrthoController2D struct {
	MoveSpeed float32 // world units per second at zoom 1
	ZoomSpeed float32 // zoom factor per scroll notch
	Camera    *OrthoCamera2D
}

func NewOrthoController2D(cam *OrthoCamera2D) *OrthoController2D {
	return &OrthoController2D{
		MoveSpeed: 400,
		ZoomSpeed: 1.2,
		Camera:    cam,
	}
}

func (cc *OrthoController2D) Update(in *core.Input, dt float32) {
	if in == nil {
		return
	}
	// Pan at constant screen speed regardless of zoom.
	speed := cc.MoveSpeed * dt / cc.Camera.Zoom

	if in.IsKeyDown(core.KeyW) {
		cc.Camera.Move(0, -speed)
	}
	if in.IsKeyDown(core.KeyS) {
		cc.Camera.Move(0, speed)
	}
	if in.IsKeyDown(core.KeyA) {
		cc.Camera.Move(-speed, 0)
	}
	if in.IsKeyDown(core.KeyD) {
		cc.Camera.Move(speed, 0)
	}
}

// HandleEvent zooms on scroll. It reports whether the event was consumed.
func (cc *OrthoController2D) HandleEvent(ev core.Event) bool {
	s, ok := ev.(core.EventScroll)
	if !ok || s.Yoff == 0 {
		return false
	}
	cc.Camera.SetZoom(cc.Camera.Zoom * math32.Pow(cc.ZoomSpeed, float32(s.Yoff)))
	return true
}
