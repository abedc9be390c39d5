package sim

import (
	"github.com/san-kum/pulsejet/internal/dynamo"
	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/particles"
	"github.com/san-kum/pulsejet/internal/telemetry"
)

// ParamSource hands out the current parameter snapshot. params.Store
// satisfies it.
type ParamSource interface {
	Load() params.Params
}

// Surface is the drawing target. It is not ready until the host has a size
// to draw at.
type Surface interface {
	Size() (w, h float64, ok bool)
}

// Composer draws a frame. The scene is the engine and its exhaust; the
// overlay is the HUD and indicators that stay live while paused.
type Composer interface {
	DrawScene(f *Frame)
	DrawOverlay(f *Frame)
}

// AudioSink receives the parameters every frame. audio.Engine satisfies it.
type AudioSink interface {
	Update(simTime float64, p params.Params)
}

// Frame is everything a composer needs to draw one tick. Particles is a copy
// owned by the driver and reused across ticks; composers must not retain it.
type Frame struct {
	Index    uint64
	Delta    float64
	SimTime  float64
	Width    float64
	Height   float64
	Params   params.Params
	Geometry Geometry

	FlameLength float64
	Telemetry   telemetry.Snapshot
	Particles   []particles.Particle
}

// Geometry is the engine layout for a camera at a surface size.
type Geometry struct {
	Camera        params.Camera
	Chamber       dynamo.Rect
	NozzleX       float64
	CenterY       float64
	ChamberHeight float64
	TubePixels    float64
	// Radius is only set for the chamber camera.
	Radius float64
}

func (g Geometry) Particles() particles.Geometry {
	return particles.Geometry{Chamber: g.Chamber, NozzleX: g.NozzleX}
}
