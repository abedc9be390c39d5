package sim

import (
	"math"

	"github.com/san-kum/pulsejet/internal/dynamo"
	"github.com/san-kum/pulsejet/internal/params"
)

// Layout places the engine on a w×h surface for the given camera.
func Layout(cam params.Camera, w, h, tubeLength float64) Geometry {
	tube := math.Max(0, tubeLength)
	switch cam {
	case params.CameraCutaway:
		cx, cy := w*0.5, h*0.55
		tubePix, ch := 420*tube, 90.0
		chamber := dynamo.Rect{X: cx - tubePix*0.45, Y: cy - ch/2, W: tubePix * 0.45, H: ch}
		return Geometry{
			Camera:        cam,
			Chamber:       chamber,
			NozzleX:       chamber.Right(),
			CenterY:       cy,
			ChamberHeight: ch,
			TubePixels:    tubePix,
		}
	case params.CameraChamber:
		cx, cy := w*0.5, h*0.5
		r := 90 + tube*60
		chamber := dynamo.Rect{X: cx - r, Y: cy - r*0.5, W: 2 * r, H: r}
		return Geometry{
			Camera:        cam,
			Chamber:       chamber,
			NozzleX:       chamber.Right(),
			CenterY:       cy,
			ChamberHeight: r,
			TubePixels:    2 * r,
			Radius:        r,
		}
	default:
		cx, cy := w*0.18, h*0.55
		tubePix, ch := 500*tube, 80.0
		chamber := dynamo.Rect{X: cx, Y: cy - ch/2, W: tubePix * 0.45, H: ch}
		return Geometry{
			Camera:        params.CameraSide,
			Chamber:       chamber,
			NozzleX:       chamber.Right(),
			CenterY:       cy,
			ChamberHeight: ch,
			TubePixels:    tubePix,
		}
	}
}

// FlameLength is the exhaust plume length in pixels. It swells on each
// exhaust stroke.
func FlameLength(p params.Params, simTime float64) float64 {
	fuel := math.Max(0, p.FuelFlow)
	return 120 + 260*fuel*(0.4+math.Max(0, p.Phase(simTime))*0.9)
}

// ExhaustTint is the plume color for the current fuel and pulse settings.
func ExhaustTint(p params.Params) params.Color {
	fuel := p.FuelFlow
	pulse := p.PulseFrequency
	channel := func(v float64) uint8 {
		return uint8(dynamo.Clamp(math.Round(v), 0, 255))
	}
	return params.Color{
		R: channel(80 + math.Round(fuel*175)),
		G: channel(180 + math.Round(fuel*40) - math.Round(pulse*2)),
		B: channel(255 - math.Round(fuel*120) - math.Round(pulse*2)),
	}
}
