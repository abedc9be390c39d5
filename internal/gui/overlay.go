package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/pulsejet/internal/hud"
	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/sim"
)

// DrawOverlay puts the last scene on screen and draws the HUD over it. It
// runs every frame, paused or not.
func (a *App) DrawOverlay(f *sim.Frame) {
	if a.sceneW > 0 {
		src := rl.NewRectangle(0, 0, float32(a.sceneW), -float32(a.sceneH))
		rl.DrawTextureRec(a.scene.Texture, src, rl.NewVector2(0, 0), rl.White)
	}

	if !f.Params.Paused {
		a.pushTelemetry(f.Telemetry.Thrust)
	}

	for _, d := range hud.Dials(f.Width, f.Height, f.Telemetry) {
		a.drawDial(d)
	}
	a.drawKnobs(f)
	a.DrawTelemetry(int(f.Height))

	w, h := int(f.Width), int(f.Height)
	a.drawText("pulsejet", 30, 30, 24, ColSelect)
	status := hud.Status(f.Params, a.audio.State().String())
	a.drawText(status, 30, 60, 14, ColText)

	a.drawText("[CLICK] SOUND  [M] MUTE  [SPACE] PAUSE  [C] CAMERA  [D] DESIGN  [1-5] PRESET  [Q] QUIT", 30, h-30, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), w-90, h-30, 14, ColTextDim)
}

func (a *App) pushTelemetry(v float64) {
	if len(a.Telemetry) >= a.MaxHistory {
		copy(a.Telemetry, a.Telemetry[1:])
		a.Telemetry = a.Telemetry[:len(a.Telemetry)-1]
	}
	a.Telemetry = append(a.Telemetry, v)
}

func (a *App) drawDial(d hud.Dial) {
	center := v2(d.X, d.Y)
	r := float32(d.Radius)
	rl.DrawRing(center, r-6, r, 0, 360, 64, rgba(d.Color, 0.12))
	if d.Value > 0 {
		rl.DrawRing(center, r-6, r, -90, float32(-90+360*d.Value), 64, rgba(d.Color, 0.9))
	}
	a.drawTextCentered(d.Display, d.X, d.Y-9, 18, rgba(d.Color, 1))
	a.drawTextCentered(d.Label, d.X, d.Y+d.Radius+18, 14, ColText)
}

// drawKnobs lists the three physical knobs with the selected one marked.
func (a *App) drawKnobs(f *sim.Frame) {
	x, y := int(f.Width)-260, int(f.Height)-150
	for _, fld := range params.Fields() {
		label := fmt.Sprintf("  %-6s %7.2f %s", fld, f.Params.Get(fld), fld.Unit())
		col := ColText
		if fld == a.field {
			label = ">" + label[1:]
			col = ColSelect
		}
		a.drawText(label, x, y, 16, col)
		y += 22
	}
	a.drawText(fmt.Sprintf("  res    %7.2f", f.Telemetry.Resonance), x, y, 16, ColTextDim)
}

// DrawTelemetry plots the recent thrust history as a line strip.
func (a *App) DrawTelemetry(screenH int) {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 30, screenH-110
	width, height := 400, 60

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("T: %.1f N", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}
