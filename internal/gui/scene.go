package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/pulsejet/internal/hud"
	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/sim"
)

const gridSpacing = 32

// DrawScene renders the engine into the scene texture. It is skipped while
// paused, so the texture keeps the last running frame.
func (a *App) DrawScene(f *sim.Frame) {
	a.ensureTarget(int32(f.Width), int32(f.Height))

	rl.BeginTextureMode(a.scene)
	rl.ClearBackground(ColBg)
	a.drawGrid(f.Width, f.Height, gridSpacing)
	a.drawStars(f)

	switch f.Geometry.Camera {
	case params.CameraCutaway:
		a.drawCutaway(f)
	case params.CameraChamber:
		a.drawChamberView(f)
	default:
		a.drawSkin(f)
		a.drawExhaust(f)
	}

	a.drawParticles(f)
	if f.Params.ShowWaves {
		a.drawWave(f)
	}
	if f.Params.ShowArrows {
		for _, ar := range hud.FlowArrows(f.Geometry, f.FlameLength) {
			drawArrow(vec(ar.From), vec(ar.To), rgba(ar.Color, 0.7))
		}
	}
	if f.Params.Overloaded() {
		a.drawBlast(f)
	}
	rl.EndTextureMode()
}

func (a *App) drawGrid(w, h float64, spacing int) {
	vert := rgba(hud.Cyan, 0.06)
	horiz := rgba(hud.Magenta, 0.06)
	for x := 0; x < int(w); x += spacing {
		rl.DrawLine(int32(x), 0, int32(x), int32(h), vert)
	}
	for y := 0; y < int(h); y += spacing {
		rl.DrawLine(0, int32(y), int32(w), int32(y), horiz)
	}
}

func (a *App) drawStars(f *sim.Frame) {
	for _, s := range hud.Stars(f.Width, f.Height, f.SimTime, 60) {
		rl.DrawRectangle(int32(s.X), int32(s.Y), 2, 2, rgba(hud.White, s.Alpha))
	}
}

// drawSkin draws the side-view body for the selected design.
func (a *App) drawSkin(f *sim.Frame) {
	g := f.Geometry
	c := g.Chamber
	cy, ch := g.CenterY, g.ChamberHeight

	switch f.Params.Design {
	case params.DesignBuzzBomb:
		rl.DrawRectangleRec(rect(c), ColMetal)
		rl.DrawCircleSector(v2(c.X, cy), float32(ch*0.45), 90, 270, 24, rl.NewColor(224, 224, 224, 255))
		rl.DrawCircleV(v2(c.X-10, cy), float32(ch*0.18), rl.NewColor(192, 192, 255, 255))
	case params.DesignMotorcycle:
		rl.DrawRectangle(int32(c.X), int32(c.Y), int32(c.W), int32(c.H*0.7), ColMetal)
		rl.DrawCircleV(v2(c.X-10, cy), float32(ch*0.18), rl.NewColor(192, 192, 255, 255))
		rl.DrawLineEx(v2(c.X+c.W*0.15, c.Y), v2(c.X+c.W*0.05, c.Y-ch*0.4), 4, ColWing)
		rl.DrawCircleV(v2(c.X+c.W*0.2, cy+ch*0.5), float32(ch*0.18), rl.NewColor(34, 34, 34, 255))
		rl.DrawCircleV(v2(g.NozzleX, cy+ch*0.5), float32(ch*0.18), rl.NewColor(34, 34, 34, 255))
	case params.DesignGoKart:
		rl.DrawRectangle(int32(c.X), int32(c.Y+ch*0.2), int32(c.W*0.7), int32(ch*0.5), ColMetal)
		rl.DrawLineEx(v2(c.X, cy+ch*0.55), v2(g.NozzleX, cy+ch*0.55), 4, ColWing)
		rl.DrawCircleV(v2(c.X+c.W*0.1, cy+ch*0.7), float32(ch*0.13), rl.NewColor(34, 34, 34, 255))
		rl.DrawCircleV(v2(g.NozzleX-c.W*0.1, cy+ch*0.7), float32(ch*0.13), rl.NewColor(34, 34, 34, 255))
	case params.DesignModelAircraft:
		rl.DrawRectangle(int32(c.X), int32(c.Y+ch*0.3), int32(c.W*0.8), int32(ch*0.3), ColMetal)
		triangle(v2(c.X+c.W*0.3, cy), v2(c.X+c.W*0.5, cy-ch*0.9), v2(c.X+c.W*0.6, cy), ColWing)
		rl.DrawCircleV(v2(g.NozzleX+10, cy), float32(ch*0.08), ColSelect)
	default:
		a.drawV1(f)
	}
}

func (a *App) drawV1(f *sim.Frame) {
	g := f.Geometry
	c := g.Chamber
	cy, ch := g.CenterY, g.ChamberHeight
	fuel := f.Params.FuelFlow

	rl.DrawRectangleRec(rect(c), ColMetal)
	rl.DrawCircleSector(v2(c.X, cy), float32(ch*0.5), 90, 270, 32, ColMetal)

	// tail wings
	n := g.NozzleX
	triangle(v2(n, cy-ch*0.5), v2(n+ch*0.7, cy-ch*0.8), v2(n+ch*0.7, cy-ch*0.3), ColWing)
	triangle(v2(n, cy+ch*0.5), v2(n+ch*0.7, cy+ch*0.8), v2(n+ch*0.7, cy+ch*0.3), ColWing)

	// intake
	iw, ih := ch*0.32, ch*0.18
	ix, iy := c.X+c.W*0.18, cy-ch*0.55
	rl.DrawEllipse(int32(ix+iw/2), int32(iy+ih/2), float32(iw/2), float32(ih/2), ColMetal)
	rl.DrawEllipse(int32(ix+iw/2), int32(iy+ih/2), float32(iw*0.32), float32(ih*0.32), rl.NewColor(34, 34, 34, 180))

	// combustion chamber cutaway
	glowH := c.H * (0.64 + fuel*0.12)
	rl.DrawRectangle(int32(c.X+c.W*0.08), int32(c.Y+c.H*0.18), int32(c.W*0.7), int32(glowH),
		rl.Fade(ColGlow, float32(hud.ChamberGlow(fuel))))

	pulse := 0.5 + 0.5*math.Abs(f.Params.Phase(f.SimTime))
	r := c.H * (0.18 + fuel*0.18)
	rl.DrawCircleGradient(int32(c.X+c.W*0.25), int32(cy), float32(r),
		rl.NewColor(255, 220, 120, uint8(255*math.Min(1, 0.35+pulse*0.3+fuel*0.5)*0.7)),
		rl.NewColor(255, 120, 60, 12))

	if f.Params.ShowHeat {
		heat := (f.Telemetry.ChamberTemp - 300) / 900
		rl.DrawRectangleRec(rect(c), rgba(hud.HeatColor(heat), 0.25))
	}
}

// drawExhaust layers translucent flame lobes behind the nozzle with shock
// diamonds along the plume.
func (a *App) drawExhaust(f *sim.Frame) {
	g := f.Geometry
	p := f.Params
	t := f.SimTime
	n, cy, ch, fl := g.NozzleX, g.CenterY, g.ChamberHeight, f.FlameLength
	tint := sim.ExhaustTint(p)

	rl.BeginBlendMode(rl.BlendAdditive)
	outline := make([]rl.Vector2, 0, 34)
	for i := 0; i < 8; i++ {
		phase := math.Sin(t*p.PulseFrequency*2*math.Pi + float64(i)*0.5)
		ripple := math.Sin(t*2+float64(i)*1.2) * 8

		start := v2(n+38, cy-ch*0.18+ripple)
		tip := v2(n+fl, cy+phase*12)
		end := v2(n+38, cy+ch*0.18+ripple)
		outline = quadCurve(outline[:0], start, v2(n+fl*0.4, cy-ch*0.42+ripple*0.5), tip, 16)
		outline = quadCurve(outline, tip, v2(n+fl*0.4, cy+ch*0.42+ripple*0.5), end, 16)
		fan(v2(n+fl*0.35, cy+ripple*0.5), outline, rgba(tint, 0.18+p.FuelFlow*0.3))

		for d := 1; d < 4; d++ {
			dx := n + 38 + (fl-38)*float64(d)/4
			dy := cy + math.Sin(t*2+float64(d))*8
			rl.DrawEllipse(int32(dx), int32(dy), 12, 4, rgba(tint, 0.22*(0.18+p.FuelFlow*0.18)))
		}
	}
	rl.EndBlendMode()
}

func (a *App) drawCutaway(f *sim.Frame) {
	g := f.Geometry
	c := g.Chamber
	ch, cy := g.ChamberHeight, g.CenterY
	tail := g.TubePixels * 0.55
	exhaustX := g.NozzleX + tail

	rl.DrawRectangleRec(rect(c), rgba(hud.Magenta, 0.22))
	rl.DrawRectangleLinesEx(rect(c), 1.5, ColPink)
	rl.DrawRectangle(int32(g.NozzleX), int32(c.Y+ch*0.22), int32(tail), int32(ch*0.56), rgba(hud.Cyan, 0.18))
	triangle(v2(exhaustX, cy-ch*0.28), v2(exhaustX+38, cy), v2(exhaustX, cy+ch*0.28), rgba(f.Params.ExhaustColor, 0.6))

	if f.Params.ShowHeat {
		heat := (f.Telemetry.ChamberTemp - 300) / 900
		rl.DrawRectangleRec(rect(c), rgba(hud.HeatColor(heat), 0.3))
	}
}

// drawChamberView shows the chamber end-on with a ring of orbiting
// combustion cells.
func (a *App) drawChamberView(f *sim.Frame) {
	g := f.Geometry
	t := f.SimTime
	center := vec(g.Chamber.Center())
	r := g.Radius

	rl.DrawRing(center, float32(r*0.98), float32(r), 0, 360, 64, rgba(hud.Cyan, 0.4))
	if f.Params.ShowHeat {
		heat := (f.Telemetry.ChamberTemp - 300) / 900
		rl.DrawCircleV(center, float32(r*0.8), rgba(hud.HeatColor(heat), 0.2))
	}
	for i := 0; i < 18; i++ {
		ang := float64(i)/18*2*math.Pi + t*0.7
		rr := r*0.92 + math.Sin(t*2+float64(i))*8
		s, co := math.Sincos(ang)
		alpha := 0.18 + math.Abs(math.Sin(t+float64(i)))*0.18
		rl.DrawCircleV(v2(float64(center.X)+co*rr, float64(center.Y)+s*rr), float32(8+math.Sin(t*2+float64(i))*3), rgba(hud.Cyan, alpha))
	}
}

func (a *App) drawParticles(f *sim.Frame) {
	tint := sim.ExhaustTint(f.Params)
	for _, pt := range f.Particles {
		col, alpha, radius := hud.ParticleStyle(pt, tint, f.Params.ShowHeat)
		rl.DrawCircleV(vec(pt.Pos), float32(radius), rgba(col, alpha))
	}
}

func (a *App) drawWave(f *sim.Frame) {
	pts := hud.Wave(f.Geometry, f.Params, f.SimTime, 64)
	thick := float32(math.Min(2+f.Params.PulseFrequency*0.05, 6))
	col := rgba(hud.Cyan, 0.5)
	for i := 1; i < len(pts); i++ {
		rl.DrawLineEx(vec(pts[i-1]), vec(pts[i]), thick, col)
	}
}

func (a *App) drawBlast(f *sim.Frame) {
	g := f.Geometry
	center := v2(g.Chamber.Center().X, g.CenterY)
	rl.DrawCircleV(center, float32(g.Chamber.H*0.7), rl.NewColor(255, 0, 0, 230))
	for _, d := range hud.Blast(g, a.blastRng) {
		alpha := 0.85
		if d.Smoke {
			alpha = 0.3
		}
		rl.DrawCircleV(vec(d.Pos), float32(d.Radius), rgba(d.Color, alpha))
	}
}
