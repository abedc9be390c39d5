package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/san-kum/pulsejet/internal/audio"
	"github.com/san-kum/pulsejet/internal/hud"
	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/particles"
	"github.com/san-kum/pulsejet/internal/sim"
)

const (
	virtualWidth    = 1280.0
	statsWidth      = 46
	historyCapacity = 120
)

// Options configures the terminal host.
type Options struct {
	FPS     int
	Theme   string
	Presets []params.Preset
	Seed    int64
}

type TickMsg time.Time

// Model is the live terminal view: a braille rendering of the engine next
// to the telemetry panel.
type Model struct {
	store   *params.Store
	audio   *audio.Engine
	ps      *particles.System
	driver  *sim.Driver
	scene   *scene
	presets []params.Preset

	field         params.Field
	start         time.Time
	fps           int
	width, height int
	showHelp      bool
}

func NewModel(store *params.Store, engine *audio.Engine, ps *particles.System, opts Options, log zerolog.Logger) Model {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	sc := newScene(GetTheme(opts.Theme), opts.Seed)
	return Model{
		store:   store,
		audio:   engine,
		ps:      ps,
		driver:  sim.New(store, ps, sc, sc, engine, log),
		scene:   sc,
		presets: opts.Presets,
		start:   time.Now(),
		fps:     opts.FPS,
	}
}

// Run blocks until the user quits, then closes the audio engine.
func Run(store *params.Store, engine *audio.Engine, ps *particles.System, opts Options, log zerolog.Logger) error {
	_, err := tea.NewProgram(NewModel(store, engine, ps, opts, log), tea.WithAltScreen()).Run()
	if cerr := engine.Close(); err == nil {
		err = cerr
	}
	return err
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and drives one frame per tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Any key press counts as the gesture that unlocks audio output.
		m.audio.Init(m.store.Load())
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.driver.Tick(time.Time(msg).Sub(m.start))
		if m.driver.Stopped() {
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.scene.resize(w-statsWidth-6, h-3)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		m.driver.Stop()
		return m, tea.Quit
	case "m":
		m.store.ToggleMute()
	case " ":
		m.store.TogglePause()
	case "c":
		m.store.CycleCamera()
	case "d":
		m.store.CycleDesign()
	case "t":
		m.scene.theme = NextTheme(m.scene.theme)
	case "r":
		m.ps.Reset()
		m.scene.history = m.scene.history[:0]
	case "a":
		m.store.Update(func(p params.Params) params.Params { p.ShowArrows = !p.ShowArrows; return p })
	case "h":
		m.store.Update(func(p params.Params) params.Params { p.ShowHeat = !p.ShowHeat; return p })
	case "w":
		m.store.Update(func(p params.Params) params.Params { p.ShowWaves = !p.ShowWaves; return p })
	case "tab", "down", "j":
		m.field = m.field.Next()
	case "shift+tab", "up", "k":
		fields := params.Fields()
		m.field = fields[(int(m.field)+len(fields)-1)%len(fields)]
	case "right", "l", "+", "=":
		m.store.Nudge(m.field, 1)
	case "left", "-", "_":
		m.store.Nudge(m.field, -1)
	case "shift+right", "L":
		m.store.Nudge(m.field, 10)
	case "shift+left", "H":
		m.store.Nudge(m.field, -10)
	case "?":
		m.showHelp = !m.showHelp
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.presets) {
				m.store.ApplyPreset(m.presets[i])
			}
		}
	}
	return m, nil
}

// View renders the TUI interface.
func (m Model) View() string {
	if !m.scene.ready {
		return "starting…"
	}
	f := m.driver.Frame()
	p := m.store.Load()

	var s strings.Builder
	s.WriteString(headerStyle.Render(GradientText("PULSEJET", hud.Cyan, hud.Magenta)) + "\n")

	status := StatusRunning.Render("RUNNING")
	switch {
	case p.Overloaded():
		status = StatusBlast.Render("OVERLOAD")
	case p.Paused:
		status = StatusPaused.Render("PAUSED")
	}
	sound := "sound " + m.audio.State().String()
	if p.Muted {
		sound += ", muted"
	}
	s.WriteString(status + "  " + labelStyle.Render(sound) + "\n")
	s.WriteString(valueStyle.Render(fmt.Sprintf("%s · %s", p.Design, p.Camera)) + "\n\n")

	for _, d := range hud.Dials(virtualWidth, virtualWidth, f.Telemetry) {
		s.WriteString(labelStyle.Render(d.Label) + Gauge(d.Value, 16, d.Color) + " " + valueStyle.Render(d.Display) + "\n")
	}

	if len(m.scene.history) > 1 {
		chart := asciigraph.Plot(m.scene.history,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Thrust (N)"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString("\nKNOBS\n")
	for _, fld := range params.Fields() {
		line := fmt.Sprintf("%-6s %s %7.2f %s", fld, Slider(p.Normalized(fld), 10), p.Get(fld), fld.Unit())
		if fld == m.field {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + valueStyle.Render(line) + "\n")
		}
	}
	s.WriteString(labelStyle.Render("res") + valueStyle.Render(fmt.Sprintf("%.2f", f.Telemetry.Resonance)) + "\n")

	help := "SP:Pause M:Mute C:Camera D:Design\n←→:Tune ↑↓:Select 1-5:Preset ?:Help Q:Quit"
	if m.showHelp {
		help = strings.Join([]string{
			"Space  pause or resume",
			"M      mute or unmute",
			"C      cycle camera",
			"D      cycle design",
			"T      cycle theme",
			"A H W  arrows, heat, waves",
			"Tab ↑↓ select knob",
			"← →    nudge (shift ×10)",
			"1-5    presets",
			"R      reset particles",
			"Q      quit",
		}, "\n")
	}
	s.WriteString(helpStyle.Render("─────────────────────\n" + help))

	canvasView := canvasStyle.Render(m.scene.canvas.Render(m.scene.theme.inkStyles()))
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
}

// scene is the terminal surface and composer. Layout runs in a virtual
// space 1280 units wide, scaled onto the canvas sub-pixels.
type scene struct {
	canvas  *Canvas
	theme   Theme
	ready   bool
	scale   float64
	history []float64
	rng     particles.Rand
}

func newScene(theme Theme, seed int64) *scene {
	return &scene{
		canvas:  NewCanvas(1, 1),
		theme:   theme,
		history: make([]float64, 0, historyCapacity),
		rng:     particles.NewRand(seed),
	}
}

func (s *scene) resize(cols, rows int) {
	s.canvas.Resize(max(cols, 10), max(rows, 4))
	px, _ := s.canvas.Pixels()
	s.scale = float64(px) / virtualWidth
	s.ready = true
}

func (s *scene) Size() (float64, float64, bool) {
	if !s.ready {
		return 0, 0, false
	}
	_, py := s.canvas.Pixels()
	return virtualWidth, float64(py) / s.scale, true
}

func (s *scene) pt(x, y float64) (int, int) {
	return int(math.Round(x * s.scale)), int(math.Round(y * s.scale))
}

func (s *scene) px(v float64) int {
	return int(math.Round(v * s.scale))
}

func (s *scene) line(x0, y0, x1, y1 float64, ink Ink) {
	ax, ay := s.pt(x0, y0)
	bx, by := s.pt(x1, y1)
	s.canvas.DrawLine(ax, ay, bx, by, ink)
}

// arc samples a circular arc from a0 to a1 radians.
func (s *scene) arc(cx, cy, r, a0, a1 float64, ink Ink) {
	steps := max(8, s.px(r))
	for i := 0; i <= steps; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(steps)
		sn, cs := math.Sincos(a)
		x, y := s.pt(cx+cs*r, cy+sn*r)
		s.canvas.Set(x, y, ink)
	}
}

func (s *scene) DrawScene(f *sim.Frame) {
	s.canvas.Clear()
	for _, st := range hud.Stars(f.Width, f.Height, f.SimTime, 60) {
		if st.Alpha > 0.16 {
			x, y := s.pt(st.X, st.Y)
			s.canvas.Set(x, y, InkDim)
		}
	}

	switch f.Geometry.Camera {
	case params.CameraCutaway:
		s.drawCutaway(f)
	case params.CameraChamber:
		s.drawChamber(f)
	default:
		s.drawSide(f)
	}

	heat := f.Params.ShowHeat
	for _, p := range f.Particles {
		ink := InkFlame
		switch {
		case p.Kind == particles.Intake:
			ink = InkIntake
		case heat && p.Heat > 0.9:
			ink = InkHot
		}
		x, y := s.pt(p.Pos.X, p.Pos.Y)
		s.canvas.Set(x, y, ink)
	}

	if f.Params.ShowWaves {
		pts := hud.Wave(f.Geometry, f.Params, f.SimTime, 48)
		for i := 1; i < len(pts); i++ {
			s.line(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, InkIntake)
		}
	}
	if f.Params.ShowArrows {
		for _, a := range hud.FlowArrows(f.Geometry, f.FlameLength) {
			s.line(a.From.X, a.From.Y, a.To.X, a.To.Y, InkHUD)
			s.line(a.To.X, a.To.Y, a.To.X-10, a.To.Y-6, InkHUD)
			s.line(a.To.X, a.To.Y, a.To.X-10, a.To.Y+6, InkHUD)
		}
	}
	if f.Params.Overloaded() {
		for _, d := range hud.Blast(f.Geometry, s.rng) {
			ink := InkHot
			if d.Smoke {
				ink = InkDim
			}
			cx, cy := s.pt(d.Pos.X, d.Pos.Y)
			s.canvas.Circle(cx, cy, s.px(d.Radius), ink)
		}
	}
}

func (s *scene) drawSide(f *sim.Frame) {
	g := f.Geometry
	c := g.Chamber
	x, y := s.pt(c.X, c.Y)
	s.canvas.Rect(x, y, s.px(c.W), s.px(c.H), InkBody)
	s.arc(c.X, g.CenterY, g.ChamberHeight*0.5, math.Pi/2, 3*math.Pi/2, InkBody)

	ink := InkBody
	if f.Params.ShowHeat && f.Telemetry.ChamberTemp > 900 {
		ink = InkHot
	}
	glow := c.H * (0.64 + f.Params.FuelFlow*0.12)
	gx, gy := s.pt(c.X+c.W*0.08, c.Y+c.H*0.18)
	s.canvas.Rect(gx, gy, s.px(c.W*0.7), s.px(glow), ink)

	// flame envelope
	n, cy, ch, fl := g.NozzleX, g.CenterY, g.ChamberHeight, f.FlameLength
	phase := math.Sin(f.SimTime * f.Params.PulseFrequency * 2 * math.Pi)
	s.quad(n+38, cy-ch*0.18, n+fl*0.4, cy-ch*0.42, n+fl, cy+phase*12, InkFlame)
	s.quad(n+fl, cy+phase*12, n+fl*0.4, cy+ch*0.42, n+38, cy+ch*0.18, InkFlame)
	for d := 1; d < 4; d++ {
		dx := n + 38 + (fl-38)*float64(d)/4
		dy := cy + math.Sin(f.SimTime*2+float64(d))*8
		s.line(dx-12, dy, dx+12, dy, InkHot)
	}
}

// quad draws a quadratic Bezier.
func (s *scene) quad(x0, y0, x1, y1, x2, y2 float64, ink Ink) {
	const steps = 16
	px, py := x0, y0
	for i := 1; i <= steps; i++ {
		t := float64(i) / steps
		u := 1 - t
		x := u*u*x0 + 2*u*t*x1 + t*t*x2
		y := u*u*y0 + 2*u*t*y1 + t*t*y2
		s.line(px, py, x, y, ink)
		px, py = x, y
	}
}

func (s *scene) drawCutaway(f *sim.Frame) {
	g := f.Geometry
	c := g.Chamber
	x, y := s.pt(c.X, c.Y)
	ink := InkFlame
	if f.Params.ShowHeat && f.Telemetry.ChamberTemp > 900 {
		ink = InkHot
	}
	s.canvas.Rect(x, y, s.px(c.W), s.px(c.H), ink)

	tail := g.TubePixels * 0.55
	tx, ty := s.pt(g.NozzleX, c.Y+g.ChamberHeight*0.22)
	s.canvas.Rect(tx, ty, s.px(tail), s.px(g.ChamberHeight*0.56), InkIntake)

	ex := g.NozzleX + tail
	s.line(ex, g.CenterY-g.ChamberHeight*0.28, ex+38, g.CenterY, InkFlame)
	s.line(ex+38, g.CenterY, ex, g.CenterY+g.ChamberHeight*0.28, InkFlame)
}

func (s *scene) drawChamber(f *sim.Frame) {
	g := f.Geometry
	t := f.SimTime
	center := g.Chamber.Center()
	cx, cy := s.pt(center.X, center.Y)
	s.canvas.Circle(cx, cy, s.px(g.Radius), InkBody)
	for i := 0; i < 18; i++ {
		ang := float64(i)/18*2*math.Pi + t*0.7
		r := g.Radius*0.92 + math.Sin(t*2+float64(i))*8
		sn, cs := math.Sincos(ang)
		x, y := s.pt(center.X+cs*r, center.Y+sn*r)
		s.canvas.Circle(x, y, s.px(8+math.Sin(t*2+float64(i))*3), InkIntake)
	}
}

func (s *scene) DrawOverlay(f *sim.Frame) {
	if f.Params.Paused {
		return
	}
	if len(s.history) >= historyCapacity {
		copy(s.history, s.history[1:])
		s.history = s.history[:len(s.history)-1]
	}
	s.history = append(s.history, f.Telemetry.Thrust)
}
