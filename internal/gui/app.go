package gui

import (
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
	"github.com/san-kum/pulsejet/internal/audio"
	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/particles"
	"github.com/san-kum/pulsejet/internal/sim"
)

// Theme Colors
var (
	ColBg      = rl.NewColor(8, 9, 14, 255)
	ColAccent  = rl.NewColor(104, 224, 255, 255)
	ColPink    = rl.NewColor(255, 125, 242, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(150, 150, 160, 255)
	ColTextDim = rl.NewColor(70, 70, 80, 255)
	ColMetal   = rl.NewColor(176, 176, 176, 255)
	ColWing    = rl.NewColor(136, 136, 136, 255)
	ColGlow    = rl.NewColor(255, 208, 128, 255)
)

const defaultFont = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"

// Options configures the window.
type Options struct {
	Width, Height int
	FPS           int
	Fullscreen    bool
	FontPath      string
	Presets       []params.Preset
	Seed          int64
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 || o.Height <= 0 {
		o.Width, o.Height = 1280, 720
	}
	if o.FPS <= 0 {
		o.FPS = 60
	}
	return o
}

// App is the window host: it owns the raylib window, routes key presses
// into the parameter store and composes each driver frame.
type App struct {
	store   *params.Store
	audio   *audio.Engine
	ps      *particles.System
	driver  *sim.Driver
	presets []params.Preset
	log     zerolog.Logger

	Font           rl.Font
	scene          rl.RenderTexture2D
	sceneW, sceneH int32

	field      params.Field
	Telemetry  []float64 // thrust history
	MaxHistory int
	blastRng   particles.Rand
	start      time.Time
	quit       bool
}

func initWindow(o Options) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(o.Width), int32(o.Height), "pulsejet")
	rl.SetTargetFPS(int32(o.FPS))
	rl.SetExitKey(0)
	if o.Fullscreen {
		rl.ToggleFullscreen()
	}
}

func loadFont(path string) rl.Font {
	if path == "" {
		path = defaultFont
	}
	if _, err := os.Stat(path); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(path, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp wires the window host around the shared store, audio engine and
// particle system. The window itself is created by Run.
func NewApp(store *params.Store, engine *audio.Engine, ps *particles.System, opts Options, log zerolog.Logger) *App {
	a := &App{
		store:      store,
		audio:      engine,
		ps:         ps,
		presets:    opts.Presets,
		log:        log.With().Str("component", "gui").Logger(),
		MaxHistory: 240,
		Telemetry:  make([]float64, 0, 240),
		blastRng:   particles.NewRand(opts.Seed),
	}
	a.driver = sim.New(store, ps, a, a, engine, log)
	return a
}

// Run opens the window and blocks until it is closed.
func Run(store *params.Store, engine *audio.Engine, ps *particles.System, opts Options, log zerolog.Logger) error {
	opts = opts.withDefaults()
	a := NewApp(store, engine, ps, opts, log)
	initWindow(opts)
	a.Font = loadFont(opts.FontPath)
	a.RunLoop()
	return a.shutdown()
}

func (a *App) RunLoop() {
	a.start = time.Now()
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()

		rl.BeginDrawing()
		rl.ClearBackground(ColBg)
		a.driver.Tick(time.Since(a.start))
		rl.EndDrawing()
	}
}

func (a *App) shutdown() error {
	a.driver.Stop()
	err := a.audio.Close()
	if a.sceneW > 0 {
		rl.UnloadRenderTexture(a.scene)
	}
	rl.CloseWindow()
	a.log.Info().Uint64("frames", a.driver.Frame().Index).Msg("window closed")
	return err
}

// Size reports the drawable area. The surface is not ready while the window
// is minimized.
func (a *App) Size() (float64, float64, bool) {
	if !rl.IsWindowReady() || rl.IsWindowMinimized() {
		return 0, 0, false
	}
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	return float64(w), float64(h), w > 0 && h > 0
}

// Update handles input for the coming frame.
func (a *App) Update() {
	// Any click counts as the gesture that unlocks audio output.
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.audio.Init(a.store.Load())
	}

	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		a.quit = true
	case rl.IsKeyPressed(rl.KeyM):
		a.audio.Init(a.store.ToggleMute())
	case rl.IsKeyPressed(rl.KeySpace):
		a.store.TogglePause()
	case rl.IsKeyPressed(rl.KeyC):
		a.store.CycleCamera()
	case rl.IsKeyPressed(rl.KeyD):
		a.store.CycleDesign()
	case rl.IsKeyPressed(rl.KeyF):
		rl.ToggleFullscreen()
	case rl.IsKeyPressed(rl.KeyR):
		a.ps.Reset()
		a.Telemetry = a.Telemetry[:0]
	case rl.IsKeyPressed(rl.KeyA):
		a.store.Update(func(p params.Params) params.Params { p.ShowArrows = !p.ShowArrows; return p })
	case rl.IsKeyPressed(rl.KeyH):
		a.store.Update(func(p params.Params) params.Params { p.ShowHeat = !p.ShowHeat; return p })
	case rl.IsKeyPressed(rl.KeyW):
		a.store.Update(func(p params.Params) params.Params { p.ShowWaves = !p.ShowWaves; return p })
	case rl.IsKeyPressed(rl.KeyDown), rl.IsKeyPressed(rl.KeyTab):
		a.field = a.field.Next()
	case rl.IsKeyPressed(rl.KeyUp):
		fields := params.Fields()
		a.field = fields[(int(a.field)+len(fields)-1)%len(fields)]
	}

	for i, pr := range a.presets {
		if i < 9 && rl.IsKeyPressed(int32(rl.KeyOne)+int32(i)) {
			a.store.ApplyPreset(pr)
			a.log.Debug().Str("preset", pr.Name).Msg("preset applied")
		}
	}

	step := 1.0
	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		step = 10
	}
	if rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressedRepeat(rl.KeyRight) {
		a.store.Nudge(a.field, step)
	}
	if rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressedRepeat(rl.KeyLeft) {
		a.store.Nudge(a.field, -step)
	}
}

// ensureTarget keeps the scene texture at the window size. The texture
// holds the last drawn scene so a paused frame keeps showing it.
func (a *App) ensureTarget(w, h int32) {
	if w == a.sceneW && h == a.sceneH {
		return
	}
	if a.sceneW > 0 {
		rl.UnloadRenderTexture(a.scene)
	}
	a.scene = rl.LoadRenderTexture(w, h)
	a.sceneW, a.sceneH = w, h
}
