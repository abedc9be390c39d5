package viz

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/san-kum/pulsejet/internal/audio"
	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/particles"
)

var testPresets = []params.Preset{
	{Name: "Min", TubeLength: 0.6, PulseFrequency: 5, FuelFlow: 0.2},
	{Name: "Idle", TubeLength: 1.2, PulseFrequency: 10, FuelFlow: 0.25},
}

func newTestModel(t *testing.T) (Model, *params.Store, *audio.Engine) {
	t.Helper()
	store := params.NewStore(params.Default())
	engine := audio.NewEngine(&audio.OfflineHost{}, audio.Config{SampleRate: 8000, BufferFrames: 256}, zerolog.Nop())
	t.Cleanup(func() { engine.Close() })
	ps := particles.New(particles.DefaultConfig(), particles.NewRand(1))
	m := NewModel(store, engine, ps, Options{FPS: 30, Presets: testPresets}, zerolog.Nop())
	return m, store, engine
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestTickWaitsForWindowSize(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, cmd := update(m, TickMsg(m.start.Add(time.Second/30)))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.driver.Frame().Index != 0 {
		t.Error("no frame should be composed before the terminal size is known")
	}

	m, _ = update(m, tea.WindowSizeMsg{Width: 140, Height: 40})
	m, _ = update(m, TickMsg(m.start.Add(2*time.Second/30)))
	if m.driver.Frame().Index != 1 {
		t.Fatalf("expected one frame, got %d", m.driver.Frame().Index)
	}
	if len(m.scene.canvas.String()) == 0 || m.View() == "" {
		t.Error("expected a rendered view")
	}
}

func TestSceneSizeIsVirtual(t *testing.T) {
	s := newScene(ThemeNeon, 1)
	if _, _, ok := s.Size(); ok {
		t.Error("scene should not be ready before resize")
	}
	s.resize(100, 30)
	w, h, ok := s.Size()
	if !ok || w != virtualWidth {
		t.Fatalf("size = %v,%v,%v", w, h, ok)
	}
	if h != 768 {
		t.Errorf("height = %v, want 768", h)
	}
}

func TestKeysDriveStore(t *testing.T) {
	m, store, engine := newTestModel(t)

	m, _ = update(m, runes("m"))
	if store.Load().Muted {
		t.Error("m should unmute")
	}
	if engine.State() != audio.Running {
		t.Errorf("first key press should start audio, state %v", engine.State())
	}

	m, _ = update(m, runes("2"))
	if p := store.Load(); p.TubeLength != 1.2 || p.PulseFrequency != 10 {
		t.Errorf("preset 2 not applied: %+v", p)
	}

	before := store.Load().TubeLength
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRight})
	if got := store.Load().TubeLength; got <= before {
		t.Errorf("right should nudge tube length up: %v -> %v", before, got)
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.field != params.FieldPulseFrequency {
		t.Errorf("tab should select the next knob, got %v", m.field)
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeySpace})
	if !store.Load().Paused {
		t.Error("space should pause")
	}

	_, cmd := update(m, runes("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected a quit message")
	}
	if !m.driver.Stopped() {
		t.Error("quit should stop the driver")
	}
}

func TestPausedKeepsLastScene(t *testing.T) {
	m, store, _ := newTestModel(t)
	m, _ = update(m, tea.WindowSizeMsg{Width: 140, Height: 40})
	m, _ = update(m, TickMsg(m.start.Add(20*time.Millisecond)))
	m, _ = update(m, TickMsg(m.start.Add(40*time.Millisecond)))

	store.TogglePause()
	m, _ = update(m, TickMsg(m.start.Add(60*time.Millisecond)))
	frozen := m.scene.canvas.String()
	history := len(m.scene.history)

	m, _ = update(m, TickMsg(m.start.Add(80*time.Millisecond)))
	if m.scene.canvas.String() != frozen {
		t.Error("paused frames should keep the last scene")
	}
	if len(m.scene.history) != history {
		t.Error("paused frames should not extend the thrust history")
	}
}

func TestLauncherHandsOff(t *testing.T) {
	store := params.NewStore(params.Default())
	engine := audio.NewEngine(&audio.OfflineHost{}, audio.Config{SampleRate: 8000}, zerolog.Nop())
	defer engine.Close()
	ps := particles.New(particles.DefaultConfig(), particles.NewRand(1))

	var app tea.Model = NewInteractiveApp(store, engine, ps, Options{Presets: testPresets}, zerolog.Nop())
	app, _ = app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app, _ = app.Update(tea.KeyMsg{Type: tea.KeyDown})
	app, _ = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app, _ = app.Update(tea.KeyMsg{Type: tea.KeyDown})
	app, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	live, ok := app.(Model)
	if !ok {
		t.Fatalf("expected the live model, got %T", app)
	}
	if cmd == nil {
		t.Error("live view should start ticking")
	}
	p := store.Load()
	if p.Design != params.DesignBuzzBomb || p.TubeLength != 1.2 {
		t.Errorf("choices not applied: %v %+v", p.Design, p)
	}
	if !live.scene.ready {
		t.Error("live view should inherit the terminal size")
	}
	if engine.State() != audio.Running {
		t.Error("launch should start audio")
	}
}
