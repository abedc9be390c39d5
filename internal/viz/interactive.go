package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/san-kum/pulsejet/internal/audio"
	"github.com/san-kum/pulsejet/internal/params"
	"github.com/san-kum/pulsejet/internal/particles"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// model is the launcher: pick a design, then an operating point, then the
// live view takes over.
type model struct {
	state, cursor int
	designs       []params.Design
	design        params.Design
	presets       []params.Preset
	width, height int
	live          Model
}

// NewInteractiveApp starts at the design menu. The live view is built up
// front so the store and audio engine are shared.
func NewInteractiveApp(store *params.Store, engine *audio.Engine, ps *particles.System, opts Options, log zerolog.Logger) tea.Model {
	return model{
		state:   stateMenu,
		designs: params.Designs(),
		design:  store.Load().Design,
		presets: opts.Presets,
		width:   80,
		height:  24,
		live:    NewModel(store, engine, ps, opts, log),
	}
}

// RunInteractive runs the launcher and then the live view.
func RunInteractive(store *params.Store, engine *audio.Engine, ps *particles.System, opts Options, log zerolog.Logger) error {
	_, err := tea.NewProgram(NewInteractiveApp(store, engine, ps, opts, log), tea.WithAltScreen()).Run()
	if cerr := engine.Close(); err == nil {
		err = cerr
	}
	return err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		return m.live.Update(msg)
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.designs)
	if m.state == stateConfig {
		n = len(m.presets) + 1
	}
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "esc":
		if m.state == stateConfig {
			m.state, m.cursor = stateMenu, int(m.design)
		}
	case "enter", " ":
		if m.state == stateMenu {
			m.design = m.designs[m.cursor]
			m.state, m.cursor = stateConfig, 0
			return m, nil
		}
		return m.start()
	}
	return m, nil
}

// start applies the choices and hands control to the live view. The last
// preset row keeps the configured knobs.
func (m model) start() (tea.Model, tea.Cmd) {
	store := m.live.store
	store.SetDesign(m.design)
	if m.cursor < len(m.presets) {
		store.ApplyPreset(m.presets[m.cursor])
	}
	m.state = stateSim
	m.live.resize(m.width, m.height)
	// Choosing counts as the gesture that unlocks audio output.
	m.live.audio.Init(store.Load())
	return m.live, m.live.Init()
}

func (m model) View() string {
	switch m.state {
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.live.View()
	}
	return m.viewMenu()
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString(cyan.Render("pulsejet") + "  " + dim.Render("choose an airframe") + "\n\n")
	for i, d := range m.designs {
		if i == m.cursor {
			b.WriteString(white.Render("> "+d.String()) + "\n")
		} else {
			b.WriteString(dim.Render("  "+d.String()) + "\n")
		}
	}
	b.WriteString("\n" + dimmer.Render("↑↓ move  enter select  q quit"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m model) viewConfig() string {
	var b strings.Builder
	b.WriteString(cyan.Render("pulsejet") + "  " + dim.Render(m.design.String()) + "\n\n")
	for i := 0; i <= len(m.presets); i++ {
		line := "configured knobs"
		if i < len(m.presets) {
			pr := m.presets[i]
			line = fmt.Sprintf("%-8s tube %.1f m  pulse %5.0f Hz  fuel %.2f", pr.Name, pr.TubeLength, pr.PulseFrequency, pr.FuelFlow)
		}
		if i == m.cursor {
			b.WriteString(white.Render("> "+line) + "\n")
		} else {
			b.WriteString(dim.Render("  "+line) + "\n")
		}
	}
	b.WriteString("\n" + dimmer.Render("↑↓ move  enter run  esc back  q quit"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
