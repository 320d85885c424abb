package viz

import (
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/rodviz/internal/config"
	"github.com/san-kum/rodviz/internal/playback"
	"github.com/san-kum/rodviz/internal/rod"
)

const (
	screenForm = iota
	screenPlayer
)

// stateMsg carries a playback change into the update loop.
type stateMsg playback.State

type Options struct {
	Config *config.Config
	// SkipForm generates the trace from Config immediately.
	SkipForm bool
	Logger   *slog.Logger
}

type model struct {
	screen        int
	form          form
	prices        []float64
	trace         []rod.Step
	ctrl          *playback.Controller
	changes       chan playback.State
	theme         Theme
	showHelp      bool
	width, height int
	logger        *slog.Logger
}

func newModel(opts Options) model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	changes := make(chan playback.State, 1)
	m := model{
		screen:  screenForm,
		form:    newForm(cfg.RodLength, cfg.Prices),
		changes: changes,
		theme:   GetTheme(cfg.Theme),
		width:   100,
		height:  40,
		logger:  logger,
		ctrl: playback.New(0,
			playback.WithInterval(cfg.Interval),
			playback.WithLogger(logger),
			playback.WithOnChange(func(s playback.State) {
				select {
				case changes <- s:
				default:
				}
			}),
		),
	}

	if opts.SkipForm {
		m = m.submit()
	}
	return m
}

func (m model) Init() tea.Cmd { return m.listen() }

// listen waits for the next playback change. A pending change already
// queued covers any that were dropped, since View reads the controller.
func (m model) listen() tea.Cmd {
	ch := m.changes
	return func() tea.Msg { return stateMsg(<-ch) }
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case stateMsg:
		return m, m.listen()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.screen {
	case screenForm:
		return m.formKey(msg)
	case screenPlayer:
		return m.playerKey(msg)
	}
	return m, nil
}

func (m model) formKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "esc":
		if m.trace != nil {
			m.screen = screenPlayer
			return m, nil
		}
		return m.quit()
	}

	var submit bool
	m.form, submit = m.form.update(msg)
	if submit {
		m = m.submit()
	}
	return m, nil
}

func (m model) playerKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m.quit()
	case " ", "p":
		m.ctrl.Toggle()
	case "right", "l":
		m.ctrl.StepForward()
	case "left", "h":
		m.ctrl.StepBack()
	case "]":
		m.ctrl.Seek(m.ctrl.State().Position + 10)
	case "[":
		m.ctrl.Seek(m.ctrl.State().Position - 10)
	case "g", "home":
		m.ctrl.Seek(0)
	case "G", "end":
		m.ctrl.Seek(len(m.trace) - 1)
	case "r":
		m.ctrl.Reset()
	case "e":
		m.ctrl.Pause()
		m.form.err = ""
		m.screen = screenForm
	case "t":
		m.theme = NextTheme(m.theme)
	case "?":
		m.showHelp = true
	}
	return m, nil
}

// submit validates the form and swaps in a fresh trace. Playback is
// cancelled by Load before the new length takes effect.
func (m model) submit() model {
	n, prices, err := m.form.parse()
	if err == nil {
		var trace []rod.Step
		if trace, err = rod.Generate(prices, n); err == nil {
			m.ctrl.Load(len(trace))
			m.trace, m.prices = trace, prices
			m.form.err = ""
			m.screen = screenPlayer
			m.logger.Info("trace generated", "length", n, "steps", len(trace))
			return m
		}
	}

	m.form.err = err.Error()
	m.screen = screenForm
	m.logger.Debug("input rejected", "error", err)
	return m
}

func (m model) quit() (model, tea.Cmd) {
	m.ctrl.Close()
	return m, tea.Quit
}

func (m model) View() string {
	s := newStyles(m.theme)
	if m.screen == screenPlayer && len(m.trace) > 0 {
		return m.viewPlayer(s)
	}
	return m.form.view(s)
}

// Run starts the interactive program and blocks until it exits.
func Run(opts Options) error {
	m := newModel(opts)
	defer m.ctrl.Close()

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
