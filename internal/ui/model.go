package ui

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"searchbox/internal/config"
	"searchbox/internal/eventbus"
	"searchbox/internal/searchapi"
	"searchbox/internal/ui/adapters"
	"searchbox/internal/ui/coordinator"
	"searchbox/internal/ui/handlers"
	"searchbox/internal/ui/input"
	inputtypes "searchbox/internal/ui/input/types"
	"searchbox/internal/ui/services/debounce"
	"searchbox/internal/ui/services/pagination"
	"searchbox/internal/ui/services/requests"
	"searchbox/internal/ui/services/suggestions"
	"searchbox/internal/ui/state"
	"searchbox/internal/ui/viewmodels"
	"searchbox/internal/ui/views"
)

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState

	help     help.Model
	spinner  spinner.Model
	spinning bool // a spinner tick chain is running

	// Services
	coord    *coordinator.Coordinator
	store    *suggestions.Service
	requests *requests.Controller
	inputCtx *adapters.InputContextAdapter

	// Handlers
	inputHandler *input.Handler
	eventHandler *handlers.EventHandler
	viewModel    *viewmodels.ViewModel
	renderer     *views.Renderer
	pager        *PagerOps

	// layout of the last render, for resolving clicks
	layout views.Layout

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model. bus may be nil.
func NewModel(bus eventbus.EventBus, cfg *config.Config, fetcher requests.Fetcher) *Model {
	appState := state.NewAppState()

	m := &Model{
		bus:          bus,
		config:       cfg,
		state:        appState,
		help:         help.New(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		coord:        coordinator.NewCoordinator(context.Background(), cfg, fetcher, bus),
		inputHandler: input.New(cfg.Placeholder),
		eventHandler: handlers.NewEventHandler(appState),
		renderer:     views.NewRenderer(),
		pager:        NewPagerOps(),
	}

	m.store = m.coord.Suggestions
	m.requests = m.coord.Requests
	m.inputCtx = adapters.NewInputContextAdapter(m.store, m.requests)

	m.viewModel = viewmodels.NewViewModel(appState, cfg, m.store, m.requests, m.coord.Highlight, m.coord.Pagination)
	m.viewModel.SetHelp(m.help, m.inputHandler.Keys())

	// The input state follows the panel: a shown list means Suggesting
	m.coord.OnPanelVisibility(func(visible bool) {
		m.inputHandler.SyncPanel(visible, m.inputCtx)
	})

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return m.inputHandler.Init()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.SetDimensions(msg.Width, msg.Height)
		m.help.Width = msg.Width
		m.inputHandler.SetWidth(msg.Width - 24)
		return m, nil

	case tea.KeyMsg:
		if m.state.InPagerMode {
			return m, nil
		}
		actions, cmd := m.inputHandler.HandleKey(msg, m.inputCtx)
		return m, tea.Batch(cmd, m.processActions(actions))

	case tea.MouseMsg:
		if m.state.InPagerMode {
			return m, nil
		}
		return m, m.handleMouse(msg)

	case debounce.FiredMsg:
		return m, m.withSpinner(m.coord.Debounce.Fire(msg))

	case requests.SuggestionsMsg:
		if err := m.requests.ApplySuggestions(msg); err != nil {
			logRequestError(err, "Suggestions for %q", msg.Term)
		}
		return m, nil

	case requests.ResultsMsg:
		if err := m.requests.ApplyResults(msg); err != nil {
			logRequestError(err, "Search for %q page %d", msg.Term, msg.Page)
		}
		return m, nil

	case pagination.PageChangeMsg:
		return m, m.withSpinner(m.requests.ChangePage(msg.Page))

	case spinner.TickMsg:
		if !m.requests.Loading() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and everything else the input field understands
	cmd := m.inputHandler.Update(msg)
	return m, tea.Batch(cmd, m.handleNonKeyboardMsg(msg))
}

// handleNonKeyboardMsg handles application messages that are not input
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case EventMsg:
		return m.eventHandler.HandleEvent(msg.Event)

	case handlers.ClearStatusMsg:
		m.eventHandler.ClearStatus(msg)

	case pauseRenderingMsg:
		// Signal that rendering should be paused for the pager
		m.state.InPagerMode = true

	case resumeRenderingMsg:
		m.state.InPagerMode = false

	case pagerMsg:
		m.state.InPagerMode = false
		if msg.err != nil {
			log.Printf("Pager failed: %v", msg.err)
			return m.eventHandler.Status("Pager failed: " + msg.err.Error())
		}
	}
	return nil
}

// handleMouse resolves a left click against the last render
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	zone, ok := m.layout.Hit(msg.X, msg.Y)
	if !ok {
		return nil
	}

	var ev inputtypes.PointerEvent
	switch zone.Target {
	case views.HitSuggestion:
		s, ok := m.store.At(zone.Index)
		if !ok {
			return nil
		}
		ev = inputtypes.PointerEvent{Target: inputtypes.PointerSuggestion, Term: adapters.CommitTerm(s)}
	case views.HitSearchButton:
		ev = inputtypes.PointerEvent{Target: inputtypes.PointerSearchButton}
	case views.HitPage:
		ev = inputtypes.PointerEvent{Target: inputtypes.PointerPage, Direction: zone.Kind}
	default:
		return nil
	}

	return m.processActions(m.inputHandler.HandlePointer(ev, m.inputCtx))
}

func (m *Model) processActions(actions []inputtypes.Action) tea.Cmd {
	var cmds []tea.Cmd
	for _, action := range actions {
		if cmd := m.processAction(action); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.ScheduleSuggestAction:
		return m.coord.ScheduleSuggestions(a.Term)

	case inputtypes.ClearSuggestionsAction:
		return m.coord.ScheduleSuggestions("")

	case inputtypes.MoveSelectionAction:
		m.store.MoveSelection(suggestions.Direction(a.Direction))

	case inputtypes.HidePanelAction:
		m.store.Hide()

	case inputtypes.CommitAction:
		return m.withSpinner(m.coord.Commit(a.Term, a.Page))

	case inputtypes.ChangePageAction:
		control, ok := m.coord.Pagination.Find(m.viewModel.Controls(), pagination.Kind(a.Direction))
		if !ok {
			return nil
		}
		return m.coord.Pagination.Click(control)

	case inputtypes.FocusInputAction:
		return m.inputHandler.Focus()

	case inputtypes.OpenPagerAction:
		return m.openPager()

	case inputtypes.ToggleHelpAction:
		m.help.ShowAll = !m.help.ShowAll

	case inputtypes.QuitAction:
		m.Close()
		return tea.Quit
	}
	return nil
}

// openPager shows the displayed result page in ov
func (m *Model) openPager() tea.Cmd {
	panel := m.viewModel.ResultsPanel()
	if !panel.Shown || panel.IsError {
		return m.eventHandler.Status("No results to page")
	}
	if m.program == nil {
		return nil
	}

	content := views.RenderResultsPlain(panel)
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pager.Show(content)
		m.program.Send(resumeRenderingMsg{})
		return pagerMsg{err: err}
	}
}

// logRequestError logs a failed request. Stale responses are not failures.
func logRequestError(err error, format string, args ...interface{}) {
	if errors.Is(err, requests.ErrStaleResponse) {
		return
	}
	what := fmt.Sprintf(format, args...)
	if !searchapi.IsRecoverable(err) {
		log.Printf("%s failed unexpectedly: %v", what, err)
		return
	}
	log.Printf("%s failed: %v", what, err)
}

// withSpinner starts the loading spinner alongside a request command
func (m *Model) withSpinner(cmd tea.Cmd) tea.Cmd {
	if cmd == nil || m.spinning {
		return cmd
	}
	m.spinning = true
	return tea.Batch(cmd, m.spinner.Tick)
}

// Close cancels pending work. Responses still in flight are discarded.
func (m *Model) Close() {
	m.coord.Close()
}

// View renders the UI
func (m *Model) View() string {
	if m.state.Width == 0 {
		return "Loading..."
	}

	m.viewModel.SetInput(m.inputHandler.TextInput().View(), m.inputHandler.CurrentMode().String())
	m.viewModel.SetSpinner(m.spinner.View())
	m.viewModel.SetHelp(m.help, m.inputHandler.Keys())

	out, layout := m.renderer.Render(m.viewModel.BuildViewState())
	m.layout = layout
	return out
}
