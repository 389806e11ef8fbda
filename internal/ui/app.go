package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/hnbar/internal/controller"
	"github.com/abelbrown/hnbar/internal/otel"
	"github.com/abelbrown/hnbar/internal/state"
	"github.com/abelbrown/hnbar/internal/view"
)

// noticeDuration is how long a threshold notice stays in the header.
const noticeDuration = 8 * time.Second

// Slider steps for the score limit.
const (
	sliderStep    = 10
	sliderBigStep = 100
)

// Options configures an App.
type Options struct {
	// Hydrate restores the previous session on Init.
	Hydrate state.Hydrate

	Ring    *otel.RingBuffer
	Journal *otel.Logger
}

// App is the root Bubble Tea model. It owns the cursor and the transient
// decorations; the story state lives in the controller.
type App struct {
	ctrl *controller.Controller
	view view.StoryView
	host *host
	opts Options

	help    help.Model
	spinner spinner.Model

	cursor    int
	width     int
	height    int
	ready     bool
	notice    string
	noticeSeq int
	showDebug bool
}

// NewApp creates the App around ctrl. Links open through browser.
func NewApp(ctrl *controller.Controller, browser Browser, opts Options) App {
	h := &host{browser: browser, journal: opts.Journal}
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	return App{
		ctrl:    ctrl,
		view:    view.New(ctrl, ctrl, h),
		host:    h,
		opts:    opts,
		help:    help.New(),
		spinner: sp,
	}
}

// Init restores the saved session and loads the first page.
func (a App) Init() tea.Cmd {
	a.ctrl.Dispatch(a.opts.Hydrate)
	a.view.ScrollToEnd()
	return tea.Batch(a.spinner.Tick, a.ctrl.Flush())
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.ready = true

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case controller.ActionMsg:
		for _, act := range msg.Actions {
			a.ctrl.Dispatch(act)
		}

	case controller.NoticeMsg:
		a.noticeSeq++
		a.notice = fmt.Sprintf("▲ %s reached %d points", msg.Story.Title, msg.Story.Score)
		seq := a.noticeSeq
		cmds = append(cmds, tea.Tick(noticeDuration, func(time.Time) tea.Msg {
			return noticeExpired{seq: seq}
		}))

	case noticeExpired:
		if msg.seq == a.noticeSeq {
			a.notice = ""
		}

	case tea.MouseMsg:
		a = a.handleMouse(msg)

	case tea.KeyMsg:
		a = a.handleKey(msg)
	}

	if err := a.host.takeErr(); err != nil {
		a.ctrl.Dispatch(state.Failed{Err: err})
	}
	a.clampCursor()
	cmds = append(cmds, a.ctrl.Flush())

	if a.host.quitting {
		return a, tea.Quit
	}
	return a, tea.Batch(cmds...)
}

func (a App) handleKey(msg tea.KeyMsg) App {
	if a.showDebug {
		if key.Matches(msg, keys.Debug, keys.Escape) {
			a.showDebug = false
			return a
		}
		if !key.Matches(msg, keys.Quit) {
			return a
		}
	}

	tab := a.ctrl.State().Filter.ActiveTab
	rows := a.view.Rows()
	limit := a.ctrl.State().Filter.ScoreLimit

	switch {
	case key.Matches(msg, keys.Quit):
		a.view.Quit()

	case key.Matches(msg, keys.Debug):
		a.showDebug = true

	case key.Matches(msg, keys.Down):
		a.moveBy(1)

	case key.Matches(msg, keys.Up):
		a.moveBy(-1)

	case key.Matches(msg, keys.Top):
		a.cursor = 0

	case key.Matches(msg, keys.Bottom):
		a.moveBy(a.rowCount())

	case key.Matches(msg, keys.Open):
		if tab == state.TabInfo {
			if a.cursor < len(view.InfoLinks) {
				a.view.OpenLink(view.InfoLinks[a.cursor])
			}
		} else if a.cursor < len(rows) {
			a.view.OpenStory(rows[a.cursor])
		}

	case key.Matches(msg, keys.Favorite):
		if a.cursor < len(rows) {
			a.view.ToggleFavorite(rows[a.cursor])
		}

	case key.Matches(msg, keys.Comments):
		if a.cursor < len(rows) {
			a.view.OpenComments(rows[a.cursor])
		}

	case key.Matches(msg, keys.FrontPage):
		a.view.OpenFrontPage()

	case key.Matches(msg, keys.Info):
		a.switchTab(state.TabInfo)

	case key.Matches(msg, keys.TopStories):
		a.switchTab(state.TabTopStories)

	case key.Matches(msg, keys.Favorites):
		a.switchTab(state.TabFavorites)

	case key.Matches(msg, keys.NextTab):
		a.switchTab(tab.Next())

	case key.Matches(msg, keys.MarkRead):
		a.view.MarkAllAsRead()

	case key.Matches(msg, keys.Lower):
		a.view.MoveSlider(limit - sliderStep)

	case key.Matches(msg, keys.Raise):
		a.view.MoveSlider(limit + sliderStep)

	case key.Matches(msg, keys.LowerMore):
		a.view.MoveSlider(limit - sliderBigStep)

	case key.Matches(msg, keys.RaiseMore):
		a.view.MoveSlider(limit + sliderBigStep)

	case key.Matches(msg, keys.Refresh):
		a.ctrl.Dispatch(state.RefreshStories{})
	}
	return a
}

func (a App) handleMouse(msg tea.MouseMsg) App {
	if a.showDebug || msg.Action != tea.MouseActionPress {
		return a
	}
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		a.moveBy(1)
	case tea.MouseButtonWheelUp:
		a.moveBy(-1)
	case tea.MouseButtonLeft:
		a.click(a.view.HitTest(a.viewport(), msg.X, msg.Y))
	}
	return a
}

// click runs the handler of the element under the pointer.
func (a *App) click(hit view.Hit) {
	switch hit.Target {
	case view.TargetTitle:
		a.view.OpenFrontPage()
	case view.TargetInfoButton:
		a.switchTab(state.TabInfo)
	case view.TargetTab:
		a.switchTab(hit.Tab)
	case view.TargetRow:
		a.cursor = hit.Index
		a.view.OpenStory(a.view.Rows()[hit.Index])
	case view.TargetInfoLink:
		a.cursor = hit.Index
		a.view.OpenLink(view.InfoLinks[hit.Index])
	case view.TargetMarkAllRead:
		a.view.MarkAllAsRead()
	case view.TargetSlider:
		a.view.MoveSlider(hit.Value)
	case view.TargetQuit:
		a.view.Quit()
	}
}

// moveBy moves the cursor by delta rows. Reaching the last row of a story
// list asks for more.
func (a *App) moveBy(delta int) {
	n := a.rowCount()
	a.cursor = max(min(a.cursor+delta, n-1), 0)

	tab := a.ctrl.State().Filter.ActiveTab
	listed := tab == state.TabTopStories || tab == state.TabFavorites
	if listed && delta > 0 && (n == 0 || a.cursor == n-1) {
		a.view.ScrollToEnd()
	}
}

func (a *App) switchTab(t state.Tab) {
	if t != a.ctrl.State().Filter.ActiveTab {
		a.cursor = 0
	}
	a.view.ShowTab(t)
}

func (a App) rowCount() int {
	if a.ctrl.State().Filter.ActiveTab == state.TabInfo {
		return len(view.InfoLinks)
	}
	return len(a.view.Rows())
}

func (a *App) clampCursor() {
	a.cursor = max(min(a.cursor, a.rowCount()-1), 0)
}

func (a App) viewport() view.Viewport {
	return view.Viewport{
		Width:   a.width,
		Height:  a.height - 1, // help bar
		Cursor:  a.cursor,
		Spinner: a.spinner.View(),
		Notice:  a.notice,
	}
}

// View renders the story screen, or the debug overlay over it.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}
	if a.showDebug {
		var dropped uint64
		if a.opts.Journal != nil {
			dropped = a.opts.Journal.Dropped()
		}
		overlay := debugOverlay(a.opts.Ring, dropped, a.width, a.height)
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, overlay)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		a.view.Render(a.viewport()),
		HelpBar.Render(a.help.View(keys)),
	)
}
