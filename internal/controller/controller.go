// Package controller owns hnbar's application state.
//
// # Architecture
//
//	┌──────┐  Action   ┌────────────┐  Reduce  ┌──────────┐
//	│ View │ ────────> │ Controller │ ───────> │ AppState │
//	└──────┘           └────────────┘          └──────────┘
//	                     │       ▲
//	              tea.Cmd│       │ActionMsg
//	                     ▼       │
//	              ┌─────────┬─────────┐
//	              │ hn API  │ SQLite  │
//	              └─────────┴─────────┘
//
// Dispatch applies the pure reducer and then runs the effects of the action:
// persistence happens inline, network fetches are queued as tea.Cmds that
// Flush hands to the bubbletea runtime. Fetch results come back as ActionMsg
// and are dispatched like any other action.
//
// # Concurrency
//
// A Controller is not safe for concurrent use. It is owned by the bubbletea
// update loop; the commands it returns never touch it.
package controller

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/abelbrown/hnbar/internal/hn"
	"github.com/abelbrown/hnbar/internal/otel"
	"github.com/abelbrown/hnbar/internal/state"
)

// Fetcher loads stories from Hacker News.
type Fetcher interface {
	TopStories(ctx context.Context) ([]int, error)
	Item(ctx context.Context, id int) (hn.Item, error)
	Items(ctx context.Context, ids []int) ([]hn.Item, error)
}

// Store persists what the user did.
type Store interface {
	SaveFavorite(st state.Story, at time.Time) error
	DeleteFavorite(id int) error
	MarkRead(at time.Time, ids ...int) error
	MarkNotified(id int, at time.Time) (bool, error)
	SaveFilter(f state.Filter) error
}

// Options tunes a Controller. Zero fields take defaults.
type Options struct {
	// PageSize is how many stories one RequestStories starts loading.
	PageSize int

	// FetchTimeout bounds each API call.
	FetchTimeout time.Duration

	Now func() time.Time
}

// topPurpose is what to do once a ranking fetch returns.
type topPurpose int

const (
	topIdle topPurpose = iota
	topForPage
	topForRefresh
)

// Controller is the single writer of state.AppState.
type Controller struct {
	ctx     context.Context
	state   state.AppState
	fetcher Fetcher
	store   Store
	log     *log.Logger
	journal *otel.Logger
	opts    Options

	top     topPurpose
	pending []tea.Cmd
}

// New creates a Controller starting from initial. Commands it produces stop
// when ctx is cancelled.
func New(ctx context.Context, initial state.AppState, f Fetcher, s Store, logger *log.Logger, journal *otel.Logger, opts Options) *Controller {
	if opts.PageSize <= 0 {
		opts.PageSize = 30
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 20 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		ctx:     ctx,
		state:   initial,
		fetcher: f,
		store:   s,
		log:     logger,
		journal: journal,
		opts:    opts,
	}
}

// State returns the current state. The value is a snapshot; later dispatches
// do not change it.
func (c *Controller) State() state.AppState {
	return c.state
}

// Dispatch applies a and runs its effects.
func (c *Controller) Dispatch(a state.Action) {
	prev := c.state
	c.state = state.Reduce(prev, a)

	if otel.TraceEnabled() {
		c.journal.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindActionDispatch, Comp: "controller", Action: a.Kind()})
	}
	c.log.Debug("dispatch", "action", a.Kind())

	c.effects(prev, a)
}

// Flush returns the commands queued since the last call, or nil.
func (c *Controller) Flush() tea.Cmd {
	if len(c.pending) == 0 {
		return nil
	}
	cmds := c.pending
	c.pending = nil
	return tea.Batch(cmds...)
}

func (c *Controller) queue(cmd tea.Cmd) {
	c.pending = append(c.pending, cmd)
}

// fail records a collaborator failure in the state.
func (c *Controller) fail(kind otel.EventKind, err error) {
	c.log.Error("effect failed", "kind", kind, "err", err)
	c.journal.Error(kind, "controller", err)
	c.state = state.Reduce(c.state, state.Failed{Err: err})
}
