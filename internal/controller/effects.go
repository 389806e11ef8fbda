package controller

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/hnbar/internal/hn"
	"github.com/abelbrown/hnbar/internal/otel"
	"github.com/abelbrown/hnbar/internal/state"
)

func (c *Controller) effects(prev state.AppState, a state.Action) {
	now := c.opts.Now()

	switch a := a.(type) {
	case state.ClickedStory:
		if err := c.store.MarkRead(now, a.Story.ID); err != nil {
			c.fail(otel.KindStoreError, err)
		}

	case state.MarkAllAsRead:
		ids := make([]int, len(a.Stories))
		for i, st := range a.Stories {
			ids[i] = st.ID
		}
		if err := c.store.MarkRead(now, ids...); err != nil {
			c.fail(otel.KindStoreError, err)
		}

	case state.AddToFavorites:
		fav, _ := c.state.Favorites.Get(a.Story.ID)
		if err := c.store.SaveFavorite(fav, now); err != nil {
			c.fail(otel.KindStoreError, err)
		}

	case state.RemoveFromFavorites:
		if err := c.store.DeleteFavorite(a.Story.ID); err != nil {
			c.fail(otel.KindStoreError, err)
		}

	case state.SwitchTab, state.UpdateScoreLimit:
		if c.state.Filter != prev.Filter {
			if err := c.store.SaveFilter(c.state.Filter); err != nil {
				c.fail(otel.KindStoreError, err)
			}
		}

	case state.RequestStories:
		c.requestStories()

	case state.RefreshStories:
		if c.top != topIdle || c.state.LoadingCount() > 0 {
			return
		}
		c.top = topForRefresh
		c.queue(c.fetchTop())

	case state.TopStoriesLoaded:
		purpose := c.top
		c.top = topIdle
		switch purpose {
		case topForPage:
			c.requestStories()
		case topForRefresh:
			c.refetchLoaded()
		}

	case state.StoryLoaded:
		c.checkThreshold(prev, a.Story, now)

	case state.StoryFailed:
		c.log.Warn("story failed", "id", a.ID, "err", a.Err)

	case state.TopStoriesFailed:
		c.top = topIdle
	}
}

// requestStories starts loading the next page of the ranking, fetching the
// ranking first when there is none yet.
func (c *Controller) requestStories() {
	if c.top != topIdle || c.state.LoadingCount() > 0 {
		return
	}
	if len(c.state.TopIDs) == 0 {
		c.top = topForPage
		c.queue(c.fetchTop())
		return
	}

	ids := c.nextPage()
	if len(ids) == 0 {
		return
	}
	c.Dispatch(state.StoriesRequested{IDs: ids})
	for _, id := range ids {
		c.queue(c.fetchItem(id))
	}
}

// nextPage picks the first PageSize ranked ids not yet in the list.
func (c *Controller) nextPage() []int {
	seen := make(map[int]bool, len(c.state.Stories))
	for _, st := range c.state.Stories {
		seen[st.ID] = true
	}
	var ids []int
	for _, id := range c.state.TopIDs {
		if len(ids) == c.opts.PageSize {
			break
		}
		if !seen[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// refetchLoaded reloads every loaded story in one batch.
func (c *Controller) refetchLoaded() {
	var ids []int
	for _, st := range c.state.Stories {
		if st.Loaded && !st.Loading {
			ids = append(ids, st.ID)
		}
	}
	if len(ids) == 0 {
		return
	}
	c.Dispatch(state.StoriesRequested{IDs: ids})
	c.queue(c.fetchBatch(ids))
}

// checkThreshold announces a story whose score just reached the limit.
// Stories seen for the first time are not announced; they were never below.
func (c *Controller) checkThreshold(prev state.AppState, st state.Story, now time.Time) {
	old, ok := prev.Story(st.ID)
	if !ok || !old.Loaded {
		return
	}
	limit := c.state.Filter.ScoreLimit
	if old.Score >= limit || st.Score < limit {
		return
	}

	first, err := c.store.MarkNotified(st.ID, now)
	if err != nil {
		c.fail(otel.KindStoreError, err)
		return
	}
	if !first {
		return
	}
	c.journal.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindThresholdNotice, Comp: "controller", StoryID: st.ID, Count: st.Score})
	notice := NoticeMsg{Story: st, Limit: limit}
	c.queue(func() tea.Msg { return notice })
}

func (c *Controller) fetchTop() tea.Cmd {
	ctx, fetcher, journal, timeout := c.ctx, c.fetcher, c.journal, c.opts.FetchTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		start := time.Now()
		ids, err := fetcher.TopStories(ctx)
		if err != nil {
			journal.Error(otel.KindFetchError, "controller", err)
			return Msg(state.TopStoriesFailed{Err: err})
		}
		journal.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindFetchTop, Comp: "controller", Count: len(ids), Dur: time.Since(start)})
		return Msg(state.TopStoriesLoaded{IDs: ids})
	}
}

func (c *Controller) fetchItem(id int) tea.Cmd {
	ctx, fetcher, journal, timeout := c.ctx, c.fetcher, c.journal, c.opts.FetchTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		start := time.Now()
		it, err := fetcher.Item(ctx, id)
		if err != nil {
			journal.Emit(otel.Event{Level: otel.LevelError, Kind: otel.KindFetchError, Comp: "controller", StoryID: id, Err: err.Error()})
			return Msg(storyFailed(id, err))
		}
		journal.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindFetchItem, Comp: "controller", StoryID: id, Dur: time.Since(start)})
		return Msg(state.StoryLoaded{Story: StoryFromItem(it)})
	}
}

func (c *Controller) fetchBatch(ids []int) tea.Cmd {
	ctx, fetcher, journal, timeout := c.ctx, c.fetcher, c.journal, c.opts.FetchTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		start := time.Now()
		items, err := fetcher.Items(ctx, ids)
		if err != nil {
			journal.Error(otel.KindFetchError, "controller", err)
		}
		journal.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindFetchItem, Comp: "controller", Count: len(items), Dur: time.Since(start)})

		got := make(map[int]bool, len(items))
		actions := make([]state.Action, 0, len(ids))
		for _, it := range items {
			got[it.ID] = true
			actions = append(actions, state.StoryLoaded{Story: StoryFromItem(it)})
		}
		for _, id := range ids {
			if !got[id] {
				if err == nil {
					err = hn.ErrNotFound
				}
				actions = append(actions, storyFailed(id, err))
			}
		}
		return Msg(actions...)
	}
}

// storyFailed ends a load. Deleted stories are dropped quietly.
func storyFailed(id int, err error) state.StoryFailed {
	if errors.Is(err, hn.ErrNotFound) {
		return state.StoryFailed{ID: id}
	}
	return state.StoryFailed{ID: id, Err: err}
}

// StoryFromItem converts an API item into a loaded story.
func StoryFromItem(it hn.Item) state.Story {
	return state.Story{
		ID:       it.ID,
		Title:    it.Title,
		URL:      it.Link(),
		By:       it.By,
		Score:    it.Score,
		Comments: it.Descendants,
		Posted:   it.Posted(),
		Loaded:   true,
	}
}
