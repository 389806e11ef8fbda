// Package view renders hnbar's story screen and turns user intent into
// actions.
//
// StoryView is a pure function of the state it reads: it keeps nothing
// between renders. Every handler either dispatches exactly one action or
// makes exactly one host call (opening a story dispatches and opens). What
// "click" means on a terminal is decided by the ui package.
package view

import (
	"github.com/abelbrown/hnbar/internal/state"
)

// Store gives read access to the current application state.
type Store interface {
	State() state.AppState
}

// Dispatcher accepts actions. It is the only way the view changes state.
type Dispatcher interface {
	Dispatch(a state.Action)
}

// Host is the capability to leave the app: open a URL in the system browser
// or end the process.
type Host interface {
	OpenExternal(url string)
	Quit()
}

// Link is an external link shown in the info panel.
type Link struct {
	Label string
	URL   string
}

// InfoLinks are the links of the info panel, in display order.
var InfoLinks = []Link{
	{Label: "Hacker News", URL: state.HackerNewsURL},
	{Label: "Hacker News API", URL: "https://github.com/HackerNews/API"},
	{Label: "Report a bug", URL: "https://github.com/abelbrown/hnbar/issues"},
}

// StoryView is the story screen. The zero value is not usable; use New.
type StoryView struct {
	store    Store
	dispatch Dispatcher
	host     Host
	slider   sliderBar
}

// New creates a StoryView reading from store, dispatching to d and leaving
// through host.
func New(store Store, d Dispatcher, host Host) StoryView {
	return StoryView{
		store:    store,
		dispatch: d,
		host:     host,
		slider:   newSliderBar(),
	}
}

// Rows returns the stories listed by the active tab. It is empty for the
// info tab and for unknown tabs.
func (v StoryView) Rows() []state.Story {
	return rowsFor(v.store.State())
}

func rowsFor(s state.AppState) []state.Story {
	switch s.Filter.ActiveTab {
	case state.TabTopStories:
		return s.FilteredStories()
	case state.TabFavorites:
		return s.FavoriteStories()
	}
	return nil
}

// OpenStory opens the story in the browser and records the click.
func (v StoryView) OpenStory(s state.Story) {
	v.host.OpenExternal(s.URL)
	v.dispatch.Dispatch(state.ClickedStory{Story: s})
}

// ToggleFavorite removes s from the favorites if it is one, or adds it.
func (v StoryView) ToggleFavorite(s state.Story) {
	if v.store.State().Favorites.Has(s.ID) {
		v.dispatch.Dispatch(state.RemoveFromFavorites{Story: s})
		return
	}
	v.dispatch.Dispatch(state.AddToFavorites{Story: s})
}

// OpenComments opens the discussion page of s.
func (v StoryView) OpenComments(s state.Story) {
	v.host.OpenExternal(s.CommentsURL())
}

// ScrollToEnd asks for more stories. It fires whenever the list reaches its
// last row.
func (v StoryView) ScrollToEnd() {
	v.dispatch.Dispatch(state.RequestStories{})
}

// OpenFrontPage opens the Hacker News front page.
func (v StoryView) OpenFrontPage() {
	v.host.OpenExternal(state.HackerNewsURL)
}

// ShowInfo switches to the info tab.
func (v StoryView) ShowInfo() { v.ShowTab(state.TabInfo) }

// ShowTopStories switches to the top stories tab.
func (v StoryView) ShowTopStories() { v.ShowTab(state.TabTopStories) }

// ShowFavorites switches to the favorites tab.
func (v StoryView) ShowFavorites() { v.ShowTab(state.TabFavorites) }

// ShowTab switches to t.
func (v StoryView) ShowTab(t state.Tab) {
	v.dispatch.Dispatch(state.SwitchTab{Tab: t})
}

// FooterVisible reports whether the mark-all-read button and the score
// slider are shown.
func (v StoryView) FooterVisible() bool {
	return v.store.State().Filter.ActiveTab == state.TabTopStories
}

// MarkAllAsRead marks the stories currently shown in the top stories tab as
// read. It does nothing while the button is hidden.
func (v StoryView) MarkAllAsRead() {
	s := v.store.State()
	if s.Filter.ActiveTab != state.TabTopStories {
		return
	}
	v.dispatch.Dispatch(state.MarkAllAsRead{Stories: s.FilteredStories()})
}

// MoveSlider sets the score limit to value. It does nothing while the
// slider is hidden.
func (v StoryView) MoveSlider(value int) {
	if !v.FooterVisible() {
		return
	}
	v.dispatch.Dispatch(state.UpdateScoreLimit{Limit: value})
}

// Quit ends the app.
func (v StoryView) Quit() {
	v.host.Quit()
}

// OpenLink opens an info panel link.
func (v StoryView) OpenLink(l Link) {
	v.host.OpenExternal(l.URL)
}
