package state

// Tab is one of the mutually exclusive view modes.
type Tab string

const (
	TabTopStories Tab = "topStories"
	TabFavorites  Tab = "favoriteStories"
	TabInfo       Tab = "info"
)

// Tabs lists the valid tabs in display order.
var Tabs = []Tab{TabTopStories, TabFavorites, TabInfo}

// Valid reports whether t is one of the enumerated tabs.
func (t Tab) Valid() bool {
	switch t {
	case TabTopStories, TabFavorites, TabInfo:
		return true
	}
	return false
}

// Next returns the tab after t, wrapping around. Unknown tabs go to top stories.
func (t Tab) Next() Tab {
	for i, v := range Tabs {
		if v == t {
			return Tabs[(i+1)%len(Tabs)]
		}
	}
	return TabTopStories
}

// Score limit bounds for the slider.
const (
	MinScoreLimit = 0
	MaxScoreLimit = 1000
)

// ClampScoreLimit forces v into [MinScoreLimit, MaxScoreLimit].
func ClampScoreLimit(v int) int {
	if v < MinScoreLimit {
		return MinScoreLimit
	}
	if v > MaxScoreLimit {
		return MaxScoreLimit
	}
	return v
}

// Filter controls which stories the top stories tab shows.
type Filter struct {
	ActiveTab  Tab
	ScoreLimit int
}

// DefaultFilter is used until a persisted filter is restored.
func DefaultFilter() Filter {
	return Filter{ActiveTab: TabTopStories, ScoreLimit: 100}
}

// AppState is the whole application state. It is owned by a single
// controller; everyone else reads copies.
type AppState struct {
	Stories   []Story
	Filter    Filter
	Favorites Favorites

	// TopIDs is the current ranking as returned by the API. Stories holds
	// the prefix of it that has been requested so far.
	TopIDs []int

	// Err is the most recent collaborator failure, cleared by the next
	// successful load.
	Err error
}

// New returns an empty state with the given filter.
func New(f Filter) AppState {
	return AppState{Filter: f}
}

// LoadingCount returns how many stories have a fetch in flight.
func (s AppState) LoadingCount() int {
	n := 0
	for _, st := range s.Stories {
		if st.Loading {
			n++
		}
	}
	return n
}

// FilteredStories returns loaded stories at or above the score limit, in
// store order.
func (s AppState) FilteredStories() []Story {
	out := make([]Story, 0, len(s.Stories))
	for _, st := range s.Stories {
		if st.Loaded && st.Score >= s.Filter.ScoreLimit {
			out = append(out, st)
		}
	}
	return out
}

// FavoriteStories returns the favorites in the order they were added.
func (s AppState) FavoriteStories() []Story {
	return s.Favorites.List()
}

// Story returns the story with the given id from the list.
func (s AppState) Story(id int) (Story, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.Stories[i], true
	}
	return Story{}, false
}

func (s AppState) indexOf(id int) int {
	for i, st := range s.Stories {
		if st.ID == id {
			return i
		}
	}
	return -1
}
