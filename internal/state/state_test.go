package state

import (
	"errors"
	"testing"
)

func loaded(id, score int) Story {
	return Story{ID: id, Title: "story", Score: score, Loaded: true}
}

func ids(stories []Story) []int {
	out := make([]int, len(stories))
	for i, s := range stories {
		out[i] = s.ID
	}
	return out
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilteredStoriesScenario(t *testing.T) {
	s := New(Filter{ActiveTab: TabTopStories, ScoreLimit: 10})
	s.Stories = []Story{
		{ID: 1, Score: 50, Loaded: true},
		{ID: 2, Score: 5, Loaded: true},
	}

	got := ids(s.FilteredStories())
	if !equalIDs(got, []int{1}) {
		t.Errorf("FilteredStories = %v, want [1]", got)
	}
}

func TestFilteredStoriesKeepsStoreOrderAndSkipsUnloaded(t *testing.T) {
	s := New(Filter{ScoreLimit: 10})
	s.Stories = []Story{
		loaded(5, 10),
		{ID: 6, Score: 900, Loading: true},
		loaded(3, 200),
		loaded(4, 9),
		loaded(1, 11),
	}

	got := ids(s.FilteredStories())
	if !equalIDs(got, []int{5, 3, 1}) {
		t.Errorf("FilteredStories = %v, want [5 3 1]", got)
	}
}

func TestLoadingCount(t *testing.T) {
	tests := []struct {
		name    string
		stories []Story
		want    int
	}{
		{"empty", nil, 0},
		{"all loading", []Story{{ID: 1, Loading: true}, {ID: 2, Loading: true}}, 2},
		{"mixed", []Story{{ID: 1, Loading: true}, loaded(2, 1), {ID: 3}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := AppState{Stories: tt.stories}
			if got := s.LoadingCount(); got != tt.want {
				t.Errorf("LoadingCount = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFavoritesInsertionOrder(t *testing.T) {
	f := NewFavorites(loaded(3, 1), loaded(1, 1), loaded(2, 1))
	f = f.With(Story{ID: 1, Title: "updated"})
	f = f.Without(3)

	got := ids(f.List())
	if !equalIDs(got, []int{1, 2}) {
		t.Fatalf("List = %v, want [1 2]", got)
	}
	if s, _ := f.Get(1); s.Title != "updated" {
		t.Errorf("With should replace the entry, got title %q", s.Title)
	}
}

func TestFavoritesCopyOnWrite(t *testing.T) {
	base := NewFavorites(loaded(1, 1))
	next := base.With(loaded(2, 1))

	if base.Has(2) {
		t.Error("With modified the receiver")
	}
	if !next.Has(1) || !next.Has(2) {
		t.Error("With lost entries")
	}

	removed := next.Without(1)
	if !next.Has(1) {
		t.Error("Without modified the receiver")
	}
	if removed.Has(1) {
		t.Error("Without did not remove the entry")
	}
}

func TestReduceFavoriteToggle(t *testing.T) {
	s := New(DefaultFilter())
	story := loaded(7, 100)

	s = Reduce(s, AddToFavorites{Story: story})
	if !s.Favorites.Has(7) {
		t.Fatal("AddToFavorites did not add the story")
	}
	s = Reduce(s, RemoveFromFavorites{Story: story})
	if s.Favorites.Has(7) {
		t.Fatal("RemoveFromFavorites did not remove the story")
	}
}

func TestReduceSwitchTab(t *testing.T) {
	s := New(DefaultFilter())

	s = Reduce(s, SwitchTab{Tab: TabInfo})
	if s.Filter.ActiveTab != TabInfo {
		t.Errorf("ActiveTab = %q, want info", s.Filter.ActiveTab)
	}

	s = Reduce(s, SwitchTab{Tab: "bogus"})
	if s.Filter.ActiveTab != TabInfo {
		t.Errorf("unknown tab should be ignored, got %q", s.Filter.ActiveTab)
	}
}

func TestReduceUpdateScoreLimitClamps(t *testing.T) {
	s := New(DefaultFilter())
	for _, tt := range []struct{ in, want int }{{-5, 0}, {0, 0}, {250, 250}, {1000, 1000}, {5000, 1000}} {
		got := Reduce(s, UpdateScoreLimit{Limit: tt.in}).Filter.ScoreLimit
		if got != tt.want {
			t.Errorf("UpdateScoreLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestReduceMarkAllAsReadOnlyListed(t *testing.T) {
	s := New(Filter{ScoreLimit: 10})
	s.Stories = []Story{loaded(1, 50), loaded(2, 5)}
	s.Favorites = NewFavorites(loaded(1, 50))

	s = Reduce(s, MarkAllAsRead{Stories: s.FilteredStories()})

	if !s.Stories[0].Read {
		t.Error("filtered story should be read")
	}
	if s.Stories[1].Read {
		t.Error("story below the limit should stay unread")
	}
	if fav, _ := s.Favorites.Get(1); !fav.Read {
		t.Error("favorite copy should be marked read too")
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	before := New(DefaultFilter())
	before.Stories = []Story{loaded(1, 50)}

	_ = Reduce(before, ClickedStory{Story: before.Stories[0]})

	if before.Stories[0].Read {
		t.Error("Reduce modified the input state")
	}
}

func TestReduceLoadLifecycle(t *testing.T) {
	s := New(DefaultFilter())

	s = Reduce(s, StoriesRequested{IDs: []int{1, 2}})
	if s.LoadingCount() != 2 {
		t.Fatalf("LoadingCount = %d, want 2", s.LoadingCount())
	}

	s = Reduce(s, StoryLoaded{Story: Story{ID: 1, Title: "one", Score: 300}})
	s = Reduce(s, StoryFailed{ID: 2, Err: errors.New("boom")})

	if s.LoadingCount() != 0 {
		t.Errorf("LoadingCount = %d, want 0", s.LoadingCount())
	}
	if st, _ := s.Story(1); !st.Loaded || st.Title != "one" {
		t.Errorf("story 1 = %+v, want loaded", st)
	}
	if st, _ := s.Story(2); st.Loaded {
		t.Error("failed story should not be loaded")
	}
	if s.Err == nil {
		t.Error("StoryFailed should record the error")
	}
}

func TestReduceDroppedStoryKeepsEarlierError(t *testing.T) {
	s := New(DefaultFilter())
	s = Reduce(s, StoriesRequested{IDs: []int{7}})
	s = Reduce(s, Failed{Err: errors.New("xdg-open missing")})

	s = Reduce(s, StoryFailed{ID: 7})

	if s.LoadingCount() != 0 {
		t.Errorf("LoadingCount = %d, want 0", s.LoadingCount())
	}
	if s.Err == nil || s.Err.Error() != "xdg-open missing" {
		t.Errorf("Err = %v, want the earlier error kept", s.Err)
	}
}

func TestReduceTopStoriesFailedRecordsError(t *testing.T) {
	s := Reduce(New(DefaultFilter()), TopStoriesFailed{Err: errors.New("HTTP 503")})

	if s.Err == nil || s.Err.Error() != "HTTP 503" {
		t.Errorf("Err = %v, want HTTP 503", s.Err)
	}
	if len(s.TopIDs) != 0 {
		t.Errorf("TopIDs = %v, want none", s.TopIDs)
	}
}

func TestReduceStoryLoadedKeepsReadAndRefreshesFavorite(t *testing.T) {
	s := New(DefaultFilter())
	s.Stories = []Story{{ID: 1, Score: 10, Loaded: true, Read: true}}
	s.Favorites = NewFavorites(Story{ID: 1, Score: 10, Read: true})

	s = Reduce(s, StoryLoaded{Story: Story{ID: 1, Score: 99}})

	if st, _ := s.Story(1); !st.Read || st.Score != 99 {
		t.Errorf("story = %+v, want read with score 99", st)
	}
	if fav, _ := s.Favorites.Get(1); fav.Score != 99 || !fav.Read {
		t.Errorf("favorite = %+v, want refreshed score and read", fav)
	}
}

func TestReduceTopStoriesLoadedReorders(t *testing.T) {
	s := New(DefaultFilter())
	s.Stories = []Story{loaded(1, 1), loaded(2, 1), loaded(3, 1), loaded(4, 1)}

	s = Reduce(s, TopStoriesLoaded{IDs: []int{3, 1, 9}})

	got := ids(s.Stories)
	if !equalIDs(got, []int{3, 1, 2, 4}) {
		t.Errorf("order = %v, want [3 1 2 4]", got)
	}
	if !equalIDs(s.TopIDs, []int{3, 1, 9}) {
		t.Errorf("TopIDs = %v", s.TopIDs)
	}
}

func TestReduceHydrate(t *testing.T) {
	s := New(DefaultFilter())
	s.Stories = []Story{loaded(1, 1), loaded(2, 1)}

	s = Reduce(s, Hydrate{
		Favorites: []Story{{ID: 5, Title: "fav"}},
		ReadIDs:   map[int]bool{2: true, 5: true},
		Filter:    &Filter{ActiveTab: "nonsense", ScoreLimit: 4000},
	})

	if st, _ := s.Story(2); !st.Read {
		t.Error("story 2 should be read after hydrate")
	}
	if fav, ok := s.Favorites.Get(5); !ok || !fav.Read {
		t.Errorf("favorite 5 = %+v, want present and read", fav)
	}
	if s.Filter.ActiveTab != TabTopStories {
		t.Errorf("invalid persisted tab should fall back, got %q", s.Filter.ActiveTab)
	}
	if s.Filter.ScoreLimit != MaxScoreLimit {
		t.Errorf("ScoreLimit = %d, want clamped to %d", s.Filter.ScoreLimit, MaxScoreLimit)
	}
}

func TestTabNext(t *testing.T) {
	if TabTopStories.Next() != TabFavorites || TabFavorites.Next() != TabInfo || TabInfo.Next() != TabTopStories {
		t.Error("Next should cycle top -> favorites -> info -> top")
	}
	if Tab("x").Next() != TabTopStories {
		t.Error("unknown tab should advance to top stories")
	}
}

func TestCommentsURL(t *testing.T) {
	if got := CommentsURL(42); got != "https://news.ycombinator.com/item?id=42" {
		t.Errorf("CommentsURL = %q", got)
	}
}
