package state

// Action is a request to change AppState. The set is closed: only types in
// this package implement it, and Reduce handles every one of them.
type Action interface {
	// Kind names the action in logs and the event journal.
	Kind() string
	action()
}

// ClickedStory records that the user opened a story.
type ClickedStory struct{ Story Story }

// AddToFavorites stores a story as a favorite.
type AddToFavorites struct{ Story Story }

// RemoveFromFavorites drops a story from the favorites.
type RemoveFromFavorites struct{ Story Story }

// RequestStories asks for the next page of top stories.
type RequestStories struct{}

// SwitchTab changes the active tab.
type SwitchTab struct{ Tab Tab }

// MarkAllAsRead marks the given stories read. The view passes the currently
// filtered set, not every story.
type MarkAllAsRead struct{ Stories []Story }

// UpdateScoreLimit sets the minimum score for the top stories tab.
type UpdateScoreLimit struct{ Limit int }

// RefreshStories asks for a fresh ranking and fresh scores.
type RefreshStories struct{}

// TopStoriesLoaded carries the current ranking.
type TopStoriesLoaded struct{ IDs []int }

// TopStoriesFailed reports that fetching the ranking failed.
type TopStoriesFailed struct{ Err error }

// StoriesRequested adds placeholders for stories whose fetch just started.
type StoriesRequested struct{ IDs []int }

// StoryLoaded carries a fetched story.
type StoryLoaded struct{ Story Story }

// StoryFailed reports that fetching a story failed.
type StoryFailed struct {
	ID  int
	Err error
}

// Hydrate restores persisted state at startup.
type Hydrate struct {
	Favorites []Story
	ReadIDs   map[int]bool
	Filter    *Filter
}

// Failed records a collaborator error that has no more specific action.
type Failed struct{ Err error }

func (ClickedStory) Kind() string        { return "clickedStory" }
func (AddToFavorites) Kind() string      { return "addToFavorites" }
func (RemoveFromFavorites) Kind() string { return "removeFromFavorites" }
func (RequestStories) Kind() string      { return "requestStories" }
func (SwitchTab) Kind() string           { return "switchTab" }
func (MarkAllAsRead) Kind() string       { return "markAllAsRead" }
func (UpdateScoreLimit) Kind() string    { return "updateScoreLimit" }
func (RefreshStories) Kind() string      { return "refreshStories" }
func (TopStoriesLoaded) Kind() string    { return "topStoriesLoaded" }
func (TopStoriesFailed) Kind() string    { return "topStoriesFailed" }
func (StoriesRequested) Kind() string    { return "storiesRequested" }
func (StoryLoaded) Kind() string         { return "storyLoaded" }
func (StoryFailed) Kind() string         { return "storyFailed" }
func (Hydrate) Kind() string             { return "hydrate" }
func (Failed) Kind() string              { return "failed" }

func (ClickedStory) action()        {}
func (AddToFavorites) action()      {}
func (RemoveFromFavorites) action() {}
func (RequestStories) action()      {}
func (SwitchTab) action()           {}
func (MarkAllAsRead) action()       {}
func (UpdateScoreLimit) action()    {}
func (RefreshStories) action()      {}
func (TopStoriesLoaded) action()    {}
func (TopStoriesFailed) action()    {}
func (StoriesRequested) action()    {}
func (StoryLoaded) action()         {}
func (StoryFailed) action()         {}
func (Hydrate) action()             {}
func (Failed) action()              {}
