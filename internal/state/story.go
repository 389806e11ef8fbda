// Package state holds the hnbar application state and the reducer that is
// its only writer.
//
// Everything here is a value: AppState, Story and Favorites are copied, never
// shared, so Reduce can be a pure function and the view can read a snapshot
// without locks.
package state

import (
	"fmt"
	"time"
)

// HackerNewsURL is the front page.
const HackerNewsURL = "https://news.ycombinator.com/"

// Story is a single Hacker News item as shown in the list.
type Story struct {
	ID       int
	Title    string
	URL      string
	By       string
	Score    int
	Comments int
	Posted   time.Time

	Loading bool // a fetch for this story is in flight
	Loaded  bool // the story has been fetched at least once
	Read    bool
}

// CommentsURL returns the discussion page for the story.
func (s Story) CommentsURL() string {
	return CommentsURL(s.ID)
}

// CommentsURL returns the discussion page for a story ID.
func CommentsURL(id int) string {
	return fmt.Sprintf("%sitem?id=%d", HackerNewsURL, id)
}

// Favorites maps story ID to Story and remembers the order entries were added.
// The zero value is an empty set. Favorites is copy-on-write: With and
// Without return a new value and leave the receiver untouched.
type Favorites struct {
	order []int
	byID  map[int]Story
}

// NewFavorites builds a set from stories in the given order. Later duplicates
// replace the earlier entry but keep its position.
func NewFavorites(stories ...Story) Favorites {
	var f Favorites
	for _, s := range stories {
		f = f.With(s)
	}
	return f
}

// Has reports whether id is a favorite.
func (f Favorites) Has(id int) bool {
	_, ok := f.byID[id]
	return ok
}

// Get returns the favorite with the given id.
func (f Favorites) Get(id int) (Story, bool) {
	s, ok := f.byID[id]
	return s, ok
}

// Len returns the number of favorites.
func (f Favorites) Len() int {
	return len(f.order)
}

// List returns the favorites in insertion order.
func (f Favorites) List() []Story {
	out := make([]Story, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.byID[id])
	}
	return out
}

// With returns a copy that contains s. An existing entry keeps its position.
func (f Favorites) With(s Story) Favorites {
	next := f.clone()
	if _, ok := next.byID[s.ID]; !ok {
		next.order = append(next.order, s.ID)
	}
	// Favorites are never shown as in flight.
	s.Loading = false
	next.byID[s.ID] = s
	return next
}

// Without returns a copy that does not contain id.
func (f Favorites) Without(id int) Favorites {
	if !f.Has(id) {
		return f
	}
	next := f.clone()
	delete(next.byID, id)
	for i, v := range next.order {
		if v == id {
			next.order = append(next.order[:i], next.order[i+1:]...)
			break
		}
	}
	return next
}

// update replaces an existing entry in place. It is a no-op for unknown ids.
func (f Favorites) update(id int, fn func(Story) Story) Favorites {
	s, ok := f.byID[id]
	if !ok {
		return f
	}
	next := f.clone()
	next.byID[id] = fn(s)
	return next
}

func (f Favorites) clone() Favorites {
	next := Favorites{
		order: make([]int, len(f.order), len(f.order)+1),
		byID:  make(map[int]Story, len(f.byID)+1),
	}
	copy(next.order, f.order)
	for k, v := range f.byID {
		next.byID[k] = v
	}
	return next
}
