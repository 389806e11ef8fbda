package state

import "slices"

// Reduce returns the state that results from applying a to s. It never
// modifies s or anything s refers to.
func Reduce(s AppState, a Action) AppState {
	switch a := a.(type) {
	case ClickedStory:
		return s.markRead(map[int]bool{a.Story.ID: true})

	case AddToFavorites:
		st := a.Story
		if cur, ok := s.Story(st.ID); ok {
			st.Read = st.Read || cur.Read
		}
		s.Favorites = s.Favorites.With(st)
		return s

	case RemoveFromFavorites:
		s.Favorites = s.Favorites.Without(a.Story.ID)
		return s

	case SwitchTab:
		if a.Tab.Valid() {
			s.Filter.ActiveTab = a.Tab
		}
		return s

	case MarkAllAsRead:
		ids := make(map[int]bool, len(a.Stories))
		for _, st := range a.Stories {
			ids[st.ID] = true
		}
		return s.markRead(ids)

	case UpdateScoreLimit:
		s.Filter.ScoreLimit = ClampScoreLimit(a.Limit)
		return s

	case TopStoriesLoaded:
		return s.rerank(a.IDs)

	case StoriesRequested:
		return s.addPlaceholders(a.IDs)

	case StoryLoaded:
		return s.storyLoaded(a.Story)

	case StoryFailed:
		if i := s.indexOf(a.ID); i >= 0 {
			s.Stories = slices.Clone(s.Stories)
			s.Stories[i].Loading = false
		}
		if a.Err != nil {
			s.Err = a.Err
		}
		return s

	case Hydrate:
		return s.hydrate(a)

	case TopStoriesFailed:
		s.Err = a.Err
		return s

	case Failed:
		s.Err = a.Err
		return s

	case RequestStories, RefreshStories:
		// Handled by the controller's effects.
		return s
	}
	return s
}

func (s AppState) markRead(ids map[int]bool) AppState {
	if len(ids) == 0 {
		return s
	}
	s.Stories = slices.Clone(s.Stories)
	for i := range s.Stories {
		if ids[s.Stories[i].ID] {
			s.Stories[i].Read = true
		}
	}
	for id := range ids {
		s.Favorites = s.Favorites.update(id, func(st Story) Story {
			st.Read = true
			return st
		})
	}
	return s
}

func (s AppState) rerank(ids []int) AppState {
	s.TopIDs = slices.Clone(ids)
	rank := make(map[int]int, len(ids))
	for i, id := range ids {
		rank[id] = i
	}
	pos := func(id int) int {
		if r, ok := rank[id]; ok {
			return r
		}
		return len(ids)
	}
	s.Stories = slices.Clone(s.Stories)
	slices.SortStableFunc(s.Stories, func(a, b Story) int {
		return pos(a.ID) - pos(b.ID)
	})
	s.Err = nil
	return s
}

func (s AppState) addPlaceholders(ids []int) AppState {
	s.Stories = slices.Clone(s.Stories)
	for _, id := range ids {
		if i := s.indexOf(id); i >= 0 {
			s.Stories[i].Loading = true
			continue
		}
		st := Story{ID: id, Loading: true}
		if fav, ok := s.Favorites.Get(id); ok {
			st.Read = fav.Read
		}
		s.Stories = append(s.Stories, st)
	}
	return s
}

func (s AppState) storyLoaded(st Story) AppState {
	st.Loading = false
	st.Loaded = true
	if i := s.indexOf(st.ID); i >= 0 {
		st.Read = st.Read || s.Stories[i].Read
		s.Stories = slices.Clone(s.Stories)
		s.Stories[i] = st
	}
	fresh := st
	s.Favorites = s.Favorites.update(st.ID, func(old Story) Story {
		fresh.Read = fresh.Read || old.Read
		return fresh
	})
	s.Err = nil
	return s
}

func (s AppState) hydrate(h Hydrate) AppState {
	favs := make([]Story, len(h.Favorites))
	for i, st := range h.Favorites {
		st.Read = st.Read || h.ReadIDs[st.ID]
		st.Loaded = true
		favs[i] = st
	}
	s.Favorites = NewFavorites(favs...)

	s.Stories = slices.Clone(s.Stories)
	for i := range s.Stories {
		if h.ReadIDs[s.Stories[i].ID] {
			s.Stories[i].Read = true
		}
	}

	if h.Filter != nil {
		f := *h.Filter
		if !f.ActiveTab.Valid() {
			f.ActiveTab = TabTopStories
		}
		f.ScoreLimit = ClampScoreLimit(f.ScoreLimit)
		s.Filter = f
	}
	return s
}
