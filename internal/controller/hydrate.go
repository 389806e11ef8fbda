package controller

import (
	"fmt"

	"github.com/abelbrown/hnbar/internal/state"
)

// Snapshot is what a previous run left behind.
type Snapshot interface {
	Favorites() ([]state.Story, error)
	ReadIDs() (map[int]bool, error)
	LoadFilter() (state.Filter, bool, error)
}

// LoadHydrate reads the persisted favorites, read markers and filter into a
// Hydrate action. Filter is nil when none was saved.
func LoadHydrate(s Snapshot) (state.Hydrate, error) {
	favs, err := s.Favorites()
	if err != nil {
		return state.Hydrate{}, fmt.Errorf("load favorites: %w", err)
	}
	read, err := s.ReadIDs()
	if err != nil {
		return state.Hydrate{}, fmt.Errorf("load read stories: %w", err)
	}
	h := state.Hydrate{Favorites: favs, ReadIDs: read}

	f, ok, err := s.LoadFilter()
	if err != nil {
		return state.Hydrate{}, fmt.Errorf("load filter: %w", err)
	}
	if ok {
		h.Filter = &f
	}
	return h, nil
}
