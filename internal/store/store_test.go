package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/abelbrown/hnbar/internal/state"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen(t *testing.T) {
	s := openTest(t)

	for _, table := range []string{"favorites", "read_stories", "notified", "settings"} {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("%s table not created: %v", table, err)
		}
	}
}

func TestOpenFileUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hnbar.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("expected wal journal mode, got %q", mode)
	}
}

func TestFavoritesRoundTrip(t *testing.T) {
	s := openTest(t)
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	first := state.Story{ID: 2, Title: "Second story", URL: "https://b.example", By: "bob", Score: 12, Comments: 3, Posted: base.Add(-time.Hour)}
	second := state.Story{ID: 1, Title: "First story", URL: "https://a.example", Score: 40}

	if err := s.SaveFavorite(first, base); err != nil {
		t.Fatalf("SaveFavorite failed: %v", err)
	}
	if err := s.SaveFavorite(second, base.Add(time.Minute)); err != nil {
		t.Fatalf("SaveFavorite failed: %v", err)
	}

	got, err := s.Favorites()
	if err != nil {
		t.Fatalf("Favorites failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 favorites, got %d", len(got))
	}
	if got[0].ID != 2 || got[1].ID != 1 {
		t.Errorf("expected insertion order [2 1], got [%d %d]", got[0].ID, got[1].ID)
	}
	if got[0].By != "bob" || got[0].Comments != 3 || !got[0].Posted.Equal(first.Posted) {
		t.Errorf("snapshot not preserved: %+v", got[0])
	}
	if !got[0].Loaded {
		t.Error("stored favorites should come back loaded")
	}
	if !got[1].Posted.IsZero() {
		t.Errorf("expected zero posted time, got %v", got[1].Posted)
	}
}

func TestSaveFavoriteKeepsPosition(t *testing.T) {
	s := openTest(t)
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	s.SaveFavorite(state.Story{ID: 1, Title: "old", URL: "u"}, base)
	s.SaveFavorite(state.Story{ID: 2, Title: "other", URL: "u"}, base.Add(time.Second))
	if err := s.SaveFavorite(state.Story{ID: 1, Title: "new", URL: "u", Score: 99}, base.Add(time.Hour)); err != nil {
		t.Fatalf("SaveFavorite update failed: %v", err)
	}

	got, err := s.Favorites()
	if err != nil {
		t.Fatalf("Favorites failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 {
		t.Fatalf("expected story 1 to stay first, got %+v", got)
	}
	if got[0].Title != "new" || got[0].Score != 99 {
		t.Errorf("expected refreshed snapshot, got %+v", got[0])
	}
}

func TestDeleteFavorite(t *testing.T) {
	s := openTest(t)

	s.SaveFavorite(state.Story{ID: 1, Title: "a", URL: "u"}, time.Now())
	if err := s.DeleteFavorite(1); err != nil {
		t.Fatalf("DeleteFavorite failed: %v", err)
	}
	if err := s.DeleteFavorite(12345); err != nil {
		t.Errorf("deleting an unknown favorite should not fail: %v", err)
	}

	got, err := s.Favorites()
	if err != nil {
		t.Fatalf("Favorites failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no favorites, got %d", len(got))
	}
}

func TestMarkRead(t *testing.T) {
	s := openTest(t)
	now := time.Now()

	if err := s.MarkRead(now); err != nil {
		t.Fatalf("MarkRead with no ids failed: %v", err)
	}
	if err := s.MarkRead(now, 1, 2, 3); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	if err := s.MarkRead(now, 2); err != nil {
		t.Fatalf("MarkRead duplicate failed: %v", err)
	}

	ids, err := s.ReadIDs()
	if err != nil {
		t.Fatalf("ReadIDs failed: %v", err)
	}
	if len(ids) != 3 || !ids[1] || !ids[2] || !ids[3] {
		t.Errorf("expected {1,2,3}, got %v", ids)
	}
}

func TestPruneRead(t *testing.T) {
	s := openTest(t)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	s.MarkRead(now.Add(-60*24*time.Hour), 1)
	s.MarkRead(now, 2)

	n, err := s.PruneRead(now.Add(-30 * 24 * time.Hour))
	if err != nil {
		t.Fatalf("PruneRead failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 pruned, got %d", n)
	}
	ids, _ := s.ReadIDs()
	if ids[1] || !ids[2] {
		t.Errorf("expected only story 2 to remain read, got %v", ids)
	}
}

func TestMarkReadAgainKeepsMarker(t *testing.T) {
	s := openTest(t)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	s.MarkRead(now.Add(-60*24*time.Hour), 1)
	s.MarkRead(now.Add(-time.Hour), 1)

	n, err := s.PruneRead(now.Add(-30 * 24 * time.Hour))
	if err != nil {
		t.Fatalf("PruneRead failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected nothing pruned, got %d", n)
	}
	if ids, _ := s.ReadIDs(); !ids[1] {
		t.Error("recently re-read story should stay read")
	}
}

func TestMarkNotifiedOnce(t *testing.T) {
	s := openTest(t)

	first, err := s.MarkNotified(7, time.Now())
	if err != nil {
		t.Fatalf("MarkNotified failed: %v", err)
	}
	if !first {
		t.Error("expected first notice to report true")
	}

	again, err := s.MarkNotified(7, time.Now())
	if err != nil {
		t.Fatalf("MarkNotified repeat failed: %v", err)
	}
	if again {
		t.Error("expected repeat notice to report false")
	}
}

func TestFilterRoundTrip(t *testing.T) {
	s := openTest(t)

	if _, ok, err := s.LoadFilter(); err != nil || ok {
		t.Fatalf("expected no saved filter, got ok=%v err=%v", ok, err)
	}

	want := state.Filter{ActiveTab: state.TabFavorites, ScoreLimit: 250}
	if err := s.SaveFilter(want); err != nil {
		t.Fatalf("SaveFilter failed: %v", err)
	}
	if err := s.SaveFilter(state.Filter{ActiveTab: state.TabInfo, ScoreLimit: 300}); err != nil {
		t.Fatalf("SaveFilter overwrite failed: %v", err)
	}

	got, ok, err := s.LoadFilter()
	if err != nil || !ok {
		t.Fatalf("LoadFilter: ok=%v err=%v", ok, err)
	}
	if got.ActiveTab != state.TabInfo || got.ScoreLimit != 300 {
		t.Errorf("expected last saved filter, got %+v", got)
	}
}
