package sqlite

import (
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db, "snakeHighScores")
}

func TestLoadMissingIsEmpty(t *testing.T) {
	s := openTestStore(t)
	scores, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("expected empty map, got %v", scores)
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := openTestStore(t)
	want := map[string]int{"Classic": 120, "Maze": 45}
	if err := s.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	want["Classic"] = 130
	if err := s.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got["Classic"] != 130 || got["Maze"] != 45 || len(got) != 2 {
		t.Errorf("loaded %v", got)
	}
}

func TestLoadCorruptReturnsErrorAndEmptyMap(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.db.Exec("INSERT INTO Storage (StorageKey, Value) VALUES (?, ?)", s.key, "{not json"); err != nil {
		t.Fatal(err)
	}
	scores, err := s.Load()
	if err == nil {
		t.Fatal("expected decode error")
	}
	if scores == nil || len(scores) != 0 {
		t.Errorf("expected empty map on corruption, got %v", scores)
	}
}

func TestKeysAreIsolated(t *testing.T) {
	s := openTestStore(t)
	other := NewStore(s.db, "otherKey")
	if err := s.Save(map[string]int{"Box": 10}); err != nil {
		t.Fatal(err)
	}
	got, err := other.Load()
	if err != nil || len(got) != 0 {
		t.Errorf("other key loaded %v, %v", got, err)
	}
}

func TestRecordGameAndTop(t *testing.T) {
	s := openTestStore(t)
	for i, score := range []int{30, 90, 60} {
		if err := s.RecordGame("Box", score, 0, map[string]int{"Box": 90}); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}
	if err := s.RecordGame("Maze", 500, 3, map[string]int{"Box": 90, "Maze": 500}); err != nil {
		t.Fatal(err)
	}

	top, err := s.TopGames("Box", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 2 || top[0].Score != 90 || top[1].Score != 60 {
		t.Errorf("top = %+v", top)
	}
	scores, _ := s.Load()
	if scores["Maze"] != 500 {
		t.Errorf("high scores not updated in transaction: %v", scores)
	}
}
