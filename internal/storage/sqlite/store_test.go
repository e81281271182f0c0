package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/louisbranch/omerta/internal/errors"
	"github.com/louisbranch/omerta/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "players.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("Close returned error: %v", err)
		}
	})
	return store
}

func TestLoadPlayerRecordNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.LoadPlayerRecord(context.Background(), "missing")
	if !errors.IsCode(err, errors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestSaveAndLoadPlayerRecord(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	record := storage.PlayerRecord{
		ID:          "p1",
		Name:        "vera",
		TotalPoints: 42,
		Games:       10,
		Wins:        4,
		Survivals:   6,
		Draws:       1,
		Rate:        14,
	}
	if err := store.SavePlayerRecord(ctx, record); err != nil {
		t.Fatalf("SavePlayerRecord returned error: %v", err)
	}

	got, err := store.LoadPlayerRecord(ctx, "p1")
	if err != nil {
		t.Fatalf("LoadPlayerRecord returned error: %v", err)
	}
	if got != record {
		t.Fatalf("loaded record = %+v, want %+v", got, record)
	}
}

func TestSavePlayerRecordUpserts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	record := storage.PlayerRecord{ID: "p1", Name: "vera", TotalPoints: 5, Games: 1}
	if err := store.SavePlayerRecord(ctx, record); err != nil {
		t.Fatalf("SavePlayerRecord returned error: %v", err)
	}
	record.TotalPoints = 15
	record.Games = 2
	record.Wins = 1
	if err := store.SavePlayerRecord(ctx, record); err != nil {
		t.Fatalf("SavePlayerRecord update returned error: %v", err)
	}

	got, err := store.LoadPlayerRecord(ctx, "p1")
	if err != nil {
		t.Fatalf("LoadPlayerRecord returned error: %v", err)
	}
	if got.TotalPoints != 15 || got.Games != 2 || got.Wins != 1 {
		t.Fatalf("updated record = %+v", got)
	}
}

func TestTopPlayersOrdering(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	seed := []storage.PlayerRecord{
		{ID: "a", Name: "a", TotalPoints: 10, Rate: 3},
		{ID: "b", Name: "b", TotalPoints: 30, Rate: 1},
		{ID: "c", Name: "c", TotalPoints: 20, Rate: 2},
	}
	for _, record := range seed {
		if err := store.SavePlayerRecord(ctx, record); err != nil {
			t.Fatalf("SavePlayerRecord returned error: %v", err)
		}
	}

	tests := []struct {
		field string
		limit int
		want  []string
	}{
		{field: "total_points", limit: 3, want: []string{"b", "c", "a"}},
		{field: "rate", limit: 3, want: []string{"a", "c", "b"}},
		{field: "total_points", limit: 2, want: []string{"b", "c"}},
		{field: "bogus", limit: 3, want: []string{"b", "c", "a"}},
	}
	for _, tc := range tests {
		records, err := store.TopPlayers(ctx, tc.field, tc.limit)
		if err != nil {
			t.Fatalf("TopPlayers(%q) returned error: %v", tc.field, err)
		}
		if len(records) != len(tc.want) {
			t.Fatalf("TopPlayers(%q) returned %d records, want %d", tc.field, len(records), len(tc.want))
		}
		for i, id := range tc.want {
			if records[i].ID != id {
				t.Fatalf("TopPlayers(%q)[%d] = %s, want %s", tc.field, i, records[i].ID, id)
			}
		}
	}
}

func TestRecalculateRatings(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	record := storage.PlayerRecord{ID: "p1", Name: "vera", Games: 10, Wins: 4, Survivals: 6, Draws: 1}
	if err := store.SavePlayerRecord(ctx, record); err != nil {
		t.Fatalf("SavePlayerRecord returned error: %v", err)
	}
	if err := store.RecalculateRatings(ctx); err != nil {
		t.Fatalf("RecalculateRatings returned error: %v", err)
	}

	got, err := store.LoadPlayerRecord(ctx, "p1")
	if err != nil {
		t.Fatalf("LoadPlayerRecord returned error: %v", err)
	}
	record.RecalculateDerivedRating()
	if got.Rate != record.Rate {
		t.Fatalf("rate = %v, want %v", got.Rate, record.Rate)
	}
}
