package history

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreQueryFilters(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	recs := []Record{
		{ID: "a", Time: now.Add(-2 * time.Hour), LoadMW: 100, Feasible: true},
		{ID: "b", Time: now.Add(-1 * time.Hour), LoadMW: 50, Feasible: false, Error: "no feasible production plan"},
		{ID: "c", Time: now, LoadMW: 910, Feasible: true},
	}
	for _, r := range recs {
		if err := store.Append(context.Background(), r); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := store.Query(context.Background(), Query{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d records, want 3", len(all))
	}

	feasible, err := store.Query(context.Background(), Query{FeasibleOnly: true})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(feasible) != 2 {
		t.Errorf("got %d feasible records, want 2", len(feasible))
	}

	recent, err := store.Query(context.Background(), Query{Start: now.Add(-90 * time.Minute)})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recent) != 2 || recent[0].ID != "b" {
		t.Errorf("start filter returned %+v", recent)
	}
}
