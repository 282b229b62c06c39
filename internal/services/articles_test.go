package services

import (
	"context"
	"testing"
	"time"

	"github.com/glucolife/glucolife-backend/internal/store"
)

func TestDailyArticlesSelection(t *testing.T) {
	ctx := context.Background()
	svc := NewArticleService(store.NewMemoryStore())

	articles, err := svc.Daily(ctx)
	if err != nil {
		t.Fatalf("Daily failed: %v", err)
	}
	if len(articles) != 6 {
		t.Fatalf("len = %d, want 6 (2 per category)", len(articles))
	}

	counts := make(map[string]int)
	for _, a := range articles {
		counts[a.Category]++
	}
	for category, n := range counts {
		if n != 2 {
			t.Fatalf("category %s has %d articles, want 2", category, n)
		}
	}
}

func TestDailyArticlesCachedWithinWindow(t *testing.T) {
	ctx := context.Background()
	svc := NewArticleService(store.NewMemoryStore())

	first, err := svc.Daily(ctx)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Daily(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != len(second) {
		t.Fatalf("selection size changed: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("selection changed within the cache window: %s vs %s", first[i].ID, second[i].ID)
		}
	}
}

func TestDailyArticlesRegeneratedWhenStale(t *testing.T) {
	ctx := context.Background()
	svc := NewArticleService(store.NewMemoryStore())

	if _, err := svc.Daily(ctx); err != nil {
		t.Fatal(err)
	}

	// Move the clock past the 48h window
	svc.now = func() time.Time { return time.Now().Add(49 * time.Hour) }

	articles, err := svc.Daily(ctx)
	if err != nil {
		t.Fatalf("Daily after staleness failed: %v", err)
	}
	if len(articles) != 6 {
		t.Fatalf("len = %d, want 6", len(articles))
	}

	// The regenerated selection must now be fresh under the shifted clock
	again, err := svc.Daily(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for i := range articles {
		if articles[i].ID != again[i].ID {
			t.Fatal("regenerated selection should be cached again")
		}
	}
}

func TestDailyArticlesCorruptCacheRecovers(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := NewArticleService(st)

	if err := st.Write(ctx, "articles:daily", "garbage"); err != nil {
		t.Fatal(err)
	}

	articles, err := svc.Daily(ctx)
	if err != nil {
		t.Fatalf("Daily on corrupt cache failed: %v", err)
	}
	if len(articles) != 6 {
		t.Fatalf("len = %d, want 6", len(articles))
	}
}
