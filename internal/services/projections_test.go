package services

import (
	"testing"
	"time"

	"github.com/glucolife/glucolife-backend/internal/models"
)

func post(id string, ts time.Time, tally models.ReactionTally) models.CommunityPost {
	return models.CommunityPost{ID: id, Timestamp: ts, Reactions: tally}
}

func TestSortPostsByDate(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	posts := []models.CommunityPost{
		post("old", base.Add(-48*time.Hour), models.ReactionTally{}),
		post("new", base, models.ReactionTally{}),
		post("mid", base.Add(-24*time.Hour), models.ReactionTally{}),
	}

	sorted := SortPostsByDate(posts)
	got := []string{sorted[0].ID, sorted[1].ID, sorted[2].ID}
	want := []string{"new", "mid", "old"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	// Input untouched
	if posts[0].ID != "old" {
		t.Fatal("SortPostsByDate mutated its input")
	}
}

func TestSortPostsByDateStableOnTies(t *testing.T) {
	ts := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	posts := []models.CommunityPost{
		post("a", ts, models.ReactionTally{}),
		post("b", ts, models.ReactionTally{}),
		post("c", ts, models.ReactionTally{}),
	}

	sorted := SortPostsByDate(posts)
	if sorted[0].ID != "a" || sorted[1].ID != "b" || sorted[2].ID != "c" {
		t.Fatalf("equal timestamps must keep input order, got %s %s %s", sorted[0].ID, sorted[1].ID, sorted[2].ID)
	}
}

func TestSortPostsByEngagement(t *testing.T) {
	ts := time.Now()
	posts := []models.CommunityPost{
		post("low", ts, models.ReactionTally{Like: 1}),
		post("high", ts, models.ReactionTally{Like: 2, Love: 3, Idea: 1}),
		post("tie1", ts, models.ReactionTally{Love: 2}),
		post("tie2", ts, models.ReactionTally{Idea: 2}),
	}

	sorted := SortPostsByEngagement(posts)
	got := []string{sorted[0].ID, sorted[1].ID, sorted[2].ID, sorted[3].ID}
	want := []string{"high", "tie1", "tie2", "low"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func ratedMeal(id string, rating float64) models.Meal {
	return models.Meal{ID: id, Name: id, CommunityRating: &rating}
}

func TestTopRatedMeals(t *testing.T) {
	meals := []models.Meal{
		ratedMeal("c", 4.2),
		ratedMeal("a", 4.9),
		{ID: "unrated", Name: "unrated"},
		ratedMeal("b", 4.5),
	}

	top := TopRatedMeals(meals, 3)
	if len(top) != 3 {
		t.Fatalf("len = %d, want 3", len(top))
	}
	if top[0].ID != "a" || top[1].ID != "b" || top[2].ID != "c" {
		t.Fatalf("order = %s %s %s, want a b c", top[0].ID, top[1].ID, top[2].ID)
	}
}

func TestTopRatedMealsTiesKeepInputOrder(t *testing.T) {
	meals := []models.Meal{
		ratedMeal("first", 4.5),
		ratedMeal("second", 4.5),
	}
	top := TopRatedMeals(meals, 2)
	if top[0].ID != "first" || top[1].ID != "second" {
		t.Fatalf("ties must keep input order, got %s %s", top[0].ID, top[1].ID)
	}
}

func TestTopRatedMealsNLargerThanInput(t *testing.T) {
	top := TopRatedMeals([]models.Meal{ratedMeal("only", 4.0)}, 10)
	if len(top) != 1 {
		t.Fatalf("len = %d, want 1", len(top))
	}
}

func TestFilterMealsByName(t *testing.T) {
	meals := []models.Meal{
		{ID: "1", Name: "Salade de quinoa"},
		{ID: "2", Name: "Saumon grillé"},
		{ID: "3", Name: "Pizza margherita"},
	}

	got := FilterMealsByName(meals, "  SALADE ")
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("FilterMealsByName(salade) = %v", got)
	}

	if got := FilterMealsByName(meals, ""); len(got) != 3 {
		t.Fatalf("empty query should match everything, got %d", len(got))
	}

	if got := FilterMealsByName(meals, "sushi"); len(got) != 0 {
		t.Fatalf("no-match query should return empty, got %d", len(got))
	}
}

func TestFilterArticles(t *testing.T) {
	articles := []models.Article{
		{ID: "1", Title: "Fiber basics", Summary: "why fiber matters", Category: models.ArticleNutrition},
		{ID: "2", Title: "Walking after meals", Summary: "gentle movement", Category: models.ArticleLifestyle},
		{ID: "3", Title: "Lentil soup", Summary: "a fiber-rich recipe", Category: models.ArticleRecipes},
	}

	if got := FilterArticles(articles, "All", ""); len(got) != 3 {
		t.Fatalf("All category should match everything, got %d", len(got))
	}
	if got := FilterArticles(articles, models.ArticleRecipes, ""); len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("category filter failed: %v", got)
	}
	// Query matches title or summary
	if got := FilterArticles(articles, "", "fiber"); len(got) != 2 {
		t.Fatalf("query filter = %d results, want 2", len(got))
	}
	if got := FilterArticles(articles, models.ArticleNutrition, "fiber"); len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("combined filter failed: %v", got)
	}
}

func TestGroupMealsByDay(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	meals := []models.Meal{
		{ID: "today-early", Timestamp: now.Add(-2 * time.Hour)},
		{ID: "today-late", Timestamp: now.Add(-1 * time.Hour)},
		{ID: "yesterday", Timestamp: now.Add(-25 * time.Hour)},
		{ID: "older", Timestamp: now.AddDate(0, 0, -5)},
	}

	groups := GroupMealsByDay(meals, now, "fr")
	if len(groups) != 3 {
		t.Fatalf("len(groups) = %d, want 3", len(groups))
	}

	if groups[0].Label != "Aujourd'hui" {
		t.Fatalf("groups[0].Label = %q", groups[0].Label)
	}
	if groups[1].Label != "Hier" {
		t.Fatalf("groups[1].Label = %q", groups[1].Label)
	}
	if groups[2].Label != "jeudi 5 mars 2026" {
		t.Fatalf("groups[2].Label = %q", groups[2].Label)
	}

	// Newest meal first within the day
	if groups[0].Meals[0].ID != "today-late" || groups[0].Meals[1].ID != "today-early" {
		t.Fatalf("today group order = %s, %s", groups[0].Meals[0].ID, groups[0].Meals[1].ID)
	}
	if groups[0].Date != "2026-03-10" {
		t.Fatalf("groups[0].Date = %q", groups[0].Date)
	}
}

func TestGroupMealsByDayCalendarBoundary(t *testing.T) {
	// 09:00 today vs 23:00 the previous day: under 24h apart but still
	// different calendar days
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	meals := []models.Meal{
		{ID: "late-night", Timestamp: time.Date(2026, 3, 9, 23, 0, 0, 0, time.UTC)},
	}

	groups := GroupMealsByDay(meals, now, "en")
	if len(groups) != 1 || groups[0].Label != "Yesterday" {
		t.Fatalf("groups = %+v, want one Yesterday group", groups)
	}
}

func TestGroupMealsByDayEnglishFullDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	meals := []models.Meal{
		{ID: "older", Timestamp: time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)},
	}

	groups := GroupMealsByDay(meals, now, "en")
	if groups[0].Label != "Thursday, March 5, 2026" {
		t.Fatalf("Label = %q", groups[0].Label)
	}
}

func TestGroupMealsByDayEmpty(t *testing.T) {
	if groups := GroupMealsByDay(nil, time.Now(), "fr"); len(groups) != 0 {
		t.Fatalf("groups = %v, want empty", groups)
	}
}

func TestCompareSelectionToggle(t *testing.T) {
	var sel CompareSelection

	if !sel.Toggle("a") || !sel.Toggle("b") {
		t.Fatal("adding first two ids should succeed")
	}
	if !sel.Ready() {
		t.Fatal("Ready() should be true with two ids")
	}

	// Third id is refused while two are selected
	if sel.Toggle("c") {
		t.Fatal("third id must be refused")
	}
	ids := sel.IDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Fatalf("IDs = %v, want [a b]", ids)
	}

	// Toggling a selected id removes it, then a new one fits
	if !sel.Toggle("a") {
		t.Fatal("removing a selected id should succeed")
	}
	if sel.Ready() {
		t.Fatal("Ready() should be false with one id")
	}
	if !sel.Toggle("c") {
		t.Fatal("adding after removal should succeed")
	}
	ids = sel.IDs()
	if ids[0] != "b" || ids[1] != "c" {
		t.Fatalf("IDs = %v, want [b c]", ids)
	}
}
