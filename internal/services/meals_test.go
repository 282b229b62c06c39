package services

import (
	"context"
	"testing"
	"time"

	"github.com/glucolife/glucolife-backend/internal/models"
	"github.com/glucolife/glucolife-backend/internal/store"
)

func newMealService() (*MealService, *store.MemoryStore) {
	st := store.NewMemoryStore()
	return NewMealService(st, NewBus()), st
}

func TestMealsListEmptyForNewUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMealService()

	meals, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(meals) != 0 {
		t.Fatalf("len = %d, want 0", len(meals))
	}
}

func TestMealsCorruptBlobResetsToEmpty(t *testing.T) {
	ctx := context.Background()
	svc, st := newMealService()

	if err := st.Write(ctx, "meals:user-1", "[broken"); err != nil {
		t.Fatal(err)
	}

	meals, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List on corrupt blob failed: %v", err)
	}
	if len(meals) != 0 {
		t.Fatalf("len = %d, want 0", len(meals))
	}
}

func TestAddMealStampsIdentity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMealService()

	added, err := svc.Add(ctx, "user-1", models.Meal{Name: "Salade de quinoa", Carbohydrates: 45})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if added.ID == "" {
		t.Fatal("Add must stamp an id")
	}
	if added.Timestamp.IsZero() {
		t.Fatal("Add must stamp a timestamp")
	}

	// A second meal lands at the head
	second, err := svc.Add(ctx, "user-1", models.Meal{Name: "Saumon grillé"})
	if err != nil {
		t.Fatal(err)
	}
	meals, _ := svc.List(ctx, "user-1")
	if len(meals) != 2 || meals[0].ID != second.ID {
		t.Fatalf("newest meal should be first, got %v", meals)
	}
	if second.ID == added.ID {
		t.Fatal("ids must be unique")
	}
}

func TestMealCollectionsAreScopedPerUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMealService()

	if _, err := svc.Add(ctx, "user-1", models.Meal{Name: "Salade"}); err != nil {
		t.Fatal(err)
	}

	meals, err := svc.List(ctx, "user-2")
	if err != nil {
		t.Fatal(err)
	}
	if len(meals) != 0 {
		t.Fatalf("user-2 sees %d meals, want 0", len(meals))
	}
}

func TestDeleteMeal(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMealService()

	keep, _ := svc.Add(ctx, "user-1", models.Meal{Name: "Keep"})
	drop, _ := svc.Add(ctx, "user-1", models.Meal{Name: "Drop"})

	if err := svc.Delete(ctx, "user-1", drop.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	meals, _ := svc.List(ctx, "user-1")
	if len(meals) != 1 || meals[0].ID != keep.ID {
		t.Fatalf("meals after delete = %v", meals)
	}

	// Absent id is a safe no-op
	if err := svc.Delete(ctx, "user-1", "no-such-meal"); err != nil {
		t.Fatalf("Delete of absent meal failed: %v", err)
	}
	meals, _ = svc.List(ctx, "user-1")
	if len(meals) != 1 {
		t.Fatalf("len after no-op delete = %d, want 1", len(meals))
	}
}

func TestRateMeal(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMealService()

	meal, _ := svc.Add(ctx, "user-1", models.Meal{Name: "Salade"})

	rated, found, err := svc.Rate(ctx, "user-1", meal.ID, 4)
	if err != nil || !found {
		t.Fatalf("Rate failed: found=%v err=%v", found, err)
	}
	if rated.UserRating == nil || *rated.UserRating != 4 {
		t.Fatalf("UserRating = %v, want 4", rated.UserRating)
	}

	// Re-rating overwrites
	rated, _, err = svc.Rate(ctx, "user-1", meal.ID, 2)
	if err != nil {
		t.Fatal(err)
	}
	if *rated.UserRating != 2 {
		t.Fatalf("UserRating after re-rate = %d, want 2", *rated.UserRating)
	}

	// Unknown meal reports not found
	if _, found, err := svc.Rate(ctx, "user-1", "no-such-meal", 5); err != nil || found {
		t.Fatalf("Rate(unknown) = found=%v err=%v, want not found", found, err)
	}
}

func TestAddCommunityMealToLog(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMealService()

	rating := 4.8
	scans := 1203
	protein := 12.5
	source := models.Meal{
		ID:              "cm-salade-quinoa",
		Name:            "Salade de quinoa",
		Carbohydrates:   45,
		Protein:         &protein,
		GlycemicIndex:   "Moyen",
		GlycemicScore:   62,
		CommunityRating: &rating,
		ScanCount:       &scans,
		Timestamp:       time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	logged, err := svc.AddCommunityMealToLog(ctx, "user-1", source)
	if err != nil {
		t.Fatalf("AddCommunityMealToLog failed: %v", err)
	}

	if logged.ID == source.ID {
		t.Fatal("logged copy must get a fresh id")
	}
	if !logged.Timestamp.After(source.Timestamp) {
		t.Fatal("logged copy must get a fresh timestamp")
	}
	if logged.Name != source.Name || logged.Carbohydrates != source.Carbohydrates {
		t.Fatal("nutrients must carry over unchanged")
	}
	if logged.Protein == nil || *logged.Protein != protein {
		t.Fatal("protein must carry over")
	}
	if logged.CommunityRating == nil || *logged.CommunityRating != 4.8 {
		t.Fatal("community rating must carry over")
	}
	if logged.ScanCount == nil || *logged.ScanCount != scans {
		t.Fatal("scan count must carry over")
	}

	meals, _ := svc.List(ctx, "user-1")
	if len(meals) != 1 || meals[0].ID != logged.ID {
		t.Fatalf("meals = %v", meals)
	}
}
