package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/glucolife/glucolife-backend/internal/models"
	"github.com/glucolife/glucolife-backend/internal/store"
)

// MealService owns each user's meal collection, persisted as one JSON blob
// per user. Every mutation loads the whole collection, applies the change in
// memory, writes the whole collection back and publishes the user's meal
// topic. The store is authoritative; callers must re-read after a notify.
type MealService struct {
	store store.Store
	bus   *Bus
}

func NewMealService(st store.Store, bus *Bus) *MealService {
	return &MealService{store: st, bus: bus}
}

func mealsKey(userID string) string {
	return "meals:" + userID
}

// List returns the user's full meal collection. An absent or malformed blob
// yields an empty collection; corruption is logged, never surfaced.
func (s *MealService) List(ctx context.Context, userID string) ([]models.Meal, error) {
	raw, ok, err := s.store.Read(ctx, mealsKey(userID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.Meal{}, nil
	}

	var meals []models.Meal
	if err := json.Unmarshal([]byte(raw), &meals); err != nil {
		log.Printf("malformed meal collection for user %s, resetting to empty: %v", userID, err)
		return []models.Meal{}, nil
	}
	return meals, nil
}

// Get finds one meal by id.
func (s *MealService) Get(ctx context.Context, userID, mealID string) (models.Meal, bool, error) {
	meals, err := s.List(ctx, userID)
	if err != nil {
		return models.Meal{}, false, err
	}
	for _, m := range meals {
		if m.ID == mealID {
			return m, true, nil
		}
	}
	return models.Meal{}, false, nil
}

// Add inserts a meal at the head of the user's collection. A missing id or
// timestamp is stamped here.
func (s *MealService) Add(ctx context.Context, userID string, meal models.Meal) (models.Meal, error) {
	if meal.ID == "" {
		meal.ID = uuid.NewString()
	}
	if meal.Timestamp.IsZero() {
		meal.Timestamp = time.Now()
	}

	meals, err := s.List(ctx, userID)
	if err != nil {
		return models.Meal{}, err
	}

	meals = append([]models.Meal{meal}, meals...)
	if err := s.save(ctx, userID, meals); err != nil {
		return models.Meal{}, err
	}
	return meal, nil
}

// Delete removes a meal by id. Deleting an absent id is a safe no-op: the
// collection is rewritten unchanged and the notification still fires.
func (s *MealService) Delete(ctx context.Context, userID, mealID string) error {
	meals, err := s.List(ctx, userID)
	if err != nil {
		return err
	}

	kept := meals[:0]
	for _, m := range meals {
		if m.ID != mealID {
			kept = append(kept, m)
		}
	}
	return s.save(ctx, userID, kept)
}

// Rate sets the owner's 1-5 star rating on a meal, overwriting any prior
// value. Returns false when the meal is absent.
func (s *MealService) Rate(ctx context.Context, userID, mealID string, rating int) (models.Meal, bool, error) {
	meals, err := s.List(ctx, userID)
	if err != nil {
		return models.Meal{}, false, err
	}

	var updated models.Meal
	found := false
	for i, m := range meals {
		if m.ID == mealID {
			r := rating
			meals[i].UserRating = &r
			updated = meals[i]
			found = true
			break
		}
	}
	if !found {
		return models.Meal{}, false, nil
	}

	if err := s.save(ctx, userID, meals); err != nil {
		return models.Meal{}, false, err
	}
	return updated, true, nil
}

// AddCommunityMealToLog copies a shared meal into the user's personal log.
// The copy gets a fresh identity and timestamp; nutrient fields carry over
// unchanged, including the source's community rating and scan count.
func (s *MealService) AddCommunityMealToLog(ctx context.Context, userID string, source models.Meal) (models.Meal, error) {
	meal := source
	meal.ID = uuid.NewString()
	meal.Timestamp = time.Now()
	return s.Add(ctx, userID, meal)
}

func (s *MealService) save(ctx context.Context, userID string, meals []models.Meal) error {
	raw, err := json.Marshal(meals)
	if err != nil {
		return err
	}
	if err := s.store.Write(ctx, mealsKey(userID), string(raw)); err != nil {
		return err
	}
	s.bus.Publish(TopicMealsChanged(userID))
	return nil
}
