package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/glucolife/glucolife-backend/internal/models"
	"github.com/glucolife/glucolife-backend/internal/services"
)

// MealsResponse is the grouped meal history for GET /api/meals.
type MealsResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message,omitempty"`
	Groups  []services.MealGroup `json:"groups"`
	Total   int                  `json:"total"`
}

// GetMeals returns the user's meal history grouped by calendar day, newest
// first. ?q= filters by name before grouping; ?lang= localizes the labels.
func GetMeals(w http.ResponseWriter, r *http.Request) {
	user, ok := requireAuth(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	meals, err := mealService.List(r.Context(), user.ID)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(MealsResponse{Success: false, Message: "Failed to load meals", Groups: []services.MealGroup{}})
		return
	}

	filtered := services.FilterMealsByName(meals, r.URL.Query().Get("q"))
	groups := services.GroupMealsByDay(filtered, time.Now(), r.URL.Query().Get("lang"))
	if groups == nil {
		groups = []services.MealGroup{}
	}

	json.NewEncoder(w).Encode(MealsResponse{Success: true, Groups: groups, Total: len(filtered)})
}

// CreateMeal handles POST /api/meals: adds an analyzed meal to the log.
func CreateMeal(w http.ResponseWriter, r *http.Request) {
	user, ok := requireAuth(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	var meal models.Meal
	if err := json.NewDecoder(r.Body).Decode(&meal); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid request body"})
		return
	}
	if meal.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Meal name is required"})
		return
	}

	created, err := mealService.Add(r.Context(), user.ID, meal)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to save meal"})
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "meal": created})
}

// DeleteMeal handles DELETE /api/meals/{id}. Deleting an unknown id still
// succeeds.
func DeleteMeal(w http.ResponseWriter, r *http.Request) {
	user, ok := requireAuth(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	mealID := chi.URLParam(r, "id")
	if err := mealService.Delete(r.Context(), user.ID, mealID); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to delete meal"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "Meal deleted"})
}

// RateMealRequest is the JSON body for POST /api/meals/{id}/rating
type RateMealRequest struct {
	Rating int `json:"rating"`
}

// RateMeal sets the user's 1-5 star rating on one of their logged meals.
func RateMeal(w http.ResponseWriter, r *http.Request) {
	user, ok := requireAuth(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	var req RateMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid request body"})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Rating must be between 1 and 5"})
		return
	}

	mealID := chi.URLParam(r, "id")
	meal, found, err := mealService.Rate(r.Context(), user.ID, mealID, req.Rating)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to save rating"})
		return
	}
	if !found {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Meal not found"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "meal": meal})
}

// LogMealRequest is the JSON body for POST /api/meals/log: a community meal
// snapshot to copy into the personal log.
type LogMealRequest struct {
	Meal models.Meal `json:"meal"`
}

// LogCommunityMeal copies a shared meal into the user's log with a fresh
// identity and timestamp.
func LogCommunityMeal(w http.ResponseWriter, r *http.Request) {
	user, ok := requireAuth(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	var req LogMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid request body"})
		return
	}
	if req.Meal.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Meal is required"})
		return
	}

	logged, err := mealService.AddCommunityMealToLog(r.Context(), user.ID, req.Meal)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to log meal"})
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "meal": logged})
}

// CompareResponse is returned by GET /api/meals/compare.
type CompareResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Meals   []models.Meal `json:"meals,omitempty"`
	Insight string        `json:"insight,omitempty"`
}

// CompareMeals handles GET /api/meals/compare?a=<id>&b=<id>&lang=. Both ids
// must name meals in the caller's own log. The generated insight degrades to
// a localized fallback when the text service is unreachable.
func CompareMeals(w http.ResponseWriter, r *http.Request) {
	user, ok := requireAuth(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	idA := r.URL.Query().Get("a")
	idB := r.URL.Query().Get("b")
	lang := r.URL.Query().Get("lang")
	if idA == "" || idB == "" || idA == idB {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(CompareResponse{Success: false, Message: "Two distinct meal ids are required"})
		return
	}

	mealA, foundA, err := mealService.Get(r.Context(), user.ID, idA)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(CompareResponse{Success: false, Message: "Failed to load meals"})
		return
	}
	mealB, foundB, err := mealService.Get(r.Context(), user.ID, idB)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(CompareResponse{Success: false, Message: "Failed to load meals"})
		return
	}
	if !foundA || !foundB {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(CompareResponse{Success: false, Message: "Meal not found"})
		return
	}

	insight := services.InsightFallback(lang)
	if insightClient.Configured() {
		insight = insightClient.CompareMeals(r.Context(), mealA, mealB, lang)
	}

	json.NewEncoder(w).Encode(CompareResponse{
		Success: true,
		Meals:   []models.Meal{mealA, mealB},
		Insight: insight,
	})
}
