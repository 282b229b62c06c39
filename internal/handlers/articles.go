package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/glucolife/glucolife-backend/internal/models"
	"github.com/glucolife/glucolife-backend/internal/services"
)

// ArticlesResponse is the daily article selection for GET /api/articles.
type ArticlesResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message,omitempty"`
	Articles []models.Article `json:"articles"`
}

// GetDailyArticles returns the rotating daily article selection, filtered by
// optional ?category= and ?q= parameters.
func GetDailyArticles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	articles, err := articleService.Daily(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ArticlesResponse{Success: false, Message: "Failed to load articles", Articles: []models.Article{}})
		return
	}

	filtered := services.FilterArticles(articles, r.URL.Query().Get("category"), r.URL.Query().Get("q"))
	json.NewEncoder(w).Encode(ArticlesResponse{Success: true, Articles: filtered})
}
