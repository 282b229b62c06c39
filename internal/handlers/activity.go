package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/glucolife/glucolife-backend/internal/database"
	"github.com/glucolife/glucolife-backend/internal/services"
)

// RecordActivityRequest is the JSON body for POST /api/activity
type RecordActivityRequest struct {
	Path      string `json:"path"`
	EventType string `json:"event_type,omitempty"`
}

// RecordActivity records a page view (or other activity). User ID is optional (from session).
func RecordActivity(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var body RecordActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid JSON"})
		return
	}
	path := body.Path
	if path == "" {
		path = r.URL.Path
	}
	if len(path) > 500 {
		path = path[:500]
	}
	eventType := body.EventType
	if eventType == "" {
		eventType = "page_view"
	}

	var userID *string
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token != "" {
		if id, ok := services.ValidateSession(token); ok {
			userID = &id
		}
	}

	_, err := database.PostgresDB.Exec(`
		INSERT INTO activity_events (user_id, path, event_type, created_at)
		VALUES ($1, $2, $3, NOW())
	`, userID, path, eventType)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to record activity"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
}

// GetInsights returns analytics for the admin dashboard (page views per day, active users, top pages).
func GetInsights(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	now := time.Now().UTC()
	to := now
	from := now.AddDate(0, 0, -30) // default last 30 days
	if fromStr != "" {
		if t, err := time.Parse("2006-01-02", fromStr); err == nil {
			from = t.UTC()
		}
	}
	if toStr != "" {
		if t, err := time.Parse("2006-01-02", toStr); err == nil {
			to = t.UTC()
		}
	}
	if from.After(to) {
		from, to = to, from
	}
	toEnd := to.AddDate(0, 0, 1) // exclusive upper bound (end of "to" day)

	type dayCount struct {
		Date  string `json:"date"`
		Count int    `json:"count"`
	}

	// Page views per day
	viewsPerDay := make([]dayCount, 0)
	rows, err := database.PostgresDB.Query(`
		SELECT (created_at)::date AS d, COUNT(*)
		FROM activity_events
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY (created_at)::date
		ORDER BY d
	`, from, toEnd)
	if err != nil {
		log.Printf("[GetInsights] Failed to fetch page views: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to fetch page views"})
		return
	}
	for rows.Next() {
		var d time.Time
		var c int
		if err := rows.Scan(&d, &c); err == nil {
			viewsPerDay = append(viewsPerDay, dayCount{Date: d.Format("2006-01-02"), Count: c})
		}
	}
	rows.Close()

	// Active users per day (distinct authenticated users)
	activeUsersPerDay := make([]dayCount, 0)
	rows, err = database.PostgresDB.Query(`
		SELECT (created_at)::date AS d, COUNT(DISTINCT user_id)
		FROM activity_events
		WHERE created_at >= $1 AND created_at < $2 AND user_id IS NOT NULL
		GROUP BY (created_at)::date
		ORDER BY d
	`, from, toEnd)
	if err != nil {
		log.Printf("[GetInsights] Failed to fetch active users: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to fetch active users"})
		return
	}
	for rows.Next() {
		var d time.Time
		var c int
		if err := rows.Scan(&d, &c); err == nil {
			activeUsersPerDay = append(activeUsersPerDay, dayCount{Date: d.Format("2006-01-02"), Count: c})
		}
	}
	rows.Close()

	// Top pages
	type pageCount struct {
		Path  string `json:"path"`
		Count int    `json:"count"`
	}
	topPages := make([]pageCount, 0)
	rows, err = database.PostgresDB.Query(`
		SELECT path, COUNT(*)
		FROM activity_events
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY path
		ORDER BY COUNT(*) DESC
		LIMIT 10
	`, from, toEnd)
	if err != nil {
		log.Printf("[GetInsights] Failed to fetch top pages: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to fetch top pages"})
		return
	}
	for rows.Next() {
		var p string
		var c int
		if err := rows.Scan(&p, &c); err == nil {
			topPages = append(topPages, pageCount{Path: p, Count: c})
		}
	}
	rows.Close()

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":              true,
		"from":                 from.Format("2006-01-02"),
		"to":                   to.Format("2006-01-02"),
		"views_per_day":        viewsPerDay,
		"active_users_per_day": activeUsersPerDay,
		"top_pages":            topPages,
	})
}
