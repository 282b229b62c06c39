package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/glucolife/glucolife-backend/internal/config"
	"github.com/glucolife/glucolife-backend/internal/models"
	"github.com/glucolife/glucolife-backend/internal/services"
	"github.com/glucolife/glucolife-backend/internal/store"
)

// Shared handler state, wired once at startup.
var (
	appConfig      *config.Config
	mealService    *services.MealService
	postService    *services.PostService
	articleService *services.ArticleService
	userService    *services.UserService
	insightClient  *services.InsightClient
	eventBus       *services.Bus
)

// Init wires the handler package to its services.
func Init(cfg *config.Config, st store.Store, bus *services.Bus) {
	appConfig = cfg
	eventBus = bus
	mealService = services.NewMealService(st, bus)
	postService = services.NewPostService(st, bus)
	articleService = services.NewArticleService(st)
	userService = services.NewUserService(st)
	insightClient = services.NewInsightClient(cfg)
}

// extractBearerToken pulls the token out of an "Authorization: Bearer x" header.
func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// currentUser resolves the request's session token to the stored profile.
func currentUser(r *http.Request) (models.User, bool) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	userID, ok := services.ValidateSession(token)
	if !ok {
		return models.User{}, false
	}
	user, found, err := userService.Load(r.Context(), userID)
	if err != nil || !found {
		return models.User{}, false
	}
	return user, true
}

// requireAuth writes a 401 envelope when no valid session is present.
func requireAuth(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	user, ok := currentUser(r)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Authentication required"})
		return models.User{}, false
	}
	return user, true
}

// requireAdmin writes a 403 envelope when the session user is not an admin.
func requireAdmin(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	user, ok := requireAuth(w, r)
	if !ok {
		return models.User{}, false
	}
	if !user.IsAdmin {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Admin access required"})
		return models.User{}, false
	}
	return user, true
}

// clientIP extracts the caller's IP, honoring proxy headers.
func clientIP(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}

	return ip
}
