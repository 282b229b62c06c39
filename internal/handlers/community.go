package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/glucolife/glucolife-backend/internal/fixtures"
	"github.com/glucolife/glucolife-backend/internal/models"
	"github.com/glucolife/glucolife-backend/internal/services"
)

// PostsResponse is the community feed for GET /api/community/posts.
type PostsResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Posts   []models.CommunityPost `json:"posts"`
}

// GetPosts returns the community feed. ?sort=date (default) or reactions.
// An authenticated viewer gets their own reactions decorated onto the posts;
// anonymous browsing is allowed.
func GetPosts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	viewerID := ""
	if user, ok := currentUser(r); ok {
		viewerID = user.ID
	}

	posts, err := postService.List(r.Context(), viewerID)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(PostsResponse{Success: false, Message: "Failed to load posts", Posts: []models.CommunityPost{}})
		return
	}

	switch r.URL.Query().Get("sort") {
	case "reactions":
		posts = services.SortPostsByEngagement(posts)
	default:
		posts = services.SortPostsByDate(posts)
	}

	json.NewEncoder(w).Encode(PostsResponse{Success: true, Posts: posts})
}

// CreatePostRequest is the JSON body for POST /api/community/posts
type CreatePostRequest struct {
	Content  string `json:"content"`
	Category string `json:"category,omitempty"`
}

// CreatePost publishes a text post to the shared feed.
func CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := requireAuth(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid request body"})
		return
	}
	if req.Content == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Content is required"})
		return
	}

	author := models.PostAuthor{Name: user.Name, AvatarURL: user.AvatarURL, Nickname: user.Nickname}
	post, err := postService.Create(r.Context(), author, req.Content, req.Category, nil)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to create post"})
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "post": post})
}

// SharePostRequest is the JSON body for POST /api/community/posts/share
type SharePostRequest struct {
	MealID  string `json:"meal_id"`
	Message string `json:"message,omitempty"`
}

// SharePost publishes one of the caller's logged meals to the feed with an
// embedded snapshot of the meal.
func SharePost(w http.ResponseWriter, r *http.Request) {
	user, ok := requireAuth(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	var req SharePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid request body"})
		return
	}
	if req.MealID == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "meal_id is required"})
		return
	}

	meal, found, err := mealService.Get(r.Context(), user.ID, req.MealID)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to load meal"})
		return
	}
	if !found {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Meal not found"})
		return
	}

	content := req.Message
	if content == "" {
		content = meal.Name
	}

	author := models.PostAuthor{Name: user.Name, AvatarURL: user.AvatarURL, Nickname: user.Nickname}
	post, err := postService.Create(r.Context(), author, content, "Partage", &meal)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to share meal"})
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "post": post})
}

// ReactRequest is the JSON body for POST /api/community/react
type ReactRequest struct {
	PostID   string              `json:"post_id"`
	Reaction models.ReactionKind `json:"reaction"`
}

// ReactToPost toggles the caller's reaction on a post. Tapping the same
// reaction again clears it; picking a different one moves it.
func ReactToPost(w http.ResponseWriter, r *http.Request) {
	user, ok := requireAuth(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	var req ReactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid request body"})
		return
	}
	if req.PostID == "" || !models.ValidReaction(req.Reaction) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "post_id and a valid reaction are required"})
		return
	}

	post, found, err := postService.ToggleReaction(r.Context(), user.ID, req.PostID, req.Reaction)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to save reaction"})
		return
	}
	if !found {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Post not found"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "post": post})
}

// DeletePost handles DELETE /api/community/posts/{id} (admin only).
func DeletePost(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	postID := chi.URLParam(r, "id")
	if err := postService.Delete(r.Context(), postID); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to delete post"})
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "message": "Post deleted"})
}

// TopMeals returns the ten highest-rated community meals.
func TopMeals(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	meals := services.TopRatedMeals(fixtures.CommunityMeals(), 10)
	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "meals": meals})
}

// Leaderboard returns the weekly community ranking. An authenticated caller
// gets their own row flagged.
func Leaderboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	entries := fixtures.Leaderboard()
	if user, ok := currentUser(r); ok {
		for i := range entries {
			if entries[i].Name == user.Name {
				entries[i].IsCurrentUser = true
			}
		}
	}

	json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "leaderboard": entries})
}
