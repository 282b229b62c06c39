package routes

import (
	"github.com/glucolife/glucolife-backend/internal/handlers"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(r *chi.Mux) {
	// Auth routes (identity stub, no passwords)
	r.Post("/api/auth/signup", handlers.Signup)
	r.Post("/api/auth/signin", handlers.Signin)
	r.Get("/api/auth/me", handlers.GetMe)
	r.Post("/api/auth/signout", handlers.Signout)

	// Meal log routes
	r.Get("/api/meals", handlers.GetMeals)
	r.Post("/api/meals", handlers.CreateMeal)
	r.Delete("/api/meals/{id}", handlers.DeleteMeal)
	r.Post("/api/meals/{id}/rating", handlers.RateMeal)
	r.Post("/api/meals/log", handlers.LogCommunityMeal)
	r.Get("/api/meals/compare", handlers.CompareMeals)

	// Community routes
	r.Get("/api/community/posts", handlers.GetPosts)
	r.Post("/api/community/posts", handlers.CreatePost)
	r.Post("/api/community/posts/share", handlers.SharePost)
	r.Delete("/api/community/posts/{id}", handlers.DeletePost)
	r.Post("/api/community/react", handlers.ReactToPost)
	r.Get("/api/community/top-meals", handlers.TopMeals)
	r.Get("/api/community/leaderboard", handlers.Leaderboard)

	// Daily articles
	r.Get("/api/articles", handlers.GetDailyArticles)

	// File upload routes
	r.Post("/api/upload", handlers.UploadFile)

	// Feedback routes
	r.Post("/api/feedback", handlers.SubmitFeedback)
	r.Get("/api/admin/feedbacks", handlers.GetFeedbacks)

	// Activity analytics
	r.Post("/api/activity", handlers.RecordActivity)
	r.Get("/api/admin/insights", handlers.GetInsights)

	// WebSocket endpoint for change notifications (payload-less; clients re-fetch)
	r.Get("/ws/events", handlers.EventsWS)
}
