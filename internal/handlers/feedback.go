package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/glucolife/glucolife-backend/internal/database"
	"github.com/glucolife/glucolife-backend/internal/models"
)

// SubmitFeedbackRequest represents the request to submit feedback
type SubmitFeedbackRequest struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// SubmitFeedbackResponse represents the response after submitting feedback
type SubmitFeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// GetFeedbacksResponse represents the response for getting feedbacks
type GetFeedbacksResponse struct {
	Success   bool                     `json:"success"`
	Message   string                   `json:"message,omitempty"`
	Feedbacks []map[string]interface{} `json:"feedbacks"`
	Total     int64                    `json:"total"`
}

func validFeedbackType(t string) bool {
	return t == models.FeedbackGeneral || t == models.FeedbackBug || t == models.FeedbackFeature
}

// SubmitFeedback handles submitting feedback
func SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(SubmitFeedbackResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	if req.Type == "" {
		req.Type = models.FeedbackGeneral
	}
	if !validFeedbackType(req.Type) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(SubmitFeedbackResponse{
			Success: false,
			Message: "Invalid feedback type",
		})
		return
	}

	if req.Text == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(SubmitFeedbackResponse{
			Success: false,
			Message: "Feedback text is required",
		})
		return
	}

	if len(req.Text) < 10 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(SubmitFeedbackResponse{
			Success: false,
			Message: "Feedback must be at least 10 characters long",
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// IP address is kept for abuse analytics only
	feedback := models.Feedback{
		ID:        primitive.NewObjectID(),
		CreatedAt: time.Now(),
		Type:      req.Type,
		Text:      req.Text,
		IPAddress: clientIP(r),
	}

	_, err := database.DB.Collection("feedbacks").InsertOne(ctx, feedback)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(SubmitFeedbackResponse{
			Success: false,
			Message: "Failed to submit feedback",
		})
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SubmitFeedbackResponse{
		Success: true,
		Message: "Feedback submitted successfully. Thank you!",
	})
}

// GetFeedbacks handles getting all feedbacks (admin only)
func GetFeedbacks(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	total, err := database.DB.Collection("feedbacks").CountDocuments(ctx, bson.M{})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(GetFeedbacksResponse{
			Success:   false,
			Message:   "Failed to fetch feedbacks",
			Feedbacks: []map[string]interface{}{},
			Total:     0,
		})
		return
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.M{"created_at": -1}) // newest first

	cursor, err := database.DB.Collection("feedbacks").Find(ctx, bson.M{}, findOptions)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(GetFeedbacksResponse{
			Success:   false,
			Message:   "Failed to fetch feedbacks",
			Feedbacks: []map[string]interface{}{},
			Total:     0,
		})
		return
	}
	defer cursor.Close(ctx)

	var feedbacks []models.Feedback
	if err = cursor.All(ctx, &feedbacks); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(GetFeedbacksResponse{
			Success:   false,
			Message:   "Failed to fetch feedbacks",
			Feedbacks: []map[string]interface{}{},
			Total:     0,
		})
		return
	}

	feedbackMaps := make([]map[string]interface{}, 0, len(feedbacks))
	for _, feedback := range feedbacks {
		feedbackMap := map[string]interface{}{
			"id":         feedback.ID.Hex(),
			"type":       feedback.Type,
			"text":       feedback.Text,
			"created_at": feedback.CreatedAt,
		}
		if feedback.IPAddress != "" {
			feedbackMap["ip_address"] = feedback.IPAddress
		}
		feedbackMaps = append(feedbackMaps, feedbackMap)
	}

	json.NewEncoder(w).Encode(GetFeedbacksResponse{
		Success:   true,
		Feedbacks: feedbackMaps,
		Total:     total,
	})
}
