package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback types
const (
	FeedbackGeneral = "General"
	FeedbackBug     = "Bug"
	FeedbackFeature = "Feature Request"
)

type Feedback struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	Type string `bson:"type" json:"type"`
	Text string `bson:"text" json:"text"`

	// Optional: IP address for analytics (not personal info)
	IPAddress string `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
}
