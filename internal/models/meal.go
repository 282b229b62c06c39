package models

import "time"

// Meal is one entry in a user's meal log. Field names mirror the frontend's
// JSON so stored collections round-trip unchanged.
type Meal struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ImageURL      string  `json:"imageUrl"`
	Carbohydrates float64 `json:"carbohydrates"`

	// Optional macros; pointers so an absent value is distinguishable from 0
	Protein *float64 `json:"protein,omitempty"`
	Fats    *float64 `json:"fats,omitempty"`
	Fiber   *float64 `json:"fiber,omitempty"`

	// Glycemic index category, stored as free text ("low"/"faible"/...).
	// Historically never an enforced enum.
	GlycemicIndex string `json:"glycemicIndex"`
	GlycemicScore int    `json:"glycemicScore"` // 0-100 nominal

	Advice             string   `json:"advice"`
	PersonalizedAdvice string   `json:"personalizedAdvice,omitempty"`
	Ingredients        []string `json:"ingredients,omitempty"`

	Timestamp time.Time `json:"timestamp"`

	PreMealGlucose  *float64 `json:"preMealGlucose,omitempty"`
	PostMealGlucose *float64 `json:"postMealGlucose,omitempty"`

	// Community metadata (set on shared/fixture meals only)
	CommunityRating *float64 `json:"communityRating,omitempty"`
	ScanCount       *int     `json:"scanCount,omitempty"`

	// UserRating is the owner's 1-5 star rating
	UserRating *int `json:"userRating,omitempty"`
}
