package models

import "time"

// User is the session identity snapshot. There is no credential verification
// anywhere in this system; the submitted name/email pair is trusted as-is.
type User struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name            string `json:"name"`
	Email           string `json:"email"`
	AvatarURL       string `json:"avatarUrl"`
	TrackingProgram string `json:"trackingProgram"` // Prévention, Gestion Diabète, Optimisation Santé
	Nickname        string `json:"nickname,omitempty"`
	IsAdmin         bool   `json:"isAdmin,omitempty"`
}
