package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/glucolife/glucolife-backend/internal/models"
	"github.com/glucolife/glucolife-backend/internal/store"
)

func userKey(userID string) string {
	return "user:" + userID
}

// UserService persists user profiles as one JSON blob per user.
type UserService struct {
	store store.Store
}

func NewUserService(st store.Store) *UserService {
	return &UserService{store: st}
}

// Save writes the user's profile blob.
func (s *UserService) Save(ctx context.Context, user models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.store.Write(ctx, userKey(user.ID), string(raw))
}

// Load returns the stored profile. A malformed blob is treated as absent.
func (s *UserService) Load(ctx context.Context, userID string) (models.User, bool, error) {
	raw, ok, err := s.store.Read(ctx, userKey(userID))
	if err != nil {
		return models.User{}, false, err
	}
	if !ok {
		return models.User{}, false, nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		log.Printf("malformed profile for user %s: %v", userID, err)
		return models.User{}, false, nil
	}
	return user, true, nil
}
