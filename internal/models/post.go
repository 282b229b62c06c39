package models

import "time"

// ReactionKind is one of the three fixed reaction types on a community post.
type ReactionKind string

const (
	ReactionLike ReactionKind = "like"
	ReactionLove ReactionKind = "love"
	ReactionIdea ReactionKind = "idea"
)

// ValidReaction reports whether k is one of the three known kinds.
func ValidReaction(k ReactionKind) bool {
	return k == ReactionLike || k == ReactionLove || k == ReactionIdea
}

// PostAuthor is a snapshot of the author at posting time, not a reference.
// It goes stale if the author later changes their profile.
type PostAuthor struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	Nickname  string `json:"nickname,omitempty"`
}

// ReactionTally counts reactions of each kind on a post.
type ReactionTally struct {
	Like int `json:"like"`
	Love int `json:"love"`
	Idea int `json:"idea"`
}

// Total is the engagement score used for sorting.
func (t ReactionTally) Total() int {
	return t.Like + t.Love + t.Idea
}

// Bump adjusts the tally for kind by delta, never going below zero.
func (t *ReactionTally) Bump(kind ReactionKind, delta int) {
	bump := func(n int) int {
		n += delta
		if n < 0 {
			n = 0
		}
		return n
	}
	switch kind {
	case ReactionLike:
		t.Like = bump(t.Like)
	case ReactionLove:
		t.Love = bump(t.Love)
	case ReactionIdea:
		t.Idea = bump(t.Idea)
	}
}

// Count returns the tally for one kind.
func (t ReactionTally) Count(kind ReactionKind) int {
	switch kind {
	case ReactionLike:
		return t.Like
	case ReactionLove:
		return t.Love
	case ReactionIdea:
		return t.Idea
	}
	return 0
}

// CommunityPost is one entry in the shared community feed.
type CommunityPost struct {
	ID        string        `json:"id"`
	Author    PostAuthor    `json:"author"`
	Content   string        `json:"content"`
	Category  string        `json:"category"` // Astuce, Recette, Question, Motivation, Partage
	Timestamp time.Time     `json:"timestamp"`
	Reactions ReactionTally `json:"reactions"`

	// UserReaction is the requesting viewer's own reaction, reconciled from
	// the per-viewer ledger on load. Never persisted in the posts blob.
	UserReaction ReactionKind `json:"userReaction,omitempty"`

	// SharedMeal is a full snapshot embedded when the post shares a meal
	SharedMeal *Meal `json:"sharedMeal,omitempty"`
}
