package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/glucolife/glucolife-backend/internal/fixtures"
	"github.com/glucolife/glucolife-backend/internal/models"
	"github.com/glucolife/glucolife-backend/internal/store"
)

const postsKey = "posts"

func reactionsKey(viewerID string) string {
	return "reactions:" + viewerID
}

// PostService owns the shared community feed plus each viewer's reaction
// ledger. The feed is one JSON blob; the ledger is a separate blob per
// viewer (post id → reaction kind) so the shared tallies and the viewer's
// own selection can be reconciled on load. Mutations follow the same whole
// load/modify/rewrite protocol as meals and publish the posts topic.
type PostService struct {
	store store.Store
	bus   *Bus
}

func NewPostService(st store.Store, bus *Bus) *PostService {
	return &PostService{store: st, bus: bus}
}

// load returns the raw feed. An absent or malformed blob yields the bundled
// fixture posts; corruption is logged and repaired on the next write.
func (s *PostService) load(ctx context.Context) ([]models.CommunityPost, error) {
	raw, ok, err := s.store.Read(ctx, postsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return fixtures.CommunityPosts(), nil
	}

	var posts []models.CommunityPost
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		log.Printf("malformed posts collection, falling back to seed data: %v", err)
		return fixtures.CommunityPosts(), nil
	}
	return posts, nil
}

// Ledger returns the viewer's reaction ledger. Absent or malformed → empty.
func (s *PostService) Ledger(ctx context.Context, viewerID string) (map[string]models.ReactionKind, error) {
	ledger := make(map[string]models.ReactionKind)
	if viewerID == "" {
		return ledger, nil
	}

	raw, ok, err := s.store.Read(ctx, reactionsKey(viewerID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return ledger, nil
	}
	if err := json.Unmarshal([]byte(raw), &ledger); err != nil {
		log.Printf("malformed reaction ledger for viewer %s, resetting: %v", viewerID, err)
		return make(map[string]models.ReactionKind), nil
	}
	return ledger, nil
}

// List returns the feed with the viewer's own reactions filled in from their
// ledger. viewerID may be empty (anonymous browsing: no decoration).
func (s *PostService) List(ctx context.Context, viewerID string) ([]models.CommunityPost, error) {
	posts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	ledger, err := s.Ledger(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		posts[i].UserReaction = ledger[posts[i].ID]
	}
	return posts, nil
}

// Create inserts a new post at the head of the feed. A nil sharedMeal makes
// a plain text post; category defaults to "Partage".
func (s *PostService) Create(ctx context.Context, author models.PostAuthor, content, category string, sharedMeal *models.Meal) (models.CommunityPost, error) {
	if category == "" {
		category = "Partage"
	}

	post := models.CommunityPost{
		ID:         uuid.NewString(),
		Author:     author,
		Content:    content,
		Category:   category,
		Timestamp:  time.Now(),
		Reactions:  models.ReactionTally{},
		SharedMeal: sharedMeal,
	}

	posts, err := s.load(ctx)
	if err != nil {
		return models.CommunityPost{}, err
	}

	posts = append([]models.CommunityPost{post}, posts...)
	if err := s.save(ctx, posts); err != nil {
		return models.CommunityPost{}, err
	}
	return post, nil
}

// Delete removes a post by id. Absent id → safe no-op.
func (s *PostService) Delete(ctx context.Context, postID string) error {
	posts, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := posts[:0]
	for _, p := range posts {
		if p.ID != postID {
			kept = append(kept, p)
		}
	}
	return s.save(ctx, kept)
}

// ToggleReaction applies the viewer's reaction to a post:
//
//	no-reaction --R--> R           (R +1)
//	S --R--> no-reaction if S == R (R -1)
//	S --R--> R           otherwise (S -1, R +1)
//
// Tallies never go below zero and the ledger holds at most one kind per
// post. Returns false when the post does not exist (safe no-op).
func (s *PostService) ToggleReaction(ctx context.Context, viewerID, postID string, kind models.ReactionKind) (models.CommunityPost, bool, error) {
	posts, err := s.load(ctx)
	if err != nil {
		return models.CommunityPost{}, false, err
	}
	ledger, err := s.Ledger(ctx, viewerID)
	if err != nil {
		return models.CommunityPost{}, false, err
	}

	idx := -1
	for i, p := range posts {
		if p.ID == postID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.CommunityPost{}, false, nil
	}

	old := ledger[postID]
	if old != "" {
		posts[idx].Reactions.Bump(old, -1)
	}
	if old == kind {
		delete(ledger, postID)
	} else {
		posts[idx].Reactions.Bump(kind, +1)
		ledger[postID] = kind
	}

	if err := s.save(ctx, posts); err != nil {
		return models.CommunityPost{}, false, err
	}
	if err := s.saveLedger(ctx, viewerID, ledger); err != nil {
		return models.CommunityPost{}, false, err
	}

	updated := posts[idx]
	updated.UserReaction = ledger[postID]
	return updated, true, nil
}

func (s *PostService) save(ctx context.Context, posts []models.CommunityPost) error {
	// The viewer's own reaction lives in the ledger, never in the feed blob
	for i := range posts {
		posts[i].UserReaction = ""
	}

	raw, err := json.Marshal(posts)
	if err != nil {
		return err
	}
	if err := s.store.Write(ctx, postsKey, string(raw)); err != nil {
		return err
	}
	s.bus.Publish(TopicPostsChanged)
	return nil
}

func (s *PostService) saveLedger(ctx context.Context, viewerID string, ledger map[string]models.ReactionKind) error {
	raw, err := json.Marshal(ledger)
	if err != nil {
		return err
	}
	return s.store.Write(ctx, reactionsKey(viewerID), string(raw))
}
