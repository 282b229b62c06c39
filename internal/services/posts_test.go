package services

import (
	"context"
	"testing"

	"github.com/glucolife/glucolife-backend/internal/fixtures"
	"github.com/glucolife/glucolife-backend/internal/models"
	"github.com/glucolife/glucolife-backend/internal/store"
)

func newPostService() *PostService {
	return NewPostService(store.NewMemoryStore(), NewBus())
}

func TestPostsListSeedsFixtures(t *testing.T) {
	ctx := context.Background()
	svc := newPostService()

	posts, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(posts) != len(fixtures.CommunityPosts()) {
		t.Fatalf("len = %d, want %d seed posts", len(posts), len(fixtures.CommunityPosts()))
	}
}

func TestPostsCorruptBlobFallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := NewPostService(st, NewBus())

	if err := st.Write(ctx, "posts", "{not json"); err != nil {
		t.Fatal(err)
	}

	posts, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("List on corrupt blob failed: %v", err)
	}
	if len(posts) != len(fixtures.CommunityPosts()) {
		t.Fatalf("len = %d, want seed posts", len(posts))
	}
}

func TestCreatePost(t *testing.T) {
	ctx := context.Background()
	svc := newPostService()

	author := models.PostAuthor{Name: "Marie", AvatarURL: "https://example.com/a.png"}
	post, err := svc.Create(ctx, author, "Hello", "", nil)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if post.ID == "" {
		t.Fatal("created post has no id")
	}
	if post.Category != "Partage" {
		t.Fatalf("Category = %q, want default Partage", post.Category)
	}
	if post.Reactions.Total() != 0 {
		t.Fatal("new post must start with zero reactions")
	}

	posts, err := svc.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if posts[0].ID != post.ID {
		t.Fatal("new post should be first in the feed")
	}
}

func TestToggleReactionSequence(t *testing.T) {
	ctx := context.Background()
	svc := newPostService()

	post, err := svc.Create(ctx, models.PostAuthor{Name: "Marie"}, "Hello", "", nil)
	if err != nil {
		t.Fatal(err)
	}

	// like: tally 1, viewer reaction set
	got, found, err := svc.ToggleReaction(ctx, "viewer-1", post.ID, models.ReactionLike)
	if err != nil || !found {
		t.Fatalf("ToggleReaction failed: found=%v err=%v", found, err)
	}
	if got.Reactions.Like != 1 || got.UserReaction != models.ReactionLike {
		t.Fatalf("after like: tally=%d reaction=%q", got.Reactions.Like, got.UserReaction)
	}

	// like again: cleared
	got, _, err = svc.ToggleReaction(ctx, "viewer-1", post.ID, models.ReactionLike)
	if err != nil {
		t.Fatal(err)
	}
	if got.Reactions.Like != 0 || got.UserReaction != "" {
		t.Fatalf("after second like: tally=%d reaction=%q, want cleared", got.Reactions.Like, got.UserReaction)
	}

	// love: set
	got, _, err = svc.ToggleReaction(ctx, "viewer-1", post.ID, models.ReactionLove)
	if err != nil {
		t.Fatal(err)
	}
	if got.Reactions.Love != 1 || got.UserReaction != models.ReactionLove {
		t.Fatalf("after love: tally=%d reaction=%q", got.Reactions.Love, got.UserReaction)
	}

	// like: love moves to like
	got, _, err = svc.ToggleReaction(ctx, "viewer-1", post.ID, models.ReactionLike)
	if err != nil {
		t.Fatal(err)
	}
	if got.Reactions.Love != 0 || got.Reactions.Like != 1 || got.UserReaction != models.ReactionLike {
		t.Fatalf("after switch: love=%d like=%d reaction=%q", got.Reactions.Love, got.Reactions.Like, got.UserReaction)
	}
}

func TestToggleReactionTwoViewers(t *testing.T) {
	ctx := context.Background()
	svc := newPostService()

	post, err := svc.Create(ctx, models.PostAuthor{Name: "Marie"}, "Hello", "", nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := svc.ToggleReaction(ctx, "viewer-1", post.ID, models.ReactionLike); err != nil {
		t.Fatal(err)
	}
	got, _, err := svc.ToggleReaction(ctx, "viewer-2", post.ID, models.ReactionLike)
	if err != nil {
		t.Fatal(err)
	}
	if got.Reactions.Like != 2 {
		t.Fatalf("like tally = %d, want 2", got.Reactions.Like)
	}

	// Each viewer sees only their own reaction
	posts, err := svc.List(ctx, "viewer-1")
	if err != nil {
		t.Fatal(err)
	}
	if posts[0].UserReaction != models.ReactionLike {
		t.Fatalf("viewer-1 reaction = %q", posts[0].UserReaction)
	}

	// viewer-2 clears; viewer-1's reaction survives
	if _, _, err := svc.ToggleReaction(ctx, "viewer-2", post.ID, models.ReactionLike); err != nil {
		t.Fatal(err)
	}
	posts, _ = svc.List(ctx, "viewer-1")
	if posts[0].Reactions.Like != 1 || posts[0].UserReaction != models.ReactionLike {
		t.Fatalf("viewer-1 view after viewer-2 clear: like=%d reaction=%q", posts[0].Reactions.Like, posts[0].UserReaction)
	}
}

func TestToggleReactionUnknownPost(t *testing.T) {
	ctx := context.Background()
	svc := newPostService()

	_, found, err := svc.ToggleReaction(ctx, "viewer-1", "no-such-post", models.ReactionIdea)
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Fatal("reacting to an unknown post must report not found")
	}
}

func TestUserReactionNotPersisted(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := NewPostService(st, NewBus())

	post, err := svc.Create(ctx, models.PostAuthor{Name: "Marie"}, "Hello", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.ToggleReaction(ctx, "viewer-1", post.ID, models.ReactionLove); err != nil {
		t.Fatal(err)
	}

	// An anonymous viewer sees the tally but no personal reaction
	posts, err := svc.List(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range posts {
		if p.ID == post.ID {
			if p.Reactions.Love != 1 {
				t.Fatalf("love tally = %d, want 1", p.Reactions.Love)
			}
			if p.UserReaction != "" {
				t.Fatalf("anonymous viewer got UserReaction %q", p.UserReaction)
			}
			return
		}
	}
	t.Fatal("post not found in feed")
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()
	svc := newPostService()

	post, err := svc.Create(ctx, models.PostAuthor{Name: "Marie"}, "Bye", "", nil)
	if err != nil {
		t.Fatal(err)
	}

	before, _ := svc.List(ctx, "")
	if err := svc.Delete(ctx, post.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	after, _ := svc.List(ctx, "")
	if len(after) != len(before)-1 {
		t.Fatalf("len after delete = %d, want %d", len(after), len(before)-1)
	}

	// Absent id is a safe no-op
	if err := svc.Delete(ctx, "no-such-post"); err != nil {
		t.Fatalf("Delete of absent post failed: %v", err)
	}
	again, _ := svc.List(ctx, "")
	if len(again) != len(after) {
		t.Fatalf("len after no-op delete = %d, want %d", len(again), len(after))
	}
}
