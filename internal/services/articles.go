package services

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"time"

	"github.com/glucolife/glucolife-backend/internal/fixtures"
	"github.com/glucolife/glucolife-backend/internal/models"
	"github.com/glucolife/glucolife-backend/internal/store"
)

const (
	articlesCacheKey = "articles:daily"
	// articlesCacheMaxAge is how long a daily selection stays fresh
	articlesCacheMaxAge = 48 * time.Hour
	// perCategory picks per article category in the daily selection
	perCategory = 2
)

type dailyArticles struct {
	Articles  []models.Article `json:"articles"`
	Timestamp time.Time        `json:"timestamp"`
}

// ArticleService serves the rotating daily article selection: a shuffled
// sample of the bundled library, cached in the store with its generation
// timestamp and regenerated once stale.
type ArticleService struct {
	store store.Store
	now   func() time.Time
}

func NewArticleService(st store.Store) *ArticleService {
	return &ArticleService{store: st, now: time.Now}
}

// Daily returns today's article selection, regenerating when the cache is
// absent, malformed or older than 48 hours.
func (s *ArticleService) Daily(ctx context.Context) ([]models.Article, error) {
	raw, ok, err := s.store.Read(ctx, articlesCacheKey)
	if err != nil {
		return nil, err
	}

	if ok {
		var cached dailyArticles
		if err := json.Unmarshal([]byte(raw), &cached); err != nil {
			log.Printf("malformed daily articles cache, regenerating: %v", err)
			_ = s.store.Remove(ctx, articlesCacheKey)
		} else if s.now().Sub(cached.Timestamp) < articlesCacheMaxAge && len(cached.Articles) > 0 {
			return cached.Articles, nil
		}
	}

	selection := s.selectDaily()
	cached := dailyArticles{Articles: selection, Timestamp: s.now()}
	data, err := json.Marshal(cached)
	if err != nil {
		return nil, err
	}
	if err := s.store.Write(ctx, articlesCacheKey, string(data)); err != nil {
		return nil, err
	}
	return selection, nil
}

// selectDaily samples perCategory articles from each category and shuffles
// the combined result.
func (s *ArticleService) selectDaily() []models.Article {
	byCategory := make(map[string][]models.Article)
	for _, a := range fixtures.Articles() {
		byCategory[a.Category] = append(byCategory[a.Category], a)
	}

	var selection []models.Article
	for _, category := range []string{models.ArticleNutrition, models.ArticleLifestyle, models.ArticleRecipes} {
		pool := byCategory[category]
		rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		if len(pool) > perCategory {
			pool = pool[:perCategory]
		}
		selection = append(selection, pool...)
	}

	rand.Shuffle(len(selection), func(i, j int) { selection[i], selection[j] = selection[j], selection[i] })
	return selection
}
