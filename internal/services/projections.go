package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/glucolife/glucolife-backend/internal/models"
)

// Projections are pure derivations over a collection snapshot plus transient
// view parameters. They never mutate their input and never touch the store.

// SortPostsByDate returns posts ordered newest first. Stable: equal
// timestamps keep their relative input order.
func SortPostsByDate(posts []models.CommunityPost) []models.CommunityPost {
	out := make([]models.CommunityPost, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// SortPostsByEngagement returns posts ordered by total reaction count,
// descending. Stable: ties keep their relative input order.
func SortPostsByEngagement(posts []models.CommunityPost) []models.CommunityPost {
	out := make([]models.CommunityPost, len(posts))
	copy(out, posts)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Reactions.Total() > out[j].Reactions.Total()
	})
	return out
}

// TopRatedMeals selects the n highest community-rated meals, descending.
// Stable: equal ratings keep their relative input order.
func TopRatedMeals(meals []models.Meal, n int) []models.Meal {
	out := make([]models.Meal, len(meals))
	copy(out, meals)
	sort.SliceStable(out, func(i, j int) bool {
		return rating(out[i]) > rating(out[j])
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func rating(m models.Meal) float64 {
	if m.CommunityRating == nil {
		return 0
	}
	return *m.CommunityRating
}

// FilterMealsByName keeps meals whose name contains query,
// case-insensitively. An empty query matches everything.
func FilterMealsByName(meals []models.Meal, query string) []models.Meal {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return meals
	}
	out := make([]models.Meal, 0, len(meals))
	for _, m := range meals {
		if strings.Contains(strings.ToLower(m.Name), query) {
			out = append(out, m)
		}
	}
	return out
}

// FilterArticles keeps articles matching the category (empty or "All" matches
// every category) whose title or summary contains query, case-insensitively.
func FilterArticles(articles []models.Article, category, query string) []models.Article {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if category != "" && category != "All" && a.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(a.Title), query) &&
			!strings.Contains(strings.ToLower(a.Summary), query) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// MealGroup is one calendar-day bucket of the meal history view.
type MealGroup struct {
	Label string        `json:"label"`
	Date  string        `json:"date"` // YYYY-MM-DD in the viewer's zone
	Meals []models.Meal `json:"meals"`
}

// GroupMealsByDay partitions meals into calendar-day buckets in now's time
// zone, newest day first and newest meal first within a day. Today and
// yesterday get localized special labels; older days get a full localized
// date. Day membership is by calendar date, not 24-hour arithmetic.
func GroupMealsByDay(meals []models.Meal, now time.Time, lang string) []MealGroup {
	sorted := make([]models.Meal, len(meals))
	copy(sorted, meals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})

	loc := now.Location()
	today := dateOnly(now)
	yesterday := today.AddDate(0, 0, -1)

	var groups []MealGroup
	index := make(map[string]int)

	for _, m := range sorted {
		day := dateOnly(m.Timestamp.In(loc))
		key := day.Format("2006-01-02")

		i, ok := index[key]
		if !ok {
			var label string
			switch {
			case day.Equal(today):
				label = localize(lang, "Aujourd'hui", "Today")
			case day.Equal(yesterday):
				label = localize(lang, "Hier", "Yesterday")
			default:
				label = formatFullDate(day, lang)
			}
			groups = append(groups, MealGroup{Label: label, Date: key})
			i = len(groups) - 1
			index[key] = i
		}
		groups[i].Meals = append(groups[i].Meals, m)
	}

	return groups
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func localize(lang, fr, en string) string {
	if strings.HasPrefix(strings.ToLower(lang), "fr") {
		return fr
	}
	return en
}

var frenchWeekdays = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}

var frenchMonths = [...]string{"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre"}

func formatFullDate(day time.Time, lang string) string {
	if strings.HasPrefix(strings.ToLower(lang), "fr") {
		return fmt.Sprintf("%s %d %s %d",
			frenchWeekdays[day.Weekday()], day.Day(), frenchMonths[day.Month()-1], day.Year())
	}
	return day.Format("Monday, January 2, 2006")
}

// CompareSelection is the pick-two set backing the meal comparison view.
// Toggling a selected id removes it; adding a third is a no-op.
type CompareSelection struct {
	ids []string
}

// Toggle flips id's membership and reports whether the selection changed.
func (s *CompareSelection) Toggle(id string) bool {
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return true
		}
	}
	if len(s.ids) >= 2 {
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

// IDs returns the selected ids in selection order.
func (s *CompareSelection) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Ready reports whether exactly two meals are selected.
func (s *CompareSelection) Ready() bool {
	return len(s.ids) == 2
}
