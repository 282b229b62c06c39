// Package fixtures holds the bundled seed data the app ships with: the
// default community feed, the shared community meals, the article library and
// the weekly leaderboard. Functions return fresh copies so callers can mutate
// freely.
package fixtures

import (
	"time"

	"github.com/glucolife/glucolife-backend/internal/models"
)

func f(v float64) *float64 { return &v }
func n(v int) *int         { return &v }

func ts(value string) time.Time {
	t, _ := time.Parse(time.RFC3339, value)
	return t
}

// CommunityPosts is the default feed shown before anyone has posted.
func CommunityPosts() []models.CommunityPost {
	return []models.CommunityPost{
		{
			ID: "seed-post-1",
			Author: models.PostAuthor{
				Name:      "Claire Morel",
				AvatarURL: "https://picsum.photos/seed/claire/200",
				Nickname:  "Claire",
			},
			Content:   "Astuce du jour : une poignée d'amandes avant un repas riche en glucides adoucit nettement le pic glycémique. Testé sur une semaine !",
			Category:  "Astuce",
			Timestamp: ts("2024-05-12T09:15:00Z"),
			Reactions: models.ReactionTally{Like: 14, Love: 6, Idea: 9},
		},
		{
			ID: "seed-post-2",
			Author: models.PostAuthor{
				Name:      "Marc Dubois",
				AvatarURL: "https://picsum.photos/seed/marc/200",
			},
			Content:   "Quelqu'un a une recette de dessert à index glycémique bas pour un anniversaire ? Ma fille fête ses 10 ans ce week-end.",
			Category:  "Question",
			Timestamp: ts("2024-05-11T18:40:00Z"),
			Reactions: models.ReactionTally{Like: 3, Love: 2, Idea: 1},
		},
		{
			ID: "seed-post-3",
			Author: models.PostAuthor{
				Name:      "Sofia Lindgren",
				AvatarURL: "https://picsum.photos/seed/sofia/200",
				Nickname:  "Sofi",
			},
			Content:   "Trois mois de suivi, -18 points sur mon score glycémique moyen. La marche après le dîner change tout. Tenez bon !",
			Category:  "Motivation",
			Timestamp: ts("2024-05-10T07:55:00Z"),
			Reactions: models.ReactionTally{Like: 28, Love: 17, Idea: 4},
		},
		{
			ID: "seed-post-4",
			Author: models.PostAuthor{
				Name:      "Antoine Petit",
				AvatarURL: "https://picsum.photos/seed/antoine/200",
			},
			Content:   "Recette express : galettes de pois chiches, courgette râpée et feta. 25g de glucides par portion, score 78.",
			Category:  "Recette",
			Timestamp: ts("2024-05-09T12:05:00Z"),
			Reactions: models.ReactionTally{Like: 11, Love: 8, Idea: 12},
		},
	}
}

// CommunityMeals are the shared meals browsable from the community tab.
// Order matters: rating ties keep this order in the top-N view.
func CommunityMeals() []models.Meal {
	return []models.Meal{
		communityMeal("cm-salade-quinoa", "Salade de quinoa aux légumes grillés", 42, 12, 14, 8, "low", 88, 4.8, 231),
		communityMeal("cm-saumon-brocoli", "Saumon grillé, brocoli vapeur", 9, 34, 18, 5, "low", 92, 4.9, 412),
		communityMeal("cm-poulet-patate", "Poulet rôti, patate douce", 38, 29, 11, 6, "medium", 74, 4.5, 187),
		communityMeal("cm-lentilles-curry", "Curry de lentilles corail", 47, 18, 9, 11, "low", 81, 4.6, 298),
		communityMeal("cm-omelette-epinards", "Omelette aux épinards", 4, 21, 16, 2, "low", 90, 4.4, 156),
		communityMeal("cm-bowl-avocat", "Bowl avocat, œuf poché, seigle", 33, 15, 22, 9, "medium", 77, 4.7, 203),
		communityMeal("cm-soupe-potiron", "Soupe de potiron, graines de courge", 24, 6, 8, 4, "medium", 70, 4.2, 98),
		communityMeal("cm-tofu-sautee", "Tofu sauté, légumes croquants", 19, 24, 13, 7, "low", 85, 4.3, 144),
		communityMeal("cm-pates-completes", "Pâtes complètes, sauce tomate maison", 58, 14, 9, 8, "medium", 62, 4.0, 121),
		communityMeal("cm-chili-sin-carne", "Chili sin carne", 44, 19, 10, 13, "low", 79, 4.6, 176),
		communityMeal("cm-poke-thon", "Poke bowl au thon", 49, 27, 12, 5, "medium", 71, 4.4, 165),
		communityMeal("cm-yaourt-grec", "Yaourt grec, noix et myrtilles", 17, 11, 15, 3, "low", 86, 4.1, 89),
	}
}

func communityMeal(id, name string, carbs, protein, fats, fiber float64, gi string, score int, rating float64, scans int) models.Meal {
	return models.Meal{
		ID:              id,
		Name:            name,
		ImageURL:        "https://picsum.photos/seed/" + id + "/400",
		Carbohydrates:   carbs,
		Protein:         f(protein),
		Fats:            f(fats),
		Fiber:           f(fiber),
		GlycemicIndex:   gi,
		GlycemicScore:   score,
		Advice:          "Repas validé par la communauté pour son impact glycémique modéré.",
		Timestamp:       ts("2024-04-01T12:00:00Z"),
		CommunityRating: f(rating),
		ScanCount:       n(scans),
	}
}

// Articles is the full article library; the daily view samples from it.
func Articles() []models.Article {
	return []models.Article{
		article("art-n1", models.ArticleNutrition, "Comprendre l'index glycémique", "Pourquoi deux aliments au même taux de glucides n'ont pas le même effet sur votre glycémie."),
		article("art-n2", models.ArticleNutrition, "Les fibres, alliées de la glycémie", "Comment les fibres solubles ralentissent l'absorption des sucres."),
		article("art-n3", models.ArticleNutrition, "Bien lire une étiquette nutritionnelle", "Glucides totaux, sucres ajoutés, fibres : ce qui compte vraiment."),
		article("art-n4", models.ArticleNutrition, "L'ordre des aliments dans l'assiette", "Légumes d'abord, glucides ensuite : un effet mesurable sur le pic post-repas."),
		article("art-l1", models.ArticleLifestyle, "Marcher 15 minutes après le repas", "Une habitude simple qui réduit significativement le pic glycémique."),
		article("art-l2", models.ArticleLifestyle, "Sommeil et glycémie", "Une nuit courte suffit à dégrader la sensibilité à l'insuline du lendemain."),
		article("art-l3", models.ArticleLifestyle, "Gérer le stress pour stabiliser sa glycémie", "Le cortisol influence directement votre taux de sucre sanguin."),
		article("art-l4", models.ArticleLifestyle, "L'hydratation, un levier sous-estimé", "Boire suffisamment aide les reins à réguler le glucose."),
		article("art-r1", models.ArticleRecipes, "Porridge d'avoine aux graines de chia", "Un petit-déjeuner complet à index glycémique bas, prêt en 10 minutes."),
		article("art-r2", models.ArticleRecipes, "Gratin de chou-fleur au comté", "L'alternative au gratin dauphinois qui divise les glucides par quatre."),
		article("art-r3", models.ArticleRecipes, "Pain aux graines sans farine blanche", "Une recette rassasiante qui tient la glycémie stable toute la matinée."),
		article("art-r4", models.ArticleRecipes, "Mousse au chocolat à l'avocat", "Un dessert onctueux, riche en bons lipides et pauvre en sucres."),
	}
}

func article(id, category, title, summary string) models.Article {
	return models.Article{
		ID:       id,
		Title:    title,
		Summary:  summary,
		ImageURL: "https://picsum.photos/seed/" + id + "/600",
		Category: category,
		Content:  "<p>" + summary + "</p>",
	}
}

// Leaderboard is the weekly community ranking shown on the community tab.
func Leaderboard() []models.LeaderboardEntry {
	return []models.LeaderboardEntry{
		{Rank: 1, Name: "Sofia Lindgren", Nickname: "Sofi", AvatarURL: "https://picsum.photos/seed/sofia/200", Score: 94, RankChange: "stable"},
		{Rank: 2, Name: "Claire Morel", Nickname: "Claire", AvatarURL: "https://picsum.photos/seed/claire/200", Score: 91, RankChange: "up"},
		{Rank: 3, Name: "Antoine Petit", AvatarURL: "https://picsum.photos/seed/antoine/200", Score: 87, RankChange: "down"},
		{Rank: 4, Name: "Marc Dubois", AvatarURL: "https://picsum.photos/seed/marc/200", Score: 82, RankChange: "up"},
		{Rank: 5, Name: "Léa Fontaine", Nickname: "Léa", AvatarURL: "https://picsum.photos/seed/lea/200", Score: 79, RankChange: "stable"},
		{Rank: 6, Name: "Hugo Bernard", AvatarURL: "https://picsum.photos/seed/hugo/200", Score: 75, RankChange: "down"},
		{Rank: 7, Name: "Emma Rousseau", Nickname: "Em", AvatarURL: "https://picsum.photos/seed/emma/200", Score: 71, RankChange: "up"},
		{Rank: 8, Name: "Nathan Girard", AvatarURL: "https://picsum.photos/seed/nathan/200", Score: 66, RankChange: "stable"},
	}
}
