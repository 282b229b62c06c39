package models

// Article categories
const (
	ArticleNutrition = "Nutrition"
	ArticleLifestyle = "Lifestyle"
	ArticleRecipes   = "Recipes"
)

type Article struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	ImageURL string `json:"imageUrl"`
	Category string `json:"category"`
	Content  string `json:"content"`
}
