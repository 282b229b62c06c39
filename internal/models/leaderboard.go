package models

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	Name          string `json:"name"`
	Nickname      string `json:"nickname,omitempty"`
	AvatarURL     string `json:"avatarUrl"`
	Score         int    `json:"score"`
	IsCurrentUser bool   `json:"isCurrentUser,omitempty"`
	RankChange    string `json:"rankChange,omitempty"` // up, down, stable
}
