package achievement

import "time"

// Points awarded per achievement category
const goalCompletionPoints = 50

// Achievement is an earned reward record
type Achievement struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon,omitempty"`
	Points      int       `json:"points"`
	Category    string    `json:"category"`
	EarnedAt    time.Time `json:"earned_at"`
}

// NewGoalCompleted builds the achievement awarded when a savings goal
// reaches its target
func NewGoalCompleted(userID int64, goalTitle string) *Achievement {
	return &Achievement{
		UserID:      userID,
		Title:       "Goal Achieved",
		Description: "You reached your goal: " + goalTitle,
		Icon:        "🏆",
		Points:      goalCompletionPoints,
		Category:    "goals",
		EarnedAt:    time.Now(),
	}
}
