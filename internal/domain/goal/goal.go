package goal

import (
	"errors"
	"time"
)

var (
	ErrEmptyTitle          = errors.New("goal title cannot be empty")
	ErrInvalidTarget       = errors.New("goal target amount must be positive")
	ErrInvalidContribution = errors.New("contribution amount must be positive")
)

// Goal is a savings target. CurrentAmount may exceed TargetAmount; the
// completion flag is a one-way latch set the first time the threshold is
// crossed.
type Goal struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	TargetAmount  int64      `json:"target_amount"` // Stored in cents/minor units
	CurrentAmount int64      `json:"current_amount"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	Icon          string     `json:"icon,omitempty"`
	Color         string     `json:"color,omitempty"`
	IsCompleted   bool       `json:"is_completed"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// New creates a goal after validating title and target
func New(userID int64, title, description string, targetAmount int64, deadline *time.Time, icon, color string) (*Goal, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if targetAmount <= 0 {
		return nil, ErrInvalidTarget
	}

	now := time.Now()
	return &Goal{
		UserID:        userID,
		Title:         title,
		Description:   description,
		TargetAmount:  targetAmount,
		CurrentAmount: 0,
		Deadline:      deadline,
		Icon:          icon,
		Color:         color,
		IsCompleted:   false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// TargetReached reports whether the saved amount meets the target
func (g *Goal) TargetReached() bool {
	return g.CurrentAmount >= g.TargetAmount
}
