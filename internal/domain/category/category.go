package category

import (
	"errors"
	"time"
)

var (
	ErrEmptyName   = errors.New("category name cannot be empty")
	ErrInvalidType = errors.New("invalid category type")
)

// Type restricts which transaction kinds a category applies to
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
	TypeBoth    Type = "both"
)

func (t Type) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeBoth:
		return true
	}
	return false
}

// Category is global reference data shared by all users
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon,omitempty"`
	Color     string    `json:"color,omitempty"`
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// New creates a category after validating its fields
func New(name, icon, color string, categoryType Type) (*Category, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if !categoryType.Valid() {
		return nil, ErrInvalidType
	}

	return &Category{
		Name:      name,
		Icon:      icon,
		Color:     color,
		Type:      categoryType,
		CreatedAt: time.Now(),
	}, nil
}
