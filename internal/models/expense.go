package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-day format expenses are keyed and queried by.
const DateLayout = "2006-01-02"

// ErrInvalidCategory is returned for category names outside the closed set.
var ErrInvalidCategory = errors.New("invalid category")

// Category is the closed set of expense categories.
type Category string

const (
	CategoryDining        Category = "Dining"
	CategoryTransport     Category = "Transport"
	CategoryBeverages     Category = "Beverages"
	CategoryGroceries     Category = "Groceries"
	CategoryEntertainment Category = "Entertainment"
	CategoryShopping      Category = "Shopping"
	CategoryOther         Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryDining,
	CategoryTransport,
	CategoryBeverages,
	CategoryGroceries,
	CategoryEntertainment,
	CategoryShopping,
	CategoryOther,
}

var categoryColors = map[Category]string{
	CategoryGroceries:     "#4CAF50",
	CategoryTransport:     "#2196F3",
	CategoryDining:        "#FF9800",
	CategoryBeverages:     "#9C27B0",
	CategoryEntertainment: "#E91E63",
	CategoryShopping:      "#FFEB3B",
	CategoryOther:         "#9E9E9E",
}

// ParseCategory matches s against the category set, ignoring case.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// Color returns the chart colour of the category.
func (c Category) Color() string {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return categoryColors[CategoryOther]
}

// Expense represents a financial expense record.
type Expense struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Category    Category  `json:"category"`
	Attachments []string  `json:"attachments,omitempty"`
	CreatedAt   time.Time `json:"timestamp"`
}

// Day returns the expense date in DateLayout.
func (e Expense) Day() string {
	return e.Date.Format(DateLayout)
}

// User represents a user account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	DisplayName  string    `json:"display_name,omitempty"`
	PasswordHash string    `json:"-"`
	DeviceToken  string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session represents a user session.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
