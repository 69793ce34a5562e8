package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRepeat is returned for repeat labels outside the known set.
var ErrInvalidRepeat = errors.New("invalid repeat option")

// Repeat is a display label only, nothing schedules off it.
type Repeat string

const (
	RepeatDaily   Repeat = "Daily"
	RepeatWeekly  Repeat = "Weekly"
	RepeatMonthly Repeat = "Monthly"
	RepeatYearly  Repeat = "Yearly"
)

// ParseRepeat validates a repeat label, empty defaults to Daily.
func ParseRepeat(s string) (Repeat, error) {
	switch r := Repeat(s); r {
	case "":
		return RepeatDaily, nil
	case RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRepeat, s)
}

// Reminder asks the user to record expenses at a time of day.
type Reminder struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	Time      string    `json:"time"`
	Repeat    Repeat    `json:"repeat"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
}

// Notification is a delivered message, read-only for clients.
type Notification struct {
	ID        string `json:"id"`
	UserID    string `json:"-"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Timestamp string `json:"timestamp"`
}

// Article is a news feed entry.
type Article struct {
	Author      string `json:"author,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
}
