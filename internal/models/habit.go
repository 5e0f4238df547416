package model

import (
	"time"
)

// Fréquences supportées pour un habit
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// DateLayout format des jours calendaires ("YYYY-MM-DD")
const DateLayout = "2006-01-02"

type Habit struct {
	ID            string            `json:"id"`
	UserID        string            `json:"userId"`
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	Frequency     string            `json:"frequency"` // daily, weekly, monthly
	CurrentStreak int               `json:"currentStreak"`
	LongestStreak int               `json:"longestStreak"`
	Tags          []string          `json:"tags,omitempty"`
	Entries       []HabitLogEntry   `json:"entries,omitempty"`
	Marathons     []MarathonSession `json:"marathons,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
	DeletedAt     *time.Time        `json:"deletedAt,omitempty"`
}

// HabitLogEntry une entrée de suivi par jour, unique par (habit, date)
type HabitLogEntry struct {
	ID        string `json:"id,omitempty"`
	HabitID   string `json:"habitId,omitempty"`
	Date      string `json:"date"` // YYYY-MM-DD
	Completed bool   `json:"completed"`
	Notes     string `json:"notes,omitempty"`
}

type CreateHabitRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Frequency   string   `json:"frequency"`
	Tags        []string `json:"tags"`
}

type UpdateHabitRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Frequency   string   `json:"frequency"`
	Tags        []string `json:"tags"`
}

// TrackHabitRequest marque un jour comme fait / pas fait
type TrackHabitRequest struct {
	Date      string `json:"date"` // YYYY-MM-DD, défaut = aujourd'hui
	Completed bool   `json:"completed"`
	Notes     string `json:"notes"`
}

func ValidFrequency(f string) bool {
	return f == FrequencyDaily || f == FrequencyWeekly || f == FrequencyMonthly
}
