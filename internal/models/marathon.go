package model

import (
	"time"
)

// Statuts d'une invitation marathon
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationRejected = "rejected"
)

// MarathonSession challenge de groupe rattaché à l'habit de son créateur
type MarathonSession struct {
	ID          string               `json:"marathonId"`
	HabitID     string               `json:"habitId"`
	GroupName   string               `json:"groupName,omitempty"`
	InitiatedBy string               `json:"initiatedBy"`
	HabitName   string               `json:"habitName"` // snapshot du nom au moment de la création
	Invitations []MarathonInvitation `json:"invitations,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
}

type MarathonInvitation struct {
	ID         string    `json:"id,omitempty"`
	MarathonID string    `json:"marathonId,omitempty"`
	ToUserID   string    `json:"to"`
	Status     string    `json:"status"` // pending, accepted, rejected
	StartDate  string    `json:"startDate,omitempty"` // YYYY-MM-DD, posé à l'acceptation
	CreatedAt  time.Time `json:"createdAt,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty"`
}

// ParticipantProgress calculé à la demande, jamais persisté
type ParticipantProgress struct {
	UserID         string `json:"userId"`
	Username       string `json:"username"`
	TotalDays      int    `json:"totalDays"`
	CompletedDays  int    `json:"completedDays"`
	CompletionRate int    `json:"completionRate"` // pourcentage arrondi
}

type CreateMarathonRequest struct {
	GroupName string   `json:"groupName"`
	UserIDs   []string `json:"userIds"`
}

type AddParticipantsRequest struct {
	UserIDs []string `json:"userIds"`
}

// AddParticipantsResult détaille le sort de chaque invité du batch
type AddParticipantsResult struct {
	Added              []string `json:"added"`
	Duplicates         []string `json:"duplicates,omitempty"`
	PreviouslyRejected []string `json:"previouslyRejected,omitempty"`
}

type RespondInvitationRequest struct {
	Status string `json:"status"` // accepted ou rejected
}

// RespondInvitationResult indique si un habit a été auto-provisionné à l'acceptation
type RespondInvitationResult struct {
	Invitation   MarathonInvitation `json:"invitation"`
	HabitCreated bool               `json:"habitCreated"`
	HabitID      string             `json:"habitId,omitempty"`
}

// MarathonProgress réponse de l'agrégation multi-participants
type MarathonProgress struct {
	MarathonID   string                `json:"marathonId"`
	GroupName    string                `json:"groupName,omitempty"`
	HabitName    string                `json:"habitName"`
	StartDate    string                `json:"startDate"`
	Participants []ParticipantProgress `json:"participants"`
}
