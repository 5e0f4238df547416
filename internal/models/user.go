package model

import (
	"time"
)

// DateFields champs d'audit standard pour toutes les entités
type DateFields struct {
	CreatedBy *string    `json:"createdBy,omitempty"`
	UpdatedBy *string    `json:"updatedBy,omitempty"`
	DeletedBy *string    `json:"deletedBy,omitempty"`
	CreatedAt time.Time  `json:"createdAt,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt,omitempty"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

type UserProfile struct {
	ID       string    `json:"id,omitempty"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	JoinDate time.Time `json:"joinDate,omitempty"`
	DateFields
}
