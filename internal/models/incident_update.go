package models

import (
	"time"

	"github.com/google/uuid"
)

// IncidentUpdate - неизменяемая запись журнала действий по инциденту
type IncidentUpdate struct {
	ID         uuid.UUID `json:"id"`
	IncidentID uuid.UUID `json:"incident_id"`
	UserID     uuid.UUID `json:"user_id"`
	UserName   string    `json:"user_name,omitempty"`
	Message    string    `json:"message"`
	NewStatus  *Status   `json:"new_status,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
