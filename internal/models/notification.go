package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationIncidentCreated  NotificationType = "INCIDENT_CREATED"
	NotificationIncidentAssigned NotificationType = "INCIDENT_ASSIGNED"
	NotificationIncidentUpdated  NotificationType = "INCIDENT_UPDATED"
	NotificationIncidentResolved NotificationType = "INCIDENT_RESOLVED"
	NotificationSystemAlert      NotificationType = "SYSTEM_ALERT"
	NotificationCommunityUpdate  NotificationType = "COMMUNITY_UPDATE"
)

type Notification struct {
	ID                uuid.UUID        `json:"id"`
	UserID            uuid.UUID        `json:"user_id"`
	Title             string           `json:"title"`
	Message           string           `json:"message"`
	Type              NotificationType `json:"type"`
	Read              bool             `json:"read"`
	RelatedIncidentID *uuid.UUID       `json:"related_incident_id,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}
