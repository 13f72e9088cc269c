package models

import (
	"time"

	"github.com/google/uuid"
)

// Category - тип инцидента
type Category string

const (
	CategoryTheft              Category = "THEFT"
	CategoryAssault            Category = "ASSAULT"
	CategoryVandalism          Category = "VANDALISM"
	CategorySuspiciousActivity Category = "SUSPICIOUS_ACTIVITY"
	CategoryDomesticViolence   Category = "DOMESTIC_VIOLENCE"
	CategoryTraffic            Category = "TRAFFIC"
	CategoryFire               Category = "FIRE"
	CategoryMedical            Category = "MEDICAL"
	CategoryOther              Category = "OTHER"
)

// Categories перечисляет все допустимые типы инцидентов
var Categories = []Category{
	CategoryTheft,
	CategoryAssault,
	CategoryVandalism,
	CategorySuspiciousActivity,
	CategoryDomesticViolence,
	CategoryTraffic,
	CategoryFire,
	CategoryMedical,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Status - состояние жизненного цикла инцидента
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusAssigned   Status = "ASSIGNED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
	StatusClosed     Status = "CLOSED"
	StatusRejected   Status = "REJECTED"
)

var statuses = []Status{
	StatusPending,
	StatusAssigned,
	StatusInProgress,
	StatusResolved,
	StatusClosed,
	StatusRejected,
}

// ParseIncidentStatus сопоставляет строку с перечислением статусов.
// Сравнение чувствительно к регистру.
func ParseIncidentStatus(raw string) (Status, bool) {
	for _, s := range statuses {
		if string(s) == raw {
			return s, true
		}
	}
	return "", false
}

func (s Status) Valid() bool {
	_, ok := ParseIncidentStatus(string(s))
	return ok
}

// StampsResolution - статусы, при переходе в которые фиксируется resolved_at
func (s Status) StampsResolution() bool {
	return s == StatusResolved || s == StatusClosed
}

// Priority - приоритет инцидента
type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

type Incident struct {
	ID                  uuid.UUID  `json:"id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Category            Category   `json:"category"`
	Status              Status     `json:"status"`
	Priority            Priority   `json:"priority"`
	Latitude            float64    `json:"latitude"`
	Longitude           float64    `json:"longitude"`
	Address             *string    `json:"address,omitempty"`
	MediaURLs           []string   `json:"media_urls"`
	ReporterID          uuid.UUID  `json:"reporter_id"`
	ReporterName        string     `json:"reporter_name"`
	AssignedOfficerID   *uuid.UUID `json:"assigned_officer_id,omitempty"`
	AssignedOfficerName *string    `json:"assigned_officer_name,omitempty"`
	OfficerNotes        *string    `json:"officer_notes,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	ResolvedAt          *time.Time `json:"resolved_at,omitempty"`
}

// Bounds - прямоугольная область на карте
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}
