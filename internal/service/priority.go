package service

import "github.com/shenikar/incident_reporting_system/internal/models"

// DeterminePriority возвращает начальный приоритет по типу инцидента.
// Вызывается один раз при создании, повторно не пересчитывается.
func DeterminePriority(category models.Category) models.Priority {
	switch category {
	case models.CategoryAssault, models.CategoryDomesticViolence, models.CategoryFire, models.CategoryMedical:
		return models.PriorityHigh
	case models.CategoryTheft, models.CategorySuspiciousActivity:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}
