package service

import (
	"testing"

	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDeterminePriority(t *testing.T) {
	cases := map[models.Category]models.Priority{
		models.CategoryAssault:            models.PriorityHigh,
		models.CategoryDomesticViolence:   models.PriorityHigh,
		models.CategoryFire:               models.PriorityHigh,
		models.CategoryMedical:            models.PriorityHigh,
		models.CategoryTheft:              models.PriorityMedium,
		models.CategorySuspiciousActivity: models.PriorityMedium,
		models.CategoryVandalism:          models.PriorityLow,
		models.CategoryTraffic:            models.PriorityLow,
		models.CategoryOther:              models.PriorityLow,
	}

	for category, expected := range cases {
		assert.Equal(t, expected, DeterminePriority(category), "category %s", category)
	}
}
