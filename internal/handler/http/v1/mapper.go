package v1

import (
	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/shenikar/incident_reporting_system/internal/service"
)

// DTOToIncidentModel преобразует DTO создания в доменную модель.
// Координаты к этому моменту уже проверены валидатором.
func DTOToIncidentModel(dto CreateIncidentRequest) *models.Incident {
	incident := &models.Incident{
		Title:       dto.Title,
		Description: dto.Description,
		Category:    models.Category(dto.Category),
		Address:     dto.Address,
		MediaURLs:   uniqueStrings(dto.MediaURLs),
	}
	if dto.Latitude != nil {
		incident.Latitude = *dto.Latitude
	}
	if dto.Longitude != nil {
		incident.Longitude = *dto.Longitude
	}
	return incident
}

// uniqueStrings убирает повторы, сохраняя порядок первого вхождения
func uniqueStrings(values []string) []string {
	if values == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

func DTOToRegisterInput(dto RegisterRequest) service.RegisterInput {
	return service.RegisterInput{
		FullName: dto.FullName,
		Email:    dto.Email,
		Password: dto.Password,
		Phone:    dto.Phone,
		Role:     models.Role(dto.Role),
	}
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	mediaURLs := model.MediaURLs
	if mediaURLs == nil {
		mediaURLs = []string{}
	}
	return &IncidentResponse{
		ID:                  model.ID,
		Title:               model.Title,
		Description:         model.Description,
		Category:            string(model.Category),
		Status:              string(model.Status),
		Priority:            string(model.Priority),
		Latitude:            model.Latitude,
		Longitude:           model.Longitude,
		Address:             model.Address,
		MediaURLs:           mediaURLs,
		ReporterID:          model.ReporterID,
		ReporterName:        model.ReporterName,
		AssignedOfficerID:   model.AssignedOfficerID,
		AssignedOfficerName: model.AssignedOfficerName,
		OfficerNotes:        model.OfficerNotes,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
		ResolvedAt:          model.ResolvedAt,
	}
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

func ModelsToIncidentUpdateResponses(updates []*models.IncidentUpdate) []*IncidentUpdateResponse {
	responses := make([]*IncidentUpdateResponse, len(updates))
	for i, u := range updates {
		resp := &IncidentUpdateResponse{
			ID:        u.ID,
			UserID:    u.UserID,
			UserName:  u.UserName,
			Message:   u.Message,
			CreatedAt: u.CreatedAt,
		}
		if u.NewStatus != nil {
			status := string(*u.NewStatus)
			resp.NewStatus = &status
		}
		responses[i] = resp
	}
	return responses
}

func ModelToNotificationResponse(model *models.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:                model.ID,
		Title:             model.Title,
		Message:           model.Message,
		Type:              string(model.Type),
		Read:              model.Read,
		RelatedIncidentID: model.RelatedIncidentID,
		CreatedAt:         model.CreatedAt,
	}
}

func ModelsToNotificationResponses(notifications []*models.Notification) []*NotificationResponse {
	responses := make([]*NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = ModelToNotificationResponse(n)
	}
	return responses
}

func ModelToUserResponse(model *models.User) UserResponse {
	return UserResponse{
		ID:        model.ID,
		FullName:  model.FullName,
		Email:     model.Email,
		Phone:     model.Phone,
		Role:      string(model.Role),
		Active:    model.Active,
		CreatedAt: model.CreatedAt,
	}
}

func ModelToDashboardResponse(stats *models.DashboardStats) *DashboardResponse {
	byCategory := make(map[string]int64, len(stats.IncidentsByCategory))
	for category, count := range stats.IncidentsByCategory {
		byCategory[string(category)] = count
	}
	return &DashboardResponse{
		TotalUsers:          stats.TotalUsers,
		TotalIncidents:      stats.TotalIncidents,
		IncidentsLast30Days: stats.IncidentsLast30Days,
		IncidentsLast7Days:  stats.IncidentsLast7Days,
		IncidentsByCategory: byCategory,
	}
}
