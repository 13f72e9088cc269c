package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/incident_reporting_system/internal/models"
)

// @Summary Report a new incident
// @Description Create a new incident on behalf of the authenticated user. Priority is derived from the category; every active police officer is notified.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param incident body CreateIncidentRequest true "Incident creation request"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Reporter not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) createIncident(c *gin.Context) {
	var input CreateIncidentRequest
	log := h.logger.WithField("method", "createIncident")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	model := DTOToIncidentModel(input)
	if err := h.incidentService.CreateIncident(c.Request.Context(), model, currentClaims(c).Email); err != nil {
		respondError(c, log, err, "reporter not found")
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(model))
}

// @Summary Get a list of incidents
// @Description Get a paginated list of all incidents, newest first.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {array} IncidentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	incidents, err := h.incidentService.ListIncidents(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, log, err, "incidents not found")
		return
	}

	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary List my incidents
// @Description Incidents reported by the authenticated user.
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Success 200 {array} IncidentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /incidents/my [get]
func (h *Handler) listMyIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listMyIncidents")

	incidents, err := h.incidentService.ListMyIncidents(c.Request.Context(), currentClaims(c).Email)
	if err != nil {
		respondError(c, log, err, "user not found")
		return
	}
	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary List incidents assigned to me
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Success 200 {array} IncidentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /incidents/assigned [get]
func (h *Handler) listAssignedIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listAssignedIncidents")

	incidents, err := h.incidentService.ListAssignedIncidents(c.Request.Context(), currentClaims(c).Email)
	if err != nil {
		respondError(c, log, err, "user not found")
		return
	}
	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary List pending incidents
// @Description Incidents awaiting triage, highest priority first.
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Success 200 {array} IncidentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /incidents/pending [get]
func (h *Handler) listPendingIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listPendingIncidents")

	incidents, err := h.incidentService.ListPendingIncidents(c.Request.Context())
	if err != nil {
		respondError(c, log, err, "incidents not found")
		return
	}
	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary List incidents in map bounds
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param minLat query number true "Minimum latitude"
// @Param maxLat query number true "Maximum latitude"
// @Param minLon query number true "Minimum longitude"
// @Param maxLon query number true "Maximum longitude"
// @Success 200 {array} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid bounds"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /incidents/bounds [get]
func (h *Handler) listIncidentsInBounds(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidentsInBounds")

	var bounds models.Bounds
	for _, p := range []struct {
		name string
		dst  *float64
	}{
		{"minLat", &bounds.MinLat},
		{"maxLat", &bounds.MaxLat},
		{"minLon", &bounds.MinLon},
		{"maxLon", &bounds.MaxLon},
	} {
		value, err := strconv.ParseFloat(c.Query(p.name), 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + p.name})
			return
		}
		*p.dst = value
	}

	incidents, err := h.incidentService.ListIncidentsInBounds(c.Request.Context(), bounds)
	if err != nil {
		respondError(c, log, err, "incidents not found")
		return
	}
	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Get incident by ID
// @Description Get a single incident by its ID.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err, "incident not found")
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Get incident audit trail
// @Tags Incidents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Success 200 {array} IncidentUpdateResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 404 {object} map[string]string "Incident not found"
// @Router /incidents/{id}/updates [get]
func (h *Handler) listIncidentUpdates(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "listIncidentUpdates").WithField("id", id)

	updates, err := h.incidentService.ListIncidentUpdates(c.Request.Context(), id)
	if err != nil {
		respondError(c, log, err, "incident not found")
		return
	}
	c.JSON(http.StatusOK, ModelsToIncidentUpdateResponses(updates))
}

// @Summary Update incident status
// @Description Set a new status. Any status may follow any other; each change is recorded in the audit trail and the reporter is notified.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param status body UpdateStatusRequest true "New status and optional officer notes"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID, request body or status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/status [put]
func (h *Handler) updateIncidentStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "updateIncidentStatus").WithField("id", id)

	var input UpdateStatusRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	status, ok := models.ParseIncidentStatus(input.Status)
	if !ok {
		log.WithField("status", input.Status).Warn("Unknown incident status")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	incident, err := h.incidentService.UpdateStatus(c.Request.Context(), id, status, input.Notes, currentClaims(c).Email)
	if err != nil {
		respondError(c, log, err, "incident not found")
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Assign an officer
// @Description Assign an officer to the incident and move it to ASSIGNED from any status. The officer is notified.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Incident ID"
// @Param assignment body AssignIncidentRequest true "Officer to assign"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Incident or officer not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/assign [put]
func (h *Handler) assignIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "assignIncident").WithField("id", id)

	var input AssignIncidentRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}
	officerID, err := uuid.Parse(input.OfficerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid officer ID"})
		return
	}

	incident, err := h.incidentService.AssignIncident(c.Request.Context(), id, officerID, currentClaims(c).Email)
	if err != nil {
		respondError(c, log, err, "incident or officer not found")
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}
