package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration request"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 409 {object} map[string]string "Email already registered"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input RegisterRequest
	log := h.logger.WithField("method", "register")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	result, err := h.authService.Register(c.Request.Context(), DTOToRegisterInput(input))
	if err != nil {
		respondError(c, log, err, "user not found")
		return
	}
	c.JSON(http.StatusCreated, AuthResponse{Token: result.Token, User: ModelToUserResponse(result.User)})
}

// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login request"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input LoginRequest
	log := h.logger.WithField("method", "login")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, log, err, "user not found")
		return
	}
	c.JSON(http.StatusOK, AuthResponse{Token: result.Token, User: ModelToUserResponse(result.User)})
}

// @Summary Current user profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Router /auth/me [get]
func (h *Handler) me(c *gin.Context) {
	log := h.logger.WithField("method", "me")

	user, err := h.authService.Me(c.Request.Context(), currentClaims(c).Email)
	if err != nil {
		respondError(c, log, err, "user not found")
		return
	}
	c.JSON(http.StatusOK, ModelToUserResponse(user))
}

// @Summary Register device push token
// @Description An empty token disables push delivery for the user.
// @Tags Auth
// @Accept json
// @Security BearerAuth
// @Param token body PushTokenRequest true "Device token"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /auth/push-token [put]
func (h *Handler) updatePushToken(c *gin.Context) {
	var input PushTokenRequest
	log := h.logger.WithField("method", "updatePushToken")

	if !h.bindAndValidate(c, log, &input) {
		return
	}

	if err := h.authService.UpdatePushToken(c.Request.Context(), currentClaims(c).Email, input.Token); err != nil {
		respondError(c, log, err, "user not found")
		return
	}
	c.Status(http.StatusNoContent)
}
