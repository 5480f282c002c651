package handler

import (
	"net/http"

	"clinic-backend/internal/middleware"
	"clinic-backend/internal/service"
	"clinic-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	userService service.UserService
	verifier    middleware.TokenVerifier
}

func NewProfileHandler(userService service.UserService, verifier middleware.TokenVerifier) *ProfileHandler {
	return &ProfileHandler{userService: userService, verifier: verifier}
}

// RegisterRoutes binds the self-service profile endpoints; any
// authenticated role may use them.
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile", middleware.Authenticate(h.verifier))
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
	}
}

func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// GetProfile returns the authenticated user's own record
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.UserResponse}
// @Failure      401  {object}  response.Response
// @Router       /api/profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}

// UpdateProfile updates the authenticated user's own record; changing the
// password logs out every device
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.UpdateProfileRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=service.UserResponse}
// @Failure      401      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	id, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "User ID not found in context"))
		return
	}

	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	message := "Profile updated successfully"
	if req.Password != "" {
		message = "Profile updated successfully. Password changed, all devices have been logged out."
	}
	c.JSON(http.StatusOK, response.SuccessMessage(http.StatusOK, message, user))
}
