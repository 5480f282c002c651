package handler

import (
	"net"
	"net/http"
	"strings"

	"clinic-backend/internal/service"
	"clinic-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes binds the public authentication endpoints.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
	}
}

// clientIP resolves the caller address: first X-Forwarded-For entry, then
// X-Real-IP, then the socket address.
func clientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" && !strings.EqualFold(xff, "unknown") {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	if xrip := c.GetHeader("X-Real-IP"); xrip != "" && !strings.EqualFold(xrip, "unknown") {
		return xrip
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}

// Login authenticates a user and opens a device session
// @Summary      Login
// @Description  Authenticates by username and password, returning access and refresh tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  true  "Credentials and optional device info"
// @Success      200      {object}  response.Response{data=service.AuthResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	device := service.DeviceInfo{
		IPAddress: clientIP(c),
		UserAgent: c.Request.UserAgent(),
	}

	res, err := h.authService.Login(c.Request.Context(), req, device)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// Refresh rotates a refresh token
// @Summary      Refresh tokens
// @Description  Exchanges a valid refresh token for a new access/refresh token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RefreshTokenRequest  true  "Refresh token"
// @Success      200      {object}  response.Response{data=service.AuthResponse}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req service.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	res, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// Logout ends one device session
// @Summary      Logout
// @Description  Deletes the session matching the given refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LogoutRequest  true  "Refresh token"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req service.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	if err := h.authService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessMessage(http.StatusOK, "Logged out", nil))
}
