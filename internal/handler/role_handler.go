package handler

import (
	"net/http"

	"clinic-backend/internal/middleware"
	"clinic-backend/internal/model"
	"clinic-backend/internal/service"
	"clinic-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type RoleHandler struct {
	roleService service.RoleService
	verifier    middleware.TokenVerifier
}

func NewRoleHandler(roleService service.RoleService, verifier middleware.TokenVerifier) *RoleHandler {
	return &RoleHandler{roleService: roleService, verifier: verifier}
}

func (h *RoleHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := middleware.RequireRole(h.verifier, model.RoleSuperAdmin, model.RoleAdmin)
	router.GET("/roles", admin, h.ListRoles)
}

// ListRoles returns the closed role enumeration
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.RoleResponse}
// @Router       /api/roles [get]
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleService.ListRoles(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, roles))
}
