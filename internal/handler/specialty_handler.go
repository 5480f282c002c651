package handler

import (
	"net/http"
	"strconv"

	"clinic-backend/internal/middleware"
	"clinic-backend/internal/model"
	"clinic-backend/internal/service"
	"clinic-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type SpecialtyHandler struct {
	specialtyService service.SpecialtyService
	verifier         middleware.TokenVerifier
}

func NewSpecialtyHandler(specialtyService service.SpecialtyService, verifier middleware.TokenVerifier) *SpecialtyHandler {
	return &SpecialtyHandler{specialtyService: specialtyService, verifier: verifier}
}

// RegisterRoutes binds the specialty endpoints: reads for any
// authenticated caller, mutations for administrators.
func (h *SpecialtyHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := middleware.RequireRole(h.verifier, model.RoleSuperAdmin, model.RoleAdmin)

	specialties := router.Group("/specialties")
	{
		specialties.GET("", middleware.Authenticate(h.verifier), h.ListSpecialties)
		specialties.GET("/:id", middleware.Authenticate(h.verifier), h.GetSpecialty)
		specialties.POST("", admin, h.CreateSpecialty)
		specialties.PUT("/:id", admin, h.UpdateSpecialty)
		specialties.DELETE("/:id", admin, h.DeleteSpecialty)
	}
}

// CreateSpecialty adds a specialty
// @Summary      Create specialty
// @Tags         specialties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateSpecialtyRequest  true  "New specialty"
// @Success      201      {object}  response.Response{data=service.SpecialtyResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/specialties [post]
func (h *SpecialtyHandler) CreateSpecialty(c *gin.Context) {
	var req service.CreateSpecialtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	specialty, err := h.specialtyService.CreateSpecialty(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, specialty))
}

// ListSpecialties lists specialties, optionally filtered
// @Summary      List specialties
// @Description  Filters by case-insensitive name substring and/or enabled flag
// @Tags         specialties
// @Produce      json
// @Security     BearerAuth
// @Param        name     query     string  false  "Name substring"
// @Param        enabled  query     bool    false  "Enabled flag"
// @Success      200      {object}  response.Response{data=[]service.SpecialtyResponse}
// @Router       /api/specialties [get]
func (h *SpecialtyHandler) ListSpecialties(c *gin.Context) {
	name := c.Query("name")

	var enabled *bool
	if v := c.Query("enabled"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid 'enabled' filter: expected true or false"))
			return
		}
		enabled = &b
	}

	specialties, err := h.specialtyService.SearchSpecialties(c.Request.Context(), name, enabled)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, specialties))
}

// GetSpecialty fetches one specialty by id
// @Summary      Get specialty
// @Tags         specialties
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Specialty ID"
// @Success      200  {object}  response.Response{data=service.SpecialtyResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/specialties/{id} [get]
func (h *SpecialtyHandler) GetSpecialty(c *gin.Context) {
	specialty, err := h.specialtyService.GetSpecialty(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, specialty))
}

// UpdateSpecialty partially updates a specialty
// @Summary      Update specialty
// @Tags         specialties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                          true  "Specialty ID"
// @Param        payload  body      service.UpdateSpecialtyRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=service.SpecialtyResponse}
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/specialties/{id} [put]
func (h *SpecialtyHandler) UpdateSpecialty(c *gin.Context) {
	var req service.UpdateSpecialtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	specialty, err := h.specialtyService.UpdateSpecialty(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, specialty))
}

// DeleteSpecialty removes a specialty
// @Summary      Delete specialty
// @Tags         specialties
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Specialty ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/specialties/{id} [delete]
func (h *SpecialtyHandler) DeleteSpecialty(c *gin.Context) {
	if err := h.specialtyService.DeleteSpecialty(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessMessage(http.StatusOK, "Specialty deleted successfully", nil))
}
