package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/dto"
	"github.com/DatzProject/I.Teaching-Ramlan/internal/service"
	"github.com/DatzProject/I.Teaching-Ramlan/pkg/response"
)

// SchoolHandler exposes the school profile and store maintenance.
type SchoolHandler struct {
	school      *service.SchoolService
	maintenance *service.MaintenanceService
}

// NewSchoolHandler constructs SchoolHandler.
func NewSchoolHandler(school *service.SchoolService, maintenance *service.MaintenanceService) *SchoolHandler {
	return &SchoolHandler{school: school, maintenance: maintenance}
}

// Get godoc
// @Summary Get the school profile
// @Tags School
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /school [get]
func (h *SchoolHandler) Get(c *gin.Context) {
	profile, err := h.school.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// Save godoc
// @Summary Save the school profile
// @Tags School
// @Accept json
// @Produce json
// @Param payload body service.SchoolRequest true "Profile"
// @Success 202 {object} response.Envelope
// @Router /school [put]
func (h *SchoolHandler) Save(c *gin.Context) {
	var req service.SchoolRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	profile, err := h.school.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, profile)
}

// Clear godoc
// @Summary Delete every student and attendance row
// @Tags Maintenance
// @Accept json
// @Produce json
// @Param payload body dto.ClearRequest true "Must carry confirm=true"
// @Success 200 {object} response.Envelope
// @Router /maintenance/clear [post]
func (h *SchoolHandler) Clear(c *gin.Context) {
	var req dto.ClearRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.maintenance.ClearAll(c.Request.Context(), req.Confirm); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"cleared": true}, nil)
}
