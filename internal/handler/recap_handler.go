package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
	"github.com/DatzProject/I.Teaching-Ramlan/internal/service"
	"github.com/DatzProject/I.Teaching-Ramlan/pkg/response"
)

// RecapHandler exposes monthly and semester recaps.
type RecapHandler struct {
	recaps *service.RecapService
}

// NewRecapHandler constructs RecapHandler.
func NewRecapHandler(recaps *service.RecapService) *RecapHandler {
	return &RecapHandler{recaps: recaps}
}

// Monthly godoc
// @Summary Monthly recap computed by the store
// @Tags Recaps
// @Produce json
// @Param kelas query string false "Class filter"
// @Param bulan query int true "Month 1-12"
// @Success 200 {object} response.Envelope
// @Router /recaps/monthly [get]
func (h *RecapHandler) Monthly(c *gin.Context) {
	q, err := recapQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	recap, err := h.recaps.Monthly(c.Request.Context(), q.Class, time.Month(q.Month))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, recap, nil)
}

// LocalMonthly godoc
// @Summary Monthly recap recomputed from attendance history
// @Tags Recaps
// @Produce json
// @Param kelas query string false "Class filter"
// @Param bulan query int true "Month 1-12"
// @Param tahun query int true "Year"
// @Success 200 {object} response.Envelope
// @Router /recaps/monthly/local [get]
func (h *RecapHandler) LocalMonthly(c *gin.Context) {
	q, err := recapQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	recap, err := h.recaps.LocalMonthly(c.Request.Context(), q.Class, time.Month(q.Month), q.Year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, recap, nil)
}

// Compare godoc
// @Summary Rows where the store recap and the local recompute disagree
// @Tags Recaps
// @Produce json
// @Param kelas query string false "Class filter"
// @Param bulan query int true "Month 1-12"
// @Param tahun query int true "Year"
// @Success 200 {object} response.Envelope
// @Router /recaps/compare [get]
func (h *RecapHandler) Compare(c *gin.Context) {
	q, err := recapQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	mismatches, err := h.recaps.Compare(c.Request.Context(), q.Class, time.Month(q.Month), q.Year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, mismatches, nil, map[string]interface{}{"mismatches": len(mismatches)})
}

// Semester godoc
// @Summary Semester recap
// @Tags Recaps
// @Produce json
// @Param kelas query string false "Class filter"
// @Param semester query int true "1 (Jul-Dec) or 2 (Jan-Jun)"
// @Success 200 {object} response.Envelope
// @Router /recaps/semester [get]
func (h *RecapHandler) Semester(c *gin.Context) {
	q, err := recapQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	recap, err := h.recaps.Semester(c.Request.Context(), q.Class, models.Semester(q.Semester))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, recap, nil)
}

// Chart godoc
// @Summary Per-month status totals for a semester
// @Tags Recaps
// @Produce json
// @Param kelas query string false "Class filter"
// @Param semester query int true "1 (Jul-Dec) or 2 (Jan-Jun)"
// @Success 200 {object} response.Envelope
// @Router /recaps/chart [get]
func (h *RecapHandler) Chart(c *gin.Context) {
	q, err := recapQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	chart, err := h.recaps.Chart(c.Request.Context(), q.Class, models.Semester(q.Semester))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, chart, nil)
}
