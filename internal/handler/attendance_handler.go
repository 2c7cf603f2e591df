package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/dto"
	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
	"github.com/DatzProject/I.Teaching-Ramlan/internal/service"
	appErrors "github.com/DatzProject/I.Teaching-Ramlan/pkg/errors"
	"github.com/DatzProject/I.Teaching-Ramlan/pkg/response"
)

// AttendanceHandler exposes daily entry and the monthly grid.
type AttendanceHandler struct {
	daily   *service.DailyAttendanceService
	monthly *service.MonthlyAttendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(daily *service.DailyAttendanceService, monthly *service.MonthlyAttendanceService) *AttendanceHandler {
	return &AttendanceHandler{daily: daily, monthly: monthly}
}

// Daily godoc
// @Summary Load the daily entry screen
// @Tags Attendance
// @Produce json
// @Param tanggal query string true "Date as DD/MM/YYYY"
// @Param kelas query string false "Class filter"
// @Success 200 {object} response.Envelope
// @Router /attendance/daily [get]
func (h *AttendanceHandler) Daily(c *gin.Context) {
	var q dto.DailyQuery
	_ = c.ShouldBindQuery(&q)
	date, err := models.ParseStrictDate(q.Date)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "tanggal must be DD/MM/YYYY"))
		return
	}
	sheet, err := h.daily.Load(c.Request.Context(), date, q.Class, nil)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sheet, nil)
}

// SaveDaily godoc
// @Summary Submit daily attendance for unlocked students
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.DailySaveRequest true "Statuses keyed by student ID"
// @Success 202 {object} response.Envelope
// @Success 200 {object} response.Envelope "Nothing to send"
// @Router /attendance/daily [post]
func (h *AttendanceHandler) SaveDaily(c *gin.Context) {
	var req service.DailySaveRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.daily.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.Outcome == service.DailyOutcomeAlreadyComplete {
		response.JSON(c, http.StatusOK, result, nil)
		return
	}
	response.Accepted(c, result)
}

// Monthly godoc
// @Summary Monthly attendance grid without pending edits
// @Tags Attendance
// @Produce json
// @Param kelas query string false "Class filter"
// @Param bulan query int true "Month 1-12"
// @Param tahun query int true "Year"
// @Success 200 {object} response.Envelope
// @Router /attendance/monthly [get]
func (h *AttendanceHandler) Monthly(c *gin.Context) {
	p, err := periodFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	grid, err := h.monthly.Grid(c.Request.Context(), p, nil)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil)
}

// DeleteStudentMonth godoc
// @Summary Delete one student's attendance for a month
// @Tags Attendance
// @Param nisn path string true "NISN"
// @Param bulan query int true "Month 1-12"
// @Param tahun query int true "Year"
// @Success 202 {object} response.Envelope
// @Router /attendance/students/{nisn}/month [delete]
func (h *AttendanceHandler) DeleteStudentMonth(c *gin.Context) {
	p, err := periodFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.monthly.DeleteStudentMonth(c.Request.Context(), c.Param("nisn"), p.Month, p.Year); err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, gin.H{"nisn": c.Param("nisn"), "bulan": int(p.Month), "tahun": p.Year})
}

// DeleteByFilter godoc
// @Summary Delete a month of attendance, optionally for one class
// @Tags Attendance
// @Accept json
// @Param payload body dto.DeleteAttendanceRequest true "Filter"
// @Success 202 {object} response.Envelope
// @Router /attendance [delete]
func (h *AttendanceHandler) DeleteByFilter(c *gin.Context) {
	var req dto.DeleteAttendanceRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	p := service.Period{Class: req.Class, Month: time.Month(req.Month), Year: req.Year}
	if err := h.monthly.DeleteByFilter(c.Request.Context(), p); err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, p)
}
