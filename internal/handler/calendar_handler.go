package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/service"
	"github.com/DatzProject/I.Teaching-Ramlan/pkg/response"
)

// CalendarHandler exposes special dates, teaching schedules and the
// classified month calendar.
type CalendarHandler struct {
	calendar *service.CalendarService
}

// NewCalendarHandler constructs CalendarHandler.
func NewCalendarHandler(calendar *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendar: calendar}
}

// SpecialDates godoc
// @Summary List special dates
// @Tags Calendar
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /calendar/special-dates [get]
func (h *CalendarHandler) SpecialDates(c *gin.Context) {
	dates, err := h.calendar.SpecialDates(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dates, nil)
}

// CreateSpecialDate godoc
// @Summary Create a special date or range
// @Tags Calendar
// @Accept json
// @Produce json
// @Param payload body service.SpecialDateRequest true "Special date"
// @Success 202 {object} response.Envelope
// @Router /calendar/special-dates [post]
func (h *CalendarHandler) CreateSpecialDate(c *gin.Context) {
	var req service.SpecialDateRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	sd, err := h.calendar.CreateSpecialDate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, sd)
}

// UpdateSpecialDate godoc
// @Summary Replace the special date starting on the given date
// @Tags Calendar
// @Accept json
// @Produce json
// @Param start query string true "Current start date as DD/MM/YYYY"
// @Param payload body service.SpecialDateRequest true "Special date"
// @Success 202 {object} response.Envelope
// @Router /calendar/special-dates [put]
func (h *CalendarHandler) UpdateSpecialDate(c *gin.Context) {
	var req service.SpecialDateRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	sd, err := h.calendar.UpdateSpecialDate(c.Request.Context(), c.Query("start"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, sd)
}

// DeleteSpecialDate godoc
// @Summary Delete the special date starting on the given date
// @Tags Calendar
// @Param start query string true "Start date as DD/MM/YYYY"
// @Success 204
// @Router /calendar/special-dates [delete]
func (h *CalendarHandler) DeleteSpecialDate(c *gin.Context) {
	if err := h.calendar.DeleteSpecialDate(c.Request.Context(), c.Query("start")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Schedules godoc
// @Summary List teaching schedules
// @Tags Calendar
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /calendar/schedules [get]
func (h *CalendarHandler) Schedules(c *gin.Context) {
	schedules, err := h.calendar.Schedules(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedules, nil)
}

// CreateSchedule godoc
// @Summary Create a teaching schedule
// @Tags Calendar
// @Accept json
// @Produce json
// @Param payload body service.ScheduleRequest true "Schedule"
// @Success 202 {object} response.Envelope
// @Router /calendar/schedules [post]
func (h *CalendarHandler) CreateSchedule(c *gin.Context) {
	var req service.ScheduleRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	schedule, err := h.calendar.CreateSchedule(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, schedule)
}

// UpdateSchedule godoc
// @Summary Replace a class's teaching schedule
// @Tags Calendar
// @Accept json
// @Produce json
// @Param class path string true "Current class"
// @Param payload body service.ScheduleRequest true "Schedule"
// @Success 202 {object} response.Envelope
// @Router /calendar/schedules/{class} [put]
func (h *CalendarHandler) UpdateSchedule(c *gin.Context) {
	var req service.ScheduleRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	schedule, err := h.calendar.UpdateSchedule(c.Request.Context(), c.Param("class"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, schedule)
}

// DeleteSchedule godoc
// @Summary Delete a class's teaching schedule
// @Tags Calendar
// @Param class path string true "Class"
// @Success 204
// @Router /calendar/schedules/{class} [delete]
func (h *CalendarHandler) DeleteSchedule(c *gin.Context) {
	if err := h.calendar.DeleteSchedule(c.Request.Context(), c.Param("class")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ClassOptions godoc
// @Summary Class options offered by the schedule sheet
// @Tags Calendar
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /calendar/classes [get]
func (h *CalendarHandler) ClassOptions(c *gin.Context) {
	classes, err := h.calendar.ClassOptions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes, nil)
}

// Month godoc
// @Summary Classify every day of a month for a class
// @Tags Calendar
// @Produce json
// @Param kelas query string false "Class"
// @Param bulan query int true "Month 1-12"
// @Param tahun query int true "Year"
// @Success 200 {object} response.Envelope
// @Router /calendar/month [get]
func (h *CalendarHandler) Month(c *gin.Context) {
	p, err := periodFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	month, err := h.calendar.Month(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, month, nil)
}
