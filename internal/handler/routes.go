package handler

import "github.com/gin-gonic/gin"

// Handlers groups every API handler mounted under the API prefix. Reports
// is nil when background reports are disabled.
type Handlers struct {
	Students   *StudentHandler
	Attendance *AttendanceHandler
	Drafts     *DraftHandler
	Recaps     *RecapHandler
	Calendar   *CalendarHandler
	School     *SchoolHandler
	Exports    *ExportHandler
	Reports    *ReportHandler
}

// Register mounts the API routes on api.
func Register(api *gin.RouterGroup, h Handlers) {
	students := api.Group("/students")
	students.GET("", h.Students.List)
	students.POST("", h.Students.Create)
	students.POST("/bulk", h.Students.BulkCreate)
	students.GET("/classes", h.Students.Classes)
	students.PUT("/:nisn", h.Students.Update)
	students.DELETE("/:nisn", h.Students.Delete)

	attendance := api.Group("/attendance")
	attendance.GET("/daily", h.Attendance.Daily)
	attendance.POST("/daily", h.Attendance.SaveDaily)
	attendance.GET("/monthly", h.Attendance.Monthly)
	attendance.DELETE("", h.Attendance.DeleteByFilter)
	attendance.DELETE("/students/:nisn/month", h.Attendance.DeleteStudentMonth)
	attendance.POST("/drafts", h.Drafts.Open)
	attendance.GET("/drafts/:id", h.Drafts.Get)
	attendance.PATCH("/drafts/:id", h.Drafts.Patch)
	attendance.DELETE("/drafts/:id", h.Drafts.Discard)
	attendance.GET("/drafts/:id/grid", h.Drafts.Grid)
	attendance.POST("/drafts/:id/commit", h.Drafts.Commit)

	recaps := api.Group("/recaps")
	recaps.GET("/monthly", h.Recaps.Monthly)
	recaps.GET("/monthly/local", h.Recaps.LocalMonthly)
	recaps.GET("/compare", h.Recaps.Compare)
	recaps.GET("/semester", h.Recaps.Semester)
	recaps.GET("/chart", h.Recaps.Chart)

	calendar := api.Group("/calendar")
	calendar.GET("/special-dates", h.Calendar.SpecialDates)
	calendar.POST("/special-dates", h.Calendar.CreateSpecialDate)
	calendar.PUT("/special-dates", h.Calendar.UpdateSpecialDate)
	calendar.DELETE("/special-dates", h.Calendar.DeleteSpecialDate)
	calendar.GET("/schedules", h.Calendar.Schedules)
	calendar.POST("/schedules", h.Calendar.CreateSchedule)
	calendar.PUT("/schedules/:class", h.Calendar.UpdateSchedule)
	calendar.DELETE("/schedules/:class", h.Calendar.DeleteSchedule)
	calendar.GET("/classes", h.Calendar.ClassOptions)
	calendar.GET("/month", h.Calendar.Month)

	api.GET("/school", h.School.Get)
	api.PUT("/school", h.School.Save)
	api.POST("/maintenance/clear", h.School.Clear)

	api.GET("/exports/monthly", h.Exports.Monthly)
	api.GET("/exports/recap", h.Exports.Recap)

	if h.Reports != nil {
		api.POST("/reports", h.Reports.GenerateReport)
		api.GET("/reports/:id", h.Reports.ReportStatus)
		api.GET("/export/:token", h.Reports.DownloadReport)
	}
}
