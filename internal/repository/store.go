package repository

import (
	"context"
	"net/url"
	"time"
)

// StoreClient is the subset of the sheets client the repositories use.
type StoreClient interface {
	Get(ctx context.Context, action string, params url.Values, dest interface{}) error
	GetRaw(ctx context.Context, label string, dest interface{}) error
	Post(ctx context.Context, label string, payload interface{}) error
	PostConfirmed(ctx context.Context, label string, payload interface{}, timeout time.Duration, dest interface{}) error
}

// Store read actions.
const (
	actionAttendanceHistory = "attendanceHistory"
	actionSpecialDates      = "tanggalMerah"
	actionSchedules         = "jadwalMengajar"
	actionClassOptions      = "kelasOptions"
	actionSchoolData        = "schoolData"
	actionMonthlyRecap      = "monthlyRecap"
	actionSemesterRecap     = "semesterRecap"
	actionGraphData         = "graphData"
)

// Store write types, sent as the "type" field of a POST body.
const (
	writeStudent                  = "siswa"
	writeBulkStudents             = "bulk_siswa"
	writeEditStudent              = "edit"
	writeDeleteStudent            = "delete"
	writeBulkUpdateAttendance     = "bulkUpdateAttendance"
	writeDeleteStudentAttendance  = "deleteStudentAttendanceByName"
	writeDeleteAttendanceByFilter = "deleteAttendanceByFilter"
	writeSpecialDate              = "tanggalMerah"
	writeEditSpecialDate          = "editTanggalMerah"
	writeDeleteSpecialDate        = "deleteTanggalMerah"
	writeSchedule                 = "jadwalMengajar"
	writeEditSchedule             = "editJadwalMengajar"
	writeDeleteSchedule           = "deleteJadwalMengajar"
	writeSchoolData               = "schoolData"
	writeClearAll                 = "deleteAllDataDataSiswanAbsensi"
)

// storeClass maps the "all classes" filter to the empty value the store
// expects.
func storeClass(class string) string {
	if isAll(class) {
		return ""
	}
	return class
}
