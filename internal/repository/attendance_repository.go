package repository

import (
	"context"
	"time"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
)

// AttendanceRepository reads and writes the attendance sheet.
type AttendanceRepository struct {
	store StoreClient
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(store StoreClient) *AttendanceRepository {
	return &AttendanceRepository{store: store}
}

// History returns the raw attendance rows. Rows are not validated here.
func (r *AttendanceRepository) History(ctx context.Context) ([]models.AttendanceRow, error) {
	var rows []models.AttendanceRow
	if err := r.store.Get(ctx, actionAttendanceHistory, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// SubmitBatch appends a daily batch. The store takes the bare array.
func (r *AttendanceRepository) SubmitBatch(ctx context.Context, batch []models.AttendanceSubmission) error {
	return r.store.Post(ctx, "submitAttendance", batch)
}

// BulkUpdate applies per-day status changes; an empty status deletes the day.
func (r *AttendanceRepository) BulkUpdate(ctx context.Context, updates []models.AttendanceUpdate) error {
	payload := struct {
		Type    string                    `json:"type"`
		Updates []models.AttendanceUpdate `json:"updates"`
	}{Type: writeBulkUpdateAttendance, Updates: updates}
	return r.store.Post(ctx, writeBulkUpdateAttendance, payload)
}

// DeleteStudentMonth removes every record of the named student in a month.
func (r *AttendanceRepository) DeleteStudentMonth(ctx context.Context, name string, month time.Month, year int) error {
	payload := struct {
		Type  string `json:"type"`
		Name  string `json:"nama"`
		Month int    `json:"bulan"`
		Year  int    `json:"tahun"`
	}{Type: writeDeleteStudentAttendance, Name: name, Month: int(month), Year: year}
	return r.store.Post(ctx, writeDeleteStudentAttendance, payload)
}

// DeleteByFilter removes every record of class in a month. The all-classes
// filter removes the month for every class.
func (r *AttendanceRepository) DeleteByFilter(ctx context.Context, class string, month time.Month, year int) error {
	payload := struct {
		Type  string `json:"type"`
		Class string `json:"kelas"`
		Month int    `json:"bulan"`
		Year  int    `json:"tahun"`
	}{Type: writeDeleteAttendanceByFilter, Class: storeClass(class), Month: int(month), Year: year}
	return r.store.Post(ctx, writeDeleteAttendanceByFilter, payload)
}
