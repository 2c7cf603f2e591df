package repository

import (
	"context"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
)

// ScheduleRepository manages the teaching schedule (jadwal mengajar) sheet.
type ScheduleRepository struct {
	store StoreClient
}

// NewScheduleRepository constructs the repository.
func NewScheduleRepository(store StoreClient) *ScheduleRepository {
	return &ScheduleRepository{store: store}
}

// List returns the raw schedule rows.
func (r *ScheduleRepository) List(ctx context.Context) ([]models.ScheduleRow, error) {
	var rows []models.ScheduleRow
	if err := r.store.Get(ctx, actionSchedules, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ClassOptions returns the class labels the store offers for scheduling.
func (r *ScheduleRepository) ClassOptions(ctx context.Context) ([]string, error) {
	var raw []models.Text
	if err := r.store.Get(ctx, actionClassOptions, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		if c != "" {
			out = append(out, c.String())
		}
	}
	return out, nil
}

// Create adds a schedule for a class.
func (r *ScheduleRepository) Create(ctx context.Context, s models.TeachingSchedule) error {
	payload := struct {
		Type  string `json:"type"`
		Class string `json:"kelas"`
		Days  string `json:"hari"`
	}{Type: writeSchedule, Class: s.Class, Days: models.JoinScheduleDays(s.Days)}
	return r.store.Post(ctx, writeSchedule, payload)
}

// Update replaces the schedule of oldClass, which may be renamed.
func (r *ScheduleRepository) Update(ctx context.Context, oldClass string, s models.TeachingSchedule) error {
	payload := struct {
		Type     string `json:"type"`
		OldClass string `json:"kelasLama"`
		NewClass string `json:"kelasBaru"`
		Days     string `json:"hari"`
	}{Type: writeEditSchedule, OldClass: oldClass, NewClass: s.Class, Days: models.JoinScheduleDays(s.Days)}
	return r.store.Post(ctx, writeEditSchedule, payload)
}

// Delete removes the schedule of class.
func (r *ScheduleRepository) Delete(ctx context.Context, class string) error {
	payload := struct {
		Type  string `json:"type"`
		Class string `json:"kelas"`
	}{Type: writeDeleteSchedule, Class: class}
	return r.store.Post(ctx, writeDeleteSchedule, payload)
}
