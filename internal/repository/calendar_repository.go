package repository

import (
	"context"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
)

// CalendarRepository manages the special-date (tanggal merah) sheet.
type CalendarRepository struct {
	store StoreClient
}

// NewCalendarRepository constructs the repository.
func NewCalendarRepository(store StoreClient) *CalendarRepository {
	return &CalendarRepository{store: store}
}

// ListSpecialDates returns the raw special-date rows.
func (r *CalendarRepository) ListSpecialDates(ctx context.Context) ([]models.SpecialDateRow, error) {
	var rows []models.SpecialDateRow
	if err := r.store.Get(ctx, actionSpecialDates, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

type specialDatePayload struct {
	Type        string `json:"type"`
	Date        string `json:"tanggal,omitempty"`
	OldDate     string `json:"tanggalLama,omitempty"`
	NewDate     string `json:"tanggalBaru,omitempty"`
	EndDate     string `json:"tanggalAkhir"`
	Description string `json:"deskripsi"`
}

func endString(d *models.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// CreateSpecialDate adds an entry.
func (r *CalendarRepository) CreateSpecialDate(ctx context.Context, sd models.SpecialDate) error {
	return r.store.Post(ctx, writeSpecialDate, specialDatePayload{
		Type:        writeSpecialDate,
		Date:        sd.Start.String(),
		EndDate:     endString(sd.End),
		Description: sd.Description,
	})
}

// UpdateSpecialDate replaces the entry starting on oldStart.
func (r *CalendarRepository) UpdateSpecialDate(ctx context.Context, oldStart models.Date, sd models.SpecialDate) error {
	return r.store.Post(ctx, writeEditSpecialDate, specialDatePayload{
		Type:        writeEditSpecialDate,
		OldDate:     oldStart.String(),
		NewDate:     sd.Start.String(),
		EndDate:     endString(sd.End),
		Description: sd.Description,
	})
}

// DeleteSpecialDate removes the entry starting on start.
func (r *CalendarRepository) DeleteSpecialDate(ctx context.Context, start models.Date) error {
	payload := struct {
		Type string `json:"type"`
		Date string `json:"tanggal"`
	}{Type: writeDeleteSpecialDate, Date: start.String()}
	return r.store.Post(ctx, writeDeleteSpecialDate, payload)
}
