package repository

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
)

// RecapRepository reads the store's pre-aggregated recaps.
type RecapRepository struct {
	store StoreClient
}

// NewRecapRepository constructs the repository.
func NewRecapRepository(store StoreClient) *RecapRepository {
	return &RecapRepository{store: store}
}

// Monthly returns per-student totals for month. The store selects the month
// by its lowercase Indonesian name and takes no year.
func (r *RecapRepository) Monthly(ctx context.Context, class string, month time.Month) ([]models.RecapRow, error) {
	params := url.Values{}
	params.Set("kelas", storeClass(class))
	params.Set("bulan", strings.ToLower(models.MonthName(month)))
	var rows []models.RecapRow
	if err := r.store.Get(ctx, actionMonthlyRecap, params, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Semester returns per-student totals for a semester.
func (r *RecapRepository) Semester(ctx context.Context, class string, semester models.Semester) ([]models.RecapRow, error) {
	var rows []models.RecapRow
	if err := r.store.Get(ctx, actionSemesterRecap, semesterParams(class, semester), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Graph returns per-month status totals keyed by month name.
func (r *RecapRepository) Graph(ctx context.Context, class string, semester models.Semester) (models.GraphData, error) {
	data := models.GraphData{}
	if err := r.store.Get(ctx, actionGraphData, semesterParams(class, semester), &data); err != nil {
		return nil, err
	}
	return data, nil
}

func semesterParams(class string, semester models.Semester) url.Values {
	params := url.Values{}
	params.Set("kelas", storeClass(class))
	params.Set("semester", strconv.Itoa(int(semester)))
	return params
}
