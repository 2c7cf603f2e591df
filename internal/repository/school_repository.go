package repository

import (
	"context"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
)

// SchoolRepository reads and writes the single school profile row.
type SchoolRepository struct {
	store StoreClient
}

// NewSchoolRepository constructs the repository.
func NewSchoolRepository(store StoreClient) *SchoolRepository {
	return &SchoolRepository{store: store}
}

// Get returns the first profile row, or nil when none is stored.
func (r *SchoolRepository) Get(ctx context.Context) (*models.SchoolProfile, error) {
	var rows []models.SchoolProfile
	if err := r.store.Get(ctx, actionSchoolData, nil, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	profile := rows[0]
	return &profile, nil
}

// Save overwrites the profile.
func (r *SchoolRepository) Save(ctx context.Context, profile models.SchoolProfile) error {
	payload := struct {
		Type string `json:"type"`
		models.SchoolProfile
	}{Type: writeSchoolData, SchoolProfile: profile}
	return r.store.Post(ctx, writeSchoolData, payload)
}
