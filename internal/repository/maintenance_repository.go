package repository

import (
	"context"
	"time"

	appErrors "github.com/DatzProject/I.Teaching-Ramlan/pkg/errors"
)

// MaintenanceRepository issues destructive store-wide operations.
type MaintenanceRepository struct {
	store   StoreClient
	timeout time.Duration
}

// NewMaintenanceRepository constructs the repository. timeout bounds the
// bulk clear; non-positive values fall back to 30 seconds.
func NewMaintenanceRepository(store StoreClient, timeout time.Duration) *MaintenanceRepository {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &MaintenanceRepository{store: store, timeout: timeout}
}

// ClearAll deletes every student and attendance row. Unlike other writes the
// store must answer with a success envelope.
func (r *MaintenanceRepository) ClearAll(ctx context.Context) error {
	payload := struct {
		Type  string `json:"type"`
		Sheet string `json:"sheet"`
	}{Type: writeClearAll, Sheet: "both"}
	if err := r.store.PostConfirmed(ctx, writeClearAll, payload, r.timeout, nil); err != nil {
		if appErrors.FromError(err).Code == appErrors.ErrStoreTimeout.Code {
			return appErrors.Clone(appErrors.ErrStoreTimeout, "clearing data timed out after "+r.timeout.String())
		}
		return err
	}
	return nil
}
