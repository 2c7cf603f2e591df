package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
	appErrors "github.com/DatzProject/I.Teaching-Ramlan/pkg/errors"
)

// CellEdit changes one grid cell. An empty status clears the cell.
type CellEdit struct {
	StudentID string `json:"studentId" validate:"required"`
	Day       int    `json:"day" validate:"min=1,max=31"`
	Status    string `json:"status" validate:"attendance_status"`
}

// DraftEditRequest applies cell edits to a draft prepared at Generation.
type DraftEditRequest struct {
	Generation int64      `json:"generation" validate:"required"`
	Edits      []CellEdit `json:"edits" validate:"required,min=1,dive"`
}

// CommitResult reports a saved draft.
type CommitResult struct {
	Updates int                 `json:"updates"`
	Draft   models.MonthlyDraft `json:"draft"`
}

// DraftGrid is a draft together with its rendered grid.
type DraftGrid struct {
	Draft  models.MonthlyDraft `json:"draft"`
	Matrix MonthlyMatrix       `json:"matrix"`
}

// DraftService holds unsaved monthly grid edits between requests. Every
// state change goes through ReduceDraft.
type DraftService struct {
	reader    *StoreReader
	repo      attendanceWriter
	drafts    draftStore
	metrics   *MetricsService
	ttl       time.Duration
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewDraftService constructs the service.
func NewDraftService(reader *StoreReader, repo attendanceWriter, drafts draftStore, metrics *MetricsService, ttl time.Duration, validate *validator.Validate, logger *zap.Logger) *DraftService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &DraftService{
		reader:    reader,
		repo:      repo,
		drafts:    drafts,
		metrics:   metrics,
		ttl:       ttl,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Open starts a draft for the period.
func (s *DraftService) Open(ctx context.Context, p Period) (*models.MonthlyDraft, error) {
	if err := validatePeriod(p); err != nil {
		return nil, err
	}
	draft := models.MonthlyDraft{ID: uuid.NewString()}
	draft = ReduceDraft(draft, DraftEvent{Kind: DraftSelectPeriod, Class: strings.TrimSpace(p.Class), Month: p.Month, Year: p.Year, At: s.now().UTC()})
	if err := s.drafts.Save(ctx, draft, s.ttl); err != nil {
		return nil, storeError(err, "failed to save draft")
	}
	return &draft, nil
}

// Get returns a draft.
func (s *DraftService) Get(ctx context.Context, id string) (*models.MonthlyDraft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "failed to load draft")
	}
	return draft, nil
}

// load returns the draft, rejecting requests prepared against another
// generation. A zero generation skips the check.
func (s *DraftService) load(ctx context.Context, id string, generation int64) (*models.MonthlyDraft, error) {
	draft, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if generation != 0 && generation != draft.Generation {
		return nil, appErrors.Clone(appErrors.ErrStaleGeneration,
			fmt.Sprintf("draft is at generation %d, request was prepared for %d", draft.Generation, generation))
	}
	return draft, nil
}

func (s *DraftService) apply(ctx context.Context, draft models.MonthlyDraft, events ...DraftEvent) (*models.MonthlyDraft, error) {
	for _, ev := range events {
		ev.At = s.now().UTC()
		draft = ReduceDraft(draft, ev)
	}
	if err := s.drafts.Save(ctx, draft, s.ttl); err != nil {
		return nil, storeError(err, "failed to save draft")
	}
	return &draft, nil
}

// SelectPeriod points the draft at another period, dropping its edits.
func (s *DraftService) SelectPeriod(ctx context.Context, id string, generation int64, p Period) (*models.MonthlyDraft, error) {
	if err := validatePeriod(p); err != nil {
		return nil, err
	}
	draft, err := s.load(ctx, id, generation)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, *draft, DraftEvent{Kind: DraftSelectPeriod, Class: strings.TrimSpace(p.Class), Month: p.Month, Year: p.Year})
}

// SetStatus applies cell edits. Clearing a cell with no stored record
// removes its pending edit instead of recording a delete.
func (s *DraftService) SetStatus(ctx context.Context, id string, req DraftEditRequest) (*models.MonthlyDraft, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid draft edit")
	}
	draft, err := s.load(ctx, id, req.Generation)
	if err != nil {
		return nil, err
	}
	students, err := s.reader.Students(ctx)
	if err != nil {
		return nil, err
	}
	history, err := s.reader.History(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Student, len(students))
	for _, st := range students {
		byID[st.ID.String()] = st
	}

	events := make([]DraftEvent, 0, len(req.Edits))
	for _, e := range req.Edits {
		st, ok := byID[e.StudentID]
		if !ok || !st.InClass(draft.Class) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("student %s is not in this grid", e.StudentID))
		}
		date, ok := models.NewDate(draft.Year, draft.Month, e.Day)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("day %d is not in %s %d", e.Day, models.MonthName(draft.Month), draft.Year))
		}
		status, _ := models.ParseStatus(e.Status)
		events = append(events, DraftEvent{
			Kind: DraftSetStatus,
			Edit: models.PendingEdit{
				StudentID: e.StudentID,
				Date:      date,
				NISN:      st.NISN.String(),
				Name:      st.Name.String(),
				Class:     st.Class.String(),
				Status:    status,
			},
			HasRecord: HasRecord(st, date, history),
		})
	}
	return s.apply(ctx, *draft, events...)
}

// Cancel drops every pending edit.
func (s *DraftService) Cancel(ctx context.Context, id string, generation int64) (*models.MonthlyDraft, error) {
	draft, err := s.load(ctx, id, generation)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, *draft, DraftEvent{Kind: DraftCancel})
}

// Discard deletes the draft.
func (s *DraftService) Discard(ctx context.Context, id string) error {
	if err := s.drafts.Delete(ctx, id); err != nil {
		return storeError(err, "failed to delete draft")
	}
	return nil
}

// Grid renders the draft's period with its edits overlaid.
func (s *DraftService) Grid(ctx context.Context, id string, generation int64) (*DraftGrid, error) {
	draft, err := s.load(ctx, id, generation)
	if err != nil {
		return nil, err
	}
	snap, err := s.reader.Snapshot(ctx, true)
	if err != nil {
		return nil, err
	}
	matrix := BuildMonthlyGrid(snap, Period{Class: draft.Class, Month: draft.Month, Year: draft.Year}, draft.Edits)
	return &DraftGrid{Draft: *draft, Matrix: matrix}, nil
}

// Commit sends the draft's edits as one bulk update and starts a new
// generation. The store's answer is not part of its contract, so caches
// are dropped and the next grid read re-fetches.
func (s *DraftService) Commit(ctx context.Context, id string, generation int64) (*CommitResult, error) {
	draft, err := s.load(ctx, id, generation)
	if err != nil {
		return nil, err
	}
	updates := draft.Updates()
	if len(updates) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNoChanges, "draft has no pending edits")
	}
	if err := s.repo.BulkUpdate(ctx, updates); err != nil {
		return nil, storeError(err, "failed to save attendance changes")
	}
	s.reader.Invalidate(ctx, cacheKeyHistory, cacheKeyRecaps)
	s.metrics.AddAttendanceRows("bulk", len(updates))

	saved, err := s.apply(ctx, *draft, DraftEvent{Kind: DraftSaved})
	if err != nil {
		return nil, err
	}
	s.logger.Info("draft committed", zap.String("draft_id", id), zap.Int("updates", len(updates)))
	return &CommitResult{Updates: len(updates), Draft: *saved}, nil
}
