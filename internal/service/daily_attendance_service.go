package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
)

type attendanceWriter interface {
	SubmitBatch(ctx context.Context, batch []models.AttendanceSubmission) error
	BulkUpdate(ctx context.Context, updates []models.AttendanceUpdate) error
	DeleteStudentMonth(ctx context.Context, name string, month time.Month, year int) error
	DeleteByFilter(ctx context.Context, class string, month time.Month, year int) error
}

// Daily save outcomes.
const (
	DailyOutcomeSubmitted       = "SUBMITTED"
	DailyOutcomeAlreadyComplete = "ALREADY_COMPLETE"
)

// DailySheet is the daily entry screen for one date and class filter.
type DailySheet struct {
	Date        models.Date         `json:"tanggal"`
	Class       string              `json:"kelas"`
	Day         models.DayClass     `json:"day"`
	Entries     []DailyEntry        `json:"entries"`
	Summary     models.StatusCounts `json:"summary"`
	LockedCount int                 `json:"lockedCount"`
}

// DailySaveRequest carries the statuses picked on the daily entry screen,
// keyed by student ID. Students without a pick are saved as Hadir.
type DailySaveRequest struct {
	Date     string            `json:"tanggal" validate:"required,ddmmyyyy"`
	Class    string            `json:"kelas"`
	Statuses map[string]string `json:"statuses" validate:"dive,attendance_status"`
}

// DailySaveResult reports what a save sent to the store.
type DailySaveResult struct {
	Outcome   string                        `json:"outcome"`
	Submitted int                           `json:"submitted"`
	Skipped   int                           `json:"skipped"`
	Rows      []models.AttendanceSubmission `json:"rows"`
}

// DailyAttendanceService drives the daily entry screen.
type DailyAttendanceService struct {
	reader    *StoreReader
	repo      attendanceWriter
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDailyAttendanceService constructs the service.
func NewDailyAttendanceService(reader *StoreReader, repo attendanceWriter, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *DailyAttendanceService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DailyAttendanceService{reader: reader, repo: repo, metrics: metrics, validator: validate, logger: logger}
}

// Load builds the daily sheet. Students with a stored record on date are
// locked to that record's status; everyone else shows their pick from
// selected, or Hadir.
func (s *DailyAttendanceService) Load(ctx context.Context, date models.Date, class string, selected map[string]models.Status) (*DailySheet, error) {
	snap, err := s.reader.Snapshot(ctx, true)
	if err != nil {
		return nil, err
	}
	return buildDailySheet(snap, date, class, selected), nil
}

func buildDailySheet(snap Snapshot, date models.Date, class string, selected map[string]models.Status) *DailySheet {
	class = strings.TrimSpace(class)
	locked := ComputeLock(snap.Students, date, class, snap.History)
	entries := BuildDailyEntries(snap.Students, class, locked, selected)
	return &DailySheet{
		Date:        date,
		Class:       class,
		Day:         snap.Calendar.Classify(date, class),
		Entries:     entries,
		Summary:     SummarizeEntries(entries),
		LockedCount: len(locked),
	}
}

// Save submits the unlocked students of the sheet. The lock is recomputed
// from a fresh history read so a concurrent save is never duplicated. When
// every student is locked nothing is sent and the outcome is
// ALREADY_COMPLETE.
func (s *DailyAttendanceService) Save(ctx context.Context, req DailySaveRequest) (*DailySaveResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid daily attendance payload")
	}
	date, _ := models.ParseStrictDate(req.Date)
	selected := make(map[string]models.Status, len(req.Statuses))
	for id, raw := range req.Statuses {
		if status, _ := models.ParseStatus(raw); status.Valid() {
			selected[id] = status
		}
	}

	s.reader.Invalidate(ctx, cacheKeyHistory)
	snap, err := s.reader.Snapshot(ctx, true)
	if err != nil {
		return nil, err
	}
	sheet := buildDailySheet(snap, date, req.Class, selected)
	batch := BuildDailyBatch(date, sheet.Entries)

	result := &DailySaveResult{Skipped: sheet.LockedCount, Rows: batch}
	if len(batch) == 0 {
		result.Outcome = DailyOutcomeAlreadyComplete
		return result, nil
	}
	if err := s.repo.SubmitBatch(ctx, batch); err != nil {
		return nil, storeError(err, "failed to submit attendance")
	}
	s.reader.Invalidate(ctx, cacheKeyHistory, cacheKeyRecaps)
	s.metrics.AddAttendanceRows("daily", len(batch))
	s.logger.Info("daily attendance submitted",
		zap.String("tanggal", date.String()),
		zap.String("kelas", sheet.Class),
		zap.Int("rows", len(batch)),
		zap.Int("locked", sheet.LockedCount),
	)
	result.Outcome = DailyOutcomeSubmitted
	result.Submitted = len(batch)
	return result, nil
}
