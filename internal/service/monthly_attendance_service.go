package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
	appErrors "github.com/DatzProject/I.Teaching-Ramlan/pkg/errors"
)

type draftStore interface {
	Get(ctx context.Context, id string) (*models.MonthlyDraft, error)
	Save(ctx context.Context, draft models.MonthlyDraft, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	ForPeriod(ctx context.Context, month time.Month, year int) ([]models.MonthlyDraft, error)
	DeleteAll(ctx context.Context) error
}

// Period selects one month of one class filter.
type Period struct {
	Class string     `json:"kelas"`
	Month time.Month `json:"bulan" validate:"min=1,max=12"`
	Year  int        `json:"tahun" validate:"min=2000,max=2100"`
}

// MonthlyAttendanceService renders monthly grids and performs month-wide
// deletions.
type MonthlyAttendanceService struct {
	reader *StoreReader
	repo   attendanceWriter
	drafts draftStore
	ttl    time.Duration
	logger *zap.Logger
}

// NewMonthlyAttendanceService constructs the service. drafts may be nil, in
// which case deletions do not touch drafts.
func NewMonthlyAttendanceService(reader *StoreReader, repo attendanceWriter, drafts draftStore, draftTTL time.Duration, logger *zap.Logger) *MonthlyAttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MonthlyAttendanceService{reader: reader, repo: repo, drafts: drafts, ttl: draftTTL, logger: logger}
}

// Grid reconciles every student of the class filter for the month, with
// edits overlaid on the stored records.
func (s *MonthlyAttendanceService) Grid(ctx context.Context, p Period, edits map[string]models.PendingEdit) (*MonthlyMatrix, error) {
	if err := validatePeriod(p); err != nil {
		return nil, err
	}
	snap, err := s.reader.Snapshot(ctx, true)
	if err != nil {
		return nil, err
	}
	m := BuildMonthlyGrid(snap, p, edits)
	return &m, nil
}

// BuildMonthlyGrid is the pure part of Grid.
func BuildMonthlyGrid(snap Snapshot, p Period, edits map[string]models.PendingEdit) MonthlyMatrix {
	class := strings.TrimSpace(p.Class)
	students := FilterStudents(snap.Students, class)
	months := make([]StudentMonth, len(students))
	for i, st := range students {
		months[i] = Reconcile(st, p.Month, p.Year, snap.History, edits)
	}
	days := snap.Calendar.Month(p.Month, p.Year, class)
	return ProjectMonthlyMatrix(class, p.Month, p.Year, students, months, days)
}

func validatePeriod(p Period) error {
	if p.Month < time.January || p.Month > time.December {
		return appErrors.Clone(appErrors.ErrValidation, "bulan must be between 1 and 12")
	}
	if p.Year < 2000 || p.Year > 2100 {
		return appErrors.Clone(appErrors.ErrValidation, "tahun is out of range")
	}
	return nil
}

// DeleteStudentMonth removes every stored record of the student registered
// under nisn in the month and drops that student's pending edits from
// drafts of the same month. The store deletes by name.
func (s *MonthlyAttendanceService) DeleteStudentMonth(ctx context.Context, nisn string, month time.Month, year int) error {
	if err := validatePeriod(Period{Month: month, Year: year}); err != nil {
		return err
	}
	students, err := s.reader.Students(ctx)
	if err != nil {
		return err
	}
	var target *models.Student
	want := NormalizeNISN(nisn)
	for i := range students {
		if NormalizeNISN(students[i].NISN.String()) == want {
			target = &students[i]
			break
		}
	}
	if target == nil {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	if err := s.repo.DeleteStudentMonth(ctx, target.Name.String(), month, year); err != nil {
		return storeError(err, "failed to delete student attendance")
	}
	s.reader.Invalidate(ctx, cacheKeyHistory, cacheKeyRecaps)
	s.pruneDrafts(ctx, month, year, func(e models.PendingEdit) bool { return e.StudentID == target.ID.String() })
	s.logger.Info("student month deleted", zap.String("nisn", nisn), zap.Int("bulan", int(month)), zap.Int("tahun", year))
	return nil
}

// DeleteByFilter removes every stored record of the class filter in the
// month and drops matching pending edits.
func (s *MonthlyAttendanceService) DeleteByFilter(ctx context.Context, p Period) error {
	if err := validatePeriod(p); err != nil {
		return err
	}
	if err := s.repo.DeleteByFilter(ctx, p.Class, p.Month, p.Year); err != nil {
		return storeError(err, "failed to delete attendance")
	}
	s.reader.Invalidate(ctx, cacheKeyHistory, cacheKeyRecaps)
	s.pruneDrafts(ctx, p.Month, p.Year, func(e models.PendingEdit) bool {
		return models.IsAllClasses(p.Class) || e.Class == strings.TrimSpace(p.Class)
	})
	s.logger.Info("attendance deleted by filter", zap.String("kelas", p.Class), zap.Int("bulan", int(p.Month)), zap.Int("tahun", p.Year))
	return nil
}

func (s *MonthlyAttendanceService) pruneDrafts(ctx context.Context, month time.Month, year int, drop func(models.PendingEdit) bool) {
	if s.drafts == nil {
		return
	}
	drafts, err := s.drafts.ForPeriod(ctx, month, year)
	if err != nil {
		s.logger.Warn("failed to list drafts for pruning", zap.Error(err))
		return
	}
	for _, d := range drafts {
		changed := false
		for key, e := range d.Edits {
			if drop(e) {
				delete(d.Edits, key)
				changed = true
			}
		}
		if !changed {
			continue
		}
		if err := s.drafts.Save(ctx, d, s.ttl); err != nil {
			s.logger.Warn("failed to prune draft", zap.String("draft_id", d.ID), zap.Error(err))
		}
	}
}
