package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
	appErrors "github.com/DatzProject/I.Teaching-Ramlan/pkg/errors"
)

type specialDateWriter interface {
	CreateSpecialDate(ctx context.Context, sd models.SpecialDate) error
	UpdateSpecialDate(ctx context.Context, oldStart models.Date, sd models.SpecialDate) error
	DeleteSpecialDate(ctx context.Context, start models.Date) error
}

type scheduleWriter interface {
	Create(ctx context.Context, s models.TeachingSchedule) error
	Update(ctx context.Context, oldClass string, s models.TeachingSchedule) error
	Delete(ctx context.Context, class string) error
}

// SpecialDateRequest holds payload for creating or updating a special date.
type SpecialDateRequest struct {
	Date        string `json:"tanggal" validate:"required,ddmmyyyy"`
	EndDate     string `json:"tanggalAkhir" validate:"omitempty,ddmmyyyy"`
	Description string `json:"deskripsi" validate:"required"`
}

// ScheduleRequest holds payload for creating or updating a schedule.
type ScheduleRequest struct {
	Class string   `json:"kelas" validate:"required"`
	Days  []string `json:"hari" validate:"required,min=1,dive,required"`
}

// MonthCalendar is the classification of every day of a month.
type MonthCalendar struct {
	Class         string            `json:"kelas"`
	Month         time.Month        `json:"bulan"`
	Year          int               `json:"tahun"`
	TeacherStatus string            `json:"statusGuru"`
	Days          []models.DayClass `json:"days"`
	EffectiveDays int               `json:"effectiveDays"`
}

// CalendarService administers special dates and teaching schedules.
type CalendarService struct {
	reader       *StoreReader
	specialDates specialDateWriter
	schedules    scheduleWriter
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewCalendarService constructs the calendar service.
func NewCalendarService(reader *StoreReader, specialDates specialDateWriter, schedules scheduleWriter, validate *validator.Validate, logger *zap.Logger) *CalendarService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{
		reader:       reader,
		specialDates: specialDates,
		schedules:    schedules,
		validator:    validate,
		logger:       logger,
	}
}

// SpecialDates lists the special dates ordered by start date.
func (s *CalendarService) SpecialDates(ctx context.Context) ([]models.SpecialDate, error) {
	dates, err := s.reader.SpecialDates(ctx)
	if err != nil {
		return nil, err
	}
	sortSpecialDates(dates)
	return dates, nil
}

func sortSpecialDates(dates []models.SpecialDate) {
	sort.SliceStable(dates, func(i, j int) bool { return dates[i].Start.Compare(dates[j].Start) < 0 })
}

func (s *CalendarService) specialDate(req SpecialDateRequest) (models.SpecialDate, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.SpecialDate{}, validationError(err, "invalid special date")
	}
	start, _ := models.ParseStrictDate(req.Date)
	sd := models.SpecialDate{Start: start, Description: strings.TrimSpace(req.Description)}
	if req.EndDate != "" {
		end, _ := models.ParseStrictDate(req.EndDate)
		if end.Compare(start) < 0 {
			return models.SpecialDate{}, appErrors.Clone(appErrors.ErrValidation, "tanggalAkhir must not be before tanggal")
		}
		if end != start {
			sd.End = &end
		}
	}
	if sd.IsSemesterBreak() && req.EndDate == "" {
		return models.SpecialDate{}, appErrors.Clone(appErrors.ErrValidation, "tanggalAkhir is required for a semester break")
	}
	return sd, nil
}

func findSpecialDate(dates []models.SpecialDate, start models.Date) bool {
	for _, d := range dates {
		if d.Start == start {
			return true
		}
	}
	return false
}

// CreateSpecialDate adds a special date. Starts are unique.
func (s *CalendarService) CreateSpecialDate(ctx context.Context, req SpecialDateRequest) (*models.SpecialDate, error) {
	sd, err := s.specialDate(req)
	if err != nil {
		return nil, err
	}
	existing, err := s.reader.SpecialDates(ctx)
	if err != nil {
		return nil, err
	}
	if findSpecialDate(existing, sd.Start) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a special date already starts on "+sd.Start.String())
	}
	if err := s.specialDates.CreateSpecialDate(ctx, sd); err != nil {
		return nil, storeError(err, "failed to create special date")
	}
	s.reader.Invalidate(ctx, cacheKeySpecialDates)
	return &sd, nil
}

// UpdateSpecialDate replaces the special date starting on oldStart.
func (s *CalendarService) UpdateSpecialDate(ctx context.Context, oldStart string, req SpecialDateRequest) (*models.SpecialDate, error) {
	old, err := models.ParseDate(oldStart)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid tanggal")
	}
	sd, err := s.specialDate(req)
	if err != nil {
		return nil, err
	}
	existing, err := s.reader.SpecialDates(ctx)
	if err != nil {
		return nil, err
	}
	if !findSpecialDate(existing, old) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "special date not found")
	}
	if sd.Start != old && findSpecialDate(existing, sd.Start) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a special date already starts on "+sd.Start.String())
	}
	if err := s.specialDates.UpdateSpecialDate(ctx, old, sd); err != nil {
		return nil, storeError(err, "failed to update special date")
	}
	s.reader.Invalidate(ctx, cacheKeySpecialDates)
	return &sd, nil
}

// DeleteSpecialDate removes the special date starting on start.
func (s *CalendarService) DeleteSpecialDate(ctx context.Context, start string) error {
	d, err := models.ParseDate(start)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "invalid tanggal")
	}
	if err := s.specialDates.DeleteSpecialDate(ctx, d); err != nil {
		return storeError(err, "failed to delete special date")
	}
	s.reader.Invalidate(ctx, cacheKeySpecialDates)
	return nil
}

// Schedules lists teaching schedules.
func (s *CalendarService) Schedules(ctx context.Context) ([]models.TeachingSchedule, error) {
	return s.reader.Schedules(ctx)
}

// ClassOptions lists the classes a schedule can be created for.
func (s *CalendarService) ClassOptions(ctx context.Context) ([]string, error) {
	return s.reader.ClassOptions(ctx)
}

func (s *CalendarService) schedule(req ScheduleRequest) (models.TeachingSchedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.TeachingSchedule{}, validationError(err, "invalid schedule")
	}
	days := make([]string, 0, len(req.Days))
	seen := map[string]bool{}
	for _, raw := range req.Days {
		day, ok := canonicalDayName(raw)
		if !ok {
			return models.TeachingSchedule{}, appErrors.Clone(appErrors.ErrValidation, "unknown day "+raw)
		}
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	return models.TeachingSchedule{Class: strings.TrimSpace(req.Class), Days: days}, nil
}

func canonicalDayName(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	for _, name := range models.DayNames {
		if strings.EqualFold(name, raw) {
			return name, true
		}
	}
	return "", false
}

func hasSchedule(schedules []models.TeachingSchedule, class string) bool {
	for _, sc := range schedules {
		if sc.Class == class {
			return true
		}
	}
	return false
}

// CreateSchedule adds a schedule. Each class has at most one.
func (s *CalendarService) CreateSchedule(ctx context.Context, req ScheduleRequest) (*models.TeachingSchedule, error) {
	sc, err := s.schedule(req)
	if err != nil {
		return nil, err
	}
	existing, err := s.reader.Schedules(ctx)
	if err != nil {
		return nil, err
	}
	if hasSchedule(existing, sc.Class) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "class "+sc.Class+" already has a schedule")
	}
	if err := s.schedules.Create(ctx, sc); err != nil {
		return nil, storeError(err, "failed to create schedule")
	}
	s.reader.Invalidate(ctx, cacheKeySchedules)
	return &sc, nil
}

// UpdateSchedule replaces the schedule of oldClass.
func (s *CalendarService) UpdateSchedule(ctx context.Context, oldClass string, req ScheduleRequest) (*models.TeachingSchedule, error) {
	oldClass = strings.TrimSpace(oldClass)
	sc, err := s.schedule(req)
	if err != nil {
		return nil, err
	}
	existing, err := s.reader.Schedules(ctx)
	if err != nil {
		return nil, err
	}
	if !hasSchedule(existing, oldClass) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
	}
	if sc.Class != oldClass && hasSchedule(existing, sc.Class) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "class "+sc.Class+" already has a schedule")
	}
	if err := s.schedules.Update(ctx, oldClass, sc); err != nil {
		return nil, storeError(err, "failed to update schedule")
	}
	s.reader.Invalidate(ctx, cacheKeySchedules)
	return &sc, nil
}

// DeleteSchedule removes the schedule of class.
func (s *CalendarService) DeleteSchedule(ctx context.Context, class string) error {
	class = strings.TrimSpace(class)
	if class == "" {
		return appErrors.Clone(appErrors.ErrValidation, "kelas is required")
	}
	if err := s.schedules.Delete(ctx, class); err != nil {
		return storeError(err, "failed to delete schedule")
	}
	s.reader.Invalidate(ctx, cacheKeySchedules)
	return nil
}

// Month classifies every day of the month for class.
func (s *CalendarService) Month(ctx context.Context, p Period) (*MonthCalendar, error) {
	if err := validatePeriod(p); err != nil {
		return nil, err
	}
	snap, err := s.reader.Snapshot(ctx, false)
	if err != nil {
		return nil, err
	}
	class := strings.TrimSpace(p.Class)
	days := snap.Calendar.Month(p.Month, p.Year, class)
	return &MonthCalendar{
		Class:         class,
		Month:         p.Month,
		Year:          p.Year,
		TeacherStatus: snap.Calendar.TeacherStatus,
		Days:          days,
		EffectiveDays: CountTeachingDays(days),
	}, nil
}
