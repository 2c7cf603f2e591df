package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
)

type studentLister interface {
	List(ctx context.Context) ([]models.Student, error)
}

type historyReader interface {
	History(ctx context.Context) ([]models.AttendanceRow, error)
}

type specialDateLister interface {
	ListSpecialDates(ctx context.Context) ([]models.SpecialDateRow, error)
}

type scheduleLister interface {
	List(ctx context.Context) ([]models.ScheduleRow, error)
	ClassOptions(ctx context.Context) ([]string, error)
}

type schoolReader interface {
	Get(ctx context.Context) (*models.SchoolProfile, error)
}

// StoreReader serves the store's read actions through the cache and turns
// raw rows into engine inputs.
type StoreReader struct {
	students     studentLister
	history      historyReader
	specialDates specialDateLister
	schedules    scheduleLister
	school       schoolReader
	cache        *CacheService
}

// NewStoreReader constructs a StoreReader. cache may be nil.
func NewStoreReader(students studentLister, history historyReader, specialDates specialDateLister, schedules scheduleLister, school schoolReader, cache *CacheService) *StoreReader {
	return &StoreReader{
		students:     students,
		history:      history,
		specialDates: specialDates,
		schedules:    schedules,
		school:       school,
		cache:        cache,
	}
}

// Students returns the student master list.
func (r *StoreReader) Students(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	err := r.cache.Remember(ctx, cacheKeyStudents, &students, func(ctx context.Context) error {
		var err error
		students, err = r.students.List(ctx)
		return err
	})
	if err != nil {
		return nil, storeError(err, "failed to load students")
	}
	return students, nil
}

// History returns the attendance history with malformed rows removed.
func (r *StoreReader) History(ctx context.Context) ([]models.AttendanceRecord, error) {
	var rows []models.AttendanceRow
	err := r.cache.Remember(ctx, cacheKeyHistory, &rows, func(ctx context.Context) error {
		var err error
		rows, err = r.history.History(ctx)
		return err
	})
	if err != nil {
		return nil, storeError(err, "failed to load attendance history")
	}
	return FilterValidAttendance(rows), nil
}

// SpecialDates returns the parsed special dates.
func (r *StoreReader) SpecialDates(ctx context.Context) ([]models.SpecialDate, error) {
	var rows []models.SpecialDateRow
	err := r.cache.Remember(ctx, cacheKeySpecialDates, &rows, func(ctx context.Context) error {
		var err error
		rows, err = r.specialDates.ListSpecialDates(ctx)
		return err
	})
	if err != nil {
		return nil, storeError(err, "failed to load special dates")
	}
	return ParseSpecialDates(rows), nil
}

// Schedules returns the parsed teaching schedules.
func (r *StoreReader) Schedules(ctx context.Context) ([]models.TeachingSchedule, error) {
	var rows []models.ScheduleRow
	err := r.cache.Remember(ctx, cacheKeySchedules, &rows, func(ctx context.Context) error {
		var err error
		rows, err = r.schedules.List(ctx)
		return err
	})
	if err != nil {
		return nil, storeError(err, "failed to load teaching schedules")
	}
	return ParseSchedules(rows), nil
}

// ClassOptions returns the class labels offered for scheduling.
func (r *StoreReader) ClassOptions(ctx context.Context) ([]string, error) {
	var classes []string
	err := r.cache.Remember(ctx, cacheKeyClasses, &classes, func(ctx context.Context) error {
		var err error
		classes, err = r.schedules.ClassOptions(ctx)
		return err
	})
	if err != nil {
		return nil, storeError(err, "failed to load class options")
	}
	return classes, nil
}

// School returns the school profile, or nil when none is stored.
func (r *StoreReader) School(ctx context.Context) (*models.SchoolProfile, error) {
	var profile *models.SchoolProfile
	err := r.cache.Remember(ctx, cacheKeySchool, &profile, func(ctx context.Context) error {
		var err error
		profile, err = r.school.Get(ctx)
		return err
	})
	if err != nil {
		return nil, storeError(err, "failed to load school profile")
	}
	return profile, nil
}

// Snapshot is a consistent set of inputs for one engine run.
type Snapshot struct {
	Students []models.Student
	History  []models.AttendanceRecord
	Calendar Calendar
	School   *models.SchoolProfile
}

// Snapshot fetches students, calendar inputs and the school profile in
// parallel, plus the attendance history when withHistory is set.
func (r *StoreReader) Snapshot(ctx context.Context, withHistory bool) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Students, err = r.Students(gctx)
		return err
	})
	if withHistory {
		g.Go(func() error {
			var err error
			snap.History, err = r.History(gctx)
			return err
		})
	}
	g.Go(func() error {
		var err error
		snap.Calendar.SpecialDates, err = r.SpecialDates(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Calendar.Schedules, err = r.Schedules(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.School, err = r.School(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	snap.Calendar.TeacherStatus = snap.School.TeacherStatusLabel()
	return snap, nil
}

// Invalidate drops cached reads under the given key prefixes.
func (r *StoreReader) Invalidate(ctx context.Context, prefixes ...string) {
	r.cache.Invalidate(ctx, prefixes...)
}
