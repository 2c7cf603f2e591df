package service

import (
	"context"
	"time"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
)

// fakeSheets stands in for every store repository. Reads serve the fields
// below; writes are recorded and applied where later reads depend on them.
type fakeSheets struct {
	students     []models.Student
	history      []models.AttendanceRow
	specialDates []models.SpecialDateRow
	schedules    []models.ScheduleRow
	classOptions []string
	school       *models.SchoolProfile
	monthlyRecap []models.RecapRow
	semesterRows []models.RecapRow
	graph        models.GraphData

	readErr  error
	writeErr error

	historyReads int
	created      []models.StudentInput
	bulk         [][]models.StudentInput
	updated      map[string]models.StudentInput
	deleted      []string
	batches      [][]models.AttendanceSubmission
	bulkUpdates  [][]models.AttendanceUpdate
	monthDeletes []string
	filterDelete []string
	specialSaved []models.SpecialDate
	specialDel   []models.Date
	scheduleSave []models.TeachingSchedule
	scheduleDel  []string
	savedSchool  *models.SchoolProfile
	cleared      int
}

func newFakeSheets() *fakeSheets {
	return &fakeSheets{updated: map[string]models.StudentInput{}}
}

func (f *fakeSheets) reader() *StoreReader {
	return NewStoreReader(fakeStudents{f}, fakeAttendance{f}, fakeCalendar{f}, fakeSchedules{f}, fakeSchool{f}, nil)
}

type fakeStudents struct{ f *fakeSheets }

func (s fakeStudents) List(context.Context) ([]models.Student, error) {
	return s.f.students, s.f.readErr
}

func (s fakeStudents) Create(_ context.Context, in models.StudentInput) error {
	s.f.created = append(s.f.created, in)
	return s.f.writeErr
}

func (s fakeStudents) BulkCreate(_ context.Context, in []models.StudentInput) error {
	s.f.bulk = append(s.f.bulk, in)
	return s.f.writeErr
}

func (s fakeStudents) Update(_ context.Context, oldNISN string, in models.StudentInput) error {
	s.f.updated[oldNISN] = in
	return s.f.writeErr
}

func (s fakeStudents) Delete(_ context.Context, nisn string) error {
	s.f.deleted = append(s.f.deleted, nisn)
	return s.f.writeErr
}

type fakeAttendance struct{ f *fakeSheets }

func (a fakeAttendance) History(context.Context) ([]models.AttendanceRow, error) {
	a.f.historyReads++
	return a.f.history, a.f.readErr
}

func (a fakeAttendance) SubmitBatch(_ context.Context, batch []models.AttendanceSubmission) error {
	a.f.batches = append(a.f.batches, batch)
	return a.f.writeErr
}

func (a fakeAttendance) BulkUpdate(_ context.Context, updates []models.AttendanceUpdate) error {
	a.f.bulkUpdates = append(a.f.bulkUpdates, updates)
	return a.f.writeErr
}

func (a fakeAttendance) DeleteStudentMonth(_ context.Context, name string, month time.Month, year int) error {
	a.f.monthDeletes = append(a.f.monthDeletes, name)
	return a.f.writeErr
}

func (a fakeAttendance) DeleteByFilter(_ context.Context, class string, month time.Month, year int) error {
	a.f.filterDelete = append(a.f.filterDelete, class)
	return a.f.writeErr
}

type fakeCalendar struct{ f *fakeSheets }

func (c fakeCalendar) ListSpecialDates(context.Context) ([]models.SpecialDateRow, error) {
	return c.f.specialDates, c.f.readErr
}

func (c fakeCalendar) CreateSpecialDate(_ context.Context, sd models.SpecialDate) error {
	c.f.specialSaved = append(c.f.specialSaved, sd)
	return c.f.writeErr
}

func (c fakeCalendar) UpdateSpecialDate(_ context.Context, _ models.Date, sd models.SpecialDate) error {
	c.f.specialSaved = append(c.f.specialSaved, sd)
	return c.f.writeErr
}

func (c fakeCalendar) DeleteSpecialDate(_ context.Context, start models.Date) error {
	c.f.specialDel = append(c.f.specialDel, start)
	return c.f.writeErr
}

type fakeSchedules struct{ f *fakeSheets }

func (s fakeSchedules) List(context.Context) ([]models.ScheduleRow, error) {
	return s.f.schedules, s.f.readErr
}

func (s fakeSchedules) ClassOptions(context.Context) ([]string, error) {
	return s.f.classOptions, s.f.readErr
}

func (s fakeSchedules) Create(_ context.Context, sc models.TeachingSchedule) error {
	s.f.scheduleSave = append(s.f.scheduleSave, sc)
	return s.f.writeErr
}

func (s fakeSchedules) Update(_ context.Context, _ string, sc models.TeachingSchedule) error {
	s.f.scheduleSave = append(s.f.scheduleSave, sc)
	return s.f.writeErr
}

func (s fakeSchedules) Delete(_ context.Context, class string) error {
	s.f.scheduleDel = append(s.f.scheduleDel, class)
	return s.f.writeErr
}

type fakeSchool struct{ f *fakeSheets }

func (s fakeSchool) Get(context.Context) (*models.SchoolProfile, error) {
	return s.f.school, s.f.readErr
}

func (s fakeSchool) Save(_ context.Context, p models.SchoolProfile) error {
	s.f.savedSchool = &p
	return s.f.writeErr
}

type fakeRecaps struct{ f *fakeSheets }

func (r fakeRecaps) Monthly(context.Context, string, time.Month) ([]models.RecapRow, error) {
	return r.f.monthlyRecap, r.f.readErr
}

func (r fakeRecaps) Semester(context.Context, string, models.Semester) ([]models.RecapRow, error) {
	return r.f.semesterRows, r.f.readErr
}

func (r fakeRecaps) Graph(context.Context, string, models.Semester) (models.GraphData, error) {
	return r.f.graph, r.f.readErr
}

type fakeClearer struct{ f *fakeSheets }

func (c fakeClearer) ClearAll(context.Context) error {
	c.f.cleared++
	return c.f.writeErr
}

func row(date, name, nisn, class, status string) models.AttendanceRow {
	return models.AttendanceRow{
		Date:   models.Text(date),
		Name:   models.Text(name),
		NISN:   models.Text(nisn),
		Class:  models.Text(class),
		Status: models.Text(status),
	}
}

// classFour seeds two students of class 4 and one of class 5.
func classFour() *fakeSheets {
	f := newFakeSheets()
	f.students = []models.Student{
		student("1", "Ani", "001", "4", "P"),
		student("2", "Budi", "002", "4", "L"),
		student("3", "Citra", "003", "5", "P"),
	}
	return f
}
