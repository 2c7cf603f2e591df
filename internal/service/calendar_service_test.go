package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
	appErrors "github.com/DatzProject/I.Teaching-Ramlan/pkg/errors"
)

func newCalendarServiceForTest(f *fakeSheets) *CalendarService {
	return NewCalendarService(f.reader(), fakeCalendar{f}, fakeSchedules{f}, nil, zap.NewNop())
}

func TestCalendarCreateSpecialDateValidation(t *testing.T) {
	f := newFakeSheets()
	f.specialDates = []models.SpecialDateRow{{Date: "17/08/2024", Description: "HUT RI"}}
	svc := newCalendarServiceForTest(f)
	ctx := context.Background()

	_, err := svc.CreateSpecialDate(ctx, SpecialDateRequest{Date: "16/12/2024", Description: "Libur Akhir Semester"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.CreateSpecialDate(ctx, SpecialDateRequest{Date: "16/12/2024", EndDate: "15/12/2024", Description: "Libur"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.CreateSpecialDate(ctx, SpecialDateRequest{Date: "17/08/2024", Description: "Upacara"})
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Empty(t, f.specialSaved)

	sd, err := svc.CreateSpecialDate(ctx, SpecialDateRequest{Date: "16/12/2024", EndDate: "31/12/2024", Description: "Libur Akhir Semester"})
	require.NoError(t, err)
	require.NotNil(t, sd.End)
	assert.Equal(t, "31/12/2024", sd.End.String())
	require.Len(t, f.specialSaved, 1)
}

func TestCalendarUpdateSpecialDateRequiresExisting(t *testing.T) {
	f := newFakeSheets()
	f.specialDates = []models.SpecialDateRow{{Date: "17/08/2024", Description: "HUT RI"}}
	svc := newCalendarServiceForTest(f)

	_, err := svc.UpdateSpecialDate(context.Background(), "18/08/2024", SpecialDateRequest{Date: "19/08/2024", Description: "x"})
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	sd, err := svc.UpdateSpecialDate(context.Background(), "17/08/2024", SpecialDateRequest{Date: "17/08/2024", EndDate: "17/08/2024", Description: "HUT RI ke-79"})
	require.NoError(t, err)
	assert.Nil(t, sd.End)
}

func TestCalendarSchedules(t *testing.T) {
	f := newFakeSheets()
	f.schedules = []models.ScheduleRow{{Class: "5", Days: "Senin, Selasa"}}
	svc := newCalendarServiceForTest(f)
	ctx := context.Background()

	sc, err := svc.CreateSchedule(ctx, ScheduleRequest{Class: "4", Days: []string{"senin", "RABU", "Senin"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Senin", "Rabu"}, sc.Days)

	_, err = svc.CreateSchedule(ctx, ScheduleRequest{Class: "4", Days: []string{"Funday"}})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.CreateSchedule(ctx, ScheduleRequest{Class: "5", Days: []string{"Kamis"}})
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)

	_, err = svc.UpdateSchedule(ctx, "6", ScheduleRequest{Class: "6", Days: []string{"Kamis"}})
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	require.NoError(t, svc.DeleteSchedule(ctx, "5"))
	assert.Equal(t, []string{"5"}, f.scheduleDel)
}

func TestCalendarMonthUsesTeacherStatus(t *testing.T) {
	f := newFakeSheets()
	f.schedules = []models.ScheduleRow{{Class: "4", Days: "Senin"}}
	f.school = &models.SchoolProfile{TeacherStatus: "Guru Mata Pelajaran"}
	svc := newCalendarServiceForTest(f)

	cal, err := svc.Month(context.Background(), Period{Class: "4", Month: time.October, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, "Guru Mata Pelajaran", cal.TeacherStatus)
	assert.Len(t, cal.Days, 31)
	// Mondays of October 2024: 7, 14, 21, 28.
	assert.Equal(t, 4, cal.EffectiveDays)
	assert.Equal(t, models.DayNonScheduled, cal.Days[0].Kind)
}
