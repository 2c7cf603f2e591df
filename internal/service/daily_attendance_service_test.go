package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
	appErrors "github.com/DatzProject/I.Teaching-Ramlan/pkg/errors"
)

func newDailyServiceForTest(f *fakeSheets) *DailyAttendanceService {
	return NewDailyAttendanceService(f.reader(), fakeAttendance{f}, nil, nil, zap.NewNop())
}

func TestDailyLoadLocksExistingRecords(t *testing.T) {
	f := classFour()
	f.history = []models.AttendanceRow{row("01/10/2024", "Ani", "001", "4", "Izin")}
	svc := newDailyServiceForTest(f)

	sheet, err := svc.Load(context.Background(), mustDate(t, "01/10/2024"), "4", nil)
	require.NoError(t, err)
	require.Len(t, sheet.Entries, 2)
	assert.True(t, sheet.Entries[0].Locked)
	assert.Equal(t, models.StatusExcused, sheet.Entries[0].Status)
	assert.False(t, sheet.Entries[1].Locked)
	assert.Equal(t, models.StatusPresent, sheet.Entries[1].Status)
	assert.Equal(t, 1, sheet.LockedCount)
	assert.Equal(t, models.DayTeaching, sheet.Day.Kind)
	assert.Equal(t, models.StatusCounts{Hadir: 1, Izin: 1}, sheet.Summary)
}

func TestDailySaveSubmitsOnlyUnlocked(t *testing.T) {
	f := classFour()
	f.history = []models.AttendanceRow{row("01/10/2024", "Ani", "001", "4", "Izin")}
	svc := newDailyServiceForTest(f)

	res, err := svc.Save(context.Background(), DailySaveRequest{
		Date:     "01/10/2024",
		Class:    "4",
		Statuses: map[string]string{"1": "Alpha", "2": "s"},
	})
	require.NoError(t, err)
	assert.Equal(t, DailyOutcomeSubmitted, res.Outcome)
	assert.Equal(t, 1, res.Submitted)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, f.batches, 1)
	assert.Equal(t, []models.AttendanceSubmission{
		{Date: "01/10/2024", Name: "Budi", Class: "4", NISN: "002", Status: models.StatusSick},
	}, f.batches[0])
}

func TestDailySaveAlreadyComplete(t *testing.T) {
	f := classFour()
	f.history = []models.AttendanceRow{
		row("01/10/2024", "Ani", "001", "4", "Hadir"),
		row("01/10/2024", "Budi", "002", "4", "Hadir"),
	}
	svc := newDailyServiceForTest(f)

	res, err := svc.Save(context.Background(), DailySaveRequest{Date: "01/10/2024", Class: "4"})
	require.NoError(t, err)
	assert.Equal(t, DailyOutcomeAlreadyComplete, res.Outcome)
	assert.Empty(t, f.batches)
}

func TestDailySaveRejectsBadInput(t *testing.T) {
	f := classFour()
	svc := newDailyServiceForTest(f)

	_, err := svc.Save(context.Background(), DailySaveRequest{Date: "1/10/2024", Class: "4"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Save(context.Background(), DailySaveRequest{Date: "01/10/2024", Statuses: map[string]string{"1": "Bolos"}})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, f.historyReads)
}
