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

func recapRow(name, class string, hadir, alpa, izin, sakit int) models.RecapRow {
	return models.RecapRow{
		Name:  models.Text(name),
		Class: models.Text(class),
		Hadir: models.Number(hadir),
		Alpa:  models.Number(alpa),
		Izin:  models.Number(izin),
		Sakit: models.Number(sakit),
	}
}

func newRecapServiceForTest(f *fakeSheets) *RecapService {
	return NewRecapService(f.reader(), fakeRecaps{f}, nil, zap.NewNop())
}

func TestRecapMonthlyFiltersAndAggregates(t *testing.T) {
	f := classFour()
	f.monthlyRecap = []models.RecapRow{
		recapRow("Ani", "4", 18, 1, 1, 0),
		recapRow("Budi", "4", 20, 0, 0, 0),
		recapRow("Citra", "5", 10, 10, 0, 0),
	}
	svc := newRecapServiceForTest(f)

	recap, err := svc.Monthly(context.Background(), "4", time.October)
	require.NoError(t, err)
	assert.Equal(t, "Oktober", recap.Period)
	assert.Equal(t, models.RecapSourceStore, recap.Source)
	require.Len(t, recap.Rows, 2)
	assert.Equal(t, 40, recap.Summary.Totals.GrandTotal)
	assert.Equal(t, 95.0, recap.Summary.Percent.Hadir)

	all, err := svc.Monthly(context.Background(), "", time.October)
	require.NoError(t, err)
	assert.Equal(t, models.AllClasses, all.Class)
	assert.Len(t, all.Rows, 3)

	_, err = svc.Monthly(context.Background(), "4", 0)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRecapSemesterRejectsUnknownSemester(t *testing.T) {
	svc := newRecapServiceForTest(classFour())
	_, err := svc.Semester(context.Background(), "4", 3)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRecapChartZeroFillsMonths(t *testing.T) {
	f := classFour()
	f.graph = models.GraphData{"Juli": {Hadir: 10.6, Alpha: 1}}
	svc := newRecapServiceForTest(f)

	chart, err := svc.Chart(context.Background(), "4", models.SemesterOdd)
	require.NoError(t, err)
	assert.Equal(t, []string{"Juli", "Agustus", "September", "Oktober", "November", "Desember"}, chart.Labels)
	require.Len(t, chart.Series, 4)
	assert.Equal(t, models.StatusPresent, chart.Series[0].Status)
	assert.Equal(t, []int{11, 0, 0, 0, 0, 0}, chart.Series[0].Values)
}

func TestRecapCompareReportsMismatches(t *testing.T) {
	f := classFour()
	f.history = []models.AttendanceRow{row("01/10/2024", "Ani", "001", "4", "Hadir")}
	f.monthlyRecap = []models.RecapRow{
		recapRow("Ani", "4", 1, 0, 0, 0),
		recapRow("Dodi", "4", 3, 0, 0, 0),
	}
	svc := newRecapServiceForTest(f)

	local, err := svc.LocalMonthly(context.Background(), "4", time.October, 2024)
	require.NoError(t, err)
	assert.Equal(t, "Oktober 2024", local.Period)
	require.Len(t, local.Rows, 2)
	assert.Equal(t, 100.0, float64(local.Rows[0].PercentPresent))

	mismatches, err := svc.Compare(context.Background(), "4", time.October, 2024)
	require.NoError(t, err)
	require.Len(t, mismatches, 2)
	assert.Equal(t, "Dodi", mismatches[0].Name)
	assert.Nil(t, mismatches[0].Local)
	assert.Equal(t, "Budi", mismatches[1].Name)
	assert.Nil(t, mismatches[1].Store)
}
