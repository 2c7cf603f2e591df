package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
)

func mustDate(t *testing.T, raw string) models.Date {
	t.Helper()
	d, err := models.ParseDate(raw)
	require.NoError(t, err)
	return d
}

func datePtr(t *testing.T, raw string) *models.Date {
	d := mustDate(t, raw)
	return &d
}

func student(id, name, nisn, class, sex string) models.Student {
	return models.Student{
		ID:    models.Text(id),
		Name:  models.Text(name),
		NISN:  models.Text(nisn),
		Class: models.Text(class),
		Sex:   models.Text(sex),
	}
}

func record(t *testing.T, date, name, nisn, class string, status models.Status) models.AttendanceRecord {
	return models.AttendanceRecord{Date: mustDate(t, date), Name: name, NISN: nisn, Class: class, Status: status}
}
