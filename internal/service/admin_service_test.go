package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
	"github.com/DatzProject/I.Teaching-Ramlan/internal/repository"
	appErrors "github.com/DatzProject/I.Teaching-Ramlan/pkg/errors"
)

func TestSchoolServiceSaveDefaultsTeacherStatus(t *testing.T) {
	f := newFakeSheets()
	svc := NewSchoolService(f.reader(), fakeSchool{f}, "", nil, zap.NewNop())

	_, err := svc.Save(context.Background(), SchoolRequest{TeacherName: "Bu Rina"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Save(context.Background(), SchoolRequest{PrincipalName: "Pak Budi", TeacherName: "Bu Rina", TeacherSignature: "not-an-image"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	profile, err := svc.Save(context.Background(), SchoolRequest{PrincipalName: " Pak Budi ", TeacherName: "Bu Rina", TeacherSignature: "data:image/png;base64,AAAA"})
	require.NoError(t, err)
	assert.Equal(t, models.Text(models.TeacherStatusHomeroom), profile.TeacherStatus)
	require.NotNil(t, f.savedSchool)
	assert.Equal(t, models.Text("Pak Budi"), f.savedSchool.PrincipalName)
}

func TestSchoolServiceGet(t *testing.T) {
	f := newFakeSheets()
	svc := NewSchoolService(f.reader(), fakeSchool{f}, "Batang", nil, zap.NewNop())

	profile, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, profile)

	f.school = &models.SchoolProfile{SchoolName: "SDN 1"}
	profile, err = svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Text("Batang"), profile.City)
	assert.Equal(t, models.Text(""), f.school.City)
}

func TestMaintenanceClearAll(t *testing.T) {
	f := newFakeSheets()
	drafts := repository.NewMemoryDraftRepository()
	require.NoError(t, drafts.Save(context.Background(), models.MonthlyDraft{ID: "d1", Month: time.October, Year: 2024}, 0))
	svc := NewMaintenanceService(f.reader(), fakeClearer{f}, drafts, zap.NewNop())

	err := svc.ClearAll(context.Background(), false)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, f.cleared)

	require.NoError(t, svc.ClearAll(context.Background(), true))
	assert.Equal(t, 1, f.cleared)
	_, err = drafts.Get(context.Background(), "d1")
	assert.Error(t, err)
}
