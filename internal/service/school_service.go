package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
)

type schoolWriter interface {
	Save(ctx context.Context, profile models.SchoolProfile) error
}

// SchoolRequest holds payload for saving the school profile. Signatures are
// image data URLs.
type SchoolRequest struct {
	SchoolName         string `json:"namaSekolah"`
	PrincipalName      string `json:"namaKepsek" validate:"required"`
	PrincipalNIP       string `json:"nipKepsek"`
	PrincipalSignature string `json:"ttdKepsek" validate:"omitempty,startswith=data:image/"`
	TeacherName        string `json:"namaGuru" validate:"required"`
	TeacherNIP         string `json:"nipGuru"`
	TeacherSignature   string `json:"ttdGuru" validate:"omitempty,startswith=data:image/"`
	City               string `json:"namaKota"`
	TeacherStatus      string `json:"statusGuru"`
}

// SchoolService reads and saves the school profile.
type SchoolService struct {
	reader       *StoreReader
	repo         schoolWriter
	cityFallback string
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewSchoolService constructs the service. cityFallback fills a missing
// city on reads.
func NewSchoolService(reader *StoreReader, repo schoolWriter, cityFallback string, validate *validator.Validate, logger *zap.Logger) *SchoolService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchoolService{reader: reader, repo: repo, cityFallback: cityFallback, validator: validate, logger: logger}
}

// Get returns the profile, or nil when none is stored.
func (s *SchoolService) Get(ctx context.Context) (*models.SchoolProfile, error) {
	profile, err := s.reader.School(ctx)
	if err != nil || profile == nil {
		return profile, err
	}
	out := *profile
	if out.City == "" && s.cityFallback != "" {
		out.City = models.Text(s.cityFallback)
	}
	return &out, nil
}

// Save overwrites the profile. An empty teacher status is stored as
// homeroom.
func (s *SchoolService) Save(ctx context.Context, req SchoolRequest) (*models.SchoolProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid school profile")
	}
	status := strings.TrimSpace(req.TeacherStatus)
	if status == "" {
		status = models.TeacherStatusHomeroom
	}
	profile := models.SchoolProfile{
		PrincipalName:      models.Text(strings.TrimSpace(req.PrincipalName)),
		PrincipalNIP:       models.Text(strings.TrimSpace(req.PrincipalNIP)),
		PrincipalSignature: models.Text(req.PrincipalSignature),
		TeacherName:        models.Text(strings.TrimSpace(req.TeacherName)),
		TeacherNIP:         models.Text(strings.TrimSpace(req.TeacherNIP)),
		TeacherSignature:   models.Text(req.TeacherSignature),
		City:               models.Text(strings.TrimSpace(req.City)),
		TeacherStatus:      models.Text(status),
		SchoolName:         models.Text(strings.TrimSpace(req.SchoolName)),
	}
	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, storeError(err, "failed to save school profile")
	}
	// The teacher status changes how every day is classified.
	s.reader.Invalidate(ctx, cacheKeySchool, cacheKeyRecaps)
	s.logger.Info("school profile saved", zap.String("status_guru", status))
	return &profile, nil
}
