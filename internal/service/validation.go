package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
	appErrors "github.com/DatzProject/I.Teaching-Ramlan/pkg/errors"
)

// NewValidator returns a validator with the attendance-specific tags:
// ddmmyyyy (strict DD/MM/YYYY date), attendance_status (one of the four
// statuses, or empty) and sex_code (L or P, any case).
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("ddmmyyyy", func(fl validator.FieldLevel) bool {
		_, err := models.ParseStrictDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("attendance_status", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseStatus(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("sex_code", func(fl validator.FieldLevel) bool {
		_, ok := normalizeSex(fl.Field().String())
		return ok
	})
	return v
}

func normalizeSex(raw string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case models.SexMale:
		return models.SexMale, true
	case models.SexFemale:
		return models.SexFemale, true
	}
	return "", false
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

// storeError keeps typed store errors intact and wraps anything else as
// internal.
func storeError(err error, message string) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}
