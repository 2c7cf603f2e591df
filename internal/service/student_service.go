package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
	appErrors "github.com/DatzProject/I.Teaching-Ramlan/pkg/errors"
)

type studentWriter interface {
	Create(ctx context.Context, in models.StudentInput) error
	BulkCreate(ctx context.Context, in []models.StudentInput) error
	Update(ctx context.Context, oldNISN string, in models.StudentInput) error
	Delete(ctx context.Context, nisn string) error
}

// StudentRequest holds payload for creating or updating students.
type StudentRequest struct {
	NISN  string `json:"nisn" validate:"required"`
	Name  string `json:"nama" validate:"required"`
	Class string `json:"kelas" validate:"required"`
	Sex   string `json:"jenisKelamin" validate:"required,sex_code"`
}

func (r StudentRequest) input() models.StudentInput {
	sex, _ := normalizeSex(r.Sex)
	return models.StudentInput{
		NISN:  strings.TrimSpace(r.NISN),
		Name:  strings.TrimSpace(r.Name),
		Class: strings.TrimSpace(r.Class),
		Sex:   sex,
	}
}

// BulkStudentRequest carries four newline-separated columns pasted from a
// spreadsheet. Line i of every column describes the same student.
type BulkStudentRequest struct {
	NISN  string `json:"nisn" validate:"required"`
	Name  string `json:"nama" validate:"required"`
	Class string `json:"kelas" validate:"required"`
	Sex   string `json:"jenisKelamin" validate:"required"`
}

// StudentService handles student master data.
type StudentService struct {
	reader    *StoreReader
	repo      studentWriter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(reader *StoreReader, repo studentWriter, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{reader: reader, repo: repo, validator: validate, logger: logger}
}

// List returns students of the filtered class whose name or NISN contains
// the search term, and pagination metadata. A zero page size returns every
// match.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	students, err := s.reader.Students(ctx)
	if err != nil {
		return nil, nil, err
	}
	matches := FilterStudents(students, filter.Class)
	if term := strings.ToLower(strings.TrimSpace(filter.Search)); term != "" {
		found := matches[:0]
		for _, st := range matches {
			if strings.Contains(strings.ToLower(st.Name.String()), term) || strings.Contains(strings.ToLower(st.NISN.String()), term) {
				found = append(found, st)
			}
		}
		matches = found
	}

	total := len(matches)
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		return matches, &models.Pagination{Page: 1, PageSize: total, TotalCount: total}, nil
	}
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return matches[start:end], &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Classes returns the distinct class labels of the student list.
func (s *StudentService) Classes(ctx context.Context) ([]string, error) {
	students, err := s.reader.Students(ctx)
	if err != nil {
		return nil, err
	}
	return SortClasses(students), nil
}

// SortClasses returns distinct non-empty class labels with purely numeric
// labels first in numeric order, then the rest lexicographically.
func SortClasses(students []models.Student) []string {
	seen := map[string]struct{}{}
	classes := make([]string, 0)
	for _, st := range students {
		c := st.Class.String()
		if c == "" || c == "undefined" || c == "null" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		classes = append(classes, c)
	}
	sort.SliceStable(classes, func(i, j int) bool {
		a, aErr := strconv.Atoi(classes[i])
		b, bErr := strconv.Atoi(classes[j])
		aNum, bNum := aErr == nil && isDigits(classes[i]), bErr == nil && isDigits(classes[j])
		switch {
		case aNum && bNum:
			return a < b
		case aNum != bNum:
			return aNum
		default:
			return classes[i] < classes[j]
		}
	})
	return classes
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// Gender counts the students of class by sex group.
func (s *StudentService) Gender(ctx context.Context, class string) (models.GenderSummary, error) {
	students, err := s.reader.Students(ctx)
	if err != nil {
		return models.GenderSummary{}, err
	}
	return SummarizeGender(FilterStudents(students, class)), nil
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, req StudentRequest) (*models.StudentInput, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid student payload")
	}
	in := req.input()
	existing, err := s.findByNISN(ctx, in.NISN)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "nisn already used")
	}
	if err := s.repo.Create(ctx, in); err != nil {
		return nil, storeError(err, "failed to create student")
	}
	s.reader.Invalidate(ctx, cacheKeyStudents)
	s.logger.Info("student created", zap.String("nisn", in.NISN), zap.String("kelas", in.Class))
	return &in, nil
}

// ParseBulkStudents splits the pasted columns into students. Blank lines
// are dropped, every column must have the same number of rows and each sex
// code must be L or P.
func ParseBulkStudents(req BulkStudentRequest) ([]models.StudentInput, error) {
	nisn := splitLines(req.NISN)
	names := splitLines(req.Name)
	classes := splitLines(req.Class)
	sexes := splitLines(req.Sex)

	if len(nisn) != len(names) || len(names) != len(classes) || len(classes) != len(sexes) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "nisn, nama, kelas and jenisKelamin must have the same number of rows")
	}
	if len(nisn) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no rows to import")
	}
	out := make([]models.StudentInput, len(nisn))
	for i := range nisn {
		sex, ok := normalizeSex(sexes[i])
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("row %d: jenisKelamin must be L or P", i+1))
		}
		out[i] = models.StudentInput{NISN: nisn[i], Name: names[i], Class: classes[i], Sex: sex}
	}
	return out, nil
}

func splitLines(raw string) []string {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// BulkCreate validates and imports pasted student rows in one request. It
// returns the imported rows.
func (s *StudentService) BulkCreate(ctx context.Context, req BulkStudentRequest) ([]models.StudentInput, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "all bulk columns are required")
	}
	students, err := ParseBulkStudents(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.BulkCreate(ctx, students); err != nil {
		return nil, storeError(err, "failed to import students")
	}
	s.reader.Invalidate(ctx, cacheKeyStudents)
	s.logger.Info("students imported", zap.Int("count", len(students)))
	return students, nil
}

// Update rewrites the student currently registered under nisn.
func (s *StudentService) Update(ctx context.Context, nisn string, req StudentRequest) (*models.StudentInput, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid student payload")
	}
	nisn = strings.TrimSpace(nisn)
	in := req.input()
	existing, err := s.findByNISN(ctx, nisn)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	if in.NISN != nisn {
		clash, err := s.findByNISN(ctx, in.NISN)
		if err != nil {
			return nil, err
		}
		if clash != nil {
			return nil, appErrors.Clone(appErrors.ErrConflict, "nisn already used")
		}
	}
	if err := s.repo.Update(ctx, nisn, in); err != nil {
		return nil, storeError(err, "failed to update student")
	}
	s.reader.Invalidate(ctx, cacheKeyStudents)
	return &in, nil
}

// Delete removes the student registered under nisn.
func (s *StudentService) Delete(ctx context.Context, nisn string) error {
	nisn = strings.TrimSpace(nisn)
	existing, err := s.findByNISN(ctx, nisn)
	if err != nil {
		return err
	}
	if existing == nil {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	if err := s.repo.Delete(ctx, nisn); err != nil {
		return storeError(err, "failed to delete student")
	}
	s.reader.Invalidate(ctx, cacheKeyStudents)
	return nil
}

func (s *StudentService) findByNISN(ctx context.Context, nisn string) (*models.Student, error) {
	students, err := s.reader.Students(ctx)
	if err != nil {
		return nil, err
	}
	want := NormalizeNISN(nisn)
	for i := range students {
		if NormalizeNISN(students[i].NISN.String()) == want {
			return &students[i], nil
		}
	}
	return nil, nil
}
