package repository

import (
	"context"
	"strings"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
)

func isAll(class string) bool { return models.IsAllClasses(class) }

// StudentRepository reads and writes the student master sheet.
type StudentRepository struct {
	store StoreClient
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(store StoreClient) *StudentRepository {
	return &StudentRepository{store: store}
}

// List returns every student. The student list is the one read served
// without an action parameter or envelope.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := r.store.GetRaw(ctx, "students", &students); err != nil {
		return nil, err
	}
	out := students[:0]
	for _, s := range students {
		if strings.TrimSpace(s.Name.String()) == "" && s.NISN == "" {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

type studentPayload struct {
	Type string `json:"type"`
	models.StudentInput
}

// Create adds one student.
func (r *StudentRepository) Create(ctx context.Context, in models.StudentInput) error {
	return r.store.Post(ctx, writeStudent, studentPayload{Type: writeStudent, StudentInput: in})
}

// BulkCreate adds many students in one request.
func (r *StudentRepository) BulkCreate(ctx context.Context, in []models.StudentInput) error {
	payload := struct {
		Type     string                `json:"type"`
		Students []models.StudentInput `json:"students"`
	}{Type: writeBulkStudents, Students: in}
	return r.store.Post(ctx, writeBulkStudents, payload)
}

// Update rewrites the student currently registered under oldNISN.
func (r *StudentRepository) Update(ctx context.Context, oldNISN string, in models.StudentInput) error {
	payload := struct {
		Type    string `json:"type"`
		OldNISN string `json:"nisnLama"`
		NewNISN string `json:"nisnBaru"`
		Name    string `json:"nama"`
		Class   string `json:"kelas"`
		Sex     string `json:"jenisKelamin"`
	}{
		Type:    writeEditStudent,
		OldNISN: oldNISN,
		NewNISN: in.NISN,
		Name:    in.Name,
		Class:   in.Class,
		Sex:     in.Sex,
	}
	return r.store.Post(ctx, writeEditStudent, payload)
}

// Delete removes the student with nisn.
func (r *StudentRepository) Delete(ctx context.Context, nisn string) error {
	payload := struct {
		Type string `json:"type"`
		NISN string `json:"nisn"`
	}{Type: writeDeleteStudent, NISN: nisn}
	return r.store.Post(ctx, writeDeleteStudent, payload)
}
