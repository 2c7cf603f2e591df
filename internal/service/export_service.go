package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
	appErrors "github.com/DatzProject/I.Teaching-Ramlan/pkg/errors"
	"github.com/DatzProject/I.Teaching-Ramlan/pkg/export"
	"github.com/DatzProject/I.Teaching-Ramlan/pkg/storage"
)

const defaultSchoolName = "UPT SDN 13 BATANG"

type fileStorage interface {
	Save(name string, data []byte) (string, error)
	Read(name string) ([]byte, error)
	Delete(name string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type renderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type recapSource interface {
	Monthly(ctx context.Context, class string, month time.Month) (*models.Recap, error)
	Semester(ctx context.Context, class string, semester models.Semester) (*models.Recap, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix    string
	ResultTTL    time.Duration
	CityFallback string
}

// ExportFile is a rendered download.
type ExportFile struct {
	Name   string
	Format models.ReportFormat
	Data   []byte
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	Format       models.ReportFormat
	ExpiresAt    time.Time
}

// ExportService renders monthly matrices and recaps, and persists rendered
// files for asynchronous reports.
type ExportService struct {
	reader    *StoreReader
	recaps    recapSource
	storage   fileStorage
	signer    *storage.SignedURLSigner
	renderers map[models.ReportFormat]renderer
	cfg       ExportConfig
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService. storage and signer are only
// needed by Generate and may be nil when reports are disabled.
func NewExportService(reader *StoreReader, recaps recapSource, files fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	return &ExportService{
		reader:  reader,
		recaps:  recaps,
		storage: files,
		signer:  signer,
		renderers: map[models.ReportFormat]renderer{
			models.ReportFormatCSV:  export.NewCSVExporter(),
			models.ReportFormatPDF:  export.NewPDFExporter(),
			models.ReportFormatXLSX: export.NewXLSXExporter(),
		},
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// ValidateRequest checks a report request without touching the store.
func ValidateRequest(req models.ReportRequest) error {
	if !req.Format.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "format must be csv, xlsx or pdf")
	}
	if req.SignDate != "" {
		if _, err := models.ParseStrictDate(req.SignDate); err != nil {
			return appErrors.Clone(appErrors.ErrValidation, "tanggalTtd must be DD/MM/YYYY")
		}
	}
	switch req.Type {
	case models.ReportTypeMonthlyMatrix, models.ReportTypeMonthlyRecap:
		return validatePeriod(Period{Class: req.Class, Month: time.Month(req.Month), Year: req.Year})
	case models.ReportTypeSemesterRecap:
		if !req.Semester.Valid() {
			return appErrors.Clone(appErrors.ErrValidation, "semester must be 1 or 2")
		}
		if req.Year < 2000 || req.Year > 2100 {
			return appErrors.Clone(appErrors.ErrValidation, "tahun is out of range")
		}
		return nil
	}
	return appErrors.Clone(appErrors.ErrValidation, "unknown report type")
}

// Build renders the requested report.
func (s *ExportService) Build(ctx context.Context, req models.ReportRequest) (*ExportFile, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	dataset, prefix, err := s.buildDataset(ctx, req)
	if err != nil {
		return nil, err
	}
	data, err := s.renderers[req.Format].Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return &ExportFile{Name: s.filename(prefix, req.Format), Format: req.Format, Data: data}, nil
}

func (s *ExportService) buildDataset(ctx context.Context, req models.ReportRequest) (export.Dataset, string, error) {
	class := strings.TrimSpace(req.Class)
	label := class
	if models.IsAllClasses(class) {
		label = models.AllClasses
	}
	month := time.Month(req.Month)

	switch req.Type {
	case models.ReportTypeMonthlyMatrix:
		snap, err := s.reader.Snapshot(ctx, true)
		if err != nil {
			return export.Dataset{}, "", err
		}
		matrix := BuildMonthlyGrid(snap, Period{Class: class, Month: month, Year: req.Year}, nil)
		ds := MatrixDataset(matrix, snap.School, snap.Calendar.SpecialDates, s.signature(snap.School, req.SignDate))
		prefix := fmt.Sprintf("Daftar_Hadir_%s_%s_%d", label, models.MonthName(month), req.Year)
		return ds, prefix, nil
	case models.ReportTypeMonthlyRecap:
		recap, err := s.recaps.Monthly(ctx, class, month)
		if err != nil {
			return export.Dataset{}, "", err
		}
		school, err := s.reader.School(ctx)
		if err != nil {
			return export.Dataset{}, "", err
		}
		period := fmt.Sprintf("%s %d", strings.ToUpper(models.MonthName(month)), req.Year)
		ds := RecapDataset(*recap, school, period, s.signature(school, req.SignDate))
		prefix := fmt.Sprintf("Rekap_Bulanan_%s_%s_%d", label, models.MonthName(month), req.Year)
		return ds, prefix, nil
	default:
		recap, err := s.recaps.Semester(ctx, class, req.Semester)
		if err != nil {
			return export.Dataset{}, "", err
		}
		school, err := s.reader.School(ctx)
		if err != nil {
			return export.Dataset{}, "", err
		}
		period := fmt.Sprintf("SEMESTER %d %d", req.Semester, req.Year)
		ds := RecapDataset(*recap, school, period, s.signature(school, req.SignDate))
		prefix := fmt.Sprintf("Rekap_Semester_%d_%s_%d", req.Semester, label, req.Year)
		return ds, prefix, nil
	}
}

func schoolName(p *models.SchoolProfile) string {
	if p == nil || p.SchoolName == "" {
		return defaultSchoolName
	}
	return p.SchoolName.String()
}

// MatrixDataset lays out the monthly attendance matrix. Non-teaching day
// columns are filled by kind and the month's special dates are listed
// under the table.
func MatrixDataset(m MonthlyMatrix, school *models.SchoolProfile, specialDates []models.SpecialDate, sig *export.Signature) export.Dataset {
	class := m.Class
	if models.IsAllClasses(class) {
		class = models.AllClasses
	}
	headers := m.Headers()
	widths := make([]float64, len(headers))
	for i := range widths {
		widths[i] = 1
	}
	widths[1], widths[2] = 3, 6

	fills := map[int]string{}
	for i, d := range m.Days {
		if hex := DayKindFill(d.Kind); hex != "" {
			fills[4+i] = hex
		}
	}

	table := m.Table()
	rows := make([]export.Row, len(table))
	for i, r := range table {
		rows[i] = export.Row{Cells: r.Cells, Merge: r.Merge, Summary: r.Summary}
	}

	return export.Dataset{
		Title: fmt.Sprintf("DAFTAR HADIR SISWA KELAS %s  %s  %s %d",
			class, schoolName(school), strings.ToUpper(models.MonthName(m.Month)), m.Year),
		Meta: []string{
			fmt.Sprintf("Laki-laki: %d   Perempuan: %d   Jumlah: %d", m.Gender.Male, m.Gender.Female, m.Gender.Total),
		},
		Headers:     headers,
		Rows:        rows,
		Widths:      widths,
		ColumnFills: fills,
		Notes:       specialDateNotes(specialDates, m.Month, m.Year),
		Signature:   sig,
		Landscape:   true,
	}
}

// specialDateNotes lists the special dates overlapping the month by start
// date.
func specialDateNotes(dates []models.SpecialDate, month time.Month, year int) []string {
	first, _ := models.NewDate(year, month, 1)
	last, _ := models.NewDate(year, month, models.DaysIn(month, year))
	sorted := append([]models.SpecialDate(nil), dates...)
	sortSpecialDates(sorted)
	var notes []string
	for _, sd := range sorted {
		end := sd.Start
		if sd.End != nil {
			end = *sd.End
		}
		if end.Compare(first) < 0 || sd.Start.Compare(last) > 0 {
			continue
		}
		if len(notes) == 0 {
			notes = append(notes, "KETERANGAN TANGGAL MERAH / LIBUR")
		}
		when := sd.Start.String()
		if sd.End != nil {
			when += " - " + sd.End.String()
		}
		notes = append(notes, when+"  "+sd.Description)
	}
	return notes
}

// RecapDataset lays out a recap report.
func RecapDataset(recap models.Recap, school *models.SchoolProfile, period string, sig *export.Signature) export.Dataset {
	table := RecapTable(recap)
	rows := make([]export.Row, len(table))
	for i, r := range table {
		rows[i] = export.Row{Cells: r.Cells, Merge: r.Merge, Summary: r.Summary}
	}
	return export.Dataset{
		Title:     fmt.Sprintf("REKAP ABSENSI SISWA KELAS %s  %s  %s", recap.Class, schoolName(school), period),
		Headers:   RecapHeaders,
		Rows:      rows,
		Widths:    []float64{1, 5, 2, 1.5, 1.5, 1.5, 1.5, 2},
		Signature: sig,
	}
}

func (s *ExportService) signature(school *models.SchoolProfile, signDate string) *export.Signature {
	date := models.DateOf(s.now())
	if signDate != "" {
		if d, err := models.ParseStrictDate(signDate); err == nil {
			date = d
		}
	}
	city := s.cfg.CityFallback
	var p models.SchoolProfile
	if school != nil {
		p = *school
		if p.City != "" {
			city = p.City.String()
		}
	}
	placeDate := fmt.Sprintf("%d %s %d", date.Day, models.MonthName(date.Month), date.Year)
	if city != "" {
		placeDate = city + ", " + placeDate
	}
	return &export.Signature{
		PlaceDate:  placeDate,
		LeftTitle:  "Kepala Sekolah,",
		LeftName:   p.PrincipalName.OrNA(),
		LeftID:     "NIP. " + p.PrincipalNIP.OrNA(),
		RightTitle: school.TeacherStatusLabel() + ",",
		RightName:  p.TeacherName.OrNA(),
		RightID:    "NIP. " + p.TeacherNIP.OrNA(),
	}
}

func (s *ExportService) filename(prefix string, format models.ReportFormat) string {
	timestamp := s.now().UTC().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", sanitizeFilename(prefix), timestamp, format)
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}

// Generate renders the job's report, stores it and signs a download URL.
func (s *ExportService) Generate(ctx context.Context, job *models.ReportJob) (*ExportResult, error) {
	if job == nil {
		return nil, fmt.Errorf("job nil")
	}
	if s.storage == nil || s.signer == nil {
		return nil, appErrors.Clone(appErrors.ErrFeatureDisabled, "report storage is not configured")
	}
	file, err := s.Build(ctx, job.Params)
	if err != nil {
		return nil, err
	}
	relPath, err := s.storage.Save(file.Name, file.Data)
	if err != nil {
		return nil, err
	}
	token, expiresAt, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/export/%s", prefix, token),
		Format:       file.Format,
		ExpiresAt:    expiresAt,
	}, nil
}

// ParseToken validates a download token.
func (s *ExportService) ParseToken(token string) (storage.Claims, error) {
	if s.signer == nil {
		return storage.Claims{}, appErrors.Clone(appErrors.ErrFeatureDisabled, "report storage is not configured")
	}
	return s.signer.Parse(token)
}

// Read returns a stored export file.
func (s *ExportService) Read(relPath string) ([]byte, error) {
	return s.storage.Read(relPath)
}

// Delete removes a stored export file.
func (s *ExportService) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes files older than ttl (defaults to configured ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}
