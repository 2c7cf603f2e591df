package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
	appErrors "github.com/DatzProject/I.Teaching-Ramlan/pkg/errors"
)

type recapReader interface {
	Monthly(ctx context.Context, class string, month time.Month) ([]models.RecapRow, error)
	Semester(ctx context.Context, class string, semester models.Semester) ([]models.RecapRow, error)
	Graph(ctx context.Context, class string, semester models.Semester) (models.GraphData, error)
}

// RecapMismatch is one row where the store's recap and the local
// recomputation disagree.
type RecapMismatch struct {
	Name  string           `json:"nama"`
	Class string           `json:"kelas"`
	Store *models.RecapRow `json:"store,omitempty"`
	Local *models.RecapRow `json:"local,omitempty"`
}

// RecapService produces monthly and semester recaps.
type RecapService struct {
	reader *StoreReader
	repo   recapReader
	cache  *CacheService
	logger *zap.Logger
}

// NewRecapService constructs the recap service. cache may be nil.
func NewRecapService(reader *StoreReader, repo recapReader, cache *CacheService, logger *zap.Logger) *RecapService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecapService{reader: reader, repo: repo, cache: cache, logger: logger}
}

func recapKey(parts ...interface{}) string {
	b := strings.Builder{}
	b.WriteString(cacheKeyRecaps)
	for _, p := range parts {
		b.WriteString(":")
		b.WriteString(fmt.Sprint(p))
	}
	return b.String()
}

// Monthly returns the store's pre-aggregated recap of month for class.
func (s *RecapService) Monthly(ctx context.Context, class string, month time.Month) (*models.Recap, error) {
	if month < time.January || month > time.December {
		return nil, appErrors.Clone(appErrors.ErrValidation, "bulan must be between 1 and 12")
	}
	class = strings.TrimSpace(class)
	var rows []models.RecapRow
	err := s.cache.Remember(ctx, recapKey("monthly", class, int(month)), &rows, func(ctx context.Context) error {
		var err error
		rows, err = s.repo.Monthly(ctx, class, month)
		return err
	})
	if err != nil {
		return nil, storeError(err, "failed to load monthly recap")
	}
	return buildRecap(class, models.MonthName(month), models.RecapSourceStore, FilterRecapRows(rows, class)), nil
}

// LocalMonthly recomputes the monthly recap from attendance history.
func (s *RecapService) LocalMonthly(ctx context.Context, class string, month time.Month, year int) (*models.Recap, error) {
	if err := validatePeriod(Period{Month: month, Year: year}); err != nil {
		return nil, err
	}
	class = strings.TrimSpace(class)
	students, err := s.reader.Students(ctx)
	if err != nil {
		return nil, err
	}
	history, err := s.reader.History(ctx)
	if err != nil {
		return nil, err
	}
	rows := LocalRecap(students, class, []time.Month{month}, func(time.Month) int { return year }, history)
	period := fmt.Sprintf("%s %d", models.MonthName(month), year)
	return buildRecap(class, period, models.RecapSourceLocal, rows), nil
}

// Semester returns the store's pre-aggregated semester recap.
func (s *RecapService) Semester(ctx context.Context, class string, semester models.Semester) (*models.Recap, error) {
	if !semester.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "semester must be 1 or 2")
	}
	class = strings.TrimSpace(class)
	var rows []models.RecapRow
	err := s.cache.Remember(ctx, recapKey("semester", class, int(semester)), &rows, func(ctx context.Context) error {
		var err error
		rows, err = s.repo.Semester(ctx, class, semester)
		return err
	})
	if err != nil {
		return nil, storeError(err, "failed to load semester recap")
	}
	return buildRecap(class, fmt.Sprintf("Semester %d", semester), models.RecapSourceStore, FilterRecapRows(rows, class)), nil
}

// Chart returns the six-month status chart of a semester.
func (s *RecapService) Chart(ctx context.Context, class string, semester models.Semester) (*models.SemesterChart, error) {
	if !semester.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "semester must be 1 or 2")
	}
	class = strings.TrimSpace(class)
	var data models.GraphData
	err := s.cache.Remember(ctx, recapKey("chart", class, int(semester)), &data, func(ctx context.Context) error {
		var err error
		data, err = s.repo.Graph(ctx, class, semester)
		return err
	})
	if err != nil {
		return nil, storeError(err, "failed to load chart data")
	}
	chart := BuildSemesterChart(class, semester, data)
	return &chart, nil
}

// Compare loads both monthly recaps and returns the rows whose counts
// differ, keyed by name and class.
func (s *RecapService) Compare(ctx context.Context, class string, month time.Month, year int) ([]RecapMismatch, error) {
	store, err := s.Monthly(ctx, class, month)
	if err != nil {
		return nil, err
	}
	local, err := s.LocalMonthly(ctx, class, month, year)
	if err != nil {
		return nil, err
	}
	return CompareRecapRows(store.Rows, local.Rows), nil
}

// CompareRecapRows matches rows by normalized name and class and reports
// rows missing from either side or with different counts. Store rows come
// first in their own order, then local-only rows.
func CompareRecapRows(store, local []models.RecapRow) []RecapMismatch {
	key := func(r models.RecapRow) string {
		return NormalizeName(r.Name.String()) + "|" + r.Class.String()
	}
	localByKey := make(map[string]models.RecapRow, len(local))
	for _, r := range local {
		localByKey[key(r)] = r
	}

	var out []RecapMismatch
	seen := make(map[string]bool, len(store))
	for i := range store {
		r := store[i]
		k := key(r)
		seen[k] = true
		l, ok := localByKey[k]
		if ok && sameCounts(r, l) {
			continue
		}
		m := RecapMismatch{Name: r.Name.String(), Class: r.Class.String(), Store: &r}
		if ok {
			m.Local = &l
		}
		out = append(out, m)
	}
	for i := range local {
		l := local[i]
		if seen[key(l)] {
			continue
		}
		out = append(out, RecapMismatch{Name: l.Name.String(), Class: l.Class.String(), Local: &l})
	}
	return out
}

func sameCounts(a, b models.RecapRow) bool {
	return a.Hadir == b.Hadir && a.Alpa == b.Alpa && a.Izin == b.Izin && a.Sakit == b.Sakit
}

func buildRecap(class, period, source string, rows []models.RecapRow) *models.Recap {
	if class == "" {
		class = models.AllClasses
	}
	if rows == nil {
		rows = []models.RecapRow{}
	}
	return &models.Recap{
		Class:   class,
		Period:  period,
		Source:  source,
		Rows:    rows,
		Summary: Aggregate(rows),
	}
}
