package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/repository"
	"github.com/DatzProject/I.Teaching-Ramlan/internal/service"
	"github.com/DatzProject/I.Teaching-Ramlan/pkg/sheets"
)

// fakeStore mimics the Apps Script endpoint: envelope reads keyed by
// action, a bare student array for the action-less read, and writes that
// are recorded and acknowledged.
type fakeStore struct {
	mu       sync.Mutex
	students string
	reads    map[string]string
	writes   []json.RawMessage
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		students: `[
			{"id":1,"name":"Ani","nisn":"001","kelas":4,"jenisKelamin":"P"},
			{"id":2,"name":"Budi","nisn":"002","kelas":"4","jenisKelamin":"L"},
			{"id":3,"name":"Citra","nisn":"003","kelas":"5","jenisKelamin":"P"}
		]`,
		reads: map[string]string{
			"attendanceHistory": `[{"tanggal":"01/10/2024","nama":"Ani","kelas":"4","nisn":"001","status":"Hadir"}]`,
			"tanggalMerah":      `[{"tanggal":"02/10/2024","tanggalAkhir":"","deskripsi":"Libur"}]`,
			"jadwalMengajar":    `[]`,
			"kelasOptions":      `["4","5"]`,
			"schoolData":        `[{"namaSekolah":"SDN 7","namaKepsek":"Pak Kepsek","namaGuru":"Bu Guru"}]`,
			"monthlyRecap":      `[{"nama":"Ani","kelas":"4","hadir":20,"alpa":0,"izin":1,"sakit":1,"persenHadir":"90.9"}]`,
		},
	}
}

func (f *fakeStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.Method == http.MethodPost {
		body, _ := io.ReadAll(r.Body)
		f.writes = append(f.writes, json.RawMessage(body))
		_, _ = io.WriteString(w, `{"success":true,"data":null}`)
		return
	}
	action := r.URL.Query().Get("action")
	if action == "" {
		_, _ = io.WriteString(w, f.students)
		return
	}
	data, ok := f.reads[action]
	if !ok {
		_, _ = io.WriteString(w, `{"success":false,"message":"unknown action"}`)
		return
	}
	_, _ = io.WriteString(w, `{"success":true,"data":`+data+`}`)
}

func (f *fakeStore) writeTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var types []string
	for _, raw := range f.writes {
		var body struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			types = append(types, "batch")
			continue
		}
		types = append(types, body.Type)
	}
	return types
}

func buildTestRouter(t *testing.T, store *fakeStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(store)
	t.Cleanup(srv.Close)

	client, err := sheets.New(sheets.Config{Endpoint: srv.URL})
	require.NoError(t, err)

	logger := zap.NewNop()
	validate := service.NewValidator()
	studentsRepo := repository.NewStudentRepository(client)
	attendanceRepo := repository.NewAttendanceRepository(client)
	calendarRepo := repository.NewCalendarRepository(client)
	scheduleRepo := repository.NewScheduleRepository(client)
	schoolRepo := repository.NewSchoolRepository(client)
	recapRepo := repository.NewRecapRepository(client)
	drafts := repository.NewMemoryDraftRepository()

	reader := service.NewStoreReader(studentsRepo, attendanceRepo, calendarRepo, scheduleRepo, schoolRepo, nil)
	recaps := service.NewRecapService(reader, recapRepo, nil, logger)
	exports := service.NewExportService(reader, recaps, nil, nil, service.ExportConfig{}, logger)

	r := gin.New()
	Register(r.Group("/api/v1"), Handlers{
		Students: NewStudentHandler(service.NewStudentService(reader, studentsRepo, validate, logger)),
		Attendance: NewAttendanceHandler(
			service.NewDailyAttendanceService(reader, attendanceRepo, nil, validate, logger),
			service.NewMonthlyAttendanceService(reader, attendanceRepo, drafts, 0, logger),
		),
		Drafts:   NewDraftHandler(service.NewDraftService(reader, attendanceRepo, drafts, nil, 0, validate, logger)),
		Recaps:   NewRecapHandler(recaps),
		Calendar: NewCalendarHandler(service.NewCalendarService(reader, calendarRepo, scheduleRepo, validate, logger)),
		School: NewSchoolHandler(
			service.NewSchoolService(reader, schoolRepo, "Batang", validate, logger),
			service.NewMaintenanceService(reader, repository.NewMaintenanceRepository(client, 0), drafts, logger),
		),
		Exports: NewExportHandler(exports),
	})
	return r
}

func performRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
	Meta map[string]interface{} `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestStudentRoutes(t *testing.T) {
	store := newFakeStore()
	router := buildTestRouter(t, store)

	t.Run("list filters by class", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/v1/students?kelas=4", "")
		require.Equal(t, http.StatusOK, w.Code)
		env := decode(t, w)
		var students []map[string]interface{}
		require.NoError(t, json.Unmarshal(env.Data, &students))
		assert.Len(t, students, 2)
		assert.Contains(t, env.Meta, "gender")
	})

	t.Run("classes prepend Semua", func(t *testing.T) {
		w := performRequest(router, http.MethodGet, "/api/v1/students/classes", "")
		require.Equal(t, http.StatusOK, w.Code)
		var classes []string
		require.NoError(t, json.Unmarshal(decode(t, w).Data, &classes))
		assert.Equal(t, []string{"Semua", "4", "5"}, classes)
	})

	t.Run("create rejects unknown sex code", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/v1/students", `{"nisn":"009","nama":"Eka","kelas":"4","jenisKelamin":"X"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", decode(t, w).Error.Code)
	})

	t.Run("create duplicate nisn conflicts", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/v1/students", `{"nisn":"001","nama":"Eka","kelas":"4","jenisKelamin":"P"}`)
		require.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("create sends siswa write", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/api/v1/students", `{"nisn":"009","nama":"Eka","kelas":"4","jenisKelamin":"p"}`)
		require.Equal(t, http.StatusAccepted, w.Code)
		assert.Contains(t, store.writeTypes(), "siswa")
	})
}

func TestDailyAttendanceRoutes(t *testing.T) {
	store := newFakeStore()
	router := buildTestRouter(t, store)

	w := performRequest(router, http.MethodGet, "/api/v1/attendance/daily?tanggal=01/10/2024&kelas=4", "")
	require.Equal(t, http.StatusOK, w.Code)
	var sheet struct {
		LockedCount int `json:"lockedCount"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &sheet))
	assert.Equal(t, 1, sheet.LockedCount)

	w = performRequest(router, http.MethodGet, "/api/v1/attendance/daily?tanggal=2024-10-01", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, http.MethodPost, "/api/v1/attendance/daily", `{"tanggal":"01/10/2024","kelas":"4","statuses":{"2":"Sakit"}}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	var result struct {
		Outcome   string `json:"outcome"`
		Submitted int    `json:"submitted"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &result))
	assert.Equal(t, service.DailyOutcomeSubmitted, result.Outcome)
	assert.Equal(t, 1, result.Submitted)
	assert.Equal(t, []string{"batch"}, store.writeTypes())
}

func TestDraftRoutesLifecycle(t *testing.T) {
	store := newFakeStore()
	router := buildTestRouter(t, store)

	w := performRequest(router, http.MethodPost, "/api/v1/attendance/drafts", `{"kelas":"4","bulan":10,"tahun":2024}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var draft struct {
		ID         string `json:"id"`
		Generation int64  `json:"generation"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &draft))
	require.NotEmpty(t, draft.ID)
	base := "/api/v1/attendance/drafts/" + draft.ID

	patch := `{"action":"set_status","generation":1,"edits":[{"studentId":"2","day":3,"status":"Izin"}]}`
	w = performRequest(router, http.MethodPatch, base, patch)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodGet, base+"/grid?generation=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"matrix"`)

	w = performRequest(router, http.MethodGet, base+"/grid?generation=7", "")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "STALE_GENERATION", decode(t, w).Error.Code)

	w = performRequest(router, http.MethodPatch, base, `{"action":"rewind","generation":1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, http.MethodPost, base+"/commit?generation=1", "")
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, []string{"bulkUpdateAttendance"}, store.writeTypes())

	w = performRequest(router, http.MethodPost, base+"/commit?generation=2", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = performRequest(router, http.MethodDelete, base, "")
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestRecapAndCalendarRoutes(t *testing.T) {
	router := buildTestRouter(t, newFakeStore())

	w := performRequest(router, http.MethodGet, "/api/v1/recaps/monthly?kelas=4&bulan=10", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Ani"`)

	w = performRequest(router, http.MethodGet, "/api/v1/recaps/semester?kelas=4&semester=3", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, http.MethodGet, "/api/v1/calendar/month?kelas=4&bulan=10&tahun=2024", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodGet, "/api/v1/calendar/month?bulan=oct&tahun=2024", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, http.MethodPost, "/api/v1/calendar/special-dates", `{"tanggal":"02/10/2024","deskripsi":"Dobel"}`)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestSchoolExportAndMaintenanceRoutes(t *testing.T) {
	store := newFakeStore()
	router := buildTestRouter(t, store)

	w := performRequest(router, http.MethodGet, "/api/v1/school", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Batang"`)

	w = performRequest(router, http.MethodGet, "/api/v1/exports/monthly?kelas=4&bulan=10&tahun=2024&format=csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Disposition"), `attachment; filename="Daftar_Hadir_4_Oktober_2024_`))

	w = performRequest(router, http.MethodGet, "/api/v1/exports/recap?type=weekly&tahun=2024", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, http.MethodPost, "/api/v1/maintenance/clear", `{"confirm":false}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.writeTypes())

	w = performRequest(router, http.MethodPost, "/api/v1/maintenance/clear", `{"confirm":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"deleteAllDataDataSiswanAbsensi"}, store.writeTypes())
}
