package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DatzProject/I.Teaching-Ramlan/internal/models"
	appErrors "github.com/DatzProject/I.Teaching-Ramlan/pkg/errors"
	"github.com/DatzProject/I.Teaching-Ramlan/pkg/sheets"
)

type fakeStore struct {
	mu        sync.Mutex
	reads     map[string]string
	postReply string
	queries   []url.Values
	posts     []map[string]interface{}
	rawPosts  [][]byte
}

func newFakeStore(t *testing.T, reads map[string]string) (*fakeStore, *sheets.Client) {
	fs := &fakeStore{reads: reads}
	srv := httptest.NewServer(http.HandlerFunc(fs.serve))
	t.Cleanup(srv.Close)
	client, err := sheets.New(sheets.Config{Endpoint: srv.URL + "/exec"})
	require.NoError(t, err)
	return fs, client
}

func (f *fakeStore) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	if r.Method == http.MethodPost {
		body, _ := io.ReadAll(r.Body)
		f.rawPosts = append(f.rawPosts, body)
		var m map[string]interface{}
		if json.Unmarshal(body, &m) == nil {
			f.posts = append(f.posts, m)
		}
		_, _ = io.WriteString(w, f.postReply)
		return
	}
	q := r.URL.Query()
	f.queries = append(f.queries, q)
	body, ok := f.reads[q.Get("action")]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	_, _ = io.WriteString(w, body)
}

func mustDate(t *testing.T, year int, month time.Month, day int) models.Date {
	d, ok := models.NewDate(year, month, day)
	require.True(t, ok)
	return d
}

func (f *fakeStore) lastPost(t *testing.T) map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.posts)
	return f.posts[len(f.posts)-1]
}

func TestStudentRepositoryList(t *testing.T) {
	_, client := newFakeStore(t, map[string]string{
		"": `[{"id":1,"name":" Andi ","nisn":111,"kelas":"3","jenisKelamin":"L"},{"id":2,"name":"","nisn":null},{"id":3,"name":"Budi","nisn":"222","kelas":3,"jenisKelamin":null}]`,
	})
	repo := NewStudentRepository(client)

	students, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, models.Text("Andi"), students[0].Name)
	assert.Equal(t, models.Text("111"), students[0].NISN)
	assert.Equal(t, models.Text("3"), students[1].Class)
	assert.Equal(t, "N/A", students[1].Sex.OrNA())
}

func TestStudentRepositoryWrites(t *testing.T) {
	fs, client := newFakeStore(t, nil)
	repo := NewStudentRepository(client)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, models.StudentInput{NISN: "111", Name: "Andi", Class: "3", Sex: "L"}))
	post := fs.lastPost(t)
	assert.Equal(t, "siswa", post["type"])
	assert.Equal(t, "Andi", post["nama"])
	assert.Equal(t, "L", post["jenisKelamin"])

	require.NoError(t, repo.BulkCreate(ctx, []models.StudentInput{{NISN: "1", Name: "A", Class: "1", Sex: "P"}}))
	post = fs.lastPost(t)
	assert.Equal(t, "bulk_siswa", post["type"])
	assert.Len(t, post["students"], 1)

	require.NoError(t, repo.Update(ctx, "111", models.StudentInput{NISN: "112", Name: "Andi", Class: "4", Sex: "L"}))
	post = fs.lastPost(t)
	assert.Equal(t, "edit", post["type"])
	assert.Equal(t, "111", post["nisnLama"])
	assert.Equal(t, "112", post["nisnBaru"])

	require.NoError(t, repo.Delete(ctx, "112"))
	post = fs.lastPost(t)
	assert.Equal(t, "delete", post["type"])
	assert.Equal(t, "112", post["nisn"])
}

func TestAttendanceRepositoryHistory(t *testing.T) {
	_, client := newFakeStore(t, map[string]string{
		"attendanceHistory": `{"success":true,"data":[{"tanggal":"10/01/2025","nama":"Andi","kelas":3,"nisn":111,"status":"Sakit"}]}`,
	})
	repo := NewAttendanceRepository(client)

	rows, err := repo.History(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.Text("10/01/2025"), rows[0].Date)
	assert.Equal(t, models.Text("3"), rows[0].Class)
}

func TestAttendanceRepositoryHistoryRejected(t *testing.T) {
	_, client := newFakeStore(t, map[string]string{
		"attendanceHistory": `{"success":false,"message":"sheet missing"}`,
	})
	repo := NewAttendanceRepository(client)

	_, err := repo.History(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrStoreUnavailable))
	assert.Contains(t, err.Error(), "sheet missing")
}

func TestAttendanceRepositoryWrites(t *testing.T) {
	fs, client := newFakeStore(t, nil)
	repo := NewAttendanceRepository(client)
	ctx := context.Background()

	batch := []models.AttendanceSubmission{{Date: "10/01/2025", Name: "Andi", Class: "3", NISN: "111", Status: models.StatusSick}}
	require.NoError(t, repo.SubmitBatch(ctx, batch))
	fs.mu.Lock()
	var sent []models.AttendanceSubmission
	require.NoError(t, json.Unmarshal(fs.rawPosts[0], &sent))
	fs.mu.Unlock()
	assert.Equal(t, batch, sent)

	require.NoError(t, repo.BulkUpdate(ctx, []models.AttendanceUpdate{{Date: "10/01/2025", NISN: "111", Status: models.StatusCleared}}))
	post := fs.lastPost(t)
	assert.Equal(t, "bulkUpdateAttendance", post["type"])
	updates := post["updates"].([]interface{})
	require.Len(t, updates, 1)
	assert.Equal(t, "", updates[0].(map[string]interface{})["status"])

	require.NoError(t, repo.DeleteStudentMonth(ctx, "Andi", time.January, 2025))
	post = fs.lastPost(t)
	assert.Equal(t, "deleteStudentAttendanceByName", post["type"])
	assert.Equal(t, float64(1), post["bulan"])
	assert.Equal(t, float64(2025), post["tahun"])

	require.NoError(t, repo.DeleteByFilter(ctx, models.AllClasses, time.February, 2025))
	post = fs.lastPost(t)
	assert.Equal(t, "deleteAttendanceByFilter", post["type"])
	assert.Equal(t, "", post["kelas"])
}

func TestCalendarRepository(t *testing.T) {
	fs, client := newFakeStore(t, map[string]string{
		"tanggalMerah": `{"success":true,"data":[{"tanggal":"17/08/2025","tanggalAkhir":"","deskripsi":"HUT RI"}]}`,
	})
	repo := NewCalendarRepository(client)
	ctx := context.Background()

	rows, err := repo.ListSpecialDates(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.Text("HUT RI"), rows[0].Description)

	end := mustDate(t, 2025, time.December, 31)
	sd := models.SpecialDate{Start: mustDate(t, 2025, time.July, 1), End: &end, Description: "Libur Semester"}
	require.NoError(t, repo.CreateSpecialDate(ctx, sd))
	post := fs.lastPost(t)
	assert.Equal(t, "tanggalMerah", post["type"])
	assert.Equal(t, "01/07/2025", post["tanggal"])
	assert.Equal(t, "31/12/2025", post["tanggalAkhir"])

	single := models.SpecialDate{Start: mustDate(t, 2025, time.August, 18), Description: "Cuti"}
	require.NoError(t, repo.UpdateSpecialDate(ctx, mustDate(t, 2025, time.August, 17), single))
	post = fs.lastPost(t)
	assert.Equal(t, "editTanggalMerah", post["type"])
	assert.Equal(t, "17/08/2025", post["tanggalLama"])
	assert.Equal(t, "18/08/2025", post["tanggalBaru"])
	assert.Equal(t, "", post["tanggalAkhir"])

	require.NoError(t, repo.DeleteSpecialDate(ctx, mustDate(t, 2025, time.August, 18)))
	assert.Equal(t, "deleteTanggalMerah", fs.lastPost(t)["type"])
}

func TestScheduleRepository(t *testing.T) {
	fs, client := newFakeStore(t, map[string]string{
		"jadwalMengajar": `{"success":true,"data":[{"kelas":"3","hari":"Senin, Rabu"}]}`,
		"kelasOptions":   `{"success":true,"data":["1","2",3,""]}`,
	})
	repo := NewScheduleRepository(client)
	ctx := context.Background()

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.Text("Senin, Rabu"), rows[0].Days)

	classes, err := repo.ClassOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, classes)

	require.NoError(t, repo.Create(ctx, models.TeachingSchedule{Class: "3", Days: []string{"Senin", "Kamis"}}))
	post := fs.lastPost(t)
	assert.Equal(t, "jadwalMengajar", post["type"])
	assert.Equal(t, "Senin, Kamis", post["hari"])

	require.NoError(t, repo.Update(ctx, "3", models.TeachingSchedule{Class: "4", Days: []string{"Jumat"}}))
	post = fs.lastPost(t)
	assert.Equal(t, "editJadwalMengajar", post["type"])
	assert.Equal(t, "3", post["kelasLama"])
	assert.Equal(t, "4", post["kelasBaru"])

	require.NoError(t, repo.Delete(ctx, "4"))
	assert.Equal(t, "deleteJadwalMengajar", fs.lastPost(t)["type"])
}

func TestSchoolRepository(t *testing.T) {
	fs, client := newFakeStore(t, map[string]string{
		"schoolData": `{"success":true,"data":[{"namaKepsek":"Bu Kepsek","nipKepsek":1987,"namaKota":"Medan","statusGuru":""}]}`,
	})
	repo := NewSchoolRepository(client)
	ctx := context.Background()

	profile, err := repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, models.Text("1987"), profile.PrincipalNIP)
	assert.True(t, profile.IsHomeroomTeacher())

	require.NoError(t, repo.Save(ctx, models.SchoolProfile{SchoolName: "SD 1", TeacherStatus: "Guru Mapel"}))
	post := fs.lastPost(t)
	assert.Equal(t, "schoolData", post["type"])
	assert.Equal(t, "SD 1", post["namaSekolah"])
	assert.Equal(t, "Guru Mapel", post["statusGuru"])
}

func TestSchoolRepositoryEmpty(t *testing.T) {
	_, client := newFakeStore(t, map[string]string{"schoolData": `{"success":true,"data":[]}`})
	profile, err := NewSchoolRepository(client).Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestRecapRepository(t *testing.T) {
	fs, client := newFakeStore(t, map[string]string{
		"monthlyRecap":  `{"success":true,"data":[{"nama":"Andi","kelas":"3","hadir":"18","alpa":1,"izin":0,"sakit":"","persenHadir":"94.74%"}]}`,
		"semesterRecap": `{"success":true,"data":[]}`,
		"graphData":     `{"success":true,"data":{"Juli":{"Hadir":10,"Alpha":1,"Izin":0,"Sakit":2}}}`,
	})
	repo := NewRecapRepository(client)
	ctx := context.Background()

	rows, err := repo.Monthly(ctx, models.AllClasses, time.March)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 18, rows[0].Hadir.Int())
	assert.Equal(t, 0, rows[0].Sakit.Int())
	assert.InDelta(t, 94.74, float64(rows[0].PercentPresent), 0.001)

	_, err = repo.Semester(ctx, "3", models.SemesterOdd)
	require.NoError(t, err)

	graph, err := repo.Graph(ctx, "3", models.SemesterOdd)
	require.NoError(t, err)
	assert.Equal(t, 2, graph["Juli"].Sakit.Int())

	fs.mu.Lock()
	defer fs.mu.Unlock()
	require.Len(t, fs.queries, 3)
	assert.Equal(t, "maret", fs.queries[0].Get("bulan"))
	assert.Equal(t, "", fs.queries[0].Get("kelas"))
	assert.Equal(t, "1", fs.queries[1].Get("semester"))
	assert.Equal(t, "3", fs.queries[2].Get("kelas"))
}

func TestMaintenanceRepositoryClearAll(t *testing.T) {
	fs, client := newFakeStore(t, nil)
	fs.postReply = `{"success":true,"message":"cleared"}`
	repo := NewMaintenanceRepository(client, 0)

	require.NoError(t, repo.ClearAll(context.Background()))
	post := fs.lastPost(t)
	assert.Equal(t, "deleteAllDataDataSiswanAbsensi", post["type"])
	assert.Equal(t, "both", post["sheet"])
}

func TestMaintenanceRepositoryClearAllRejected(t *testing.T) {
	fs, client := newFakeStore(t, nil)
	fs.postReply = `{"success":false,"message":"locked"}`
	repo := NewMaintenanceRepository(client, time.Second)

	err := repo.ClearAll(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrStoreUnavailable))
}
