package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/DatzProject/I.Teaching-Ramlan/pkg/errors"
	"github.com/DatzProject/I.Teaching-Ramlan/pkg/middleware/requestid"
)

func TestErrorEchoesRequestIDAndRecordsServerFailures(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(requestid.Middleware())

	var recorded int
	r.Use(func(c *gin.Context) {
		c.Next()
		recorded = len(c.Errors)
	})
	r.GET("/bad", func(c *gin.Context) { Error(c, appErrors.Clone(appErrors.ErrValidation, "kelas is required")) })
	r.GET("/down", func(c *gin.Context) { Error(c, errors.New("dial tcp: refused")) })

	req := httptest.NewRequest(http.MethodGet, "/bad", nil)
	req.Header.Set(requestid.Header, "trace-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Error *appErrors.Error       `json:"error"`
		Meta  map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "trace-1", body.Meta["request_id"])
	assert.Equal(t, 0, recorded)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/down", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, recorded)
}

func TestFileStripsHeaderBreakingCharacters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	File(c, "Rekap_\"4\"\n.csv", "text/csv", []byte("No\n"))

	assert.Equal(t, `attachment; filename="Rekap_4.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "No\n", w.Body.String())
}
