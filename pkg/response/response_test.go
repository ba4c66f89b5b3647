package response

import (
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New(ErrorTemplate).Parse(`<p>{{ .Status }} {{ .Message }}</p>`)))
	r.Use(func(c *gin.Context) { c.Set("request_id", "rid-1"); c.Next() })
	r.GET("/err", func(c *gin.Context) {
		Error(c, http.StatusForbidden, "forbidden", nil)
	})
	r.GET("/ok", func(c *gin.Context) {
		Success(c, 0, gin.H{"status": "ok"}, "ok")
	})
	return r
}

func TestError_JSON(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/err", nil)
	req.Header.Set("Accept", "application/json")
	newEngine().ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	var body APIResponse[any]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.False(t, body.Success)
	require.Equal(t, "forbidden", body.Message)
	require.Equal(t, "rid-1", body.RequestID)
}

func TestError_HTMLByDefault(t *testing.T) {
	w := httptest.NewRecorder()
	newEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/err", nil))

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "<p>403 forbidden</p>")
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	newEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body APIResponse[map[string]string]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, "ok", body.Data["status"])
}
