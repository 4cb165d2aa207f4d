package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func runCORS(t *testing.T, allowlist []string, method string, origin string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(method, "/api/v1/query", nil)
	if origin != "" {
		c.Request.Header.Set("Origin", origin)
	}
	CORS(allowlist)(c)
	return recorder
}

func TestCORS_AllowAllWhenAllowlistEmpty(t *testing.T) {
	recorder := runCORS(t, nil, http.MethodPost, "https://anywhere.example.com")
	require.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_AllowlistedOrigin(t *testing.T) {
	recorder := runCORS(t, []string{"https://app.example.com"}, http.MethodPost, "https://app.example.com")
	require.Equal(t, "https://app.example.com", recorder.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "Origin", recorder.Header().Get("Vary"))
}

func TestCORS_UnknownOriginGetsNoHeader(t *testing.T) {
	recorder := runCORS(t, []string{"https://app.example.com"}, http.MethodPost, "https://evil.example.com")
	require.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	recorder := runCORS(t, []string{"https://app.example.com"}, http.MethodOptions, "https://app.example.com")
	require.Equal(t, http.StatusNoContent, recorder.Code)
}
