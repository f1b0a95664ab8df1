package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/njchilds90/solvecheck/symbolic"
	"github.com/njchilds90/solvecheck/tutor"
	"github.com/njchilds90/solvecheck/verify"
)

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tool", strings.NewReader(body)))
	return rec
}

func newTestMux(t *testing.T, maxBodyBytes int64) (http.Handler, *symbolic.Parser) {
	t.Helper()
	parser, err := symbolic.NewParser(16)
	require.NoError(t, err)
	analyzer := tutor.NewAnalyzer(tutor.WithVerifier(verify.New(verify.WithParser(parser))))
	return newMux(analyzer, parser, maxBodyBytes), parser
}

func TestToolEndpoint(t *testing.T) {
	h, parser := newTestMux(t, 1<<20)

	rec := post(t, h, `{"tool":"verify_derivative","params":{"function":"x^3","var":"x","claimed":"3x^2"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Result struct {
			Verified  bool  `json:"verified"`
			IsCorrect *bool `json:"is_correct"`
		} `json:"result"`
		String string `json:"string"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Result.Verified)
	require.True(t, *resp.Result.IsCorrect)
	require.Equal(t, "3*x**2", resp.String)

	rec = post(t, h, `{"tool":"parse","params":{"text":"y^2 + 1"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"string":"y**2 + 1"`)
	require.Equal(t, 3, parser.Len())
}

func TestToolEndpointRejects(t *testing.T) {
	h, _ := newTestMux(t, 64)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tool", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = post(t, h, `{"tool":"scan","params":{},"extra":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, h, `{"tool":"scan","params":{}} {}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(t, h, `{"tool":"scan","params":{"text":"`+strings.Repeat("1 + 1 = 2 ", 20)+`"}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSchemaAndHealth(t *testing.T) {
	h, parser := newTestMux(t, 1<<20)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/schema", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"check_quadratic"`)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Contains(t, rec.Body.String(), `"status":"ok"`)
	require.Contains(t, rec.Body.String(), `"parse_cache":0`)
	require.Zero(t, parser.Len())
}
