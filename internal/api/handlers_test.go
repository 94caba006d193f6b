// internal/api/handlers_test.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Corphon/LifePlayModStudio/internal/llm"
	"github.com/Corphon/LifePlayModStudio/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	textErr error
}

func (p *stubProvider) Initialize(config map[string]string) error { return nil }
func (p *stubProvider) GetName() string                           { return "stub" }
func (p *stubProvider) GetSupportedModels() []string              { return []string{"stub-model"} }

func (p *stubProvider) CompleteText(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if p.textErr != nil {
		return nil, p.textErr
	}
	return &llm.CompletionResponse{Text: "WHAT: item"}, nil
}

func (p *stubProvider) GenerateImage(ctx context.Context, req llm.ImageRequest) (*llm.ImageResponse, error) {
	return &llm.ImageResponse{Data: []byte{0x89, 0x50, 0x4E, 0x47}, MIMEType: "image/png"}, nil
}

func newTestRouter(t *testing.T, provider llm.Provider) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	llmService := services.NewLLMServiceWithProvider("stub", provider)
	stats := services.NewStatsService()
	export := services.NewExportService(t.TempDir())
	generator := services.NewGenerationService(llmService, stats)
	session := services.NewSessionService(generator, export)

	handler := NewHandler(session, llmService, stats, export, NewProgressHub())

	r := gin.New()
	api := r.Group("/api")
	{
		api.GET("/record", handler.GetRecord)
		api.PUT("/record", handler.UpdateRecord)
		api.POST("/record/reset", handler.ResetRecord)
		api.GET("/vocab", handler.GetVocab)
		api.POST("/validate", handler.ValidateRecord)
		api.POST("/generate", handler.Generate)
		api.GET("/package/files", handler.GetPackageFiles)
		api.GET("/package/download", handler.DownloadPackage)
		api.GET("/llm/status", handler.GetLLMStatus)
		api.GET("/stats", handler.GetStats)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "application/zip" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func authorizedRecord(t *testing.T, r *gin.Engine) map[string]interface{} {
	t.Helper()

	w, resp := doJSON(t, r, http.MethodGet, "/api/record", nil)
	require.Equal(t, http.StatusOK, w.Code)

	rec := resp["data"].(map[string]interface{})
	rec["author"] = "TestAuthor"
	return rec
}

func TestGetRecordReturnsDefault(t *testing.T) {
	r := newTestRouter(t, &stubProvider{})

	w, resp := doJSON(t, r, http.MethodGet, "/api/record", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "luxury_wine_01", data["id"])
	assert.NotNil(t, data["item"])
}

func TestUpdateRecordRunsInference(t *testing.T) {
	r := newTestRouter(t, &stubProvider{})

	rec := authorizedRecord(t, r)
	rec["id"] = "choc_cake"
	rec["name"] = "Chocolate Cake"

	w, resp := doJSON(t, r, http.MethodPut, "/api/record", rec)

	require.Equal(t, http.StatusOK, w.Code)
	item := resp["data"].(map[string]interface{})["item"].(map[string]interface{})
	assert.Equal(t, true, item["satiate"])
	assert.Equal(t, false, item["intoxicate"])
}

func TestGetVocab(t *testing.T) {
	r := newTestRouter(t, &stubProvider{})

	w, resp := doJSON(t, r, http.MethodGet, "/api/vocab", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Len(t, data["categories"], 5)
	assert.Len(t, data["clothing_slots"], 16)
	assert.Len(t, data["shop_locations"], 7)
}

func TestValidateEndpoint(t *testing.T) {
	r := newTestRouter(t, &stubProvider{})

	rec := authorizedRecord(t, r)
	rec["author"] = ""
	w, _ := doJSON(t, r, http.MethodPut, "/api/record", rec)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := doJSON(t, r, http.MethodPost, "/api/validate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, false, data["valid"])
	assert.Contains(t, data["errors"], "Author name is missing.")
}

func TestGenerateValidationFailure(t *testing.T) {
	r := newTestRouter(t, &stubProvider{})

	rec := authorizedRecord(t, r)
	rec["author"] = ""
	doJSON(t, r, http.MethodPut, "/api/record", rec)

	w, resp := doJSON(t, r, http.MethodPost, "/api/generate", nil)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Contains(t, data["errors"], "Author name is missing.")
}

func TestGenerateSuccessAndDownload(t *testing.T) {
	r := newTestRouter(t, &stubProvider{})

	rec := authorizedRecord(t, r)
	w, _ := doJSON(t, r, http.MethodPut, "/api/record", rec)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := doJSON(t, r, http.MethodPost, "/api/generate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["manifest_text"])
	assert.NotEmpty(t, data["script_text"])
	assert.Contains(t, data["image_preview"], "data:image/png;base64,")

	files := data["files"].([]interface{})
	first := files[0].(map[string]interface{})
	assert.Equal(t, "luxury_wine_01_mod.lpmod", first["name"])

	w, _ = doJSON(t, r, http.MethodGet, "/api/package/download", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "luxury_wine_01_mod_package.zip")
}

func TestGenerateUpstreamFailure(t *testing.T) {
	r := newTestRouter(t, &stubProvider{textErr: assert.AnError})

	rec := authorizedRecord(t, r)
	doJSON(t, r, http.MethodPut, "/api/record", rec)

	w, resp := doJSON(t, r, http.MethodPost, "/api/generate", nil)

	require.Equal(t, http.StatusBadGateway, w.Code)
	errObj := resp["error"].(map[string]interface{})
	assert.Equal(t, "GENERATION_FAILED", errObj["code"])
}

func TestPackageFilesBeforeAnyRun(t *testing.T) {
	r := newTestRouter(t, &stubProvider{})

	w, _ := doJSON(t, r, http.MethodGet, "/api/package/files", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/package/download", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResetRecord(t *testing.T) {
	r := newTestRouter(t, &stubProvider{})

	rec := authorizedRecord(t, r)
	rec["id"] = "other_mod"
	doJSON(t, r, http.MethodPut, "/api/record", rec)

	w, resp := doJSON(t, r, http.MethodPost, "/api/record/reset", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "luxury_wine_01", resp["data"].(map[string]interface{})["id"])
}

func TestLLMStatusEndpoint(t *testing.T) {
	r := newTestRouter(t, &stubProvider{})

	w, resp := doJSON(t, r, http.MethodGet, "/api/llm/status", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["ready"])
	assert.Equal(t, "stub", data["provider"])
}

func TestStatsEndpointCountsRuns(t *testing.T) {
	r := newTestRouter(t, &stubProvider{})

	rec := authorizedRecord(t, r)
	doJSON(t, r, http.MethodPut, "/api/record", rec)
	doJSON(t, r, http.MethodPost, "/api/generate", nil)

	w, resp := doJSON(t, r, http.MethodGet, "/api/stats", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total_runs"])
	assert.Equal(t, float64(1), data["succeeded"])
}
