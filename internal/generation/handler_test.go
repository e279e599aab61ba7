package generation

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-generator/internal/llm"
	"resume-generator/internal/shared/server/middleware"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestCreateResumeEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		reply      string
		llmErr     error
		wantStatus int
		wantKey    string
	}{
		{name: "success", body: adaRequest, reply: `{"summary":"Pioneer."}`, wantStatus: http.StatusOK, wantKey: "html_resume"},
		{name: "validation", body: `{"job_description":"x"}`, wantStatus: http.StatusBadRequest, wantKey: "error"},
		{name: "malformed", body: `{"candidate_data":`, wantStatus: http.StatusBadRequest, wantKey: "error"},
		{name: "upstream", body: adaRequest, llmErr: &llm.TransportError{Err: errors.New("connection reset")}, wantStatus: http.StatusInternalServerError, wantKey: "error"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPipeline(t)
			p.llm.reply = tt.reply
			p.llm.err = tt.llmErr
			router := newTestRouter(p.svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, resp.Code, resp.Body.String())
			}
			var body map[string]any
			if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if _, ok := body[tt.wantKey]; !ok {
				t.Fatalf("expected %q in body %v", tt.wantKey, body)
			}
		})
	}
}

func TestCreateResumeRejectsOversizedBody(t *testing.T) {
	p := newTestPipeline(t)
	router := newTestRouter(p.svc)

	big := `{"candidate_data":{"name":"Ada"},"job_description":"` + strings.Repeat("x", maxRequestBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", strings.NewReader(big))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", resp.Code)
	}
	if p.llm.calls != 0 {
		t.Fatalf("expected no model call")
	}
}
