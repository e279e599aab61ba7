package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"resume-generator/internal/llm"
	"resume-generator/internal/shared/config"
)

type stubLLM struct{ reply string }

func (s stubLLM) Complete(ctx context.Context, req llm.Request) (string, error) {
	return s.reply, nil
}

func testConfig(t *testing.T) config.Config {
	return config.Config{
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:4200"},
		PromptVersion:   "v1",
		ObjectStoreType: config.StoreLocal,
		LocalStoreDir:   t.TempDir(),
		StorageTimeout:  time.Second,
	}
}

func TestBuildWithLocalStoreEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	app, err := BuildWith(cfg, Options{LLM: stubLLM{reply: `{"summary":"Pioneer of computing."}`}})
	if err != nil {
		t.Fatalf("BuildWith: %v", err)
	}
	if app.Store == nil || !app.Artifacts.Configured() {
		t.Fatalf("expected local store to be configured")
	}

	body := `{"candidate_data":{"name":"Ada Lovelace"},"job_description":"Analytical Engine programmer"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", strings.NewReader(body))
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var payload struct {
		HTMLResume string  `json:"html_resume"`
		S3URL      *string `json:"s3_url"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.S3URL == nil || !strings.HasPrefix(*payload.S3URL, "file://") {
		t.Fatalf("expected file locator, got %v", payload.S3URL)
	}
	stored, err := os.ReadFile(strings.TrimPrefix(*payload.S3URL, "file://"))
	if err != nil {
		t.Fatalf("read stored artifact: %v", err)
	}
	if string(stored) != payload.HTMLResume {
		t.Fatalf("stored artifact differs from response")
	}
}

func TestBuildWithoutStorage(t *testing.T) {
	cfg := testConfig(t)
	cfg.ObjectStoreType = config.StoreNone
	app, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if app.Artifacts.Configured() {
		t.Fatalf("expected no artifact storage")
	}

	for _, path := range []string{"/api/v1/health", "/metrics"} {
		resp := httptest.NewRecorder()
		app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, resp.Code)
		}
	}
}

func TestBuildMissingCredentialFailsPerRequest(t *testing.T) {
	cfg := testConfig(t)
	cfg.ObjectStoreType = config.StoreNone
	app, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	body := `{"candidate_data":{"name":"Ada"},"job_description":"Engineer"}`
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/resumes", strings.NewReader(body)))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), llm.ErrMissingCredential.Error()) {
		t.Fatalf("expected credential error message, got %s", resp.Body.String())
	}
}

func TestBuildWithUnloadableS3ConfigDegrades(t *testing.T) {
	empty := filepath.Join(t.TempDir(), "aws-empty")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatalf("write empty aws file: %v", err)
	}
	t.Setenv("AWS_CONFIG_FILE", empty)
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", empty)
	t.Setenv("AWS_PROFILE", "does-not-exist")

	cfg := testConfig(t)
	cfg.ObjectStoreType = config.StoreS3
	cfg.S3Bucket = "resumes-bucket"
	cfg.AWSRegion = "us-east-1"

	app, err := BuildWith(cfg, Options{LLM: stubLLM{reply: `{"summary":"Pioneer of computing."}`}})
	if err != nil {
		t.Fatalf("BuildWith: %v", err)
	}
	if app.Store != nil || app.Artifacts.Configured() {
		t.Fatalf("expected no artifact storage when the s3 config cannot load")
	}

	body := `{"candidate_data":{"name":"Ada Lovelace"},"job_description":"Analytical Engine programmer"}`
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/resumes", strings.NewReader(body)))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := string(payload["s3_url"]); got != "null" {
		t.Fatalf("expected s3_url null, got %s", got)
	}
}
