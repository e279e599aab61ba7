package health

import (
	"testing"

	"resume-generator/internal/shared/config"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name        string
		cfg         config.Config
		wantLLM     bool
		wantStorage string
	}{
		{name: "unconfigured", cfg: config.Config{}, wantLLM: false, wantStorage: config.StoreNone},
		{name: "s3 without bucket", cfg: config.Config{ObjectStoreType: config.StoreS3}, wantStorage: config.StoreNone},
		{name: "s3", cfg: config.Config{OpenAIAPIKey: "sk-test", ObjectStoreType: config.StoreS3, S3Bucket: "resumes"}, wantLLM: true, wantStorage: config.StoreS3},
		{name: "local", cfg: config.Config{ObjectStoreType: config.StoreLocal}, wantStorage: config.StoreLocal},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := NewService(tt.cfg).Status()
			if !got.OK {
				t.Fatalf("expected ok")
			}
			if got.LLMConfigured != tt.wantLLM {
				t.Fatalf("expected llm_configured=%v, got %v", tt.wantLLM, got.LLMConfigured)
			}
			if got.Storage != tt.wantStorage {
				t.Fatalf("expected storage %q, got %q", tt.wantStorage, got.Storage)
			}
		})
	}
}
