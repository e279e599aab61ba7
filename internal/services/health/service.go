package health

import (
	"strings"

	"resume-generator/internal/shared/config"
)

// Status is the health payload.
type Status struct {
	OK            bool   `json:"ok"`
	LLMConfigured bool   `json:"llm_configured"`
	Model         string `json:"model"`
	PromptVersion string `json:"prompt_version"`
	Storage       string `json:"storage"`
}

// Service encapsulates health-related checks.
type Service struct {
	cfg config.Config
}

// NewService constructs a new health service.
func NewService(cfg config.Config) *Service {
	return &Service{cfg: cfg}
}

// Status reports readiness without exposing credentials. A missing model key
// does not fail the check; requests report it individually.
func (s *Service) Status() Status {
	storage := s.cfg.ObjectStoreType
	if storage == "" || (storage == config.StoreS3 && strings.TrimSpace(s.cfg.S3Bucket) == "") {
		storage = config.StoreNone
	}
	return Status{
		OK:            true,
		LLMConfigured: strings.TrimSpace(s.cfg.OpenAIAPIKey) != "",
		Model:         s.cfg.LLMModel,
		PromptVersion: s.cfg.PromptVersion,
		Storage:       storage,
	}
}
