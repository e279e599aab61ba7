package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"resume-generator/internal/artifacts"
	"resume-generator/internal/llm"
	"resume-generator/internal/shared/metrics"
	"resume-generator/internal/shared/telemetry"
	"resume-generator/resume/model"
	"resume-generator/resume/prompt"
)

// SuccessMessage is returned with every generated resume.
const SuccessMessage = "Resume generated successfully"

// PromptBuilder serializes a profile and job description into a prompt.
type PromptBuilder interface {
	Build(profile model.CandidateProfile, jd model.JobDescription) prompt.Prompt
}

// ContentNormalizer classifies a raw reply.
type ContentNormalizer interface {
	Normalize(raw string) model.GeneratedContent
}

// DocumentRenderer renders generated content into a document.
type DocumentRenderer interface {
	Render(content model.GeneratedContent, name string) (string, error)
}

// ArtifactSaver persists a rendered document and returns its locator.
type ArtifactSaver interface {
	Save(ctx context.Context, doc, candidateName string) (string, error)
}

// Service runs the resume generation pipeline. It holds no per-request state
// and is safe for concurrent use.
type Service struct {
	Validator  *Validator
	Prompts    PromptBuilder
	LLM        llm.Client
	Normalizer ContentNormalizer
	Renderer   DocumentRenderer
	Artifacts  ArtifactSaver
}

// Result is the success body.
type Result struct {
	Message       string                 `json:"message"`
	ResumeContent model.GeneratedContent `json:"resume_content"`
	HTMLResume    string                 `json:"html_resume"`
	S3URL         *string                `json:"s3_url"`
}

// ErrorBody is the failure body.
type ErrorBody struct {
	Error string `json:"error"`
}

// Response is the envelope returned to direct invokers.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Run validates req and executes the pipeline.
func (s *Service) Run(ctx context.Context, req Request) (Result, error) {
	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	start := time.Now()

	input, err := s.validator().Validate(req)
	if err != nil {
		telemetry.Warn("generation.rejected", map[string]any{
			"request_id": requestID,
			"error":      err,
		})
		return Result{}, err
	}

	metrics.IncGenerationStarted()
	telemetry.Info("generation.start", map[string]any{
		"request_id":          requestID,
		"experience_count":    len(input.Profile.Experience),
		"education_count":     len(input.Profile.Education),
		"job_description_len": len(input.JobDescription),
	})

	result, err := s.generate(ctx, requestID, input)
	durationMs := float64(time.Since(start).Milliseconds())
	metrics.ObserveGenerationDurationMs(durationMs)
	if err != nil {
		metrics.IncGenerationFailed()
		telemetry.Error("generation.failed", map[string]any{
			"request_id":  requestID,
			"kind":        KindOf(err).String(),
			"duration_ms": durationMs,
			"error":       err,
		})
		return Result{}, err
	}

	metrics.IncGenerationCompleted()
	_, freeform := result.ResumeContent.(model.FreeformContent)
	telemetry.Info("generation.complete", map[string]any{
		"request_id":  requestID,
		"duration_ms": durationMs,
		"freeform":    freeform,
		"stored":      result.S3URL != nil,
	})
	return result, nil
}

func (s *Service) generate(ctx context.Context, requestID string, input Input) (Result, error) {
	p := s.Prompts.Build(input.Profile, input.JobDescription)

	raw, err := s.LLM.Complete(ctx, llm.Request{System: p.System, User: p.User})
	if err != nil {
		return Result{}, err
	}

	content := s.Normalizer.Normalize(raw)

	doc, err := s.Renderer.Render(content, input.Profile.Name)
	if err != nil {
		return Result{}, fmt.Errorf("render resume: %w", err)
	}

	return Result{
		Message:       SuccessMessage,
		ResumeContent: content,
		HTMLResume:    doc,
		S3URL:         s.store(ctx, requestID, doc, input.Profile.Name),
	}, nil
}

// store persists doc and discards any failure; a nil locator is a valid outcome.
func (s *Service) store(ctx context.Context, requestID, doc, name string) *string {
	if s.Artifacts == nil {
		return nil
	}
	locator, err := s.Artifacts.Save(ctx, doc, name)
	if err != nil {
		if !errors.Is(err, artifacts.ErrNotConfigured) {
			metrics.IncStorageFailed()
		}
		telemetry.Warn("artifact.save_failed", map[string]any{
			"request_id": requestID,
			"error":      err,
		})
		return nil
	}
	return &locator
}

func (s *Service) validator() *Validator {
	if s.Validator == nil {
		return NewValidator()
	}
	return s.Validator
}

// Handle decodes payload, runs the pipeline and builds the response envelope.
func (s *Service) Handle(ctx context.Context, payload []byte) Response {
	req, err := DecodeRequest(payload)
	if err == nil {
		var result Result
		result, err = s.Run(ctx, req)
		if err == nil {
			return envelope(StatusFor(KindNone), result)
		}
	}
	return envelope(StatusFor(KindOf(err)), ErrorBody{Error: err.Error()})
}

func envelope(status int, body any) Response {
	data, err := json.Marshal(body)
	if err != nil {
		status = StatusFor(KindInternal)
		data, _ = json.Marshal(ErrorBody{Error: "encode response: " + err.Error()})
	}
	return Response{StatusCode: status, Body: string(data)}
}

type requestIDKey struct{}

// WithRequestID attaches a request id used in pipeline logs.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id set by WithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
