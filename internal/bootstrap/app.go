package bootstrap

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-generator/internal/artifacts"
	"resume-generator/internal/generation"
	"resume-generator/internal/llm"
	"resume-generator/internal/llm/openai"
	"resume-generator/internal/shared/config"
	"resume-generator/internal/shared/server"
	"resume-generator/internal/shared/storage/object"
	localstore "resume-generator/internal/shared/storage/object/local"
	s3store "resume-generator/internal/shared/storage/object/s3"
	"resume-generator/internal/shared/telemetry"
	"resume-generator/resume/normalize"
	"resume-generator/resume/prompt"
	"resume-generator/resume/render"
)

// App holds shared dependencies.
type App struct {
	Config            config.Config
	Router            *gin.Engine
	Store             object.ObjectStore
	LLM               llm.Client
	Artifacts         *artifacts.Store
	GenerationService *generation.Service
	GenerationHandler *generation.Handler
}

// Options overrides collaborators, mainly for tests and the CLI harness.
type Options struct {
	LLM   llm.Client
	Store object.ObjectStore
}

// Build wires configuration into a ready App.
func Build(cfg config.Config) (*App, error) {
	return BuildWith(cfg, Options{})
}

// BuildWith is Build with collaborator overrides.
func BuildWith(cfg config.Config, opts Options) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	store := opts.Store
	if store == nil {
		store = buildStore(ctx, cfg)
	}

	llmClient := opts.LLM
	if llmClient == nil {
		// A missing key is reported per request, not at startup.
		llmClient = openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
	}

	arts := artifacts.New(store, cfg.StorageTimeout)
	svc, err := buildService(cfg, llmClient, arts)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:            cfg,
		Store:             store,
		LLM:               llmClient,
		Artifacts:         arts,
		GenerationService: svc,
		GenerationHandler: generation.NewHandler(svc),
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:            cfg,
		GenerationHandler: app.GenerationHandler,
	})
	return app, nil
}

func buildService(cfg config.Config, llmClient llm.Client, arts *artifacts.Store) (*generation.Service, error) {
	prompts, err := prompt.NewBuilder(cfg.PromptVersion)
	if err != nil {
		return nil, fmt.Errorf("prompt builder: %w", err)
	}
	normalizer, err := normalize.New()
	if err != nil {
		return nil, fmt.Errorf("normalizer: %w", err)
	}
	renderer, err := render.NewHTMLRenderer()
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}

	return &generation.Service{
		Validator:  generation.NewValidator(),
		Prompts:    prompts,
		LLM:        llmClient,
		Normalizer: normalizer,
		Renderer:   renderer,
		Artifacts:  arts,
	}, nil
}

// buildStore never fails: artifact storage is best-effort, so a store that
// cannot be constructed leaves the App without one.
func buildStore(ctx context.Context, cfg config.Config) object.ObjectStore {
	switch cfg.ObjectStoreType {
	case config.StoreS3:
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			log.Printf("bootstrap: OBJECT_STORE=s3 without S3_BUCKET_NAME; artifacts will not be stored")
			return nil
		}
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.SSEKMSKeyID)
		if err != nil {
			telemetry.Warn("artifact.store_unavailable", map[string]any{
				"bucket": cfg.S3Bucket,
				"error":  err.Error(),
			})
			return nil
		}
		return store
	case config.StoreLocal:
		return localstore.New(cfg.LocalStoreDir)
	default:
		return nil
	}
}
