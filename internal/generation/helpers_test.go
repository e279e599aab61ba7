package generation

import (
	"context"
	"testing"

	"resume-generator/internal/llm"
	"resume-generator/resume/model"
	"resume-generator/resume/normalize"
	"resume-generator/resume/prompt"
	"resume-generator/resume/render"
)

type fakeLLM struct {
	reply string
	err   error
	calls int
	last  llm.Request
}

func (f *fakeLLM) Complete(ctx context.Context, req llm.Request) (string, error) {
	f.calls++
	f.last = req
	return f.reply, f.err
}

type countingRenderer struct {
	inner DocumentRenderer
	calls int
}

func (r *countingRenderer) Render(content model.GeneratedContent, name string) (string, error) {
	r.calls++
	return r.inner.Render(content, name)
}

type fakeArtifacts struct {
	locator string
	err     error
	calls   int
	doc     string
	name    string
}

func (f *fakeArtifacts) Save(ctx context.Context, doc, candidateName string) (string, error) {
	f.calls++
	f.doc = doc
	f.name = candidateName
	if f.err != nil {
		return "", f.err
	}
	return f.locator, nil
}

type testPipeline struct {
	svc       *Service
	llm       *fakeLLM
	renderer  *countingRenderer
	artifacts *fakeArtifacts
}

func newTestPipeline(t *testing.T) *testPipeline {
	t.Helper()
	prompts, err := prompt.NewBuilder(prompt.DefaultVersion)
	if err != nil {
		t.Fatalf("prompt builder: %v", err)
	}
	normalizer, err := normalize.New()
	if err != nil {
		t.Fatalf("normalizer: %v", err)
	}
	htmlRenderer, err := render.NewHTMLRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	p := &testPipeline{
		llm:       &fakeLLM{},
		renderer:  &countingRenderer{inner: htmlRenderer},
		artifacts: &fakeArtifacts{locator: "https://bucket.s3.amazonaws.com/resumes/x.html"},
	}
	p.svc = &Service{
		Validator:  NewValidator(),
		Prompts:    prompts,
		LLM:        p.llm,
		Normalizer: normalizer,
		Renderer:   p.renderer,
		Artifacts:  p.artifacts,
	}
	return p
}

func (p *testPipeline) externalCalls() int {
	return p.llm.calls + p.renderer.calls + p.artifacts.calls
}
