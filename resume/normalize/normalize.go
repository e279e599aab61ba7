// Package normalize classifies a raw generation reply into the content model.
package normalize

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"resume-generator/resume/model"
)

//go:embed structured.schema.json
var structuredSchema string

// Normalizer turns raw replies into model.GeneratedContent. The compiled
// schema is read-only, so a Normalizer may be shared across invocations.
type Normalizer struct {
	schema *gojsonschema.Schema
}

// New compiles the structured-content schema.
func New() (*Normalizer, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(structuredSchema))
	if err != nil {
		return nil, fmt.Errorf("compile structured content schema: %w", err)
	}
	return &Normalizer{schema: schema}, nil
}

// Normalize never fails: a reply that does not parse as StructuredContent is
// returned as FreeformContent holding the original text unmodified.
func (n *Normalizer) Normalize(raw string) model.GeneratedContent {
	if content, ok := n.parseStructured(raw); ok {
		return content
	}
	return model.FreeformContent{Text: raw}
}

func (n *Normalizer) parseStructured(raw string) (model.StructuredContent, bool) {
	payload := stripCodeFence(raw)
	if payload == "" {
		return model.StructuredContent{}, false
	}

	result, err := n.schema.Validate(gojsonschema.NewStringLoader(payload))
	if err != nil || !result.Valid() {
		return model.StructuredContent{}, false
	}

	var content model.StructuredContent
	if err := json.Unmarshal([]byte(payload), &content); err != nil {
		return model.StructuredContent{}, false
	}
	content.Raw = json.RawMessage(payload)
	return content, true
}

// stripCodeFence unwraps a reply delivered inside a Markdown code block.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	nl := strings.IndexByte(s, '\n')
	if nl < 0 {
		return ""
	}
	s = strings.TrimSpace(s[nl+1:])
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
