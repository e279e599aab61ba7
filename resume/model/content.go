package model

import "encoding/json"

// GeneratedContent is the normalized generation reply. It is either
// StructuredContent or FreeformContent, never both.
type GeneratedContent interface {
	generatedContent()
}

// StructuredContent is a reply that parsed into resume sections.
type StructuredContent struct {
	Summary        string               `json:"summary,omitempty"`
	Experience     []ExperienceEntry    `json:"experience,omitempty"`
	Education      []EducationEntry     `json:"education,omitempty"`
	Skills         []string             `json:"skills,omitempty"`
	Certifications []CertificationEntry `json:"certifications,omitempty"`

	// Raw is the reply object the sections were parsed from. When set it is
	// what the content serializes to, so empty sections and unknown keys
	// survive the round trip.
	Raw json.RawMessage `json:"-"`
}

// MarshalJSON emits Raw when present and the parsed sections otherwise.
func (c StructuredContent) MarshalJSON() ([]byte, error) {
	if len(c.Raw) > 0 {
		return c.Raw, nil
	}
	type sections StructuredContent
	return json.Marshal(sections(c))
}

// ExperienceEntry is one tailored position.
type ExperienceEntry struct {
	Title        string   `json:"title,omitempty"`
	Company      string   `json:"company,omitempty"`
	Duration     string   `json:"duration,omitempty"`
	Location     string   `json:"location,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// EducationEntry is one tailored education line.
type EducationEntry struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Location    string `json:"location,omitempty"`
}

// CertificationEntry is one tailored certification line.
type CertificationEntry struct {
	Name   string `json:"name,omitempty"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// FreeformContent wraps a reply that could not be parsed, verbatim.
type FreeformContent struct {
	Text string `json:"content"`
}

func (StructuredContent) generatedContent() {}
func (FreeformContent) generatedContent()   {}
