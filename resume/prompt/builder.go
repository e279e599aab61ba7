// Package prompt builds the generation prompt from candidate data and a job description.
package prompt

import (
	"embed"
	"fmt"
	"log"
	"strings"

	"resume-generator/resume/model"
)

// DefaultVersion is the instruction template version used when none is configured.
const DefaultVersion = "v1"

//go:embed templates/*.txt templates/*.json
var templateFS embed.FS

const preamble = "Based on the following candidate data and job description, create a tailored resume that highlights relevant skills and experiences."

// Prompt is the pair of messages sent to the generation service.
type Prompt struct {
	System string
	User   string
}

// Builder renders prompts for a fixed instruction template version.
// It holds no mutable state and is safe for concurrent use.
type Builder struct {
	version      string
	system       string
	instructions string
}

// NewBuilder loads the instruction templates for version. Unknown versions
// fall back to DefaultVersion.
func NewBuilder(version string) (*Builder, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		version = DefaultVersion
	}
	if !knownVersion(version) {
		log.Printf("unknown prompt version %q, defaulting to %s", version, DefaultVersion)
		version = DefaultVersion
	}

	shape, err := readTemplate(version + "_shape.json")
	if err != nil {
		return nil, err
	}
	system, err := readTemplate(version + "_system.txt")
	if err != nil {
		return nil, err
	}
	instructions, err := readTemplate(version + "_instructions.txt")
	if err != nil {
		return nil, err
	}

	replacer := strings.NewReplacer("{{REPLY_SHAPE}}", shape)
	return &Builder{
		version:      version,
		system:       replacer.Replace(system),
		instructions: replacer.Replace(instructions),
	}, nil
}

// Version reports the instruction template version in use.
func (b *Builder) Version() string {
	return b.version
}

// Build renders the prompt. Output is byte-for-byte stable for equal inputs.
func (b *Builder) Build(profile model.CandidateProfile, jd model.JobDescription) Prompt {
	var sb strings.Builder

	sb.WriteString(preamble)
	sb.WriteString("\n\nCANDIDATE DATA:\n")
	fmt.Fprintf(&sb, "Name: %s\n", model.OrPlaceholder(profile.Name))

	sb.WriteString("\nSkills:")
	if len(profile.Skills) > 0 {
		sb.WriteString(" ")
		sb.WriteString(strings.Join(profile.Skills, ", "))
	}
	sb.WriteString("\n")

	sb.WriteString("\nExperience:\n")
	for _, p := range profile.Experience {
		writePosition(&sb, p)
	}

	sb.WriteString("\nEducation:\n")
	for _, c := range profile.Education {
		fmt.Fprintf(&sb, "- %s from %s (%s-%s)\n",
			model.OrPlaceholder(c.Degree),
			model.OrPlaceholder(c.Institution),
			model.OrPlaceholder(string(c.StartYear)),
			model.OrPlaceholder(string(c.EndYear)))
		fmt.Fprintf(&sb, "  Location: %s\n", model.OrPlaceholder(c.Location))
	}

	sb.WriteString("\nCertifications:\n")
	for _, c := range profile.Certifications {
		fmt.Fprintf(&sb, "- %s by %s (Issued: %s)\n",
			model.OrPlaceholder(c.Name),
			model.OrPlaceholder(c.Issuer),
			model.OrPlaceholder(string(c.IssueDate)))
	}

	sb.WriteString("\nJOB DESCRIPTION:\n")
	sb.WriteString(strings.TrimSpace(string(jd)))
	sb.WriteString("\n\n")
	sb.WriteString(b.instructions)

	return Prompt{System: b.system, User: sb.String()}
}

func writePosition(sb *strings.Builder, p model.Position) {
	fmt.Fprintf(sb, "- %s at %s (%s - %s)\n",
		model.OrPlaceholder(p.Title),
		model.OrPlaceholder(p.Company),
		model.OrPlaceholder(string(p.StartDate)),
		model.OrPlaceholder(string(p.EndDate)))
	fmt.Fprintf(sb, "  Location: %s\n", model.OrPlaceholder(p.Location))
	sb.WriteString("  Responsibilities:\n")
	for _, r := range p.Responsibilities {
		fmt.Fprintf(sb, "    • %s\n", r)
	}
}

func knownVersion(version string) bool {
	switch version {
	case "v1":
		return true
	default:
		return false
	}
}

func readTemplate(name string) (string, error) {
	raw, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("read prompt template %s: %w", name, err)
	}
	return strings.TrimRight(string(raw), "\n"), nil
}
