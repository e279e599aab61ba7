package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Placeholder replaces scalar fields that were not supplied.
const Placeholder = "N/A"

// CandidateProfile is the structured candidate data supplied by the caller.
type CandidateProfile struct {
	Name           string          `json:"name" validate:"notblank"`
	Skills         []string        `json:"skills,omitempty"`
	Experience     []Position      `json:"experience,omitempty"`
	Education      []Credential    `json:"education,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
}

// Position is a single entry of work history.
type Position struct {
	Title            string   `json:"job_title,omitempty"`
	Company          string   `json:"company,omitempty"`
	StartDate        Marker   `json:"start_date,omitempty"`
	EndDate          Marker   `json:"end_date,omitempty"`
	Location         string   `json:"location,omitempty"`
	Responsibilities []string `json:"responsibilities,omitempty"`
}

// UnmarshalJSON accepts "title" when "job_title" is absent.
func (p *Position) UnmarshalJSON(data []byte) error {
	type position Position
	var aux struct {
		position
		AltTitle string `json:"title"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Position(aux.position)
	if strings.TrimSpace(p.Title) == "" {
		p.Title = aux.AltTitle
	}
	return nil
}

// Credential is a single education entry.
type Credential struct {
	Degree      string `json:"degree,omitempty"`
	Institution string `json:"institution,omitempty"`
	StartYear   Marker `json:"start_year,omitempty"`
	EndYear     Marker `json:"end_year,omitempty"`
	Location    string `json:"location,omitempty"`
}

// Certification is a single certification entry.
type Certification struct {
	Name      string `json:"name,omitempty"`
	Issuer    string `json:"issuer,omitempty"`
	IssueDate Marker `json:"issue_date,omitempty"`
}

// Marker is a date or year marker. Callers send both "2019" and 2019.
type Marker string

// UnmarshalJSON decodes a JSON string, number or null.
func (m *Marker) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = Marker(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*m = Marker(strconv.FormatInt(i, 10))
		return nil
	}
	*m = Marker(n.String())
	return nil
}

// JobDescription is the opaque target job text.
type JobDescription string

// OrPlaceholder returns s, or Placeholder when s is blank.
func OrPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}
