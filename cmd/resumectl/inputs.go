package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed sample_candidate.json
var sampleCandidate []byte

//go:embed sample_job.txt
var sampleJob string

// loadInputs returns the candidate JSON and job description, falling back to
// the embedded samples when a path is empty.
func loadInputs(w io.Writer, candidatePath, jobPath string) (json.RawMessage, string, error) {
	candidate := json.RawMessage(sampleCandidate)
	if strings.TrimSpace(candidatePath) != "" {
		raw, err := os.ReadFile(candidatePath)
		if err != nil {
			return nil, "", fmt.Errorf("read candidate data: %w", err)
		}
		if !json.Valid(raw) {
			return nil, "", fmt.Errorf("candidate data in %s is not valid JSON", candidatePath)
		}
		candidate = raw
		fmt.Fprintf(w, "Loaded candidate data from: %s\n", candidatePath)
	} else {
		fmt.Fprintln(w, "Using sample candidate data")
	}

	job := sampleJob
	if strings.TrimSpace(jobPath) != "" {
		raw, err := os.ReadFile(jobPath)
		if err != nil {
			return nil, "", fmt.Errorf("read job description: %w", err)
		}
		job = string(raw)
		fmt.Fprintf(w, "Loaded job description from: %s\n", jobPath)
	} else {
		fmt.Fprintln(w, "Using sample job description")
	}
	return candidate, job, nil
}

func preview(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
