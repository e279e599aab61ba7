package artifacts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resume-generator/internal/shared/storage/object"
	"resume-generator/internal/shared/util"
	"resume-generator/resume/render"
)

const (
	keyPrefix       = "resumes/"
	timestampLayout = "20060102_150405"
	defaultTimeout  = 10 * time.Second
)

// ErrNotConfigured is returned when no object store backs the artifact store.
var ErrNotConfigured = errors.New("artifact storage is not configured")

// Store persists rendered resumes under resumes/<name>_<timestamp>.html.
type Store struct {
	Objects object.ObjectStore
	Now     func() time.Time
	Timeout time.Duration
}

// New wraps objects; a nil objects leaves the store unconfigured.
func New(objects object.ObjectStore, timeout time.Duration) *Store {
	return &Store{Objects: objects, Timeout: timeout}
}

// Configured reports whether Save can reach a backend.
func (s *Store) Configured() bool {
	return s != nil && s.Objects != nil
}

// Save uploads doc and returns its locator.
func (s *Store) Save(ctx context.Context, doc, candidateName string) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}
	key := s.Key(candidateName)

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := s.Objects.SaveWithKey(ctx, key, render.HTMLContentType, strings.NewReader(doc)); err != nil {
		return "", fmt.Errorf("save artifact %s: %w", key, err)
	}
	locator := s.Objects.URL(key)
	if locator == "" {
		return "", fmt.Errorf("save artifact %s: no locator", key)
	}
	return locator, nil
}

// Key derives the storage key for candidateName at the current time.
func (s *Store) Key(candidateName string) string {
	now := time.Now
	if s != nil && s.Now != nil {
		now = s.Now
	}
	return keyPrefix + util.SanitizeKeySegment(candidateName) + "_" + now().UTC().Format(timestampLayout) + ".html"
}
