// Package cardservice coordinates the pagination engine with the image
// registry and the service-wide layout defaults.
package cardservice

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/starford/folio/internal/cards"
	"github.com/starford/folio/internal/checksum"
	"github.com/starford/folio/internal/imagemeta"
	"github.com/starford/folio/internal/layout"
	"github.com/starford/folio/internal/markup"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/pagination"
)

var imageIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Defaults bundles the layout settings a request falls back to when it does
// not supply its own.
type Defaults struct {
	Metrics    layout.Metrics
	Typography models.Typography
	Tuning     pagination.Tuning
}

// Service runs pagination requests. The engine itself is pure; the service
// adds the mutable bits around it: registry lookups and hot-reloadable
// defaults.
type Service struct {
	mu       sync.RWMutex
	defaults Defaults
	registry imagemeta.Registry
}

// New creates a Service. registry may be nil, in which case only
// request-supplied image metadata is used.
func New(registry imagemeta.Registry, defaults Defaults) *Service {
	return &Service{registry: registry, defaults: defaults}
}

// Defaults returns the current layout defaults.
func (s *Service) Defaults() Defaults {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaults
}

// SetDefaults atomically swaps the layout defaults. Used by config
// hot-reload; in-flight requests keep the snapshot they started with.
func (s *Service) SetDefaults(d Defaults) {
	s.mu.Lock()
	s.defaults = d
	s.mu.Unlock()
}

// engineFor builds a pagination engine for one request: request typography
// overrides the default, and registry dimensions fill in for any [IMG:id]
// in content absent from the request map.
func (s *Service) engineFor(content string, typ *models.Typography, images map[string]models.ImageMeta) *pagination.Engine {
	d := s.Defaults()
	t := d.Typography
	if typ != nil {
		t = *typ
	}

	merged := make(map[string]models.ImageMeta)
	for _, id := range markup.ImageIDs(content) {
		if meta, ok := images[id]; ok {
			merged[id] = meta
			continue
		}
		if s.registry != nil {
			if meta, err := s.registry.Get(id); err == nil {
				merged[id] = meta
			}
		}
	}

	return pagination.New(layout.NewEstimator(d.Metrics, t, merged), d.Tuning)
}

// PaginateResult is the outcome of a full pagination pass.
type PaginateResult struct {
	Content  string `json:"content"`
	Breaks   []int  `json:"breaks"`
	Checksum string `json:"checksum"`
}

// Paginate computes optimal page breaks for content and returns the
// document with markers inserted. Breaks are rune indices into the returned
// normalized content before insertion.
func (s *Service) Paginate(_ context.Context, content string, typ *models.Typography, images map[string]models.ImageMeta) PaginateResult {
	eng := s.engineFor(content, typ, images)
	clean := pagination.NormalizeDocument(content)
	breaks := eng.CalculateOptimalPageBreaks(clean)
	out := pagination.InsertPageBreaks(clean, breaks)
	return PaginateResult{
		Content:  out,
		Breaks:   breaks,
		Checksum: checksum.Sum([]byte(out)),
	}
}

// SplitResult is the outcome of splitting a marked document into cards.
type SplitResult struct {
	Cards    []models.Card `json:"cards"`
	Checksum string        `json:"checksum"`
}

// SplitCards splits a document that already contains explicit markers.
func (s *Service) SplitCards(_ context.Context, content string) SplitResult {
	return SplitResult{
		Cards:    cards.Split(content),
		Checksum: checksum.Sum([]byte(content)),
	}
}

// RecalculateResult is the outcome of re-flowing existing breaks.
type RecalculateResult struct {
	Content  string        `json:"content"`
	Breaks   []int         `json:"breaks"`
	Cards    []models.Card `json:"cards"`
	Checksum string        `json:"checksum"`
}

// Recalculate removes existing markers, recomputes breaks at the given
// typography, reinserts markers, and re-splits into cards. Used whenever
// typography changes.
func (s *Service) Recalculate(_ context.Context, content string, typ *models.Typography, images map[string]models.ImageMeta) RecalculateResult {
	eng := s.engineFor(content, typ, images)
	clean := pagination.NormalizeDocument(content)
	breaks := eng.CalculateOptimalPageBreaks(clean)
	out := pagination.InsertPageBreaks(clean, breaks)
	return RecalculateResult{
		Content:  out,
		Breaks:   breaks,
		Cards:    cards.Split(out),
		Checksum: checksum.Sum([]byte(out)),
	}
}

// Estimate returns the estimated rendered height of content, markers
// stripped.
func (s *Service) Estimate(_ context.Context, content string, typ *models.Typography, images map[string]models.ImageMeta) float64 {
	eng := s.engineFor(content, typ, images)
	return eng.Estimator().EstimateText(pagination.NormalizeDocument(content))
}

// RegisterImage stores dimensions for an image id.
func (s *Service) RegisterImage(_ context.Context, id string, meta models.ImageMeta) error {
	if !imageIDRe.MatchString(id) {
		return fmt.Errorf("cardservice: invalid image id: %q", id)
	}
	if meta.Width <= 0 || meta.Height <= 0 {
		return fmt.Errorf("cardservice: image %s: dimensions must be positive", id)
	}
	if s.registry == nil {
		return fmt.Errorf("cardservice: no image registry configured")
	}
	return s.registry.Put(id, meta)
}

// GetImage returns the registered dimensions for an image id.
func (s *Service) GetImage(_ context.Context, id string) (models.ImageMeta, error) {
	if s.registry == nil {
		return models.ImageMeta{}, fmt.Errorf("cardservice: no image registry configured")
	}
	return s.registry.Get(id)
}

// DeleteImage removes an image id from the registry.
func (s *Service) DeleteImage(_ context.Context, id string) error {
	if s.registry == nil {
		return fmt.Errorf("cardservice: no image registry configured")
	}
	return s.registry.Delete(id)
}

// ListImages returns every registered image.
func (s *Service) ListImages(_ context.Context) (map[string]models.ImageMeta, error) {
	if s.registry == nil {
		return map[string]models.ImageMeta{}, nil
	}
	return s.registry.List()
}
