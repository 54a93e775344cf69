package api

import (
	"github.com/starford/folio/internal/cardservice"
	"github.com/starford/folio/internal/models"
)

// DocumentRequest is the request body shared by the paginate, recalculate,
// and estimate endpoints. Typography and ImageMeta are optional; when
// absent, the service defaults and the image registry fill in.
type DocumentRequest struct {
	Content    string                      `json:"content"`
	Typography *models.Typography          `json:"typography,omitempty"`
	ImageMeta  map[string]models.ImageMeta `json:"imageMeta,omitempty"`
}

// SplitRequest is the request body for splitting a marked document.
type SplitRequest struct {
	Content string `json:"content"`
}

// PaginateResponse wraps a pagination result (aliased from the domain layer).
type PaginateResponse = cardservice.PaginateResult

// SplitResponse wraps a split result (aliased from the domain layer).
type SplitResponse = cardservice.SplitResult

// RecalculateResponse wraps a recalculation result.
type RecalculateResponse = cardservice.RecalculateResult

// EstimateResponse carries an estimated rendered height in pixels.
type EstimateResponse struct {
	Height float64 `json:"height"`
}

// ImageMetaRequest is the request body for registering image dimensions.
type ImageMetaRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ImageMetaResponse is a single registry entry.
type ImageMetaResponse struct {
	ID     string  `json:"id"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ImageListResponse wraps the full registry listing.
type ImageListResponse struct {
	Images map[string]models.ImageMeta `json:"images"`
	Total  int                         `json:"total"`
}

func validTypography(t models.Typography) bool {
	return t.FontSize > 0 && t.LineHeight > 0 && t.ParagraphSpacing >= 0 && t.LetterSpacing >= 0
}

func imageMetaFromRequest(r ImageMetaRequest) models.ImageMeta {
	return models.ImageMeta{Width: r.Width, Height: r.Height}
}

// ImageUploadResponse is returned after a successful image upload.
type ImageUploadResponse struct {
	ID       string  `json:"id"`
	Token    string  `json:"token"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Filename string  `json:"filename"`
	Size     int64   `json:"size"`
	URL      string  `json:"url"`
}
