package interfaces

import (
	"context"
	"time"

	"fotostudio/internal/domain/entities"
)

// RenderRequest carries everything the renderer needs to burn the filled
// field values onto the base document.
type RenderRequest struct {
	ContractID      string
	TemplateName    string
	BaseDocumentRef string
	Fields          []entities.ContractField
	FieldValues     map[string]any
	ClientName      string
	SignedAt        time.Time
}

// IDocumentRenderer produces the final signed artifact and returns a
// reference to it (a path or URL, depending on the adapter).
type IDocumentRenderer interface {
	RenderSigned(ctx context.Context, req RenderRequest) (string, error)
}
