package response

import (
	"time"

	"fotostudio/internal/domain/entities"
)

type ContractFieldResponse struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Label    string  `json:"label"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Page     int     `json:"page"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Required bool    `json:"required"`
}

type TemplateResponse struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	BaseDocumentRef string                  `json:"base_document_ref"`
	Fields          []ContractFieldResponse `json:"fields"`
	CreatedAt       time.Time               `json:"created_at"`
}

func FromTemplate(t entities.ContractTemplate) TemplateResponse {
	return TemplateResponse{
		ID:              t.ID,
		Name:            t.Name,
		BaseDocumentRef: t.BaseDocumentRef,
		Fields:          fromFields(t.Fields),
		CreatedAt:       t.CreatedAt,
	}
}

func FromTemplates(ts []entities.ContractTemplate) []TemplateResponse {
	out := make([]TemplateResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, FromTemplate(t))
	}
	return out
}

func fromFields(fields []entities.ContractField) []ContractFieldResponse {
	out := make([]ContractFieldResponse, 0, len(fields))
	for _, f := range fields {
		out = append(out, ContractFieldResponse{
			ID:       f.ID,
			Type:     string(f.Type),
			Label:    f.Label,
			X:        f.X,
			Y:        f.Y,
			Page:     f.Page,
			Width:    f.Width,
			Height:   f.Height,
			Required: f.Required,
		})
	}
	return out
}
