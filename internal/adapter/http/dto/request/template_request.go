package request

import "fotostudio/internal/domain/entities"

// ContractFieldRequest mirrors the placement payload produced by the admin
// template editor. Geometry is percent-of-page, page is 1-based.
type ContractFieldRequest struct {
	ID       string  `json:"id" binding:"required"`
	Type     string  `json:"type" binding:"required"`
	Label    string  `json:"label"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Page     int     `json:"page" binding:"required,min=1"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Required bool    `json:"required"`
}

// CreateTemplateRequest is the payload for POST /contracts/templates.
type CreateTemplateRequest struct {
	Name            string                 `json:"name" binding:"required"`
	BaseDocumentRef string                 `json:"base_document_ref" binding:"required"`
	Fields          []ContractFieldRequest `json:"fields"`
}

// UpdateTemplateRequest is the payload for PUT /contracts/templates/{id};
// nil members keep the stored value.
type UpdateTemplateRequest struct {
	Name            *string                 `json:"name"`
	BaseDocumentRef *string                 `json:"base_document_ref"`
	Fields          *[]ContractFieldRequest `json:"fields"`
}

func ToEntityFields(fields []ContractFieldRequest) []entities.ContractField {
	out := make([]entities.ContractField, 0, len(fields))
	for _, f := range fields {
		out = append(out, entities.ContractField{
			ID:       f.ID,
			Type:     entities.FieldType(f.Type),
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
