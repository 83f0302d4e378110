package entities

import "time"

// FieldType enumerates the kinds of fields an operator can place on a
// contract template.

type FieldType string

const (
	FieldTypeText      FieldType = "text"
	FieldTypeCheckbox  FieldType = "checkbox"
	FieldTypeDate      FieldType = "date"
	FieldTypeSignature FieldType = "signature"
)

// KnownFieldType reports whether t is one of the supported field types.
func KnownFieldType(t FieldType) bool {
	switch t {
	case FieldTypeText, FieldTypeCheckbox, FieldTypeDate, FieldTypeSignature:
		return true
	}
	return false
}

// ContractField is a placeable field on a template page.
//
// Geometry:
//   - X/Y/Width/Height are percentages of the page dimensions (0-100),
//     so placement survives page-size differences between the placement
//     UI and the renderer.
//   - Page is 1-based.
type ContractField struct {
	ID       string    `json:"id"`
	Type     FieldType `json:"type"`
	Label    string    `json:"label"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Page     int       `json:"page"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Required bool      `json:"required"`
}

// ContractTemplate is a reusable document definition with placeable fields.
//
// Storage model (DynamoDB):
//   - PK: id
//
// A template is not owned by any contract; deleting one is blocked while
// contracts still reference it (resolved at the usecase layer).
type ContractTemplate struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	BaseDocumentRef string          `json:"base_document_ref"`
	Fields          []ContractField `json:"fields"`
	CreatedAt       time.Time       `json:"created_at"`
}

// FieldByID returns the field with the given id and whether it exists.
func (t ContractTemplate) FieldByID(id string) (ContractField, bool) {
	for _, f := range t.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return ContractField{}, false
}
