package response

import (
	"time"

	"fotostudio/internal/domain/entities"
	"fotostudio/internal/usecase"
)

// ContractResponse never exposes the stored one-time code; only the pending
// flag and the expiry are visible.
type ContractResponse struct {
	ID          string `json:"id"`
	TemplateID  string `json:"template_id"`
	ClientID    string `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`

	Status      string         `json:"status"`
	FieldValues map[string]any `json:"field_values"`

	OtpPending   bool       `json:"otp_pending"`
	OtpExpiresAt *time.Time `json:"otp_expires_at,omitempty"`

	SignedAt          *time.Time `json:"signed_at,omitempty"`
	SignedDocumentRef string     `json:"signed_document_ref,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	SentAt    time.Time `json:"sent_at"`
}

// ContractDetailResponse merges the contract with the read-only template
// projection a fill form needs.
type ContractDetailResponse struct {
	ContractResponse
	TemplateName    string                  `json:"template_name"`
	BaseDocumentRef string                  `json:"base_document_ref"`
	Fields          []ContractFieldResponse `json:"fields"`
}

func FromContract(c entities.Contract) ContractResponse {
	return ContractResponse{
		ID:                c.ID,
		TemplateID:        c.TemplateID,
		ClientID:          c.ClientID,
		ClientName:        c.ClientName,
		ClientEmail:       c.ClientEmail,
		Status:            string(c.Status),
		FieldValues:       c.FieldValues,
		OtpPending:        c.OTPPending(),
		OtpExpiresAt:      c.OTPExpiresAt,
		SignedAt:          c.SignedAt,
		SignedDocumentRef: c.SignedDocumentRef,
		CreatedAt:         c.CreatedAt,
		SentAt:            c.SentAt,
	}
}

func FromContracts(cs []entities.Contract) []ContractResponse {
	out := make([]ContractResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, FromContract(c))
	}
	return out
}

func FromContractProjection(p usecase.ContractProjection) ContractDetailResponse {
	return ContractDetailResponse{
		ContractResponse: FromContract(p.Contract),
		TemplateName:     p.TemplateName,
		BaseDocumentRef:  p.BaseDocumentRef,
		Fields:           fromFields(p.Fields),
	}
}
