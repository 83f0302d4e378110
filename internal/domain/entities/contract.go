package entities

import "time"

// ContractStatus represents the lifecycle of a client contract.
//
// pending -> sent -> filled -> signed (terminal)
//
// pending only exists between construction and the sent_at stamp; the only
// exposed entry point (send) stores the contract already in sent state.

type ContractStatus string

const (
	ContractStatusPending ContractStatus = "pending"
	ContractStatusSent    ContractStatus = "sent"
	ContractStatusFilled  ContractStatus = "filled"
	ContractStatusSigned  ContractStatus = "signed"
)

// Contract is a single client-specific contract derived from a template.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (client_id-index): client_id
//   - GSI2 (template_id-index): template_id
//
// Client name/email are snapshotted at send-time so later client or template
// edits do not retroactively alter a sent contract's display identity.
//
// Invariants:
//   - OTPCode and OTPExpiresAt are both nil or both set.
//   - SignedAt and SignedDocumentRef are both absent or both set; they are
//     written atomically together with the signed status.
type Contract struct {
	ID          string `json:"id"`
	TemplateID  string `json:"template_id"`
	ClientID    string `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientEmail string `json:"client_email"`

	Status      ContractStatus `json:"status"`
	FieldValues map[string]any `json:"field_values"`

	OTPCode      *string    `json:"-"`
	OTPExpiresAt *time.Time `json:"otp_expires_at,omitempty"`

	SignedAt          *time.Time `json:"signed_at,omitempty"`
	SignedDocumentRef string     `json:"signed_document_ref,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	SentAt    time.Time `json:"sent_at"`
}

// Signed reports whether the contract reached its terminal state.
func (c Contract) Signed() bool {
	return c.Status == ContractStatusSigned
}

// OTPPending reports whether a signature request is outstanding.
func (c Contract) OTPPending() bool {
	return c.OTPCode != nil && c.OTPExpiresAt != nil
}
