package request

// SendContractRequest is the payload for POST /contracts/send.
type SendContractRequest struct {
	TemplateID string `json:"template_id" binding:"required"`
	ClientID   string `json:"client_id" binding:"required"`
}

// FillContractRequest is the payload for PUT /contracts/{id}/fill. An empty
// field_values map is a valid fill.
type FillContractRequest struct {
	FieldValues map[string]any `json:"field_values"`
}

// SignContractRequest is the payload for POST /contracts/{id}/sign.
type SignContractRequest struct {
	OtpCode string `json:"otp_code" binding:"required"`
}
