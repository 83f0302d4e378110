package request

import (
	"testing"

	"fotostudio/internal/domain/entities"
)

func TestToEntityFields(t *testing.T) {
	fields := []ContractFieldRequest{
		{ID: "client_name", Type: "text", Label: "Name", X: 10, Y: 20, Page: 1, Width: 40, Height: 5, Required: true},
		{ID: "signature", Type: "signature", Label: "Sign", X: 10, Y: 80, Page: 2},
	}

	out := ToEntityFields(fields)
	if len(out) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(out))
	}
	if out[0].Type != entities.FieldTypeText || !out[0].Required || out[0].Width != 40 {
		t.Fatalf("unexpected first field: %+v", out[0])
	}
	if out[1].Type != entities.FieldTypeSignature || out[1].Page != 2 {
		t.Fatalf("unexpected second field: %+v", out[1])
	}
}

func TestToEntityFields_Empty(t *testing.T) {
	out := ToEntityFields(nil)
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty slice, got %v", out)
	}
}
