package rendering

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fotostudio/internal/domain/entities"
	"fotostudio/internal/usecase/interfaces"
)

func renderRequest() interfaces.RenderRequest {
	return interfaces.RenderRequest{
		ContractID:      "c-1",
		TemplateName:    "Wedding",
		BaseDocumentRef: "docs/base.pdf",
		Fields: []entities.ContractField{
			{ID: "client_name", Type: entities.FieldTypeText, Label: "Name", X: 10, Y: 20, Page: 1, Width: 40, Height: 5},
			{ID: "agreed", Type: entities.FieldTypeCheckbox, Label: "I agree", X: 10, Y: 30, Page: 2},
			{ID: "signature", Type: entities.FieldTypeSignature, Label: "Sign", X: 10, Y: 80, Page: 2, Width: 50, Height: 10},
		},
		FieldValues: map[string]any{
			"client_name": "Ana",
			"agreed":      true,
			"signature":   "Ana M.",
		},
		ClientName: "Ana",
		SignedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestFPDFRenderer_RenderSigned(t *testing.T) {
	t.Run("writes one pdf per contract", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("SIGNED_DOCS_DIR", dir)
		r := NewFPDFRendererFromEnv()

		ref, err := r.RenderSigned(context.Background(), renderRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ref != filepath.Join(dir, "c-1_signed.pdf") {
			t.Fatalf("unexpected ref: %s", ref)
		}

		info, err := os.Stat(ref)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if info.Size() == 0 {
			t.Fatal("expected non-empty pdf")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Setenv("SIGNED_DOCS_DIR", t.TempDir())
		r := NewFPDFRendererFromEnv()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := r.RenderSigned(ctx, renderRequest()); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestFieldText(t *testing.T) {
	checkbox := entities.ContractField{ID: "agreed", Type: entities.FieldTypeCheckbox, Label: "I agree"}
	if got := fieldText(checkbox, true); got != "[X] I agree" {
		t.Fatalf("unexpected checked text: %q", got)
	}
	if got := fieldText(checkbox, nil); got != "[ ] I agree" {
		t.Fatalf("unexpected unchecked text: %q", got)
	}

	sig := entities.ContractField{ID: "signature", Type: entities.FieldTypeSignature, Label: "Sign"}
	if got := fieldText(sig, "Ana M."); got != "Signed: Ana M." {
		t.Fatalf("unexpected signature text: %q", got)
	}
	if got := fieldText(sig, nil); got != "" {
		t.Fatalf("expected empty unsigned text, got %q", got)
	}

	text := entities.ContractField{ID: "client_name", Type: entities.FieldTypeText, Label: "Name"}
	if got := fieldText(text, "Ana"); got != "Ana" {
		t.Fatalf("unexpected text: %q", got)
	}
}
