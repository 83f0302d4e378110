package rendering

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fotostudio/internal/domain/entities"
	"fotostudio/internal/usecase/interfaces"

	"github.com/go-pdf/fpdf"
)

// FPDFRenderer produces the signed artifact as a PDF on local disk and
// returns its path as the document ref.
//
// Field geometry is percent-of-page, so positions are scaled against the A4
// page box here with the same origin (top-left) the placement UI uses.
//
// Env vars:
//   - SIGNED_DOCS_DIR (default: signed_documents)
type FPDFRenderer struct {
	outputDir string
}

var _ interfaces.IDocumentRenderer = (*FPDFRenderer)(nil)

func NewFPDFRendererFromEnv() *FPDFRenderer {
	dir := strings.TrimSpace(os.Getenv("SIGNED_DOCS_DIR"))
	if dir == "" {
		dir = "signed_documents"
	}
	return &FPDFRenderer{outputDir: dir}
}

func (r *FPDFRenderer) RenderSigned(ctx context.Context, req interfaces.RenderRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(req.TemplateName, true)
	pageW, pageH := pdf.GetPageSize()

	pages := 1
	for _, f := range req.Fields {
		if f.Page > pages {
			pages = f.Page
		}
	}

	for page := 1; page <= pages; page++ {
		pdf.AddPage()

		if page == 1 {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.SetXY(10, 10)
			pdf.CellFormat(0, 6, req.TemplateName, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 8)
			pdf.CellFormat(0, 4, fmt.Sprintf("Base document: %s", req.BaseDocumentRef), "", 1, "L", false, 0, "")
			pdf.CellFormat(0, 4, fmt.Sprintf("Signed by %s on %s", req.ClientName, req.SignedAt.UTC().Format(time.RFC1123)), "", 1, "L", false, 0, "")
		}

		pdf.SetFont("Helvetica", "", 10)
		for _, f := range req.Fields {
			if f.Page != page {
				continue
			}
			x := f.X / 100 * pageW
			y := f.Y / 100 * pageH
			w := f.Width / 100 * pageW
			h := f.Height / 100 * pageH
			if h <= 0 {
				h = 5
			}

			pdf.SetXY(x, y)
			pdf.CellFormat(w, h, fieldText(f, req.FieldValues[f.ID]), "", 0, "L", false, 0, "")
		}
	}

	if err := pdf.Error(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(r.outputDir, fmt.Sprintf("%s_signed.pdf", req.ContractID))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", err
	}
	log.Printf("[render][fpdf] signed document written contract_id=%s path=%s", req.ContractID, path)
	return path, nil
}

func fieldText(f entities.ContractField, value any) string {
	switch f.Type {
	case entities.FieldTypeCheckbox:
		if checked, ok := value.(bool); ok && checked {
			return "[X] " + f.Label
		}
		return "[ ] " + f.Label
	case entities.FieldTypeSignature:
		if value == nil {
			return ""
		}
		return fmt.Sprintf("Signed: %v", value)
	default:
		if value == nil {
			return ""
		}
		return fmt.Sprintf("%v", value)
	}
}
