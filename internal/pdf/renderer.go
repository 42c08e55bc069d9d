// Package pdf renders a generated proposal into a downloadable PDF.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"proposalforge_backend/internal/models"
)

// RenderProposal produces a single-proposal PDF document.
func RenderProposal(p *models.Proposal) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(p.JobTitle, true)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.MultiCell(0, 8, p.JobTitle, "", "L", false)
	doc.Ln(2)

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(100, 100, 100)
	meta := fmt.Sprintf("Score: %d   Tone: %s   Length: %s   Generated: %s",
		p.Score, p.Tone, p.Length, p.CreatedAt.Format("Jan 2, 2006"))
	doc.MultiCell(0, 5, meta, "", "L", false)
	doc.Ln(4)

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", 11)
	doc.MultiCell(0, 6, p.GeneratedText, "", "L", false)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
