package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/Iron-Ham/tock/internal/task"
)

// pdfTitle heads the first page.
const pdfTitle = "Tasks"

func writePDF(w io.Writer, items []Item) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(pdfTitle, true)
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, pdfTitle)
	pdf.Ln(12)

	if len(items) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.Cell(0, 6, "There are no tasks as of now!")
	}

	for _, item := range items {
		t := item.Task
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(12, 6, fmt.Sprintf("%d.", item.Index), "", 0, "R", false, 0, "")
		pdf.CellFormat(16, 6, t.Kind().Tag()+"["+t.StatusMark()+"]", "", 0, "L", false, 0, "")

		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 6, tr(pdfLine(t)), "0", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return pdf.Output(w)
}

// pdfLine is the task text after its tag and status box.
func pdfLine(t task.Task) string {
	switch t.Kind() {
	case task.KindDeadline:
		return fmt.Sprintf("%s (by: %s)", t.Description(), t.Due().Format(task.DateDisplayLayout))
	case task.KindEvent:
		return fmt.Sprintf("%s (from: %s to: %s)", t.Description(), t.Start(), t.End())
	default:
		return t.Description()
	}
}
