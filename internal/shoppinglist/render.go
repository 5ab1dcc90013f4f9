package shoppinglist

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	// Filename is the suggested download name for the rendered document.
	Filename = "shoppingcart.pdf"

	// ContentType is the MIME type of the rendered document.
	ContentType = "application/pdf"
)

const (
	fontFamily = "Helvetica"

	titleFontSize = 16.0
	itemFontSize  = 12.0
	emptyFontSize = 20.0

	leftMargin = 20.0
	topOffset  = 20.0
	listStartY = 30.0
	lineHeight = 5.5
	// bottomLimit leaves a 15mm bottom margin on an A4 page; with the
	// cursor reset to topOffset that fits roughly 48 lines per page.
	bottomLimit = 282.0

	emptyMessage = "The shopping list is empty."
)

// renderDate pins the PDF metadata dates so that rendering the same
// list twice produces byte-identical output.
var renderDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// RenderPDF draws the aggregated list as a paginated PDF document.
// Line numbering is 1-based and runs on across page breaks. An empty
// list renders a single page carrying only the empty message.
func RenderPDF(items []Item, title string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreationDate(renderDate)
	pdf.SetModificationDate(renderDate)
	pdf.SetAutoPageBreak(false, 0)

	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", titleFontSize)
	pdf.Text(leftMargin, topOffset, title)

	if len(items) == 0 {
		pdf.SetFont(fontFamily, "B", emptyFontSize)
		pdf.Text(leftMargin, listStartY+lineHeight, emptyMessage)
		return output(pdf)
	}

	pdf.SetFont(fontFamily, "", itemFontSize)
	y := listStartY
	for i, item := range items {
		if y > bottomLimit {
			pdf.AddPage()
			pdf.SetFont(fontFamily, "", itemFontSize)
			y = topOffset
		}
		line := fmt.Sprintf("%d. %s - %d %s.",
			i+1, item.Name, item.Amount, item.MeasurementUnit)
		pdf.Text(leftMargin, y, line)
		y += lineHeight
	}

	return output(pdf)
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering shopping list: %w", err)
	}
	return buf.Bytes(), nil
}
