package shoppinglist

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"strings"
	"testing"
)

func testItems(n int) []Item {
	items := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, Item{
			Name:            fmt.Sprintf("Ingredient %03d", i),
			MeasurementUnit: "g",
			Amount:          int64(i + 1),
		})
	}
	return items
}

func TestRenderPDFProducesDocument(t *testing.T) {
	data, err := RenderPDF(testItems(3), "Shopping list")
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with PDF header")
	}
	if len(data) == 0 {
		t.Error("output is empty")
	}
}

func TestRenderPDFEmptyList(t *testing.T) {
	data, err := RenderPDF(nil, "Shopping list")
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with PDF header")
	}
	if got := pageCount(data); got != 1 {
		t.Errorf("expected a single page, got %d", got)
	}
	content := pageText(t, data)
	if !strings.Contains(content, "(The shopping list is empty.)") {
		t.Error("empty render lacks the empty-list message")
	}
	if strings.Contains(content, "(1. ") {
		t.Error("empty render should carry no numbered lines")
	}
}

func TestRenderPDFIsIdempotent(t *testing.T) {
	items := testItems(10)

	first, err := RenderPDF(items, "Shopping list")
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}
	second, err := RenderPDF(items, "Shopping list")
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("rendering the same list twice produced different bytes")
	}
}

// pageCount counts page objects in the document. The page tree node
// is /Type /Pages, so it is subtracted from the prefix matches.
func pageCount(doc []byte) int {
	return bytes.Count(doc, []byte("/Type /Page")) - bytes.Count(doc, []byte("/Type /Pages"))
}

// pageText inflates every content stream and concatenates the results
// in document order, which is page order.
func pageText(t *testing.T, doc []byte) string {
	t.Helper()

	var out bytes.Buffer
	rest := doc
	for {
		start := bytes.Index(rest, []byte("\nstream\n"))
		if start < 0 {
			break
		}
		rest = rest[start+len("\nstream\n"):]
		end := bytes.Index(rest, []byte("\nendstream"))
		if end < 0 {
			t.Fatal("content stream is not terminated")
		}
		raw := rest[:end]
		rest = rest[end+len("\nendstream"):]

		zr, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			out.Write(raw)
			continue
		}
		inflated, err := io.ReadAll(zr)
		if err != nil {
			t.Fatalf("failed to inflate content stream: %v", err)
		}
		out.Write(inflated)
	}
	return out.String()
}

func TestRenderPDFPaginates(t *testing.T) {
	items := testItems(120)
	doc, err := RenderPDF(items, "Shopping list")
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}

	if got := pageCount(doc); got != 3 {
		t.Errorf("expected 120 lines to span 3 pages, got %d", got)
	}

	// Every numbered line must appear after its predecessor, so the
	// numbering runs 1..120 without resetting at a page break.
	content := pageText(t, doc)
	offset := 0
	for i, item := range items {
		line := fmt.Sprintf("(%d. %s - %d %s.)", i+1, item.Name, item.Amount, item.MeasurementUnit)
		idx := strings.Index(content[offset:], line)
		if idx < 0 {
			t.Fatalf("line %d missing or out of order: %s", i+1, line)
		}
		offset += idx + len(line)
	}
}
