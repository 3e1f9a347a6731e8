package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"studium-server/internal/domain"
)

// buildTestPDF assembles a minimal one-page PDF with the given text in its
// text layer. Offsets in the xref table are computed as the file is built.
func buildTestPDF(text string) []byte {
	content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var sb strings.Builder
	sb.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = sb.Len()
		fmt.Fprintf(&sb, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefStart := sb.Len()
	fmt.Fprintf(&sb, "xref\n0 %d\n", len(objects)+1)
	sb.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&sb, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&sb, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefStart)
	return []byte(sb.String())
}

func TestExtract_UnsupportedMediaType(t *testing.T) {
	e := NewExtractor(&fakeOCR{}, testLogger{})
	_, err := e.Extract(context.Background(), []byte("data"), domain.MediaType("docx"))
	if !errors.Is(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExtract_ImageUsesOCROnce(t *testing.T) {
	ocr := &fakeOCR{text: "  texto reconocido  "}
	e := NewExtractor(ocr, testLogger{})

	text, err := e.Extract(context.Background(), []byte("fake-image-bytes"), domain.MediaTypeImage)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ocr.calls != 1 {
		t.Fatalf("expected exactly one OCR call, got %d", ocr.calls)
	}
	// OCR output is passed through untouched; cleaning happens later.
	if text != "  texto reconocido  " {
		t.Fatalf("expected verbatim OCR output, got %q", text)
	}
}

func TestExtract_ImageOCRFailure(t *testing.T) {
	ocr := &fakeOCR{err: errors.New("tesseract not installed")}
	e := NewExtractor(ocr, testLogger{})

	_, err := e.Extract(context.Background(), []byte("fake-image-bytes"), domain.MediaTypeImage)
	if !errors.Is(err, domain.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}

func TestExtract_CorruptPDF(t *testing.T) {
	e := NewExtractor(&fakeOCR{}, testLogger{})
	_, err := e.Extract(context.Background(), []byte("this is not a pdf"), domain.MediaTypePDF)
	if !errors.Is(err, domain.ErrCorruptInput) {
		t.Fatalf("expected ErrCorruptInput, got %v", err)
	}
}

func TestExtract_PDFTextLayer(t *testing.T) {
	ocr := &fakeOCR{text: "should not be used"}
	e := NewExtractor(ocr, testLogger{})

	pdf := buildTestPDF("La celula es la unidad basica de la vida")
	text, err := e.Extract(context.Background(), pdf, domain.MediaTypePDF)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "unidad basica") {
		t.Fatalf("expected text layer content, got %q", text)
	}
	if ocr.calls != 0 {
		t.Fatalf("text-layer page must not hit OCR, got %d calls", ocr.calls)
	}
}

func TestExtract_PDFShortPageFallsBackToOCR(t *testing.T) {
	// Fewer than minPageTextChars in the text layer forces the OCR path.
	ocr := &fakeOCR{text: "texto recuperado por OCR de la pagina escaneada"}
	e := NewExtractor(ocr, testLogger{})

	pdf := buildTestPDF("hi")
	text, err := e.Extract(context.Background(), pdf, domain.MediaTypePDF)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ocr.calls != 1 {
		t.Fatalf("expected one OCR fallback call, got %d", ocr.calls)
	}
	if !strings.Contains(text, "OCR") {
		t.Fatalf("expected OCR text to win, got %q", text)
	}
}

func TestExtract_CancelledContext(t *testing.T) {
	e := NewExtractor(&fakeOCR{}, testLogger{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pdf := buildTestPDF("La celula es la unidad basica de la vida")
	_, err := e.Extract(ctx, pdf, domain.MediaTypePDF)
	if !errors.Is(err, domain.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed on cancelled context, got %v", err)
	}
}

func TestCleanText(t *testing.T) {
	cases := map[string]string{
		"  hola   mundo  ":          "hola mundo",
		"linea1\n\nlinea2\tlinea3":  "linea1 linea2 linea3",
		"":                          "",
		"\n\t ":                     "",
		"sin cambios":               "sin cambios",
	}
	for in, want := range cases {
		if got := CleanText(in); got != want {
			t.Fatalf("CleanText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWordCount(t *testing.T) {
	if got := WordCount("una dos tres"); got != 3 {
		t.Fatalf("expected 3 words, got %d", got)
	}
	if got := WordCount("   "); got != 0 {
		t.Fatalf("expected 0 words, got %d", got)
	}
}
