package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"studium-server/internal/domain"

	"github.com/gen2brain/go-fitz"
)

const (
	// Pages with fewer characters than this in their text layer are
	// assumed to be scanned and go through OCR instead.
	minPageTextChars = 20

	// Rasterization resolution for OCR of scanned PDF pages.
	ocrDPI = 300.0

	pageTimeout = 90 * time.Second
)

// Extractor produces plain text from uploaded PDF and image files. PDFs use
// the embedded text layer page by page, falling back to rasterization + OCR
// for pages without usable text. Images go straight to OCR.
type Extractor struct {
	ocr    domain.OCREngine
	logger domain.Logger
}

// NewExtractor creates a new text extractor
func NewExtractor(ocr domain.OCREngine, logger domain.Logger) *Extractor {
	return &Extractor{
		ocr:    ocr,
		logger: logger,
	}
}

// Extract returns the plain text of a document. It performs exactly one
// extraction attempt; retry policy belongs to the caller.
func (e *Extractor) Extract(ctx context.Context, data []byte, mediaType domain.MediaType) (string, error) {
	switch mediaType {
	case domain.MediaTypePDF:
		return e.extractPDF(ctx, data)
	case domain.MediaTypeImage:
		return e.extractImage(ctx, data)
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, mediaType)
	}
}

func (e *Extractor) extractImage(ctx context.Context, data []byte) (string, error) {
	if e.ocr == nil {
		return "", fmt.Errorf("%w: no OCR backend configured", domain.ErrExtractionFailed)
	}
	text, err := e.ocr.Recognize(ctx, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	return text, nil
}

func (e *Extractor) extractPDF(ctx context.Context, data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCorruptInput, err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	pages := make([]string, 0, numPages)

	for pageNum := 0; pageNum < numPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
		}
		e.logger.Debug("Extracting PDF page", "page", pageNum+1, "total", numPages)

		text, err := e.pageText(doc, pageNum)
		if err != nil {
			e.logger.Warn("Failed to read page text layer", "page", pageNum+1, "error", err)
			text = ""
		}

		text = strings.TrimSpace(text)
		if utf8.RuneCountInString(text) < minPageTextChars {
			ocrText, ocrErr := e.ocrPage(ctx, doc, pageNum)
			if ocrErr != nil {
				e.logger.Warn("OCR fallback failed for page", "page", pageNum+1, "error", ocrErr)
			} else if strings.TrimSpace(ocrText) != "" {
				text = strings.TrimSpace(ocrText)
			}
		}

		if text != "" {
			pages = append(pages, text)
		}
	}

	combined := strings.Join(pages, "\n\n")
	if strings.TrimSpace(combined) == "" {
		return "", fmt.Errorf("%w: PDF has no extractable text", domain.ErrExtractionFailed)
	}
	return combined, nil
}

// pageText reads one page's text layer in a goroutine so a pathological
// page cannot wedge the extraction worker.
func (e *Extractor) pageText(doc *fitz.Document, pageNum int) (string, error) {
	type pageResult struct {
		text string
		err  error
	}
	resultCh := make(chan pageResult, 1)
	go func() {
		t, err := doc.Text(pageNum)
		resultCh <- pageResult{text: t, err: err}
	}()

	select {
	case res := <-resultCh:
		return res.text, res.err
	case <-time.After(pageTimeout):
		go func() { <-resultCh }() // drain so goroutine can exit
		return "", fmt.Errorf("page %d text extraction timed out after %v", pageNum+1, pageTimeout)
	}
}

func (e *Extractor) ocrPage(ctx context.Context, doc *fitz.Document, pageNum int) (string, error) {
	if e.ocr == nil {
		return "", fmt.Errorf("no OCR backend configured")
	}
	png, err := doc.ImagePNG(pageNum, ocrDPI)
	if err != nil {
		return "", fmt.Errorf("rasterize page %d: %w", pageNum+1, err)
	}
	return e.ocr.Recognize(ctx, png)
}

// CleanText normalizes whitespace in extracted text: runs of whitespace
// collapse to single spaces.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
