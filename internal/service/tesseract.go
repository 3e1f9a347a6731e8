package service

import (
	"context"
	"fmt"
	"strings"

	"studium-server/internal/domain"

	"github.com/otiai10/gosseract/v2"
)

// TesseractOCR implements domain.OCREngine on top of the tesseract engine.
// A fresh client is created per call; gosseract clients are not safe for
// concurrent use.
type TesseractOCR struct {
	languages []string
	logger    domain.Logger
}

// NewTesseractOCR creates an OCR engine for the given tesseract language
// codes (e.g. "spa", "eng").
func NewTesseractOCR(languages []string, logger domain.Logger) *TesseractOCR {
	if len(languages) == 0 {
		languages = []string{"spa", "eng"}
	}
	return &TesseractOCR{
		languages: languages,
		logger:    logger,
	}
}

// Recognize runs OCR on raw image bytes and returns the recognized text.
func (t *TesseractOCR) Recognize(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("empty image")
	}

	type ocrResult struct {
		text string
		err  error
	}
	resultCh := make(chan ocrResult, 1)

	go func() {
		client := gosseract.NewClient()
		defer client.Close()

		if err := client.SetLanguage(t.languages...); err != nil {
			resultCh <- ocrResult{err: fmt.Errorf("set OCR language: %w", err)}
			return
		}
		// Single uniform block of text, matching how study notes scan.
		if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
			resultCh <- ocrResult{err: fmt.Errorf("set page segmentation mode: %w", err)}
			return
		}
		if err := client.SetImageFromBytes(image); err != nil {
			resultCh <- ocrResult{err: fmt.Errorf("load image: %w", err)}
			return
		}

		text, err := client.Text()
		resultCh <- ocrResult{text: text, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			return "", res.err
		}
		t.logger.Debug("OCR finished", "chars", len(res.text), "languages", strings.Join(t.languages, "+"))
		return res.text, nil
	case <-ctx.Done():
		go func() { <-resultCh }() // let the worker goroutine finish
		return "", ctx.Err()
	}
}
