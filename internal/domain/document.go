package domain

import "time"

// MediaType is the declared type of an uploaded file.
type MediaType string

const (
	MediaTypePDF   MediaType = "pdf"
	MediaTypeImage MediaType = "image"
)

// ProcessingStatus tracks the extraction lifecycle of a document.
// Transitions are monotonic: uploaded -> processing -> completed|failed.
// A terminal document may only leave its state through explicit
// re-processing, which reverts it to processing first.
type ProcessingStatus string

const (
	StatusUploaded   ProcessingStatus = "uploaded"
	StatusProcessing ProcessingStatus = "processing"
	StatusCompleted  ProcessingStatus = "completed"
	StatusFailed     ProcessingStatus = "failed"
)

// Document represents an uploaded study document and its extraction state.
// Documents live in process memory only; there is no durability guarantee.
type Document struct {
	ID            string           `json:"document_id"`
	Filename      string           `json:"filename"`
	MediaType     MediaType        `json:"media_type"`
	FilePath      string           `json:"-"`
	FileSize      int64            `json:"file_size"`
	Status        ProcessingStatus `json:"status"`
	ExtractedText string           `json:"extracted_text,omitempty"`
	WordCount     int              `json:"word_count"`
	ErrorDetail   string           `json:"error,omitempty"`
	UploadedAt    time.Time        `json:"uploaded_at"`
	ProcessedAt   *time.Time       `json:"processed_at,omitempty"`
}

// TextChunk is a bounded, possibly overlapping segment of extracted text
// used to keep prompts within provider input limits.
type TextChunk struct {
	Index int    `json:"index"`
	Start int    `json:"start"`
	Text  string `json:"text"`
}
