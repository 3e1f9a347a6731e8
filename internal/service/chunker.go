package service

import "studium-server/internal/domain"

// Chunk splits text into segments of at most size characters, consecutive
// chunks overlapping by overlap characters. Order is preserved and nothing
// is dropped: the first chunk plus every later chunk's non-overlapping
// suffix reconstructs the input exactly. The final chunk may be shorter
// than size. Offsets and lengths are counted in runes so multi-byte
// characters are never split.
func Chunk(text string, size, overlap int) []domain.TextChunk {
	if text == "" {
		return nil
	}
	if size <= 0 {
		size = 1
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size - 1
	}

	runes := []rune(text)
	step := size - overlap

	var chunks []domain.TextChunk
	for start, idx := 0, 0; start < len(runes); start, idx = start+step, idx+1 {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, domain.TextChunk{
			Index: idx,
			Start: start,
			Text:  string(runes[start:end]),
		})
		if end == len(runes) {
			break
		}
	}
	return chunks
}

// BoundText caps text at limit runes using the chunker, so prompt input
// stays within provider limits without splitting a character.
func BoundText(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	chunks := Chunk(text, limit, 0)
	if len(chunks) == 0 {
		return ""
	}
	return chunks[0].Text
}
