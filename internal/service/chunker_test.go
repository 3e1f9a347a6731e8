package service

import (
	"strings"
	"testing"
)

func TestChunk_ShortTextSingleChunk(t *testing.T) {
	chunks := Chunk("hello world", 100, 20)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "hello world" {
		t.Fatalf("expected full text back, got %q", chunks[0].Text)
	}
	if chunks[0].Index != 0 || chunks[0].Start != 0 {
		t.Fatalf("expected index 0 start 0, got %d/%d", chunks[0].Index, chunks[0].Start)
	}
}

func TestChunk_OverlapIsCarried(t *testing.T) {
	text := strings.Repeat("a", 50) + strings.Repeat("b", 50)
	chunks := Chunk(text, 60, 10)
	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}
	tail := chunks[0].Text[len(chunks[0].Text)-10:]
	head := chunks[1].Text[:10]
	if tail != head {
		t.Fatalf("expected overlap to repeat: tail %q head %q", tail, head)
	}
}

func TestChunk_Reconstruction(t *testing.T) {
	text := "El mitocondria es la central energética de la célula. " +
		strings.Repeat("Contenido adicional del apunte. ", 80)
	size, overlap := 100, 25
	chunks := Chunk(text, size, overlap)

	var sb strings.Builder
	for i, c := range chunks {
		runes := []rune(c.Text)
		if i > 0 {
			runes = runes[overlap:]
		}
		sb.WriteString(string(runes))
	}
	if sb.String() != text {
		t.Fatal("dropping each chunk's overlap prefix should reconstruct the original text")
	}
}

func TestChunk_StartOffsets(t *testing.T) {
	text := strings.Repeat("x", 300)
	chunks := Chunk(text, 100, 20)
	for i, c := range chunks {
		want := i * 80
		if c.Start != want {
			t.Fatalf("chunk %d: expected start %d, got %d", i, want, c.Start)
		}
	}
}

func TestChunk_OverlapClampedBelowSize(t *testing.T) {
	text := strings.Repeat("y", 50)
	chunks := Chunk(text, 10, 50)
	if len(chunks) == 0 {
		t.Fatal("expected chunks despite overlap >= size")
	}
	// Progress must be made on every chunk or this would never terminate.
	for i := 1; i < len(chunks); i++ {
		if chunks[i].Start <= chunks[i-1].Start {
			t.Fatalf("chunk %d did not advance past chunk %d", i, i-1)
		}
	}
}

func TestBoundText(t *testing.T) {
	text := strings.Repeat("z", 500)
	bounded := BoundText(text, 100)
	if len([]rune(bounded)) != 100 {
		t.Fatalf("expected 100 runes, got %d", len([]rune(bounded)))
	}
	if BoundText("short", 100) != "short" {
		t.Fatal("text under the limit should come back unchanged")
	}
}

func TestBoundText_MultibyteSafe(t *testing.T) {
	text := strings.Repeat("ñ", 200)
	bounded := BoundText(text, 50)
	if len([]rune(bounded)) != 50 {
		t.Fatalf("expected 50 runes, got %d", len([]rune(bounded)))
	}
	for _, r := range bounded {
		if r != 'ñ' {
			t.Fatalf("multibyte rune was split, got %q", r)
		}
	}
}
