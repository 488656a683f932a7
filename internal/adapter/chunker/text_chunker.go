package chunker

import (
	"strings"

	"docqa/internal/domain"
)

// separators are tried largest-boundary first when choosing a cut point:
// paragraph break, line break, sentence end, word break. A hard character
// cut is the last resort.
var separators = []string{"\n\n", "\n", ". ", "! ", "? ", " "}

// TextChunker splits document text into overlapping chunks of bounded size.
type TextChunker struct {
	size    int
	overlap int
}

// NewTextChunker creates a chunker targeting size characters per chunk with
// the given overlap between consecutive chunks. Overlap is capped below size
// so splitting always makes progress.
func NewTextChunker(size, overlap int) *TextChunker {
	if size <= 0 {
		size = 800
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size / 4
	}
	return &TextChunker{size: size, overlap: overlap}
}

// Split breaks the document into chunks, each carrying the document's source
// identifier. A document shorter than the chunk size yields exactly one
// chunk with its text unmodified.
func (c *TextChunker) Split(doc domain.Document) []domain.Chunk {
	runes := []rune(doc.Text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= c.size {
		return []domain.Chunk{{SourceID: doc.SourceID, Text: doc.Text}}
	}

	var chunks []domain.Chunk
	start := 0
	for start < len(runes) {
		end := start + c.size
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = cutPoint(runes, start, end)
		}

		piece := string(runes[start:end])
		if strings.TrimSpace(piece) != "" {
			chunks = append(chunks, domain.Chunk{SourceID: doc.SourceID, Text: piece})
		}

		if end == len(runes) {
			break
		}

		next := end - c.overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}

// cutPoint picks where to end the chunk beginning at start, given the hard
// limit. It scans backward from the limit for the largest boundary available
// in the second half of the window, falling back to a hard cut at the limit.
func cutPoint(runes []rune, start, limit int) int {
	minCut := start + (limit-start)/2

	for _, sep := range separators {
		if idx := lastBoundary(runes, minCut, limit, sep); idx > 0 {
			return idx
		}
	}
	return limit
}

// lastBoundary returns the index just past the last occurrence of sep whose
// end falls in (minCut, limit], or 0 when there is none.
func lastBoundary(runes []rune, minCut, limit int, sep string) int {
	sepRunes := []rune(sep)
	n := len(sepRunes)

	for i := limit - n; i > minCut-n && i >= 0; i-- {
		match := true
		for j := 0; j < n; j++ {
			if runes[i+j] != sepRunes[j] {
				match = false
				break
			}
		}
		if match && i+n > minCut {
			return i + n
		}
	}
	return 0
}
