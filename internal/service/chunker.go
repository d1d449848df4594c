package service

// DefaultChunkSize is the target window length in runes.
const DefaultChunkSize = 150

// DefaultChunkOverlap is the number of runes adjacent windows share.
const DefaultChunkOverlap = 25

// ChunkText splits text into overlapping rune windows: window i starts at
// i*(size-overlap) and spans size runes, the final window may be shorter.
// Every rune is covered and consecutive windows share exactly overlap
// runes, so a single window preserves enough local context for the
// ranking step to judge relevance on its own.
func ChunkText(text string, size, overlap int) []string {
	if text == "" {
		return nil
	}
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = size / 4
	}

	runes := []rune(text)
	step := size - overlap

	windows := make([]string, 0, len(runes)/step+1)
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		windows = append(windows, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}

	return windows
}
