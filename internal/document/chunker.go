package document

// Chunking defaults match the context budget of the generation model.
const (
	DefaultChunkSize    = 4000
	DefaultChunkOverlap = 200
)

// SplitText splits text into chunks of at most size runes, with overlap
// runes carried over between consecutive chunks. Split points prefer
// natural boundaries near the size limit: paragraph breaks first, then
// line breaks, sentence ends, and spaces, falling back to a hard cut.
// The function is deterministic and never drops content.
func SplitText(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
		if overlap >= size {
			overlap = size / 10
		}
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= size {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		cut := findSplitPoint(runes, start, end)
		chunks = append(chunks, string(runes[start:cut]))

		next := cut - overlap
		// Overlap must not push the window backwards or the loop stalls.
		if next <= start {
			next = cut
		}
		start = next
	}

	return chunks
}

// separator precedence, best break first.
var separators = []string{"\n\n", "\n", ". ", " "}

// findSplitPoint picks the best boundary in (start, end], searching
// backwards from end for each separator in precedence order. The search
// only considers the second half of the window so a chunk is never
// degenerately short.
func findSplitPoint(runes []rune, start, end int) int {
	floor := start + (end-start)/2
	window := string(runes[floor:end])

	for _, sep := range separators {
		if idx := lastIndexRunes(window, sep); idx >= 0 {
			return floor + idx + len([]rune(sep))
		}
	}
	return end
}

// lastIndexRunes reports the rune index of the last occurrence of sep in s.
func lastIndexRunes(s, sep string) int {
	sepRunes := []rune(sep)
	runes := []rune(s)
	for i := len(runes) - len(sepRunes); i >= 0; i-- {
		match := true
		for j := range sepRunes {
			if runes[i+j] != sepRunes[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
