package retrieval

import (
	"regexp"
	"strings"
)

// Formatter splits raw text into ordered chunk strings. Implementations
// must be pure: no side effects, same input same output.
type Formatter interface {
	Format(raw string) []string
}

// Default chunk sizing, in characters.
const (
	DefaultMinChunkSize = 100
	DefaultMaxChunkSize = 600
)

var blankLines = regexp.MustCompile(`\n[ \t]*\n+`)

// ParagraphFormatter chunks text on blank-line boundaries, merging
// paragraphs smaller than MinChunkSize into their successor and splitting
// paragraphs larger than MaxChunkSize on sentence or word boundaries.
type ParagraphFormatter struct {
	MinChunkSize int
	MaxChunkSize int
}

var _ Formatter = (*ParagraphFormatter)(nil)

// NewParagraphFormatter creates a formatter with default sizing.
func NewParagraphFormatter() *ParagraphFormatter {
	return &ParagraphFormatter{MinChunkSize: DefaultMinChunkSize, MaxChunkSize: DefaultMaxChunkSize}
}

// Format implements Formatter.
func (f *ParagraphFormatter) Format(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var chunks []string
	pending := ""
	for _, paragraph := range blankLines.Split(raw, -1) {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}
		if pending != "" {
			paragraph = pending + "\n" + paragraph
			pending = ""
		}
		if len(paragraph) < f.MinChunkSize {
			pending = paragraph
			continue
		}
		chunks = append(chunks, f.split(paragraph)...)
	}
	if pending != "" {
		chunks = append(chunks, pending)
	}
	return chunks
}

// split breaks an oversized paragraph on sentence boundaries, falling back
// to word boundaries for run-on sentences.
func (f *ParagraphFormatter) split(paragraph string) []string {
	if len(paragraph) <= f.MaxChunkSize {
		return []string{paragraph}
	}

	var out []string
	current := ""
	for _, sentence := range splitSentences(paragraph) {
		if current != "" && len(current)+len(sentence)+1 > f.MaxChunkSize {
			out = append(out, current)
			current = ""
		}
		if len(sentence) > f.MaxChunkSize {
			out = append(out, splitWords(sentence, f.MaxChunkSize)...)
			continue
		}
		if current == "" {
			current = sentence
		} else {
			current += " " + sentence
		}
	}
	if current != "" {
		out = append(out, current)
	}
	return out
}

func splitSentences(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			// consume trailing punctuation and whitespace
			end := i + 1
			for end < len(text) && (text[end] == '.' || text[end] == '!' || text[end] == '?') {
				end++
			}
			sentence := strings.TrimSpace(text[start:end])
			if sentence != "" {
				out = append(out, sentence)
			}
			start = end
			i = end - 1
		}
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		out = append(out, rest)
	}
	return out
}

func splitWords(text string, max int) []string {
	var out []string
	current := ""
	for _, word := range strings.Fields(text) {
		if current != "" && len(current)+len(word)+1 > max {
			out = append(out, current)
			current = ""
		}
		if current == "" {
			current = word
		} else {
			current += " " + word
		}
	}
	if current != "" {
		out = append(out, current)
	}
	return out
}
