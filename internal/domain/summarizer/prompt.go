package summarizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/yanqian/ai-summarizer/internal/domain/ingest"
)

// PromptBuilder turns extracted text plus output constraints into a single
// instruction for the language model.
type PromptBuilder struct {
	maxTokens int
	encoding  *tiktoken.Tiktoken
}

// NewPromptBuilder constructs a builder that bounds the subject text to
// maxTokens of the named tiktoken encoding. When the encoding cannot be
// loaded the builder degrades to a character heuristic instead of failing.
func NewPromptBuilder(maxTokens int, encodingName string) *PromptBuilder {
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		encoding = nil
	}
	return &PromptBuilder{maxTokens: maxTokens, encoding: encoding}
}

// Build emits the summarization instruction: target language, format
// directive, word ceiling, then the subject text.
func (b *PromptBuilder) Build(text, outputLanguage string, length ingest.Length, format ingest.Format) string {
	return fmt.Sprintf(
		"Summarize the following text in %s %s. Keep it concise (~%d words max):\n\n%s",
		outputLanguage, format.Fragment(), length.WordBudget(), b.bound(text),
	)
}

func (b *PromptBuilder) bound(text string) string {
	text = strings.TrimSpace(text)
	if b.maxTokens <= 0 {
		return text
	}
	if b.encoding != nil {
		tokens := b.encoding.Encode(text, nil, nil)
		if len(tokens) > b.maxTokens {
			return b.encoding.Decode(tokens[:b.maxTokens])
		}
		return text
	}
	// ~4 chars per token when no encoding is available
	if limit := b.maxTokens * 4; len(text) > limit {
		return text[:limit]
	}
	return text
}
