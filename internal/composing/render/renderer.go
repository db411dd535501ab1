package render

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vietddude/loresmith/internal/core/domain"
)

// Text renders lore into plain prose: sentences joined with spaces,
// first word capitalized, terminal period added when the walk did not
// end on punctuation.
type Text struct{}

// NewText creates a plain-text renderer.
func NewText() *Text {
	return &Text{}
}

// Render produces one prose string per paragraph.
func (t *Text) Render(ctx context.Context, lore domain.Lore) (domain.Book, error) {
	paragraphs := make([]string, 0, len(lore))
	for _, paragraph := range lore {
		var b strings.Builder
		for i, sentence := range paragraph {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(renderSentence(sentence))
		}
		paragraphs = append(paragraphs, b.String())
	}
	return domain.NewBook(paragraphs)
}

func renderSentence(sentence domain.Sentence) string {
	var b strings.Builder
	for i, token := range sentence {
		content := token.Content
		if i == 0 {
			content = capitalize(content)
		} else if !noSpaceBefore(content) {
			b.WriteByte(' ')
		}
		b.WriteString(content)
	}
	last := sentence[len(sentence)-1].Content
	if !strings.HasSuffix(last, ".") && !strings.HasSuffix(last, "!") && !strings.HasSuffix(last, "?") {
		b.WriteByte('.')
	}
	return b.String()
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// noSpaceBefore reports whether the token attaches to the previous
// word, as punctuation and clitics do.
func noSpaceBefore(s string) bool {
	switch s {
	case ",", ";", ":", ".", "!", "?", "'s", "n't":
		return true
	}
	return false
}
