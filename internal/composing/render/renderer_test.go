package render

import (
	"context"
	"testing"

	"github.com/vietddude/loresmith/internal/core/domain"
)

func sentence(words ...string) domain.Sentence {
	tokens := make([]domain.Token, len(words))
	for i, w := range words {
		tokens[i] = domain.TextToken(w, "")
	}
	return domain.Sentence(tokens)
}

func TestRenderSentence(t *testing.T) {
	tests := []struct {
		name   string
		input  domain.Sentence
		expect string
	}{
		{"capitalize and terminate", sentence("the", "dog", "barks"), "The dog barks."},
		{"keeps existing terminator", sentence("why", "not", "?"), "Why not?"},
		{"no space before punctuation", sentence("yes", ",", "indeed"), "Yes, indeed."},
		{"clitic attaches", sentence("the", "dog", "'s", "bone"), "The dog's bone."},
		{"name preserved", domain.Sentence{
			domain.NameToken("Ankh-Morpork", domain.CategoryLocation),
			domain.TextToken("endures", "VB"),
		}, "Ankh-Morpork endures."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderSentence(tt.input); got != tt.expect {
				t.Errorf("renderSentence = %q, want %q", got, tt.expect)
			}
		})
	}
}

func TestRenderBook(t *testing.T) {
	lore := domain.Lore{
		domain.Paragraph{sentence("first", "sentence"), sentence("second", "one")},
		domain.Paragraph{sentence("next", "paragraph")},
	}

	book, err := NewText().Render(context.Background(), lore)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(book) != 2 {
		t.Fatalf("book has %d paragraphs, want 2", len(book))
	}
	if book[0] != "First sentence. Second one." {
		t.Errorf("paragraph 0 = %q", book[0])
	}
	if book[1] != "Next paragraph." {
		t.Errorf("paragraph 1 = %q", book[1])
	}
}
