package domain

import "errors"

// ErrEmptySequence is returned by the sequence constructors when given
// no elements.
var ErrEmptySequence = errors.New("sequence must not be empty")

// Sentence is a non-empty token sequence in walk order, Start excluded.
type Sentence []Token

// NewSentence builds a Sentence, rejecting empty input.
func NewSentence(tokens []Token) (Sentence, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptySequence
	}
	return Sentence(tokens), nil
}

// Paragraph is a non-empty ordered sequence of sentences.
type Paragraph []Sentence

// NewParagraph builds a Paragraph, rejecting empty input.
func NewParagraph(sentences []Sentence) (Paragraph, error) {
	if len(sentences) == 0 {
		return nil, ErrEmptySequence
	}
	return Paragraph(sentences), nil
}

// Lore is a non-empty ordered sequence of paragraphs, the token-level
// form of a generated text prior to rendering.
type Lore []Paragraph

// NewLore builds a Lore, rejecting empty input.
func NewLore(paragraphs []Paragraph) (Lore, error) {
	if len(paragraphs) == 0 {
		return nil, ErrEmptySequence
	}
	return Lore(paragraphs), nil
}

// Book is the rendered, human-readable form of a Lore: one prose
// string per paragraph.
type Book []string

// NewBook builds a Book, rejecting empty input.
func NewBook(paragraphs []string) (Book, error) {
	if len(paragraphs) == 0 {
		return nil, ErrEmptySequence
	}
	return Book(paragraphs), nil
}
