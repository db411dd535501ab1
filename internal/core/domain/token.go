package domain

import "strings"

// NameCategory classifies a proper-name token.
type NameCategory string

const (
	CategoryPerson       NameCategory = "person"
	CategoryOrganization NameCategory = "organization"
	CategoryLocation     NameCategory = "location"
)

// TokenKind discriminates the Token variants.
type TokenKind int

const (
	TokenText TokenKind = iota
	TokenName
)

// Token is a leaf linguistic unit: plain text with an optional
// part-of-speech tag, or a categorized proper name.
type Token struct {
	Kind         TokenKind
	Content      string
	PartOfSpeech string       // Text only, may be empty
	Category     NameCategory // Name only
}

// TextToken builds a plain-text token. partOfSpeech may be empty.
func TextToken(content, partOfSpeech string) Token {
	return Token{Kind: TokenText, Content: content, PartOfSpeech: partOfSpeech}
}

// NameToken builds a proper-name token.
func NameToken(content string, category NameCategory) Token {
	return Token{Kind: TokenName, Content: content, Category: category}
}

// Compare orders tokens: all Text tokens sort before all Name tokens,
// then by content, then by the variant's secondary attribute.
func (t Token) Compare(o Token) int {
	if t.Kind != o.Kind {
		if t.Kind == TokenText {
			return -1
		}
		return 1
	}
	if c := strings.Compare(t.Content, o.Content); c != 0 {
		return c
	}
	if t.Kind == TokenText {
		return strings.Compare(t.PartOfSpeech, o.PartOfSpeech)
	}
	return strings.Compare(string(t.Category), string(o.Category))
}
