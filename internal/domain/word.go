package domain

import (
	"strings"
	"time"
)

// MaxWordLength is the column width of lemma and surface texts.
const MaxWordLength = 50

// Category is the coarse part-of-speech bucket a lemma is stored under.
type Category string

const (
	CategoryNoun Category = "noun"
	CategoryVerb Category = "verb"
	CategoryAdj  Category = "adj"
	CategoryAdv  Category = "adv"
)

func (c Category) String() string { return string(c) }

// IsValid reports whether c is one of the four storable categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryNoun, CategoryVerb, CategoryAdj, CategoryAdv:
		return true
	}
	return false
}

// tagCategories maps upper-case universal POS tags to storage categories.
var tagCategories = map[string]Category{
	"VERB":  CategoryVerb,
	"AUX":   CategoryVerb,
	"NOUN":  CategoryNoun,
	"PROPN": CategoryNoun,
	"ADJ":   CategoryAdj,
	"ADV":   CategoryAdv,
}

// CategoryFromTag converts a fine-grained POS tag into a Category.
// The lookup is case-insensitive. Pronouns, determiners, numbers,
// punctuation and unknown or empty tags map to CategoryNoun.
func CategoryFromTag(tag string) Category {
	if c, ok := tagCategories[strings.ToUpper(strings.TrimSpace(tag))]; ok {
		return c
	}
	return CategoryNoun
}

// Lemma is the canonical dictionary form of a word. Immutable once created.
type Lemma struct {
	ID        int64
	Text      string
	Category  Category
	CreatedAt time.Time
}

// ResolvedToken is one lemmatizer output tuple. Lemma is nil when the
// surface form is already canonical.
type ResolvedToken struct {
	Surface string
	Lemma   *string
	POS     string
}

// HasLemma reports whether the token resolved to a lemma distinct from itself.
func (t ResolvedToken) HasLemma() bool {
	return t.Lemma != nil && *t.Lemma != ""
}

// LemmaEntry is the cached view of a lemma under "lemma:<text>".
type LemmaEntry struct {
	LemmaID  int64    `json:"lemmaId"`
	Text     string   `json:"lemmaText"`
	Category Category `json:"posCategory"`
}

// SurfaceEntry is the cached view of a surface form under "word:<surface>".
type SurfaceEntry struct {
	LemmaID   int64    `json:"lemmaId"`
	Surface   string   `json:"surfaceText"`
	LemmaText string   `json:"lemmaText"`
	Category  Category `json:"posCategory"`
}
