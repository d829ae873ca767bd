// Package fallback implements the local rule-based lemmatizer used when the
// lemmatization service is unavailable. It performs no I/O and never fails.
package fallback

import (
	"strings"

	"github.com/heartmarshall/lexitrack/internal/domain"
)

// POS tags emitted by the rule set. They use the same tag set as the
// lemmatization service so downstream category mapping is shared.
const (
	posNoun = "NOUN"
	posVerb = "VERB"
	posAdj  = "ADJ"
	posAdv  = "ADV"
)

// Lemmatizer approximates lemma and part of speech with suffix rules and a
// closed list of irregular forms. The zero value is ready to use.
type Lemmatizer struct{}

// New returns a Lemmatizer.
func New() *Lemmatizer { return &Lemmatizer{} }

// Resolve maps every token that still holds a word character after cleaning
// to a (surface, lemma, pos) tuple, preserving order. Surface keeps the raw
// token. Lemma is nil when the derived lemma equals the cleaned token.
func (l *Lemmatizer) Resolve(tokens []string) []domain.ResolvedToken {
	out := make([]domain.ResolvedToken, 0, len(tokens))
	for _, tok := range tokens {
		word := domain.CleanToken(tok)
		if word == "" {
			continue
		}

		lemma, pos := Analyze(word)
		rt := domain.ResolvedToken{Surface: tok, POS: pos}
		if lemma != word {
			rt.Lemma = &lemma
		}
		out = append(out, rt)
	}
	return out
}

// Analyze returns the lemma and POS tag for an already cleaned word.
func Analyze(word string) (lemma, pos string) {
	if f, ok := irregular[word]; ok {
		return f.lemma, f.pos
	}
	if _, ok := invariant[word]; ok {
		return word, posNoun
	}

	switch {
	case strings.HasSuffix(word, "ly") && len(word) > 4:
		return word, posAdv
	case strings.HasSuffix(word, "ing") && len(word) > 4:
		if stem, ok := verbStem(word[:len(word)-3]); ok {
			return stem, posVerb
		}
	case strings.HasSuffix(word, "ed") && len(word) > 3 && !strings.HasSuffix(word, "eed"):
		if strings.HasSuffix(word, "ied") && len(word) > 4 {
			return word[:len(word)-3] + "y", posVerb
		}
		if stem, ok := verbStem(word[:len(word)-2]); ok {
			return stem, posVerb
		}
	case strings.HasSuffix(word, "s") && len(word) > 2:
		if stem, ok := nounStem(word); ok {
			return stem, posNoun
		}
	}

	return word, posNoun
}

// verbStem restores the base form from what is left after removing -ing or
// -ed: doubled final consonants are undoubled (running, stopped) and short
// consonant-vowel-consonant stems regain a silent e (making, hoped).
func verbStem(stem string) (string, bool) {
	if !strings.ContainsAny(stem, "aeiouy") {
		return "", false
	}

	n := len(stem)
	if n >= 4 && stem[n-1] == stem[n-2] && isConsonant(stem[n-1]) && !strings.ContainsRune("lsz", rune(stem[n-1])) {
		return stem[:n-1], true
	}

	if needsSilentE(stem) {
		return stem + "e", true
	}
	return stem, true
}

func needsSilentE(stem string) bool {
	n := len(stem)
	switch {
	case n == 2:
		// us(ing) -> use
		return isVowel(stem[0]) && isConsonant(stem[1]) && stem[1] != 'w' && stem[1] != 'x' && stem[1] != 'y'
	case n == 3 || n == 4:
		c1, v, c2 := stem[n-3], stem[n-2], stem[n-1]
		if !isConsonant(c1) || !isVowel(v) || !isConsonant(c2) {
			return false
		}
		if c2 == 'w' || c2 == 'x' || c2 == 'y' {
			return false
		}
		return n == 3 || isConsonant(stem[0])
	}
	return false
}

// nounStem strips plural endings. It refuses words whose final s is not a
// plural marker (class, bus, basis, famous).
func nounStem(word string) (string, bool) {
	for _, suf := range []string{"ss", "us", "is", "ous"} {
		if strings.HasSuffix(word, suf) {
			return "", false
		}
	}

	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 4:
		return word[:len(word)-3] + "y", true
	case strings.HasSuffix(word, "sses"):
		return word[:len(word)-2], true
	case strings.HasSuffix(word, "ches"), strings.HasSuffix(word, "shes"),
		strings.HasSuffix(word, "xes"), strings.HasSuffix(word, "zes"):
		return word[:len(word)-2], true
	}
	return word[:len(word)-1], true
}

func isVowel(b byte) bool {
	return strings.IndexByte("aeiou", b) >= 0
}

func isConsonant(b byte) bool {
	return b >= 'a' && b <= 'z' && !isVowel(b)
}
