package toc

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// DuplicateCounter tracks how many times each candidate anchor has been
// produced within one document build. Duplicate numbering depends on
// first-seen-first-numbered, so it is mutated strictly in document order.
type DuplicateCounter map[string]int

// Characters the redcarpet slug algorithm strips, verbatim from the
// rndr_header_anchor routine. Do not "clean up": consumers depend on
// bit-identical anchors.
const redcarpetStripSet = " -&+$,/:;=?@\"#{}|^~[]`\\*()%.!'"

const djb2Seed = 5381

// buildAnchorLink turns heading text into the dialect's anchor identifier,
// registering the candidate in dup for duplicate disambiguation.
func buildAnchorLink(text string, dup DuplicateCounter, dialect Dialect) string {
	var candidate string
	if dialect.rules == githubRules {
		candidate = githubSlug(text)
	} else {
		candidate = redcarpetSlug(text)
	}

	if !dialect.dedupe {
		return candidate
	}

	return dedupeAnchor(candidate, dup)
}

// githubSlug lower-cases the text, keeps word characters, whitespace and
// hyphens, and turns spaces into hyphens. Word characters span all Unicode
// letters and numbers, so numeric forms like ½ or Ⅻ survive.
func githubSlug(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r == ' ':
			b.WriteByte('-')
		case r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}

	return b.String()
}

// redcarpetSlug is a character-for-character port of redcarpet's C anchor
// routine: HTML-tag and HTML-entity spans are skipped wholesale, non-ASCII
// and strip-set characters become at most one separator hyphen, and input
// that yields no characters at all falls back to a DJB2 content hash.
func redcarpetSlug(text string) string {
	runes := []rune(text)

	var b strings.Builder
	b.Grow(len(text))
	inserted := 0
	stripped := false

	for i := 0; i < len(runes); i++ {
		switch {
		case runes[i] == '<':
			for i < len(runes) && runes[i] != '>' {
				i++
			}
		case runes[i] == '&':
			for i < len(runes) && runes[i] != ';' {
				i++
			}
		case runes[i] > unicode.MaxASCII || strings.ContainsRune(redcarpetStripSet, runes[i]):
			if inserted > 0 && !stripped {
				b.WriteByte('-')
			}
			stripped = true
		default:
			b.WriteRune(unicode.ToLower(runes[i]))
			stripped = false
			inserted++
		}
	}

	anchor := b.String()
	if stripped && inserted > 0 {
		anchor = anchor[:len(anchor)-1]
	}

	if inserted == 0 && len(runes) > 0 {
		hash := uint64(djb2Seed)
		for _, r := range runes {
			hash = ((hash << 5) + hash) + uint64(r)
		}
		anchor = fmt.Sprintf("part-%x", hash)
	}

	return anchor
}

// dedupeAnchor suffixes the n-th duplicate of a candidate with "-<n-1>";
// the first occurrence stays unsuffixed. The counter is keyed by the
// pre-suffix candidate.
func dedupeAnchor(candidate string, dup DuplicateCounter) string {
	anchor := candidate
	if n := dup[candidate]; n > 0 {
		anchor = candidate + "-" + strconv.Itoa(n)
	}
	dup[candidate]++

	return anchor
}
