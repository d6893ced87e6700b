// Package toc turns markdown heading lines into a table of contents,
// replicating the heading-recognition and anchor-slug rules of the
// renderers used by GitHub, GitLab and Redcarpet.
package toc

import (
	"github.com/samber/oops"
)

// Rule family a dialect token maps onto. GitHub and cmark share one set of
// rules; GitLab and Redcarpet share the other.
type ruleSet int

const (
	githubRules ruleSet = iota
	redcarpetRules
)

// Dialect selects the recognizer and slug algorithm for one TOC build.
type Dialect struct {
	token string
	rules ruleSet
	// GitLab adds duplicate-anchor suffixing on top of the shared
	// Redcarpet slug algorithm; Redcarpet itself never suffixes.
	dedupe bool
}

var (
	Github    = Dialect{token: "github", rules: githubRules, dedupe: true}
	Cmark     = Dialect{token: "cmark", rules: githubRules, dedupe: true}
	Gitlab    = Dialect{token: "gitlab", rules: redcarpetRules, dedupe: true}
	Redcarpet = Dialect{token: "redcarpet", rules: redcarpetRules, dedupe: false}
)

// Hard ceilings shared by the dialect rule sets.
const (
	// MaxHeaderLevels is the deepest ATX heading any dialect recognizes.
	MaxHeaderLevels = 6

	// DefaultKeepHeaderLevels is the heading depth used when the caller
	// does not choose one.
	DefaultKeepHeaderLevels = 3

	maxIndentation       = 3
	maxLinkLabelChars    = 999
	maxOrderedListMarker = 999_999_999
)

// ParseDialect resolves a dialect token. Unknown tokens fail before any
// scanning begins.
func ParseDialect(token string) (Dialect, error) {
	switch token {
	case "github":
		return Github, nil
	case "cmark":
		return Cmark, nil
	case "gitlab":
		return Gitlab, nil
	case "redcarpet":
		return Redcarpet, nil
	default:
		return Dialect{}, oops.
			Code("UNKNOWN_DIALECT").
			With("dialect", token).
			Hint("Supported dialects: github, cmark, gitlab, redcarpet").
			Errorf("unknown dialect %q", token)
	}
}

// String returns the token the dialect was parsed from.
func (d Dialect) String() string {
	return d.token
}
