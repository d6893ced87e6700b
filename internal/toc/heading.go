package toc

import (
	"strings"
	"unicode/utf8"

	"github.com/samber/oops"
)

// Heading is one recognized ATX heading, immutable once built.
type Heading struct {
	Level  int    `json:"level"`
	Text   string `json:"text"`
	Anchor string `json:"anchor"`
	Line   int    `json:"line"`
}

// recognizeHeading decides whether line is an ATX heading under the
// dialect's rules. The line may or may not carry its trailing line ending.
// ok is false for non-heading lines; err is non-nil only for github-rules
// link-label violations, which abort the whole build.
func recognizeHeading(line string, keepLevels int, dialect Dialect, noLinks bool) (int, string, bool, error) {
	if line == "" {
		return 0, "", false, nil
	}

	if dialect.rules == redcarpetRules {
		level, text, ok := recognizeRedcarpet(line, keepLevels, noLinks)
		return level, text, ok, nil
	}

	return recognizeGithub(line, keepLevels, noLinks)
}

func recognizeGithub(line string, keepLevels int, noLinks bool) (int, string, bool, error) {
	if line[0] == '\\' {
		return 0, "", false, nil
	}

	i := 0
	for i < len(line) && line[i] == ' ' && i <= maxIndentation {
		i++
	}
	if i > maxIndentation {
		return 0, "", false, nil
	}

	offset := i
	for i < len(line) && line[i] == '#' {
		i++
	}

	level := i - offset
	if level == 0 || level > MaxHeaderLevels || level > keepLevels {
		return 0, "", false, nil
	}

	// The marker run must be followed by a space or the end of the line;
	// "#5 bolt" is not a heading.
	if i < len(line) && line[i] != ' ' && line[i] != '\n' && line[i] != '\r' {
		return 0, "", false, nil
	}

	i++
	for i < len(line) && line[i] == ' ' {
		i++
	}

	start := min(i, len(line))
	text := line[start:closingSequenceStart(line, start)]

	if !noLinks {
		// A lone trailing backslash would swallow the link's closing
		// bracket; pad it before validating.
		if strings.HasSuffix(text, "\\") {
			text += " "
		}

		if strings.Trim(text, " \t\n\v\f\r") == "" {
			return 0, "", false, oops.
				Code("EMPTY_LINK_LABEL").
				With("line", line).
				Hint("Give the heading a non-empty title or pass no-links mode").
				Wrapf(ErrEmptyLinkLabel, "heading has no link label")
		}

		if utf8.RuneCountInString(text) > maxLinkLabelChars {
			return 0, "", false, oops.
				Code("OVERFLOW_LINK_LABEL").
				With("chars", utf8.RuneCountInString(text)).
				With("max", maxLinkLabelChars).
				Wrapf(ErrLinkLabelOverflow, "heading link label exceeds %d characters", maxLinkLabelChars)
		}

		text = escapeBrackets(text)
	}

	return level, text, true, nil
}

// States of the backward closing-sequence scan.
type closingScanState int

const (
	scanningSpace closingScanState = iota
	scanningHash
	scanDone
)

// closingSequenceStart returns the index at which the heading text ends,
// i.e. where the optional closing sequence (trailing spaces, one '#' run,
// the spaces before it) begins. The scan runs backward over the line
// clamped to the first line-ending character, so producers that keep the
// trailing newline and producers that strip it agree.
//
// A '#' run glued to the text ("# foo###") is text, not a closing
// sequence, and a second '#' run further left ("# foo # #") terminates the
// scan without being stripped.
func closingSequenceStart(line string, start int) int {
	end := len(line)
	if p := strings.IndexByte(line, '\n'); p != -1 && p < end {
		end = p
	}
	if p := strings.IndexByte(line, '\r'); p != -1 && p < end {
		end = p
	}
	if end < start {
		return start
	}

	state := scanningSpace
	hashRuns := 0
	runEnd := end // one past the most recent '#' run
	cut := end
	i := end - 1

	for state != scanDone {
		if i < start {
			// The whole span is spaces and '#' runs: all closing sequence.
			cut = start
			break
		}

		c := line[i]
		switch state {
		case scanningSpace:
			switch {
			case c == ' ':
				i--
			case c == '#':
				hashRuns++
				runEnd = i + 1
				state = scanningHash
				i--
			default:
				cut = i + 1
				state = scanDone
			}
		case scanningHash:
			switch {
			case c == '#':
				i--
			case c == ' ' && hashRuns == 1:
				state = scanningSpace
				i--
			default:
				cut = runEnd
				state = scanDone
			}
		case scanDone:
		}
	}

	return cut
}

// escapeBrackets inserts a backslash before every '[' or ']' whose
// preceding backslash run has even parity; an odd run means the bracket is
// already escaped.
func escapeBrackets(text string) string {
	if !strings.ContainsAny(text, "[]") {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + 2)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '[' || c == ']' {
			backslashes := 0
			for j := i - 1; j >= 0 && text[j] == '\\'; j-- {
				backslashes++
			}
			if backslashes%2 == 0 {
				b.WriteByte('\\')
			}
		}
		b.WriteByte(c)
	}

	return b.String()
}

func recognizeRedcarpet(line string, keepLevels int, noLinks bool) (int, string, bool) {
	if line[0] != '#' {
		return 0, "", false
	}

	i := 0
	for i < len(line) && i < MaxHeaderLevels && line[i] == '#' {
		i++
	}
	level := i

	if i < len(line) && line[i] != ' ' {
		return 0, "", false
	}
	if level > keepLevels {
		return 0, "", false
	}

	for i < len(line) && line[i] == ' ' {
		i++
	}

	end := i
	for end < len(line) && line[end] != '\n' {
		end++
	}
	for end > 0 && line[end-1] == '#' {
		end--
	}
	for end > 0 && line[end-1] == ' ' {
		end--
	}

	if end <= i {
		return 0, "", false
	}

	text := line[i:end]
	if !noLinks && line[len(line)-1] == '\\' {
		text += " "
	}

	return level, text, true
}
