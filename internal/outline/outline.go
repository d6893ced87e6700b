// Package outline parses a markdown document into its full heading
// structure, including setext headings the TOC recognizers leave alone,
// for the structural views the CLI offers.
package outline

import (
	"bytes"
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

const (
	setextH1Level = 1
	setextH2Level = 2
)

// Heading is one entry in a document's structure.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	Line  int    `json:"line"`
}

// Document is the parsed structure of a markdown file.
type Document struct {
	Title    string    `json:"title,omitempty"`
	Lines    int       `json:"lines"`
	Headings []Heading `json:"headings"`
}

// Parse extracts the heading structure of a markdown document. YAML
// frontmatter is skipped; its title, when present, becomes the document
// title, falling back to the first level-1 heading.
func Parse(content []byte) *Document {
	content = stripBOM(content)
	body, fmTitle := stripFrontmatter(content)

	// gomarkdown only recognizes a setext underline on a newline-terminated
	// line, so a heading on the last line of a file without a trailing
	// newline would be dropped. Parse a terminated copy; line-number and
	// offset arithmetic below keep using the original body slice.
	parseInput := body
	if len(parseInput) > 0 && parseInput[len(parseInput)-1] != '\n' {
		parseInput = append(append([]byte(nil), body...), '\n')
	}

	mdParser := parser.NewWithExtensions(parser.CommonExtensions)
	doc := mdParser.Parse(parseInput)

	var headings []Heading
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}

		if heading, isHeading := node.(*ast.Heading); isHeading {
			text := extractText(heading)
			if text != "" {
				headings = append(headings, Heading{
					Level: heading.Level,
					Text:  text,
				})
			}
		}

		return ast.GoToNext
	})

	// Line numbers must reflect the full file, frontmatter included.
	fmLineOffset := bytes.Count(content[:len(content)-len(body)], []byte("\n"))
	assignHeadingLineNumbers(headings, body, fmLineOffset)

	title := fmTitle
	if title == "" {
		for _, heading := range headings {
			if heading.Level == 1 {
				title = heading.Text
				break
			}
		}
	}

	return &Document{
		Title:    title,
		Lines:    bytes.Count(content, []byte("\n")) + 1,
		Headings: headings,
	}
}

func extractText(node ast.Node) string {
	var buf strings.Builder
	ast.WalkFunc(node, func(n ast.Node, entering bool) ast.WalkStatus {
		if entering {
			if text, ok := n.(*ast.Text); ok {
				buf.Write(text.Literal)
			}
		}
		return ast.GoToNext
	})

	return strings.Join(strings.Fields(buf.String()), " ")
}

// assignHeadingLineNumbers scans the body for heading markers and assigns
// the source line to each heading in document order. gomarkdown's AST
// does not carry positions, so the scan re-derives them, skipping fenced
// code blocks.
func assignHeadingLineNumbers(headings []Heading, body []byte, lineOffset int) {
	if len(headings) == 0 {
		return
	}

	lines := bytes.Split(body, []byte("\n"))
	hi := 0
	inFenced := false

	for lineIdx := 0; lineIdx < len(lines) && hi < len(headings); lineIdx++ {
		line := lines[lineIdx]
		trimmed := bytes.TrimSpace(line)

		if isFenceMarker(trimmed) {
			inFenced = !inFenced
			continue
		}
		if inFenced {
			continue
		}

		if level := atxHeadingLevel(line); level == headings[hi].Level {
			headings[hi].Line = lineOffset + lineIdx + 1
			hi++
			continue
		}

		if level := setextHeadingLevel(lines, lineIdx, trimmed); level == headings[hi].Level {
			headings[hi].Line = lineOffset + lineIdx + 1
			hi++
		}
	}
}

func isFenceMarker(trimmed []byte) bool {
	return bytes.HasPrefix(trimmed, []byte("```")) || bytes.HasPrefix(trimmed, []byte("~~~"))
}

// atxHeadingLevel returns the heading level (1-6) for an ATX heading
// line, or 0 if the line is not an ATX heading.
func atxHeadingLevel(line []byte) int {
	spaces := 0
	for spaces < len(line) && spaces < 4 && line[spaces] == ' ' {
		spaces++
	}
	if spaces >= 4 || spaces >= len(line) || line[spaces] != '#' {
		return 0
	}

	level := 0
	for spaces+level < len(line) && level < 7 && line[spaces+level] == '#' {
		level++
	}
	if level >= 1 && level <= 6 && spaces+level < len(line) && line[spaces+level] == ' ' {
		return level
	}
	return 0
}

// setextHeadingLevel returns 1 for a === underline, 2 for ---, or 0 when
// the line is not a setext heading.
func setextHeadingLevel(lines [][]byte, lineIdx int, trimmed []byte) int {
	if lineIdx+1 >= len(lines) || len(trimmed) == 0 {
		return 0
	}
	nextTrimmed := bytes.TrimSpace(lines[lineIdx+1])
	if allSameChar(nextTrimmed, '=') {
		return setextH1Level
	}
	if allSameChar(nextTrimmed, '-') {
		return setextH2Level
	}
	return 0
}

func allSameChar(b []byte, ch byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if c != ch {
			return false
		}
	}
	return true
}

// stripBOM removes a UTF-8 BOM if present.
func stripBOM(content []byte) []byte {
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:]
	}
	return content
}

// stripFrontmatter removes YAML frontmatter (--- delimited) and returns
// the remaining body plus the frontmatter title if present.
func stripFrontmatter(content []byte) ([]byte, string) {
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return content, ""
	}

	start := bytes.Index(content, []byte("\n"))
	if start == -1 {
		return content, ""
	}
	start++

	skipBytes := 5
	end := bytes.Index(content[start:], []byte("\n---\n"))
	if end == -1 {
		end = bytes.Index(content[start:], []byte("\n---\r\n"))
		if end == -1 {
			return content, ""
		}
		skipBytes = 6
	}

	frontmatter := content[start : start+end]
	body := content[start+end+skipBytes:]

	var title string
	for _, line := range bytes.Split(frontmatter, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if titleAfter, found := bytes.CutPrefix(line, []byte("title:")); found {
			title = strings.TrimSpace(string(titleAfter))
			title = strings.Trim(title, `"'`)
		}
	}

	return body, title
}
